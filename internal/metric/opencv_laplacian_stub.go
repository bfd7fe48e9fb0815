//go:build !gocv
// +build !gocv

package metric

import (
	apperrors "github.com/microuser/grepfuzz/internal/errors"
)

// NewOpenCVLaplacian reports the OpenCV backend as unavailable in builds
// without the gocv tag. The suite constructor omits the detector and
// proceeds with the remaining ones.
func NewOpenCVLaplacian(threshold float64) (SharpnessMetric, error) {
	_ = threshold
	return nil, apperrors.NewMetricUnavailableError("OpenCV Laplacian detector requires the gocv build tag", nil)
}
