package metric

import (
	"image"

	"github.com/microuser/grepfuzz/internal/config"
	apperrors "github.com/microuser/grepfuzz/internal/errors"
	"github.com/microuser/grepfuzz/internal/logger"
	"github.com/microuser/grepfuzz/pkg/models"
)

// Suite runs an ordered collection of sharpness metrics against one image
// and aggregates their verdicts. An image is blurry only when every
// configured metric agrees it is; a suite with no metrics therefore
// classifies everything as blurry.
type Suite struct {
	metrics []SharpnessMetric
}

// NewSuite builds the standard detector suite from resolved thresholds.
// The OpenCV-backed Laplacian is optional: when its backend is not
// compiled in, the suite is built without it, a single warning is logged
// for the whole run, and the conjunction applies to the remaining
// detectors.
func NewSuite(t config.Thresholds) *Suite {
	metrics := []SharpnessMetric{
		NewLaplacianVariance(t.Laplacian),
		NewTenengrad(t.Tenengrad),
	}

	if m, err := NewOpenCVLaplacian(t.OpenCVLaplacian); err != nil {
		logger.WithError(err).Warn("continuing without the OpenCV Laplacian detector")
	} else {
		metrics = append(metrics, m)
	}

	return &Suite{metrics: metrics}
}

// NewSuiteWithMetrics builds a suite from an explicit metric list, in the
// given order.
func NewSuiteWithMetrics(metrics ...SharpnessMetric) *Suite {
	return &Suite{metrics: metrics}
}

// Len reports the number of configured metrics.
func (s *Suite) Len() int {
	return len(s.metrics)
}

// EvaluateAll runs every metric in order against img and returns the
// aggregated result. A zero-area image fails fast before any metric runs.
func (s *Suite) EvaluateAll(img *image.Gray) (models.ClassificationResult, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return models.ClassificationResult{}, apperrors.NewDecodeError("zero-area image", nil)
	}

	result := models.ClassificationResult{
		OverallBlurry: true,
		Readings:      make([]models.MetricReading, 0, len(s.metrics)),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
	}

	for _, m := range s.metrics {
		value, blurry := m.Evaluate(img)
		result.Readings = append(result.Readings, models.MetricReading{
			Name:      m.Name(),
			Value:     value,
			Threshold: m.Threshold(),
			IsBlurry:  blurry,
		})
		result.OverallBlurry = result.OverallBlurry && blurry
	}

	return result, nil
}
