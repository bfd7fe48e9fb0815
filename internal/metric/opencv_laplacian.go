//go:build gocv
// +build gocv

package metric

import (
	"image"

	"gocv.io/x/gocv"
)

// OpenCVLaplacian computes the same variance-of-Laplacian statistic as
// LaplacianVariance through OpenCV's filter pipeline, kept as an
// independent backend for cross-validation. OpenCV's default border
// (reflect-101) differs from replicate at the outermost ring, so the two
// backends agree within floating-point and border tolerance, not
// bit-exactly.
type OpenCVLaplacian struct {
	threshold float64
}

// NewOpenCVLaplacian constructs the OpenCV-backed detector.
func NewOpenCVLaplacian(threshold float64) (SharpnessMetric, error) {
	return &OpenCVLaplacian{threshold: threshold}, nil
}

func (m *OpenCVLaplacian) Name() string { return "OpenCVLaplacian" }

func (m *OpenCVLaplacian) Threshold() float64 { return m.threshold }

func (m *OpenCVLaplacian) Evaluate(img *image.Gray) (float64, bool) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// image.Gray rows may be padded; OpenCV expects tightly packed bytes.
	pix := img.Pix
	if img.Stride != width {
		pix = make([]byte, 0, width*height)
		for y := 0; y < height; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+width]
			pix = append(pix, row...)
		}
	}

	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, pix)
	if err != nil {
		return 0, 0 < m.threshold
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	// Aperture 1 selects the plain [0 1 0; 1 -4 1; 0 1 0] kernel, matching
	// the primary detector.
	gocv.Laplacian(src, &dst, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(dst, &mean, &stddev)

	sd := stddev.GetDoubleAt(0, 0)
	variance := sd * sd
	return variance, variance < m.threshold
}
