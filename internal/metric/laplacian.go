package metric

import "image"

// Discrete Laplacian kernel [0 1 0; 1 -4 1; 0 1 0]
var laplacianKernel = [9]float64{
	0, 1, 0,
	1, -4, 1,
	0, 1, 0,
}

// LaplacianVariance measures the population variance of the image's
// Laplacian response. Low variance means few strong step discontinuities,
// which correlates with defocus blur. This is the primary and cheapest
// detector.
type LaplacianVariance struct {
	threshold float64
}

// NewLaplacianVariance creates the detector with its blur threshold.
func NewLaplacianVariance(threshold float64) *LaplacianVariance {
	return &LaplacianVariance{threshold: threshold}
}

func (m *LaplacianVariance) Name() string { return "Laplacian" }

func (m *LaplacianVariance) Threshold() float64 { return m.threshold }

// Evaluate convolves the raw 0-255 pixel values with the Laplacian kernel
// and returns the variance of the response over all width*height pixels.
func (m *LaplacianVariance) Evaluate(img *image.Gray) (float64, bool) {
	variance := populationVariance(convolve3x3(img, laplacianKernel))
	return variance, variance < m.threshold
}
