package metric

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

var (
	sobelX = [9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	sobelY = [9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

// Tenengrad measures mean squared Sobel gradient magnitude. High gradient
// energy indicates more edge content and hence a sharper image; the
// comparison keeps the same value < threshold orientation as the other
// detectors, paired with a correspondingly high default threshold.
type Tenengrad struct {
	threshold float64
}

// NewTenengrad creates the detector with its blur threshold.
func NewTenengrad(threshold float64) *Tenengrad {
	return &Tenengrad{threshold: threshold}
}

func (m *Tenengrad) Name() string { return "Tenengrad" }

func (m *Tenengrad) Threshold() float64 { return m.threshold }

// Evaluate computes gx*gx + gy*gy per pixel under both Sobel kernels and
// averages over all width*height pixels.
func (m *Tenengrad) Evaluate(img *image.Gray) (float64, bool) {
	gx := convolve3x3(img, sobelX)
	gy := convolve3x3(img, sobelY)

	sq := make([]float64, len(gx))
	for i := range gx {
		sq[i] = gx[i]*gx[i] + gy[i]*gy[i]
	}

	energy := stat.Mean(sq, nil)
	return energy, energy < m.threshold
}
