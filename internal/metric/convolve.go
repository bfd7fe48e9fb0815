package metric

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// convolve3x3 applies a 3x3 kernel to the raw 0-255 pixel values of img
// with replicate (clamp-to-edge) border handling, producing one response
// per pixel in row-major order. The border policy is fixed: it affects
// the statistic near edges, and both Laplacian and Sobel metrics must use
// the same one.
func convolve3x3(img *image.Gray, k [9]float64) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= width {
			x = width - 1
		}
		if y < 0 {
			y = 0
		} else if y >= height {
			y = height - 1
		}
		return float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	out := make([]float64, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := k[0]*at(x-1, y-1) + k[1]*at(x, y-1) + k[2]*at(x+1, y-1) +
				k[3]*at(x-1, y) + k[4]*at(x, y) + k[5]*at(x+1, y) +
				k[6]*at(x-1, y+1) + k[7]*at(x, y+1) + k[8]*at(x+1, y+1)
			out = append(out, v)
		}
	}
	return out
}

// populationVariance is the variance with the sum of squares divided by
// len(data), not len(data)-1: the statistic is taken over the full pixel
// grid, not a sample of it.
func populationVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := stat.Mean(data, nil)
	var ss float64
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(data))
}
