package loader

import "image"

// Checkerboard builds a grayscale test pattern alternating 0/255 per
// pixel by (x+y) parity. Maximum high-frequency content, so every
// sharpness metric should score it well above any sane threshold.
func Checkerboard(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x+y)%2 != 0 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

// SolidWhite builds a uniform all-255 grayscale image. Zero edge content,
// the canonical "blurry" calibration input.
func SolidWhite(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}
