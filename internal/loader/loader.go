package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"

	// WebP decode support; imaging handles JPEG/PNG/GIF/TIFF/BMP itself.
	_ "golang.org/x/image/webp"

	apperrors "github.com/microuser/grepfuzz/internal/errors"
)

// OpenFile decodes the image at path into 8-bit grayscale and reports its
// size in bytes. EXIF orientation is applied before conversion.
func OpenFile(path string) (*image.Gray, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, apperrors.NewDecodeError(fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, apperrors.NewDecodeError(fmt.Sprintf("cannot stat %s", path), err)
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, apperrors.NewDecodeError(fmt.Sprintf("cannot decode %s", path), err)
	}

	return Grayscale(img), info.Size(), nil
}

// DecodeBytes decodes a complete in-memory image buffer into grayscale.
func DecodeBytes(data []byte) (*image.Gray, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.NewDecodeError("cannot decode image bytes", err)
	}
	return Grayscale(img), nil
}

// Grayscale converts any decoded image to 8-bit grayscale with a
// zero-based origin and stride equal to width.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}
