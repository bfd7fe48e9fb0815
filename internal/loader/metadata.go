package loader

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// FocalLength returns the EXIF focal length of the image at path, or the
// empty string when the file has no readable EXIF data. Absence is not an
// error; most screenshots and synthetic images carry no metadata.
func FocalLength(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return ""
	}

	tag, err := x.Get(exif.FocalLength)
	if err != nil {
		return ""
	}

	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return ""
	}
	return fmt.Sprintf("%g mm", float64(num)/float64(den))
}
