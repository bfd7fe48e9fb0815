package dispatch

import (
	"image"

	"github.com/microuser/grepfuzz/internal/loader"
	"github.com/microuser/grepfuzz/internal/metric"
	"github.com/microuser/grepfuzz/pkg/models"
)

// ClassifyFile decodes the image at path, gathers its provenance (byte
// size, dimensions, focal length) and runs the detector suite over it.
func ClassifyFile(path string, suite *metric.Suite) (models.ClassificationResult, error) {
	img, size, err := loader.OpenFile(path)
	if err != nil {
		return models.ClassificationResult{}, err
	}

	result, err := suite.EvaluateAll(img)
	if err != nil {
		return models.ClassificationResult{}, err
	}

	result.ByteSize = &size
	result.FocalLength = loader.FocalLength(path)
	return result, nil
}

// ClassifyImage runs the suite over an already-decoded image, used for
// stdin byte buffers and synthetic patterns where no file provenance
// exists.
func ClassifyImage(img *image.Gray, suite *metric.Suite) (models.ClassificationResult, error) {
	return suite.EvaluateAll(img)
}
