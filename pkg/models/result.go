package models

// MetricReading is a single sharpness metric's verdict for one image.
// IsBlurry always equals (Value < Threshold); a value exactly on the
// threshold classifies as sharp.
type MetricReading struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	IsBlurry  bool    `json:"is_blurry"`
}

// ClassificationResult is the per-image outcome of running the detector
// suite. Readings keep the suite's evaluation order so output is stable
// and reproducible. OverallBlurry is the conjunction of every reading's
// verdict: an image is blurry only when all configured detectors agree.
type ClassificationResult struct {
	OverallBlurry bool            `json:"overall_blurry"`
	Readings      []MetricReading `json:"readings"`

	// Provenance carried through for display
	ByteSize    *int64 `json:"byte_size,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FocalLength string `json:"focal_length,omitempty"`
}
