package metric

import "image"

// SharpnessMetric scores the sharpness of a grayscale image and decides
// blurry or sharp against its configured threshold. Implementations carry
// no per-image state, so a single instance is safe to reuse across an
// unbounded stream of images.
type SharpnessMetric interface {
	// Name is the stable identifier reported in metric readings.
	Name() string

	// Threshold is the configured blur threshold for this metric.
	Threshold() float64

	// Evaluate returns the metric value and whether value < threshold.
	// A value exactly on the threshold classifies as sharp.
	Evaluate(img *image.Gray) (float64, bool)
}
