package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/microuser/grepfuzz/internal/errors"
)

// FilterMode selects which overall verdict a stream record must carry to
// be re-emitted.
type FilterMode int

const (
	// PassBlurry keeps records whose image every detector calls blurry.
	PassBlurry FilterMode = iota
	// PassSharp keeps records at least one detector calls sharp.
	PassSharp
)

func (m FilterMode) String() string {
	if m == PassSharp {
		return "sharp"
	}
	return "blur"
}

// OutputStyle selects one of the three rendering contracts.
type OutputStyle int

const (
	// Terse emits path and verdict, or the raw NUL-terminated record in
	// stream mode.
	Terse OutputStyle = iota
	// Verbose emits a multi-line human-readable block per image.
	Verbose
	// ASCII emits tab-separated records for cut/awk consumption.
	ASCII
)

func (s OutputStyle) String() string {
	switch s {
	case Verbose:
		return "verbose"
	case ASCII:
		return "ascii"
	default:
		return "terse"
	}
}

// Thresholds holds one blur threshold per detector, resolved once before
// the stream starts. A metric value below its threshold means blurry.
type Thresholds struct {
	Laplacian       float64
	Tenengrad       float64
	OpenCVLaplacian float64
}

// Config is the fully resolved run configuration consumed by the
// dispatcher. Immutable for the duration of a run.
type Config struct {
	Thresholds Thresholds
	Mode       FilterMode
	Style      OutputStyle
}

// fileConfig mirrors the on-disk YAML layout. Pointer fields distinguish
// "absent" from an explicit zero.
type fileConfig struct {
	Detectors struct {
		LaplacianThreshold       *float64 `yaml:"laplacian_threshold"`
		TenengradThreshold       *float64 `yaml:"tenengrad_threshold"`
		OpenCVLaplacianThreshold *float64 `yaml:"opencv_laplacian_threshold"`
	} `yaml:"detectors"`
}

// DefaultThresholds returns the built-in detector thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Laplacian:       0.1,
		Tenengrad:       1000.0,
		OpenCVLaplacian: 0.1,
	}
}

// LoadThresholds resolves thresholds from defaults, then the YAML config
// file at path (when non-empty), then GREPFUZZ_* environment variables.
// CLI flag overrides are applied by the caller on top of the result.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()

	if path != "" {
		if err := mergeFile(&t, path); err != nil {
			return t, err
		}
	}

	t.Laplacian = parseFloatOrDefault("GREPFUZZ_LAPLACIAN_THRESHOLD", t.Laplacian)
	t.Tenengrad = parseFloatOrDefault("GREPFUZZ_TENENGRAD_THRESHOLD", t.Tenengrad)
	t.OpenCVLaplacian = parseFloatOrDefault("GREPFUZZ_OPENCV_LAPLACIAN_THRESHOLD", t.OpenCVLaplacian)

	return t, nil
}

// Validate rejects thresholds that would make a detector's verdict
// degenerate.
func (t Thresholds) Validate() error {
	if t.Laplacian <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("laplacian threshold must be > 0 (got %g)", t.Laplacian), nil)
	}
	if t.Tenengrad <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("tenengrad threshold must be > 0 (got %g)", t.Tenengrad), nil)
	}
	if t.OpenCVLaplacian <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("opencv laplacian threshold must be > 0 (got %g)", t.OpenCVLaplacian), nil)
	}
	return nil
}

func mergeFile(t *Thresholds, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("cannot read config file %s", path), err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("cannot parse config file %s", path), err)
	}

	if fc.Detectors.LaplacianThreshold != nil {
		t.Laplacian = *fc.Detectors.LaplacianThreshold
	}
	if fc.Detectors.TenengradThreshold != nil {
		t.Tenengrad = *fc.Detectors.TenengradThreshold
	}
	if fc.Detectors.OpenCVLaplacianThreshold != nil {
		t.OpenCVLaplacian = *fc.Detectors.OpenCVLaplacianThreshold
	}
	return nil
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
