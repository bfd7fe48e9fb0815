package output

import (
	"fmt"
	"io"

	"github.com/microuser/grepfuzz/internal/config"
	"github.com/microuser/grepfuzz/pkg/models"
)

const unknownField = "N/A"

// Formatter renders classification results in one of the three output
// styles. Pure rendering: it never mutates a result and buffers nothing
// beyond the line being written.
type Formatter struct {
	style config.OutputStyle
}

// New creates a formatter for the given style.
func New(style config.OutputStyle) *Formatter {
	return &Formatter{style: style}
}

// FormatItem writes the single-image rendering of result under name.
func (f *Formatter) FormatItem(w io.Writer, name string, result models.ClassificationResult) error {
	switch f.style {
	case config.Verbose:
		return f.writeVerbose(w, name, result)
	case config.ASCII:
		return f.writeItemRow(w, name, result)
	default:
		_, err := fmt.Fprintf(w, "%s\t%t\n", name, result.OverallBlurry)
		return err
	}
}

// FormatStreamRecord writes the streaming rendering of a record that
// passed the filter gate. Terse re-emits the raw path with a trailing NUL
// so the output feeds directly into another NUL-delimited consumer; ASCII
// emits one tab-separated row per metric; Verbose emits the full block.
func (f *Formatter) FormatStreamRecord(w io.Writer, path string, result models.ClassificationResult) error {
	switch f.style {
	case config.Verbose:
		return f.writeVerbose(w, path, result)
	case config.ASCII:
		return f.writeMetricRows(w, path, result)
	default:
		if _, err := io.WriteString(w, path); err != nil {
			return err
		}
		_, err := w.Write([]byte{0})
		return err
	}
}

func (f *Formatter) writeVerbose(w io.Writer, name string, result models.ClassificationResult) error {
	if _, err := fmt.Fprintf(w, "File: %s\n", name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Size: %s\n", sizeString(result.ByteSize)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Dimensions: %dx%d\n", result.Width, result.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Focal Length: %s\n", focalString(result.FocalLength)); err != nil {
		return err
	}
	for _, r := range result.Readings {
		if _, err := fmt.Fprintf(w, "  %s: value = %.6f, blurry = %t (threshold: %.3f)\n",
			r.Name, r.Value, r.IsBlurry, r.Threshold); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  Overall blurry: %t\n", result.OverallBlurry)
	return err
}

// writeItemRow renders one tab-separated record per image, with a
// name:value:verdict tuple appended per metric.
func (f *Formatter) writeItemRow(w io.Writer, name string, result models.ClassificationResult) error {
	if _, err := fmt.Fprintf(w, "%s\t%t\t%s\t%d\t%d\t%s",
		name, result.OverallBlurry, sizeColumn(result.ByteSize),
		result.Width, result.Height, focalString(result.FocalLength)); err != nil {
		return err
	}
	for i, r := range result.Readings {
		sep := ","
		if i == 0 {
			sep = "\t"
		}
		if _, err := fmt.Fprintf(w, "%s%s:%.6f:%s", sep, r.Name, r.Value, verdict(r.IsBlurry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeMetricRows renders one tab-separated row per metric, suitable for
// cut/awk consumption of an unbounded stream.
func (f *Formatter) writeMetricRows(w io.Writer, path string, result models.ClassificationResult) error {
	for _, r := range result.Readings {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%.6f\t%.3f\t%s\n",
			path, sizeColumn(result.ByteSize), result.Width, result.Height,
			r.Name, r.Value, r.Threshold, verdict(r.IsBlurry)); err != nil {
			return err
		}
	}
	return nil
}

func verdict(blurry bool) string {
	if blurry {
		return "BLURRY"
	}
	return "SHARP"
}

func sizeString(size *int64) string {
	if size == nil {
		return unknownField
	}
	return fmt.Sprintf("%d bytes", *size)
}

// sizeColumn is the bare numeric form used in tab-separated rows.
func sizeColumn(size *int64) string {
	if size == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *size)
}

func focalString(focal string) string {
	if focal == "" {
		return unknownField
	}
	return focal
}
