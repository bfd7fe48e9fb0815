package dispatch

import (
	"bufio"
	"bytes"
	"image"
	"io"
	"unicode/utf8"

	"github.com/microuser/grepfuzz/internal/config"
	apperrors "github.com/microuser/grepfuzz/internal/errors"
	"github.com/microuser/grepfuzz/internal/logger"
	"github.com/microuser/grepfuzz/internal/metric"
	"github.com/microuser/grepfuzz/internal/output"
)

// Dispatcher drives the classification pipeline over a single image or a
// NUL-delimited stream of path records. It holds only immutable run state
// (the suite, the filter mode, the formatter) and is processed strictly
// sequentially: one record fully classified and emitted before the next
// is read.
type Dispatcher struct {
	suite     *metric.Suite
	mode      config.FilterMode
	formatter *output.Formatter
}

// New creates a dispatcher from resolved run configuration.
func New(suite *metric.Suite, mode config.FilterMode, formatter *output.Formatter) *Dispatcher {
	return &Dispatcher{suite: suite, mode: mode, formatter: formatter}
}

// RunFile classifies the single image at path and writes its rendering.
// The filter gate does not apply in single-image mode.
func (d *Dispatcher) RunFile(w io.Writer, path string) error {
	result, err := ClassifyFile(path, d.suite)
	if err != nil {
		return err
	}
	return d.formatter.FormatItem(w, path, result)
}

// RunImage classifies an already-decoded image under the given display
// name and writes its rendering.
func (d *Dispatcher) RunImage(w io.Writer, name string, img *image.Gray) error {
	result, err := ClassifyImage(img, d.suite)
	if err != nil {
		return err
	}
	return d.formatter.FormatItem(w, name, result)
}

// RunStream reads NUL-delimited path records from r, classifies each one
// and re-emits the records that pass the filter mode. Per-record failures
// never abort the stream: a record that is not valid UTF-8 is dropped
// silently, a record whose image cannot be decoded is logged and skipped.
// Only a failed read of r itself (or a failed write to w) is fatal.
// Output is flushed after every record so a downstream consumer can
// process results incrementally.
func (d *Dispatcher) RunStream(r io.Reader, w io.Writer) (Stats, error) {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	var stats Stats
	for {
		record, readErr := reader.ReadBytes(0)

		record = bytes.TrimSuffix(record, []byte{0})
		if len(record) > 0 {
			if err := d.handleRecord(writer, record, &stats); err != nil {
				return stats, err
			}
			if err := writer.Flush(); err != nil {
				return stats, apperrors.NewStreamError("cannot write output stream", err)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return stats, apperrors.NewStreamError("cannot read input stream", readErr)
		}
	}

	if err := writer.Flush(); err != nil {
		return stats, apperrors.NewStreamError("cannot write output stream", err)
	}
	return stats, nil
}

// handleRecord classifies one path record and emits it when it passes the
// filter gate. Returns an error only for output failures.
func (d *Dispatcher) handleRecord(w io.Writer, record []byte, stats *Stats) error {
	if !utf8.Valid(record) {
		// Malformed filenames are expected noise in some pipelines; drop
		// the record without a diagnostic.
		stats.SkippedEncoding++
		return nil
	}
	path := string(record)

	result, err := ClassifyFile(path, d.suite)
	if err != nil {
		stats.Failed++
		logger.WithError(err).WithField("path", path).Error("skipping unreadable image")
		return nil
	}
	stats.Processed++

	keep := result.OverallBlurry == (d.mode == config.PassBlurry)
	if !keep {
		return nil
	}
	stats.Passed++

	if err := d.formatter.FormatStreamRecord(w, path, result); err != nil {
		return apperrors.NewStreamError("cannot write output stream", err)
	}
	return nil
}

// Passthrough re-emits every NUL-delimited record from r to w verbatim,
// bypassing classification entirely. Used for pipeline composition and
// testing; output equals input byte for byte.
func Passthrough(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	for {
		record, readErr := reader.ReadBytes(0)
		if len(record) > 0 {
			if _, err := w.Write(record); err != nil {
				return apperrors.NewStreamError("cannot write output stream", err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return apperrors.NewStreamError("cannot read input stream", readErr)
		}
	}
}
