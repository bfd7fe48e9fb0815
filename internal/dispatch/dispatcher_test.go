package dispatch

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/microuser/grepfuzz/internal/config"
	apperrors "github.com/microuser/grepfuzz/internal/errors"
	"github.com/microuser/grepfuzz/internal/loader"
	"github.com/microuser/grepfuzz/internal/metric"
	"github.com/microuser/grepfuzz/internal/output"
)

// writePNG stores img in dir and returns its path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
	return path
}

// laplacianDispatcher builds a dispatcher with only the Laplacian
// detector, so test verdicts are independent of the build tag.
func laplacianDispatcher(threshold float64, mode config.FilterMode, style config.OutputStyle) *Dispatcher {
	suite := metric.NewSuiteWithMetrics(metric.NewLaplacianVariance(threshold))
	return New(suite, mode, output.New(style))
}

func nulRecords(records ...string) *bytes.Buffer {
	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(r)
		buf.WriteByte(0)
	}
	return &buf
}

func TestRunStream_PassBlurry(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(50, 50))
	checkerPath := writePNG(t, dir, "checker.png", loader.Checkerboard(50, 50))

	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	stats, err := d.RunStream(nulRecords(whitePath, checkerPath), &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := append([]byte(whitePath), 0)
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Expected only the blurry record %q, got %q", want, out.Bytes())
	}
	if stats.Processed != 2 || stats.Passed != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRunStream_PassSharp(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(50, 50))
	checkerPath := writePNG(t, dir, "checker.png", loader.Checkerboard(50, 50))

	d := laplacianDispatcher(0.1, config.PassSharp, config.Terse)

	var out bytes.Buffer
	_, err := d.RunStream(nulRecords(whitePath, checkerPath), &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := append([]byte(checkerPath), 0)
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Expected only the sharp record %q, got %q", want, out.Bytes())
	}
}

func TestRunStream_SkipsBadRecords(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(50, 50))

	input := &bytes.Buffer{}
	input.Write([]byte{0xff, 0xfe, 0xfd}) // not valid UTF-8
	input.WriteByte(0)
	input.WriteString(filepath.Join(dir, "missing.png"))
	input.WriteByte(0)
	input.WriteString(whitePath)
	input.WriteByte(0)

	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	stats, err := d.RunStream(input, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.SkippedEncoding != 1 {
		t.Errorf("Expected 1 record skipped for encoding, got %d", stats.SkippedEncoding)
	}
	if stats.Failed != 1 {
		t.Errorf("Expected 1 failed record, got %d", stats.Failed)
	}
	if stats.Processed != 1 || stats.Passed != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if !bytes.Equal(out.Bytes(), append([]byte(whitePath), 0)) {
		t.Errorf("Expected the surviving record, got %q", out.Bytes())
	}
}

func TestRunStream_EmptyAndUnterminatedRecords(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(50, 50))

	// Double NUL produces an empty record, and the final record has no
	// trailing NUL; both must be handled.
	input := bytes.NewBufferString("\x00\x00" + whitePath)

	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	stats, err := d.RunStream(input, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Processed != 1 || stats.Passed != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if !bytes.Equal(out.Bytes(), append([]byte(whitePath), 0)) {
		t.Errorf("Expected the final unterminated record, got %q", out.Bytes())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestRunStream_ReadErrorIsFatal(t *testing.T) {
	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	_, err := d.RunStream(failingReader{}, &out)
	if err == nil {
		t.Fatal("Expected an error from an unreadable stream")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeStream) {
		t.Errorf("Expected a stream error, got %v", err)
	}
}

func TestPassthrough_ByteForByte(t *testing.T) {
	input := []byte("one\x00two\x00\x00\xff\xfe\x00tail-without-nul")

	var out bytes.Buffer
	if err := Passthrough(bytes.NewReader(input), &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Errorf("Expected output identical to input, got %q", out.Bytes())
	}
}

func TestPassthrough_Empty(t *testing.T) {
	var out bytes.Buffer
	if err := Passthrough(bytes.NewReader(nil), &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output for empty input, got %q", out.Bytes())
	}
}

func TestRunFile_Verbose(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(50, 50))

	d := laplacianDispatcher(100.0, config.PassBlurry, config.Verbose)

	var out bytes.Buffer
	if err := d.RunFile(&out, whitePath); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"File: " + whitePath,
		"Dimensions: 50x50",
		"Overall blurry: true",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected verbose output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestRunFile_MissingImage(t *testing.T) {
	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	err := d.RunFile(&out, filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected a decode error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output on failure, got %q", out.Bytes())
	}
}

func TestRunImage_Synthetic(t *testing.T) {
	d := laplacianDispatcher(0.1, config.PassBlurry, config.Terse)

	var out bytes.Buffer
	if err := d.RunImage(&out, "checkerboard", loader.Checkerboard(64, 64)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.String() != "checkerboard\tfalse\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestClassifyFile_Provenance(t *testing.T) {
	dir := t.TempDir()
	whitePath := writePNG(t, dir, "white.png", loader.SolidWhite(32, 32))

	suite := metric.NewSuiteWithMetrics(metric.NewLaplacianVariance(100.0))
	result, err := ClassifyFile(whitePath, suite)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.ByteSize == nil || *result.ByteSize <= 0 {
		t.Error("Expected a positive byte size")
	}
	if result.Width != 32 || result.Height != 32 {
		t.Errorf("Expected 32x32 provenance, got %dx%d", result.Width, result.Height)
	}
	if result.FocalLength != "" {
		t.Errorf("Expected no focal length for a PNG, got %q", result.FocalLength)
	}
}
