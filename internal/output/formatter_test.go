package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/microuser/grepfuzz/internal/config"
	"github.com/microuser/grepfuzz/pkg/models"
)

func sampleResult() models.ClassificationResult {
	size := int64(2048)
	return models.ClassificationResult{
		OverallBlurry: true,
		Readings: []models.MetricReading{
			{Name: "Laplacian", Value: 0.05, Threshold: 0.1, IsBlurry: true},
			{Name: "Tenengrad", Value: 12.5, Threshold: 1000.0, IsBlurry: true},
		},
		ByteSize: &size,
		Width:    640,
		Height:   480,
	}
}

func TestFormatItem_Terse(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.Terse).FormatItem(&buf, "photo.jpg", sampleResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "photo.jpg\ttrue\n" {
		t.Errorf("Unexpected terse output: %q", buf.String())
	}
}

func TestFormatItem_Verbose(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.Verbose).FormatItem(&buf, "photo.jpg", sampleResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"File: photo.jpg",
		"Size: 2048 bytes",
		"Dimensions: 640x480",
		"Focal Length: N/A",
		"Laplacian: value = 0.050000, blurry = true (threshold: 0.100)",
		"Tenengrad: value = 12.500000, blurry = true (threshold: 1000.000)",
		"Overall blurry: true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected verbose output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatItem_ASCII(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.ASCII).FormatItem(&buf, "photo.jpg", sampleResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	line := strings.TrimSuffix(buf.String(), "\n")
	fields := strings.Split(line, "\t")
	// path, verdict, size, width, height, focal, metric tuples
	if len(fields) != 7 {
		t.Fatalf("Expected 7 tab-separated fields, got %d: %q", len(fields), line)
	}
	if fields[0] != "photo.jpg" || fields[1] != "true" || fields[2] != "2048" {
		t.Errorf("Unexpected leading fields: %v", fields[:3])
	}
	if fields[6] != "Laplacian:0.050000:BLURRY,Tenengrad:12.500000:BLURRY" {
		t.Errorf("Unexpected metric tuples: %q", fields[6])
	}
}

func TestFormatStreamRecord_TerseNUL(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.Terse).FormatStreamRecord(&buf, "a b/c.png", sampleResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), append([]byte("a b/c.png"), 0)) {
		t.Errorf("Expected raw path with trailing NUL, got %q", buf.Bytes())
	}
}

func TestFormatStreamRecord_ASCIIRows(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.ASCII).FormatStreamRecord(&buf, "photo.jpg", sampleResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected one row per metric, got %d rows", len(lines))
	}
	if lines[0] != "photo.jpg\t2048\t640\t480\tLaplacian\t0.050000\t0.100\tBLURRY" {
		t.Errorf("Unexpected first row: %q", lines[0])
	}
	if lines[1] != "photo.jpg\t2048\t640\t480\tTenengrad\t12.500000\t1000.000\tBLURRY" {
		t.Errorf("Unexpected second row: %q", lines[1])
	}
}

func TestFormatDoesNotMutateResult(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	for _, style := range []config.OutputStyle{config.Terse, config.Verbose, config.ASCII} {
		if err := New(style).FormatItem(&buf, "x.png", result); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if !result.OverallBlurry || len(result.Readings) != 2 || result.Readings[0].Value != 0.05 {
		t.Error("Formatter mutated the classification result")
	}
}
