package dispatch

import (
	"github.com/sirupsen/logrus"

	"github.com/microuser/grepfuzz/internal/logger"
)

// Stats counts per-record outcomes across one stream run.
type Stats struct {
	// Processed is the number of records successfully classified.
	Processed int
	// Passed is the number of records emitted after the filter gate.
	Passed int
	// Failed is the number of records whose image could not be decoded.
	Failed int
	// SkippedEncoding is the number of records dropped for invalid UTF-8.
	SkippedEncoding int
}

// LogSummary writes the end-of-run counters to the diagnostic log.
func (s Stats) LogSummary() {
	logger.WithFields(logrus.Fields{
		"processed":        s.Processed,
		"passed":           s.Passed,
		"failed":           s.Failed,
		"skipped_encoding": s.SkippedEncoding,
	}).Info("stream run complete")
}
