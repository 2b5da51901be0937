// Package telemetry wires up the zerolog logger used throughout the engine
// and CLI surfaces, and renders a measured-branching-factor line from a
// completed search's statistics.
package telemetry

import (
	"fmt"
	"os"
	"strings"

	"github.com/nullmove/pvsearch/pvsearch/stats"
	"github.com/rs/zerolog"
)

// NewLogger returns a console-writer zerolog.Logger at the given level
// (any name zerolog.ParseLevel accepts, e.g. "debug", "info", "warn",
// "error"; a name it rejects falls back to "info"),
// the same console-pretty-printing style the teacher configures for local
// runs.
func NewLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

// BranchingFactorReport formats Statistics.MeasuredBranchingFactor for
// display, or a placeholder if too little was searched to measure it.
func BranchingFactorReport(s *stats.Statistics) string {
	bf := s.MeasuredBranchingFactor()
	if bf <= 0 {
		return "measured branching factor: n/a (fewer than two completed depths)"
	}
	return fmt.Sprintf("measured branching factor: %.3f", bf)
}
