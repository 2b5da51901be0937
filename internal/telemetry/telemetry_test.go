package telemetry

import (
	"testing"

	"github.com/nullmove/pvsearch/pvsearch/stats"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	logger := NewLogger("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLoggerParsesKnownLevel(t *testing.T) {
	logger := NewLogger("debug")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestBranchingFactorReportWithoutEnoughData(t *testing.T) {
	s := stats.New()
	assert.Contains(t, BranchingFactorReport(s), "n/a")
}

func TestBranchingFactorReportWithData(t *testing.T) {
	s := stats.New()
	s.PushDepth([]stats.Level{{Visited: 10}})
	s.PushDepth([]stats.Level{{Visited: 40}})
	assert.Contains(t, BranchingFactorReport(s), "4.000")
}
