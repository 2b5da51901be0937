package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepthTotalSumsLevels(t *testing.T) {
	s := New()
	s.PushDepth([]Level{
		{Visited: 10, Evaluated: 5},
		{Visited: 20, Evaluated: 8},
	})
	total := s.DepthTotal(0)
	assert.Equal(t, uint64(30), total.Visited)
	assert.Equal(t, uint64(13), total.Evaluated)
}

func TestCalculateDepthTotalsOnePerDepth(t *testing.T) {
	s := New()
	s.PushDepth([]Level{{Visited: 1}})
	s.PushDepth([]Level{{Visited: 2}, {Visited: 3}})
	totals := s.CalculateDepthTotals()
	assert.Len(t, totals, 2)
	assert.Equal(t, uint64(1), totals[0].Visited)
	assert.Equal(t, uint64(5), totals[1].Visited)
}

func TestCalculateTotalsGrandSum(t *testing.T) {
	s := New()
	s.PushDepth([]Level{{Visited: 1, Elapsed: time.Millisecond}})
	s.PushDepth([]Level{{Visited: 2, Elapsed: time.Millisecond}})
	grand := s.CalculateTotals()
	assert.Equal(t, uint64(3), grand.Visited)
	assert.Equal(t, 2*time.Millisecond, grand.Elapsed)
}

func TestMeasuredBranchingFactorNeedsTwoDepths(t *testing.T) {
	s := New()
	assert.Zero(t, s.MeasuredBranchingFactor())
	s.PushDepth([]Level{{Visited: 10}})
	assert.Zero(t, s.MeasuredBranchingFactor())
}

func TestMeasuredBranchingFactorConstantRatio(t *testing.T) {
	s := New()
	s.PushDepth([]Level{{Visited: 10}})
	s.PushDepth([]Level{{Visited: 30}})
	s.PushDepth([]Level{{Visited: 90}})
	bf := s.MeasuredBranchingFactor()
	assert.InDelta(t, 3.0, bf, 1e-9)
}

func TestStringContainsTotalsRowAndPerPlyBreakdown(t *testing.T) {
	s := New()
	s.PushDepth([]Level{{Visited: 5, Evaluated: 2}})
	s.PushDepth([]Level{{Visited: 7, Evaluated: 3}, {Visited: 4, Evaluated: 1}})
	out := s.String()
	assert.True(t, strings.Contains(out, "Totals:"))
	assert.True(t, strings.Contains(out, "Max Depth 1:"))
	assert.True(t, strings.Contains(out, "Max Depth 2:"))
	assert.True(t, strings.Contains(out, "Subtotal:"))
}
