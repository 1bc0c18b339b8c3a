package observ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	assert.Equal(t, Report{}, timer.Report())

	scan := timer.Begin("scan")
	time.Sleep(time.Millisecond)
	timer.End(scan, "3 files")
	timer.End(42, "ignored")

	rep := timer.Report()
	require.Len(t, rep.Phases, 1)
	assert.Equal(t, "scan", rep.Phases[0].Name)
	assert.Equal(t, "3 files", rep.Phases[0].Note)
	assert.Greater(t, rep.Phases[0].DurationMS, 0.0)
	assert.InDelta(t, rep.Phases[0].DurationMS, rep.TotalMS, 1e-9)

	summary := rep.Summary()
	assert.Contains(t, summary, "timings:\n  scan")
	assert.Contains(t, summary, "(3 files)")
	assert.Contains(t, summary, "  total")
}
