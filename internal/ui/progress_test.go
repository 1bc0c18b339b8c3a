package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/driver"
)

func newModel(t *testing.T, files ...string) *progressModel {
	t.Helper()
	m, ok := NewProgressModel("check", files, make(chan driver.Event)).(*progressModel)
	require.True(t, ok)
	return m
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel(t, "a.php", "b.php")

	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageScan, Status: driver.StatusWorking})
	assert.Equal(t, "scanning", m.items[0].status)
	assert.False(t, m.items[0].final)

	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageScan, Status: driver.StatusDone, Diagnostics: 3})
	m.applyEvent(driver.Event{File: "b.php", Stage: driver.StageScan, Status: driver.StatusCached, Diagnostics: 1})
	assert.Equal(t, "done", m.items[0].status)
	assert.Equal(t, "cached", m.items[1].status)
	assert.Equal(t, 4, m.found)

	// a repeated final event does not double count
	m.applyEvent(driver.Event{File: "b.php", Stage: driver.StageScan, Status: driver.StatusCached, Diagnostics: 1})
	assert.Equal(t, 4, m.found)

	assert.Nil(t, m.applyEvent(driver.Event{File: "unknown.php", Status: driver.StatusDone}))
}

func TestViewListsRecentFilesForLargeRuns(t *testing.T) {
	files := make([]string, maxListed+5)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".php"
	}
	m := newModel(t, files...)
	for _, f := range files {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageScan, Status: driver.StatusDone})
	}
	assert.Len(t, m.visible(), maxListed)
	view := m.View()
	assert.Contains(t, view, files[len(files)-1])
	assert.NotContains(t, m.visible(), 0)
	assert.Contains(t, view, "check (17/17 files, 0 diagnostics)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "src/in...", truncate("src/integrations/x.php", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
