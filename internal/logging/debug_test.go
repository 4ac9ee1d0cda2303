package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("PL_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("PL_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestHelpers_NoLogger(t *testing.T) {
	SetLogger(nil)

	assert.NotPanics(t, func() {
		Debug("dropped")
		Info("dropped")
		Warn("dropped")
		Error("dropped")
	})
}

func TestHelpers_WriteKeyVals(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { SetLogger(nil) })

	Info("submitted practice logs", "count", 2)
	Debug("created", "id", "abc")

	out := buf.String()
	assert.Contains(t, out, "submitted practice logs")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "id=abc")
}

func TestInit_WritesLogFile(t *testing.T) {
	t.Setenv("PL_DEBUG", "")
	dir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, Init(Config{Dir: dir}))
	t.Cleanup(func() { SetLogger(nil) })

	Debug("below the warn threshold")
	Warn("history unavailable", "cause", "timeout")

	data, err := os.ReadFile(filepath.Join(dir, "pl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "history unavailable")
	assert.NotContains(t, string(data), "below the warn threshold")
}
