package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: "warn", Out: &buf})

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: "chatty", Out: &buf})

	l.Debugf("debug line")
	l.Infof("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.log")
	var console bytes.Buffer
	l := NewWithOptions(Options{File: path, Out: &console})

	l.Errorf("fetch failed: %s", "boom")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"level":"error"`)
	assert.Contains(t, line, `"message":"fetch failed: boom"`)
	assert.Contains(t, console.String(), "fetch failed: boom")
}
