package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingCapture(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"--headless"}, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "capture source is required")
}

func TestRun_UnopenableCapture(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"--capture", "/nonexistent/clip.mp4", "--headless"}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "cannot open capture source")
	assert.Contains(t, stderr.String(), "/nonexistent/clip.mp4")
}

func TestRun_UnknownJoint(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"--capture", "0", "--joint", "tail"}, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown joint")
}

func TestRun_BadFlag(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--frobnicate"}, &stderr))
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capture: /nonexistent/from-config.mp4\ndisplay:\n  show: false\n"), 0644))

	var stderr bytes.Buffer
	code := run([]string{"--config", path}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "from-config.mp4")

	code = run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, &stderr)
	assert.Equal(t, 1, code)
}
