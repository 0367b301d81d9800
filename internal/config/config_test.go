package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitrainer/pose"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "left_elbow", cfg.Joint)
	assert.Equal(t, 256, cfg.Model.InputSize)
	assert.Equal(t, "q", cfg.Display.QuitKey)

	// capture has no default
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Capture = "0"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, pose.Joint{Name: "left_elbow", A: 11, B: 13, C: 15}, cfg.JointSpec())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown joint", func(c *Config) { c.Joint = "left_ear" }},
		{"no model", func(c *Config) { c.Model.Path = "" }},
		{"zero input size", func(c *Config) { c.Model.InputSize = 0 }},
		{"too few landmarks", func(c *Config) { c.Model.OutputLandmarks = 17 }},
		{"empty rep range", func(c *Config) { c.Reps.Closed = 90; c.Reps.Open = 90 }},
		{"long quit key", func(c *Config) { c.Display.QuitKey = "esc" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Capture = "video.mp4"
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.yaml")
	yml := `
capture: squat.mp4
joint: right_knee
model:
  path: models/pose.onnx
reps:
  closed: 70
  open: 170
display:
  show: false
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "squat.mp4", cfg.Capture)
	assert.Equal(t, "right_knee", cfg.Joint)
	assert.Equal(t, "models/pose.onnx", cfg.Model.Path)
	assert.Equal(t, Reps{Closed: 70, Open: 170}, cfg.Reps)
	assert.False(t, cfg.Display.Show)

	// untouched fields keep defaults
	assert.Equal(t, "input_1", cfg.Model.InputName)
	assert.Equal(t, "q", cfg.Display.QuitKey)
	assert.True(t, cfg.Display.Draw)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reps: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Capture = "1"
	cfg.Output.Path = "annotated.mp4"

	require.NoError(t, Write(cfg, path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
