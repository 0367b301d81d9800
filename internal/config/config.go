// Package config holds the settings for an aitrainer session.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aitrainer/pose"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full session configuration. Zero fields in a YAML file keep
// their defaults.
type Config struct {
	Capture  string  `yaml:"capture"`
	Joint    string  `yaml:"joint"`
	LogLevel string  `yaml:"log_level"`
	Model    Model   `yaml:"model"`
	Reps     Reps    `yaml:"reps"`
	Display  Display `yaml:"display"`
	Output   Output  `yaml:"output"`
}

// Model describes the ONNX landmark model.
type Model struct {
	Path        string `yaml:"path"`
	LibraryPath string `yaml:"library_path"`
	InputName   string `yaml:"input_name"`
	// LandmarksOutput is a [1, N*5] tensor of x, y, z, visibility, presence.
	LandmarksOutput string `yaml:"landmarks_output"`
	// ScoreOutput is a [1, 1] pose presence tensor.
	ScoreOutput            string  `yaml:"score_output"`
	InputSize              int     `yaml:"input_size"`
	OutputLandmarks        int     `yaml:"output_landmarks"`
	MinDetectionConfidence float64 `yaml:"min_detection_confidence"`
	MinVisibility          float64 `yaml:"min_visibility"`
}

// Reps is the angle range of one repetition.
type Reps struct {
	Closed float64 `yaml:"closed"`
	Open   float64 `yaml:"open"`
}

// Display controls the preview window and overlays.
type Display struct {
	Window  string `yaml:"window"`
	QuitKey string `yaml:"quit_key"`
	Show    bool   `yaml:"show"`
	Draw    bool   `yaml:"draw"`
}

// Output is the optional annotated video file.
type Output struct {
	Path  string `yaml:"path"`
	Codec string `yaml:"codec"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Joint:    "left_elbow",
		LogLevel: "info",
		Model: Model{
			Path:                   "./pose_landmark_full.onnx",
			LibraryPath:            "./onnxruntime-linux-x64-1.17.1/lib/libonnxruntime.so",
			InputName:              "input_1",
			LandmarksOutput:        "Identity",
			ScoreOutput:            "Identity_1",
			InputSize:              256,
			OutputLandmarks:        39,
			MinDetectionConfidence: 0.5,
			MinVisibility:          0.5,
		},
		Reps: Reps{
			Closed: 40,
			Open:   160,
		},
		Display: Display{
			Window:  "Poses",
			QuitKey: "q",
			Show:    true,
			Draw:    true,
		},
		Output: Output{
			Codec: "mp4v",
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg as YAML.
func Write(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings a session cannot run without.
func (c Config) Validate() error {
	if c.Capture == "" {
		return fmt.Errorf("%w: capture source is required", ErrInvalidConfig)
	}
	if _, ok := pose.LookupJoint(c.Joint); !ok {
		return fmt.Errorf("%w: unknown joint %q (known: %v)", ErrInvalidConfig, c.Joint, pose.JointNames())
	}
	if c.Model.Path == "" {
		return fmt.Errorf("%w: model path is required", ErrInvalidConfig)
	}
	if c.Model.InputSize <= 0 {
		return fmt.Errorf("%w: model input size must be positive", ErrInvalidConfig)
	}
	if c.Model.OutputLandmarks < pose.NumLandmarks {
		return fmt.Errorf("%w: model must output at least %d landmarks", ErrInvalidConfig, pose.NumLandmarks)
	}
	if c.Reps.Closed == c.Reps.Open {
		return fmt.Errorf("%w: rep range is empty", ErrInvalidConfig)
	}
	if len(c.Display.QuitKey) != 1 {
		return fmt.Errorf("%w: quit key must be a single character", ErrInvalidConfig)
	}
	return nil
}

// JointSpec returns the configured joint preset.
func (c Config) JointSpec() pose.Joint {
	j, _ := pose.LookupJoint(c.Joint)
	return j
}
