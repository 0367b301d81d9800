package aitrainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/8ff/prettyTimer"
	"gocv.io/x/gocv"

	"github.com/aitrainer/internal/config"
	"github.com/aitrainer/internal/log"
	"github.com/aitrainer/pose"
	"github.com/aitrainer/trainer"
)

// FrameSource yields frames; *gocv.VideoCapture satisfies it.
type FrameSource interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Display shows frames and reports key presses; *gocv.Window satisfies it.
type Display interface {
	IMShow(img gocv.Mat)
	WaitKey(delay int) int
	Close() error
}

// FrameSink receives annotated frames; *VideoSink satisfies it.
type FrameSink interface {
	WriteFrame(frame gocv.Mat) error
	Destroy() error
}

// FrameResult is what one frame produced.
type FrameResult struct {
	Landmarks pose.LandmarkSet
	Angle     float64
	HasAngle  bool
	Progress  trainer.Progress
}

// Session owns everything a frame loop needs. Frames are processed one at a
// time on the calling goroutine.
type Session struct {
	source   FrameSource
	detector *PoseDetector
	display  Display
	sink     FrameSink

	joint         pose.Joint
	minVisibility float64
	draw          bool
	quitKey       int

	reps   *trainer.RepCounter
	stats  trainer.Stats
	timer  *prettyTimer.TimingStats
	frames int
}

// NewSession opens the capture source first so a bad source fails before
// the model is loaded.
func NewSession(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := ParseCaptureSource(cfg.Capture)
	if err != nil {
		return nil, err
	}
	video, err := OpenCapture(src)
	if err != nil {
		return nil, err
	}
	info := NewVideoInfo(video)
	log.Info("capture opened", "source", src.String(), "width", info.Width, "height", info.Height, "fps", info.FPS)

	model, err := NewPoseModel(
		WithModelPath(cfg.Model.Path),
		WithLibraryPath(cfg.Model.LibraryPath),
		WithTensorNames(cfg.Model.InputName, cfg.Model.LandmarksOutput, cfg.Model.ScoreOutput),
		WithInputSize(cfg.Model.InputSize),
		WithOutputLandmarks(cfg.Model.OutputLandmarks),
		WithMinDetectionConfidence(cfg.Model.MinDetectionConfidence),
	)
	if err != nil {
		video.Close()
		return nil, fmt.Errorf("load pose model: %w", err)
	}

	var sink FrameSink
	if cfg.Output.Path != "" {
		vs, err := NewVideoSink(cfg.Output.Path, info, cfg.Output.Codec)
		if err != nil {
			video.Close()
			model.Destroy()
			return nil, err
		}
		sink = vs
	}

	var display Display
	if cfg.Display.Show {
		display = gocv.NewWindow(cfg.Display.Window)
	}

	return newSession(video, NewPoseDetector(model), display, sink, cfg)
}

func newSession(source FrameSource, detector *PoseDetector, display Display, sink FrameSink, cfg config.Config) (*Session, error) {
	joint, ok := pose.LookupJoint(cfg.Joint)
	if !ok {
		return nil, fmt.Errorf("%w: unknown joint %q", config.ErrInvalidConfig, cfg.Joint)
	}
	reps, err := trainer.NewRepCounter(cfg.Reps.Closed, cfg.Reps.Open)
	if err != nil {
		return nil, err
	}
	quitKey := -1
	if cfg.Display.QuitKey != "" {
		quitKey = int(cfg.Display.QuitKey[0])
	}
	return &Session{
		source:        source,
		detector:      detector,
		display:       display,
		sink:          sink,
		joint:         joint,
		minVisibility: cfg.Model.MinVisibility,
		draw:          cfg.Display.Draw,
		quitKey:       quitKey,
		reps:          reps,
		timer:         prettyTimer.NewTimingStats(),
	}, nil
}

// Run processes frames until the stream ends, a frame cannot be read, the
// quit key is pressed or ctx is done. Only ctx cancellation and processing
// failures are returned as errors.
func (s *Session) Run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	var prev time.Time
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ok := s.source.Read(&frame); !ok {
			log.Info("finished processing video or failed to read frame", "frames", s.frames)
			return nil
		}
		if frame.Empty() {
			continue
		}

		s.timer.Start()
		res, err := s.ProcessFrame(&frame)
		s.timer.Finish()
		if err != nil {
			return fmt.Errorf("frame %d: %w", s.frames, err)
		}
		s.frames++
		if res.HasAngle {
			log.Debug("joint angle", "frame", s.frames, "joint", s.joint.Name, "angle", res.Angle, "reps", res.Progress.Reps)
		}

		now := time.Now()
		var fps float64
		if !prev.IsZero() {
			fps = 1 / now.Sub(prev).Seconds()
		}
		prev = now
		if s.draw {
			DrawFPS(&frame, fps)
		}

		if s.sink != nil {
			if err := s.sink.WriteFrame(frame); err != nil {
				return fmt.Errorf("write frame %d: %w", s.frames, err)
			}
		}

		if s.display != nil {
			s.display.IMShow(frame)
			if key := s.display.WaitKey(1); key >= 0 && key&0xFF == s.quitKey {
				log.Info("quit key pressed", "frames", s.frames)
				return nil
			}
		}
	}
}

// ProcessFrame detects the pose on frame, measures the joint and updates
// the rep counter. Frames without the joint's landmarks are counted as
// skipped and produce no angle.
func (s *Session) ProcessFrame(frame *gocv.Mat) (FrameResult, error) {
	det, err := s.detector.FindPose(frame, s.draw)
	if err != nil {
		return FrameResult{}, err
	}
	set := s.detector.FindPosition(frame, det, false)
	result := FrameResult{Landmarks: set, Progress: s.reps.Progress(0)}

	if set.Empty() {
		s.stats.Skip()
		return result, nil
	}
	if !s.joint.Visible(set, s.minVisibility) {
		log.Debug("joint not visible", "joint", s.joint.Name)
		s.stats.Skip()
		return result, nil
	}
	angle, err := s.joint.Angle(set)
	if errors.Is(err, pose.ErrLandmarkNotFound) {
		s.stats.Skip()
		return result, nil
	}
	if err != nil {
		return result, err
	}

	result.Angle = angle
	result.HasAngle = true
	result.Progress = s.reps.Update(angle)
	s.stats.Add(angle)

	if s.draw {
		DrawAngle(frame, set, s.joint, angle)
		DrawProgress(frame, result.Progress)
	}
	return result, nil
}

// Frames returns the number of frames processed.
func (s *Session) Frames() int {
	return s.frames
}

// Reps returns the completed repetitions.
func (s *Session) Reps() int {
	return s.reps.Reps()
}

// Summary returns the angle statistics of the session.
func (s *Session) Summary() trainer.Summary {
	return s.stats.Summary()
}

// PrintTimings prints per-frame processing times to stdout.
func (s *Session) PrintTimings() {
	if s.frames > 0 {
		s.timer.PrintStats()
	}
}

// Close releases the capture, model, sink and window.
func (s *Session) Close() error {
	var errs []error
	if s.source != nil {
		errs = append(errs, s.source.Close())
	}
	if s.detector != nil {
		s.detector.Close()
	}
	if s.sink != nil {
		errs = append(errs, s.sink.Destroy())
	}
	if s.display != nil {
		errs = append(errs, s.display.Close())
	}
	return errors.Join(errs...)
}
