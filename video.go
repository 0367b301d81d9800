package aitrainer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gocv.io/x/gocv"
)

var (
	ErrEmptyCaptureSource = errors.New("capture source is empty")
	ErrCaptureNotOpened   = errors.New("cannot open capture source")
)

// CaptureSource is a camera device index or a video file path.
type CaptureSource struct {
	Device   int
	Path     string
	IsDevice bool
}

// ParseCaptureSource treats an all-digit string as a device index and
// anything else as a file path.
func ParseCaptureSource(s string) (CaptureSource, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CaptureSource{}, ErrEmptyCaptureSource
	}
	if isDigits(s) {
		idx, err := strconv.Atoi(s)
		if err != nil {
			return CaptureSource{}, fmt.Errorf("device index %q: %w", s, err)
		}
		return CaptureSource{Device: idx, IsDevice: true}, nil
	}
	return CaptureSource{Path: s}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c CaptureSource) String() string {
	if c.IsDevice {
		return fmt.Sprintf("device %d", c.Device)
	}
	return c.Path
}

// OpenCapture opens the source for reading.
func OpenCapture(src CaptureSource) (*gocv.VideoCapture, error) {
	var device interface{} = src.Path
	if src.IsDevice {
		device = src.Device
	}
	video, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCaptureNotOpened, src, err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("%w %s", ErrCaptureNotOpened, src)
	}
	return video, nil
}

type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	TotalFrame int
}

// NewVideoInfo reads the stream properties of an open capture. Cameras
// often report no frame rate; 30 is assumed then.
func NewVideoInfo(video *gocv.VideoCapture) *VideoInfo {
	fps := video.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}
	return &VideoInfo{
		Width:      int(video.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(video.Get(gocv.VideoCaptureFrameHeight)),
		FPS:        fps,
		TotalFrame: int(video.Get(gocv.VideoCaptureFrameCount)),
	}
}

type VideoSink struct {
	VideoWriter *gocv.VideoWriter
	VideoInfo   *VideoInfo
	Codec       string
	TargetPath  string
}

func NewVideoSink(targetPath string, videoInfo *VideoInfo, codec string) (*VideoSink, error) {
	videoWriter, err := gocv.VideoWriterFile(targetPath, codec, videoInfo.FPS, videoInfo.Width, videoInfo.Height, true)
	if err != nil {
		return nil, fmt.Errorf("open video sink %s: %w", targetPath, err)
	}

	return &VideoSink{
		VideoWriter: videoWriter,
		VideoInfo:   videoInfo,
		Codec:       codec,
		TargetPath:  targetPath,
	}, nil
}

func (v *VideoSink) WriteFrame(frame gocv.Mat) error {
	return v.VideoWriter.Write(frame)
}

func (v *VideoSink) Destroy() error {
	return v.VideoWriter.Close()
}
