package aitrainer

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/nfnt/resize"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/aitrainer/pose"
)

// LandmarkProvider runs a pose landmark model on one image.
type LandmarkProvider interface {
	Predict(img image.Image) (pose.DetectionResult, error)
	Destroy()
}

// valuesPerLandmark is x, y, z, visibility, presence.
const valuesPerLandmark = 5

var (
	ortMu          sync.Mutex
	ortInitialized bool
)

type ModelSession struct {
	Session   *ort.AdvancedSession
	Input     *ort.Tensor[float32]
	Landmarks *ort.Tensor[float32]
	Score     *ort.Tensor[float32]
}

func (m *ModelSession) Destroy() {
	m.Session.Destroy()
	m.Input.Destroy()
	m.Landmarks.Destroy()
	m.Score.Destroy()
}

// PoseModel is a BlazePose style landmark model run through onnxruntime.
// It takes a [1, size, size, 3] RGB image scaled to 0..1 and returns
// landmark coordinates in input pixels plus a pose presence score.
type PoseModel struct {
	ModelPath              string
	LibraryPath            string
	InputName              string
	LandmarksOutput        string
	ScoreOutput            string
	InputSize              int
	OutputLandmarks        int
	MinDetectionConfidence float32
	ModelSession           *ModelSession
}

func (p *PoseModel) Destroy() {
	if p.ModelSession != nil {
		p.ModelSession.Destroy()
		p.ModelSession = nil
	}
}

type PoseOptions func(*PoseModel) error

func WithModelPath(path string) PoseOptions {
	return func(p *PoseModel) error {
		if path == "" {
			return fmt.Errorf("model path is empty")
		}
		p.ModelPath = path
		return nil
	}
}

func WithLibraryPath(path string) PoseOptions {
	return func(p *PoseModel) error {
		p.LibraryPath = path
		return nil
	}
}

func WithTensorNames(input, landmarks, score string) PoseOptions {
	return func(p *PoseModel) error {
		p.InputName = input
		p.LandmarksOutput = landmarks
		p.ScoreOutput = score
		return nil
	}
}

func WithInputSize(size int) PoseOptions {
	return func(p *PoseModel) error {
		if size <= 0 {
			return fmt.Errorf("input size must be positive, got %d", size)
		}
		p.InputSize = size
		return nil
	}
}

func WithOutputLandmarks(n int) PoseOptions {
	return func(p *PoseModel) error {
		if n < pose.NumLandmarks {
			return fmt.Errorf("model must output at least %d landmarks, got %d", pose.NumLandmarks, n)
		}
		p.OutputLandmarks = n
		return nil
	}
}

func WithMinDetectionConfidence(c float64) PoseOptions {
	return func(p *PoseModel) error {
		p.MinDetectionConfidence = float32(c)
		return nil
	}
}

func defaultPoseModel() *PoseModel {
	return &PoseModel{
		ModelPath:              "./pose_landmark_full.onnx",
		LibraryPath:            "./onnxruntime-linux-x64-1.17.1/lib/libonnxruntime.so",
		InputName:              "input_1",
		LandmarksOutput:        "Identity",
		ScoreOutput:            "Identity_1",
		InputSize:              256,
		OutputLandmarks:        39,
		MinDetectionConfidence: 0.5,
	}
}

func NewPoseModel(opts ...PoseOptions) (*PoseModel, error) {
	model := defaultPoseModel()

	for _, opt := range opts {
		err := opt(model)
		if err != nil {
			return nil, err
		}
	}
	err := model.initSession()
	if err != nil {
		return nil, err
	}

	return model, nil
}

func initEnvironment(libraryPath string) error {
	ortMu.Lock()
	defer ortMu.Unlock()
	if ortInitialized {
		return nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("Error initializing ORT environment: %w", err)
	}
	ortInitialized = true
	return nil
}

func (p *PoseModel) initSession() error {
	err := initEnvironment(p.LibraryPath)
	if err != nil {
		return err
	}

	inputShape := ort.NewShape(1, int64(p.InputSize), int64(p.InputSize), 3)
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return fmt.Errorf("Error creating input tensor: %w", err)
	}
	landmarksShape := ort.NewShape(1, int64(p.OutputLandmarks*valuesPerLandmark))
	landmarksTensor, err := ort.NewEmptyTensor[float32](landmarksShape)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("Error creating landmarks tensor: %w", err)
	}
	scoreTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		inputTensor.Destroy()
		landmarksTensor.Destroy()
		return fmt.Errorf("Error creating score tensor: %w", err)
	}
	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		landmarksTensor.Destroy()
		scoreTensor.Destroy()
		return fmt.Errorf("Error creating ORT session options: %w", err)
	}
	defer options.Destroy()
	session, err := ort.NewAdvancedSession(p.ModelPath,
		[]string{p.InputName}, []string{p.LandmarksOutput, p.ScoreOutput},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{landmarksTensor, scoreTensor},
		options)

	if err != nil {
		inputTensor.Destroy()
		landmarksTensor.Destroy()
		scoreTensor.Destroy()
		return fmt.Errorf("Error creating ORT session for %s: %w", p.ModelPath, err)
	}

	p.ModelSession = &ModelSession{
		Session:   session,
		Input:     inputTensor,
		Landmarks: landmarksTensor,
		Score:     scoreTensor,
	}

	return nil
}

// fillInput writes img, resized to size x size, into data as interleaved
// RGB floats in 0..1.
func fillInput(data []float32, img image.Image, size int) error {
	need := size * size * 3
	if len(data) < need {
		return fmt.Errorf("Destination tensor only holds %d floats, needs "+
			"%d (make sure it's the right shape!)", len(data), need)
	}

	img = resize.Resize(uint(size), uint(size), img, resize.Bilinear)
	bounds := img.Bounds()
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data[i] = float32(r>>8) / 255.0
			data[i+1] = float32(g>>8) / 255.0
			data[i+2] = float32(b>>8) / 255.0
			i += 3
		}
	}
	return nil
}

func (p *PoseModel) Predict(img image.Image) (pose.DetectionResult, error) {
	if p.ModelSession == nil {
		return pose.DetectionResult{}, fmt.Errorf("pose model is not initialized")
	}
	err := fillInput(p.ModelSession.Input.GetData(), img, p.InputSize)
	if err != nil {
		return pose.DetectionResult{}, err
	}

	err = p.ModelSession.Session.Run()
	if err != nil {
		return pose.DetectionResult{}, fmt.Errorf("run pose model: %w", err)
	}

	return p.processOutput(p.ModelSession.Landmarks.GetData(), p.ModelSession.Score.GetData()[0]), nil
}

// processOutput turns raw tensors into normalized landmarks. Only the body
// landmarks are kept; the auxiliary ones some models append are dropped.
func (p *PoseModel) processOutput(output []float32, score float32) pose.DetectionResult {
	res := pose.DetectionResult{Score: float64(score)}
	if score < p.MinDetectionConfidence {
		return res
	}
	if len(output) < pose.NumLandmarks*valuesPerLandmark {
		return res
	}

	size := float64(p.InputSize)
	res.Landmarks = make([]pose.NormalizedLandmark, 0, pose.NumLandmarks)
	for id := 0; id < pose.NumLandmarks; id++ {
		v := output[id*valuesPerLandmark : (id+1)*valuesPerLandmark]
		res.Landmarks = append(res.Landmarks, pose.NormalizedLandmark{
			ID:         id,
			X:          float64(v[0]) / size,
			Y:          float64(v[1]) / size,
			Z:          float64(v[2]) / size,
			Visibility: sigmoid(float64(v[3])),
		})
	}
	return res
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
