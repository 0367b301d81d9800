package aitrainer

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/aitrainer/pose"
)

// PoseDetector runs a LandmarkProvider on gocv frames. It keeps no per-frame
// state: the DetectionResult returned by Detect is what landmark extraction
// works from.
type PoseDetector struct {
	provider LandmarkProvider
}

func NewPoseDetector(provider LandmarkProvider) *PoseDetector {
	return &PoseDetector{provider: provider}
}

// Detect runs the model on a BGR frame.
func (d *PoseDetector) Detect(img gocv.Mat) (pose.DetectionResult, error) {
	if img.Empty() {
		return pose.DetectionResult{}, fmt.Errorf("empty frame")
	}
	rgba, err := img.ToImage()
	if err != nil {
		return pose.DetectionResult{}, fmt.Errorf("convert frame: %w", err)
	}
	return d.provider.Predict(rgba)
}

// FindPose detects a pose and, if draw is set and a pose was found, draws
// its skeleton onto img.
func (d *PoseDetector) FindPose(img *gocv.Mat, draw bool) (pose.DetectionResult, error) {
	res, err := d.Detect(*img)
	if err != nil {
		return res, err
	}
	if draw && res.Found() {
		DrawSkeleton(img, pose.ExtractLandmarks(res, img.Cols(), img.Rows()))
	}
	return res, nil
}

// FindPosition converts res to pixel coordinates of img, optionally
// marking every landmark.
func (d *PoseDetector) FindPosition(img *gocv.Mat, res pose.DetectionResult, draw bool) pose.LandmarkSet {
	set := pose.ExtractLandmarks(res, img.Cols(), img.Rows())
	if draw {
		DrawLandmarks(img, set)
	}
	return set
}

func (d *PoseDetector) Close() {
	d.provider.Destroy()
}
