// Package pose holds the body landmark vocabulary, the conversion from model
// output to pixel coordinates and the joint angle math.
package pose

// Body landmark ids following the BlazePose topology.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Connections are the landmark pairs joined when drawing a skeleton.
var Connections = [][2]int{
	{Nose, LeftEyeInner}, {LeftEyeInner, LeftEye}, {LeftEye, LeftEyeOuter}, {LeftEyeOuter, LeftEar},
	{Nose, RightEyeInner}, {RightEyeInner, RightEye}, {RightEye, RightEyeOuter}, {RightEyeOuter, RightEar},
	{MouthLeft, MouthRight},
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{LeftWrist, LeftPinky}, {LeftWrist, LeftIndex}, {LeftWrist, LeftThumb}, {LeftPinky, LeftIndex},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{RightWrist, RightPinky}, {RightWrist, RightIndex}, {RightWrist, RightThumb}, {RightPinky, RightIndex},
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip}, {LeftHip, RightHip},
	{LeftHip, LeftKnee}, {LeftKnee, LeftAnkle}, {LeftAnkle, LeftHeel}, {LeftHeel, LeftFootIndex}, {LeftAnkle, LeftFootIndex},
	{RightHip, RightKnee}, {RightKnee, RightAnkle}, {RightAnkle, RightHeel}, {RightHeel, RightFootIndex}, {RightAnkle, RightFootIndex},
}

// NormalizedLandmark is a landmark as reported by the model. X and Y are
// fractions of the frame width and height.
type NormalizedLandmark struct {
	ID         int
	X, Y, Z    float64
	Visibility float64
}

// DetectionResult is the output of one model run on one frame.
type DetectionResult struct {
	Landmarks []NormalizedLandmark
	// Score is the pose presence probability.
	Score float64
}

// Found reports whether the frame contained a pose.
func (r DetectionResult) Found() bool {
	return len(r.Landmarks) > 0
}

// Landmark is a landmark in pixel coordinates of a specific frame.
type Landmark struct {
	ID         int
	X, Y       int
	Visibility float64
}

// LandmarkSet holds the landmarks of one frame ordered by id.
type LandmarkSet []Landmark

// Empty reports whether no pose was found in the frame.
func (s LandmarkSet) Empty() bool {
	return len(s) == 0
}

// Lookup returns the landmark with the given id.
func (s LandmarkSet) Lookup(id int) (Landmark, bool) {
	if id < 0 {
		return Landmark{}, false
	}
	if id < len(s) && s[id].ID == id {
		return s[id], true
	}
	for _, lm := range s {
		if lm.ID == id {
			return lm, true
		}
	}
	return Landmark{}, false
}

// ExtractLandmarks converts normalized landmarks to pixel coordinates of a
// width x height frame. Coordinates are truncated toward zero, so (0.5, 0.5)
// maps to (width/2, height/2). The set is empty when no pose was found.
func ExtractLandmarks(res DetectionResult, width, height int) LandmarkSet {
	if !res.Found() {
		return LandmarkSet{}
	}
	set := make(LandmarkSet, 0, len(res.Landmarks))
	for _, lm := range res.Landmarks {
		set = append(set, Landmark{
			ID:         lm.ID,
			X:          int(lm.X * float64(width)),
			Y:          int(lm.Y * float64(height)),
			Visibility: lm.Visibility,
		})
	}
	return set
}
