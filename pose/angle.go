package pose

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrLandmarkNotFound is returned when a joint needs a landmark the frame
// does not have.
var ErrLandmarkNotFound = errors.New("landmark not found")

// Joint names three landmarks; B is the vertex the angle is measured at.
type Joint struct {
	Name    string
	A, B, C int
}

// Joints are the presets selectable by name.
var Joints = map[string]Joint{
	"left_elbow":     {Name: "left_elbow", A: LeftShoulder, B: LeftElbow, C: LeftWrist},
	"right_elbow":    {Name: "right_elbow", A: RightShoulder, B: RightElbow, C: RightWrist},
	"left_shoulder":  {Name: "left_shoulder", A: LeftHip, B: LeftShoulder, C: LeftElbow},
	"right_shoulder": {Name: "right_shoulder", A: RightHip, B: RightShoulder, C: RightElbow},
	"left_hip":       {Name: "left_hip", A: LeftShoulder, B: LeftHip, C: LeftKnee},
	"right_hip":      {Name: "right_hip", A: RightShoulder, B: RightHip, C: RightKnee},
	"left_knee":      {Name: "left_knee", A: LeftHip, B: LeftKnee, C: LeftAnkle},
	"right_knee":     {Name: "right_knee", A: RightHip, B: RightKnee, C: RightAnkle},
}

// JointNames returns the preset names in sorted order.
func JointNames() []string {
	names := make([]string, 0, len(Joints))
	for name := range Joints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupJoint returns the preset with the given name.
func LookupJoint(name string) (Joint, bool) {
	j, ok := Joints[name]
	return j, ok
}

// Angle returns the interior angle in degrees at landmark b formed with
// landmarks a and c.
func Angle(set LandmarkSet, a, b, c int) (float64, error) {
	pts := make([]image.Point, 0, 3)
	for _, id := range [3]int{a, b, c} {
		lm, ok := set.Lookup(id)
		if !ok {
			return 0, fmt.Errorf("landmark %d: %w", id, ErrLandmarkNotFound)
		}
		pts = append(pts, image.Pt(lm.X, lm.Y))
	}
	return JointAngle(pts[0], pts[1], pts[2]), nil
}

// Angle returns the angle of the joint in the given set.
func (j Joint) Angle(set LandmarkSet) (float64, error) {
	return Angle(set, j.A, j.B, j.C)
}

// Visible reports whether all three landmarks of the joint are present with
// at least minVisibility.
func (j Joint) Visible(set LandmarkSet, minVisibility float64) bool {
	for _, id := range [3]int{j.A, j.B, j.C} {
		lm, ok := set.Lookup(id)
		if !ok || lm.Visibility < minVisibility {
			return false
		}
	}
	return true
}

// JointAngle returns the unsigned angle at vertex b in [0, 180] degrees,
// independent of winding direction. If b coincides with a or c the result
// is undefined.
func JointAngle(a, b, c image.Point) float64 {
	vb := r2.Vec{X: float64(b.X), Y: float64(b.Y)}
	ba := r2.Sub(r2.Vec{X: float64(a.X), Y: float64(a.Y)}, vb)
	bc := r2.Sub(r2.Vec{X: float64(c.X), Y: float64(c.Y)}, vb)

	radians := math.Atan2(bc.Y, bc.X) - math.Atan2(ba.Y, ba.X)
	angle := math.Abs(radians * 180.0 / math.Pi)
	if angle > 180.0 {
		angle = 360.0 - angle
	}
	return angle
}
