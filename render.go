package aitrainer

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"golang.org/x/image/colornames"

	"github.com/aitrainer/pose"
	"github.com/aitrainer/trainer"
)

// DrawSkeleton draws the landmark connections and joints.
func DrawSkeleton(img *gocv.Mat, set pose.LandmarkSet) {
	for _, c := range pose.Connections {
		a, okA := set.Lookup(c[0])
		b, okB := set.Lookup(c[1])
		if !okA || !okB {
			continue
		}
		gocv.Line(img, image.Pt(a.X, a.Y), image.Pt(b.X, b.Y), colornames.White, 2)
	}
	for _, lm := range set {
		gocv.Circle(img, image.Pt(lm.X, lm.Y), 4, colornames.Red, -1)
	}
}

// DrawLandmarks marks every landmark with a filled circle.
func DrawLandmarks(img *gocv.Mat, set pose.LandmarkSet) {
	for _, lm := range set {
		gocv.Circle(img, image.Pt(lm.X, lm.Y), 10, colornames.Blue, -1)
	}
}

// DrawAngle highlights the three landmarks of a joint and writes the angle
// next to the vertex.
func DrawAngle(img *gocv.Mat, set pose.LandmarkSet, joint pose.Joint, angle float64) {
	var pts [3]image.Point
	for i, id := range [3]int{joint.A, joint.B, joint.C} {
		lm, ok := set.Lookup(id)
		if !ok {
			return
		}
		pts[i] = image.Pt(lm.X, lm.Y)
	}

	gocv.Line(img, pts[0], pts[1], colornames.Mediumblue, 3)
	gocv.Line(img, pts[1], pts[2], colornames.Mediumblue, 3)
	for _, p := range pts {
		gocv.Circle(img, p, 8, colornames.Limegreen, -1)
		gocv.Circle(img, p, 14, colornames.Limegreen, 2)
	}
	gocv.PutText(img, fmt.Sprintf("%d", int(angle)), image.Pt(pts[1].X+30, pts[1].Y),
		gocv.FontHersheyPlain, 2, colornames.Limegreen, 2)
}

// DrawFPS writes the frame rate in the top left corner.
func DrawFPS(img *gocv.Mat, fps float64) {
	gocv.PutText(img, fmt.Sprintf("FPS: %d", int(fps)), image.Pt(70, 50),
		gocv.FontHersheyPlain, 3, colornames.Crimson, 3)
}

// DrawProgress draws a vertical progress bar on the right edge and the rep
// count in the bottom left corner.
func DrawProgress(img *gocv.Mat, p trainer.Progress) {
	w, h := img.Cols(), img.Rows()
	if w < 120 || h < 200 {
		return
	}

	bar := image.Rect(w-85, 100, w-50, h-100)
	fill := bar
	fill.Min.Y = bar.Max.Y - int(float64(bar.Dy())*p.Percent/100)

	gocv.Rectangle(img, bar, colornames.Orange, 3)
	gocv.Rectangle(img, fill, colornames.Orange, -1)
	gocv.PutText(img, fmt.Sprintf("%d%%", int(p.Percent)), image.Pt(bar.Min.X-10, bar.Min.Y-25),
		gocv.FontHersheyPlain, 2, colornames.Orange, 2)
	gocv.PutText(img, fmt.Sprintf("%d", p.Reps), image.Pt(45, h-40),
		gocv.FontHersheyPlain, 8, colornames.Crimson, 10)
}
