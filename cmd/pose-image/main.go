package main

import (
	"flag"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"github.com/aitrainer"
	"github.com/aitrainer/internal/config"
	"github.com/aitrainer/internal/log"
	"github.com/aitrainer/pose"
)

// pose-image runs the landmark model on a single picture, prints the
// landmarks and the joint angle, and optionally writes an annotated copy.
func main() {
	defaults := config.Default()
	input := flag.String("input", "", "Image to analyse")
	output := flag.String("output", "", "Write the annotated image here")
	model := flag.String("model", defaults.Model.Path, "Pose landmark ONNX model")
	library := flag.String("library", defaults.Model.LibraryPath, "onnxruntime shared library")
	jointName := flag.String("joint", defaults.Joint, fmt.Sprintf("Joint to measure: %v", pose.JointNames()))
	flag.Parse()

	log.Init("info")

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(2)
	}
	joint, ok := pose.LookupJoint(*jointName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown joint %q\n", *jointName)
		os.Exit(2)
	}

	img := gocv.IMRead(*input, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		log.Error("cannot read image", "path", *input)
		os.Exit(1)
	}

	m, err := aitrainer.NewPoseModel(
		aitrainer.WithModelPath(*model),
		aitrainer.WithLibraryPath(*library),
	)
	if err != nil {
		log.Error("load pose model", "err", err)
		os.Exit(1)
	}
	detector := aitrainer.NewPoseDetector(m)
	defer detector.Close()

	res, err := detector.FindPose(&img, *output != "")
	if err != nil {
		log.Error("detect pose", "err", err)
		os.Exit(1)
	}
	set := detector.FindPosition(&img, res, false)
	if set.Empty() {
		fmt.Printf("no pose found (score %.2f)\n", res.Score)
		return
	}

	for _, lm := range set {
		fmt.Printf("%2d: (%d, %d) visibility %.2f\n", lm.ID, lm.X, lm.Y, lm.Visibility)
	}

	angle, err := joint.Angle(set)
	if err != nil {
		fmt.Printf("%s: %v\n", joint.Name, err)
	} else {
		fmt.Printf("%s angle: %.2f°\n", joint.Name, angle)
		aitrainer.DrawAngle(&img, set, joint, angle)
	}

	if *output != "" {
		if ok := gocv.IMWrite(*output, img); !ok {
			log.Error("cannot write image", "path", *output)
			os.Exit(1)
		}
		log.Info("annotated image written", "path", *output)
	}
}
