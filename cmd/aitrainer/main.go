package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aitrainer"
	"github.com/aitrainer/internal/config"
	"github.com/aitrainer/internal/log"
	"github.com/aitrainer/pose"
)

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("aitrainer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	capture := fs.String("capture", "", "Video file path or camera index (0,1,2...)")
	configPath := fs.String("config", "", "YAML config file")
	model := fs.String("model", "", "Pose landmark ONNX model")
	library := fs.String("library", "", "onnxruntime shared library")
	joint := fs.String("joint", "", fmt.Sprintf("Joint to measure: %v", pose.JointNames()))
	output := fs.String("output", "", "Write the annotated video here")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	noDraw := fs.Bool("no-draw", false, "Do not draw overlays")
	headless := fs.Bool("headless", false, "Do not open a window")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capture":
			cfg.Capture = *capture
		case "model":
			cfg.Model.Path = *model
		case "library":
			cfg.Model.LibraryPath = *library
		case "joint":
			cfg.Joint = *joint
		case "output":
			cfg.Output.Path = *output
		case "log-level":
			cfg.LogLevel = *logLevel
		case "no-draw":
			cfg.Display.Draw = !*noDraw
		case "headless":
			cfg.Display.Show = !*headless
		}
	})

	log.InitWriter(stderr, cfg.LogLevel, os.Getenv("AITRAINER_LOG_FORMAT") == "json")

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	}

	session, err := aitrainer.NewSession(cfg)
	if err != nil {
		log.Error("cannot start session", "capture", cfg.Capture, "err", err)
		return 1
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("release resources", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = session.Run(ctx)
	session.PrintTimings()
	log.Info("session finished", "frames", session.Frames(), "reps", session.Reps(), "angles", session.Summary().String())
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("session failed", "err", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
