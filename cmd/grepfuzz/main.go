package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/microuser/grepfuzz/internal/config"
	"github.com/microuser/grepfuzz/internal/dispatch"
	"github.com/microuser/grepfuzz/internal/loader"
	"github.com/microuser/grepfuzz/internal/logger"
	"github.com/microuser/grepfuzz/internal/metric"
	"github.com/microuser/grepfuzz/internal/output"
)

const syntheticSize = 256

func main() {
	var (
		file            = flag.String("file", "", "input image file to analyze")
		checkerboard    = flag.Bool("synthetic-checkerboard", false, "generate and analyze a synthetic checkerboard image")
		white           = flag.Bool("synthetic-white", false, "generate and analyze a synthetic solid white image")
		stdinBytes      = flag.Bool("stdin-bytes", false, "classify a single image read from stdin as bytes")
		passthrough     = flag.Bool("passthrough", false, "re-emit NUL-delimited stdin records to stdout unchanged")
		verbose         = flag.Bool("verbose", false, "verbose human-readable output")
		ascii           = flag.Bool("ascii", false, "tab-separated output with per-detector detail")
		sharp           = flag.Bool("sharp", false, "pass records classified as sharp")
		blur            = flag.Bool("blur", false, "pass records classified as blurry (default)")
		laplacianThresh = flag.Float64("threshold", 0, "Laplacian variance blur threshold")
		tenengradThresh = flag.Float64("tenengrad-threshold", 0, "Tenengrad (Sobel) sharpness threshold")
		opencvThresh    = flag.Float64("opencv-laplacian-threshold", 0, "OpenCV Laplacian blur threshold")
		configPath      = flag.String("config", "", "YAML config file path")
	)
	flag.Parse()

	if *blur && *sharp {
		logger.Error("-blur and -sharp are mutually exclusive")
		os.Exit(2)
	}
	if moreThanOne(*file != "", *checkerboard, *white, *stdinBytes, *passthrough) {
		logger.Error("-file, -synthetic-checkerboard, -synthetic-white, -stdin-bytes and -passthrough are mutually exclusive")
		os.Exit(2)
	}

	thresholds, err := config.LoadThresholds(*configPath)
	if err != nil {
		// A broken config file degrades to the defaults with a warning
		// instead of aborting the run.
		logger.WithError(err).Warn("failed to load config, using defaults")
		thresholds = config.DefaultThresholds()
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			thresholds.Laplacian = *laplacianThresh
		case "tenengrad-threshold":
			thresholds.Tenengrad = *tenengradThresh
		case "opencv-laplacian-threshold":
			thresholds.OpenCVLaplacian = *opencvThresh
		}
	})

	if err := thresholds.Validate(); err != nil {
		logger.WithError(err).Error("invalid configuration")
		os.Exit(2)
	}

	mode := config.PassBlurry
	if *sharp {
		mode = config.PassSharp
	}

	style := config.Terse
	if *verbose {
		style = config.Verbose
	}
	if *ascii {
		style = config.ASCII
	}

	suite := metric.NewSuite(thresholds)
	d := dispatch.New(suite, mode, output.New(style))
	stdout := os.Stdout

	switch {
	case *passthrough:
		if err := dispatch.Passthrough(os.Stdin, stdout); err != nil {
			logger.WithError(err).Error("passthrough failed")
			os.Exit(1)
		}

	case *checkerboard:
		img := loader.Checkerboard(syntheticSize, syntheticSize)
		if err := d.RunImage(stdout, "checkerboard", img); err != nil {
			logger.WithError(err).Error("failed to analyze synthetic checkerboard")
			os.Exit(1)
		}

	case *white:
		img := loader.SolidWhite(syntheticSize, syntheticSize)
		if err := d.RunImage(stdout, "white", img); err != nil {
			logger.WithError(err).Error("failed to analyze synthetic white image")
			os.Exit(1)
		}

	case *stdinBytes:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.WithError(err).Error("cannot read stdin")
			os.Exit(1)
		}
		img, err := loader.DecodeBytes(data)
		if err != nil {
			logger.WithError(err).Error("cannot decode stdin image")
			os.Exit(1)
		}
		if err := d.RunImage(stdout, "stdin", img); err != nil {
			logger.WithError(err).Error("failed to analyze stdin image")
			os.Exit(1)
		}

	case *file != "":
		if err := d.RunFile(stdout, *file); err != nil {
			// A single unreadable image is a per-item failure, not a
			// process failure.
			logger.WithError(err).WithField("path", *file).Error("failed to process image")
		}

	default:
		if stdinIsTTY() {
			fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
			flag.PrintDefaults()
			return
		}
		stats, err := d.RunStream(os.Stdin, stdout)
		stats.LogSummary()
		if err != nil {
			logger.WithError(err).Error("stream processing failed")
			os.Exit(1)
		}
	}
}

func stdinIsTTY() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func moreThanOne(flags ...bool) bool {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n > 1
}
