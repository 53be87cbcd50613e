package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/hough-overlay/internal/capture"
	"github.com/ironsheep/hough-overlay/internal/config"
	"github.com/ironsheep/hough-overlay/internal/detection"
	"github.com/ironsheep/hough-overlay/internal/monitoring"
	"github.com/ironsheep/hough-overlay/internal/pipeline"
	"github.com/ironsheep/hough-overlay/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("hough-overlay - live circle detection overlay")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hough-overlay run [flags]     Process frames from a directory, a still or a webcam")
	fmt.Println("  hough-overlay serve [flags]   Serve the pipeline as MCP tools over stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  HOUGH_OVERLAY_LOG_LEVEL=debug          Enable debug logging")
	fmt.Println("  HOUGH_OVERLAY_PERIOD=N                 Recompute circles every N frames")
	fmt.Println("  HOUGH_OVERLAY_BACKEND=hough|opencv     Detector backend")
	fmt.Println("  HOUGH_OVERLAY_EDGE_THRESHOLD=F         Canny high threshold")
	fmt.Println("  HOUGH_OVERLAY_CENTER_THRESHOLD=F       Accumulator threshold")
	fmt.Println("  HOUGH_OVERLAY_MIN_RADIUS=F             Smallest radius searched")
	fmt.Println("  HOUGH_OVERLAY_MAX_RADIUS=F             Largest radius searched (0 = image size)")
	fmt.Println()
	fmt.Printf("Detector backends in this build: %v\n", detection.Backends())
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("hough-overlay %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	monitoring.SetLogger(log.Printf)

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "serve":
		err = serveCommand(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// loadConfig layers the optional config file and the environment over the
// defaults.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		input      = fs.String("input", "", "Directory of frames or a single still image")
		output     = fs.String("output", "", "Directory for annotated PNG frames (omit to discard)")
		frames     = fs.Int("frames", 0, "Times to repeat a single still (0 = until interrupted)")
		loop       = fs.Bool("loop", false, "Restart a frame directory after the last file")
		webcam     = fs.Int("webcam", -1, "Capture from this webcam device instead of -input (gocv builds)")
		configPath = fs.String("config", "", "JSON config file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	var src capture.Source
	switch {
	case *webcam >= 0:
		src, err = capture.OpenWebcam(*webcam)
	case *input != "":
		src, err = capture.Open(*input, *frames, *loop)
	default:
		return fmt.Errorf("one of -input or -webcam is required")
	}
	if err != nil {
		return err
	}
	defer src.Close()

	var sink *capture.PNGSink
	if *output != "" {
		if sink, err = capture.NewPNGSink(*output); err != nil {
			return err
		}
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitoring.Debugf("hough-overlay %s: backend %s, recompute every %d frames", Version, cfg.Backend, cfg.RecomputePeriod)

	n, err := processFrames(ctx, src, p, sink)
	st := p.Stats()
	log.Printf("processed %d frames: %d recomputes, %d failures, %d circles cached", n, st.Recomputes, st.Failures, st.Circles)
	return err
}

func serveCommand(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	monitoring.Debugf("hough-overlay MCP server %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	srv, err := server.New(cfg, Version)
	if err != nil {
		return err
	}
	return srv.Run()
}
