package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"glitchpad/internal/headless"
	"glitchpad/internal/logger"
	"glitchpad/pkg/config"
	"glitchpad/pkg/editor"
	"glitchpad/pkg/effects"
	"glitchpad/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "settings.yaml", "Path to configuration file")
	headlessMode := flag.Bool("headless", false, "Render frames offscreen instead of opening a window")
	frames := flag.Int("frames", 60, "Number of frames to render in headless mode")
	out := flag.String("out", "frame.png", "Output PNG for headless mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)

	log := logger.NewLogger(cfg.Log.Level)
	if cfg.Log.File != "" {
		multi, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			log.Warnf("log file disabled: %v", err)
		} else {
			log = multi
		}
	}
	defer log.Close()

	if cfgErr != nil {
		if !config.IsNotFound(cfgErr) {
			log.Fatalf("Failed to load configuration: %v", cfgErr)
		}
		log.Warnf("%v", cfgErr)
	}
	log.Info("Starting GlitchPad...")

	ed, err := editor.New(cfg.Editor, log)
	if err != nil {
		log.Fatalf("Failed to initialize editor: %v", err)
	}
	defer ed.Close()

	if path := flag.Arg(0); path != "" {
		if err := ed.Open(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("Failed to open %s: %v", path, err)
			}
			// A new file: saving creates it.
			if err := ed.SaveAs(path); err != nil {
				log.Fatalf("Failed to create %s: %v", path, err)
			}
		}
	}

	if *headlessMode {
		runHeadless(cfg, ed, *frames, *out, log)
		return
	}

	app, err := engine.NewEngine(cfg, ed, log)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	log.Info("Engine initialized, starting main loop...")
	app.Run()
}

func runHeadless(cfg *config.Config, ed *editor.Editor, frames int, out string, log *logger.Logger) {
	size := image.Pt(cfg.Window.Width, cfg.Window.Height)
	comp := effects.New(cfg.Effects, cfg.Window.FrameRate, size, log)
	img, err := headless.Render(ed, comp, headless.Options{
		Frames:    frames,
		FrameRate: cfg.Window.FrameRate,
		Size:      size,
	}, log)
	if err != nil {
		log.Fatalf("Headless render failed: %v", err)
	}
	if err := headless.WritePNG(out, img); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("wrote %s", out)
}
