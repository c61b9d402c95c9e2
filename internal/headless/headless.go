// Package headless renders editor frames without a window, on a simulated
// frame clock.
package headless

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"glitchpad/internal/logger"
	"glitchpad/pkg/editor"
	"glitchpad/pkg/effects"
)

// Options control an offscreen run.
type Options struct {
	Frames    int
	FrameRate int
	Size      image.Point
}

// Render draws opts.Frames frames of ed through comp and returns the last
// presented surface. The gradient cache is awaited first so the output does
// not depend on goroutine timing.
func Render(ed *editor.Editor, comp *effects.Compositor, opts Options, log *logger.Logger) (*image.RGBA, error) {
	if opts.Frames <= 0 {
		return nil, errors.New("frame count must be positive")
	}
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil, fmt.Errorf("invalid canvas size %v", opts.Size)
	}
	fps := opts.FrameRate
	if fps <= 0 {
		fps = 60
	}

	<-comp.Resize(opts.Size)

	canvas := effects.NewCanvas(opts.Size.X, opts.Size.Y)
	surface := effects.NewImageSurface(opts.Size.X, opts.Size.Y)
	pipeline := comp.Pipeline()
	for i := 0; i < opts.Frames; i++ {
		if err := ed.Render(canvas, pipeline.Rotation(), pipeline.Enabled(effects.EffectRotate)); err != nil {
			return nil, err
		}
		nowMs := int64(i) * 1000 / int64(fps)
		comp.Present(surface, comp.Draw(canvas, nowMs))
	}
	log.Infof("rendered %d frames at %dx%d, effects %v", opts.Frames, opts.Size.X, opts.Size.Y, pipeline.Active())
	return surface.Image, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return f.Close()
}
