package effects

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"golang.org/x/image/draw"

	"glitchpad/internal/logger"
	"glitchpad/pkg/config"
)

// Frame is a finished canvas and the offset to present it at.
type Frame struct {
	Image  *image.RGBA
	Offset image.Point
}

// Surface is where finished frames end up.
type Surface interface {
	Present(img *image.RGBA, offset image.Point)
}

// Compositor runs the per-frame sequence: particles onto the text canvas,
// then the effect pipeline, then the display surface.
type Compositor struct {
	log       *logger.Logger
	pipeline  *Pipeline
	particles *ParticleSystem
	gradient  *GradientCache
	size      image.Point
	pending   <-chan struct{}
}

// NewCompositor wires already constructed parts together.
func NewCompositor(pipeline *Pipeline, particles *ParticleSystem, gradient *GradientCache, log *logger.Logger) *Compositor {
	return &Compositor{
		log:       log.Named("compositor"),
		pipeline:  pipeline,
		particles: particles,
		gradient:  gradient,
	}
}

// New builds the whole engine for a canvas of size, activates cfg.Active
// and starts the first gradient generation. Unknown names in cfg.Active are
// logged and skipped.
func New(cfg config.EffectsConfig, fps int, size image.Point, log *logger.Logger) *Compositor {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if cfg.Gradient.Frames <= 0 {
		cfg.Gradient.Frames = fps
	}
	gradient := NewGradientCache(cfg.Gradient, log)
	pipeline := NewPipeline(cfg, gradient, rng, log)
	particles := NewParticleSystem(cfg.Particles, fps, size, rng)

	c := NewCompositor(pipeline, particles, gradient, log)
	for _, name := range cfg.Active {
		if err := pipeline.AddEffect(name); err != nil {
			c.log.Warnf("skipping configured effect: %v", err)
		}
	}
	c.Resize(size)
	return c
}

// Pipeline exposes the effect toggles.
func (c *Compositor) Pipeline() *Pipeline {
	return c.pipeline
}

// Particles exposes the particle system.
func (c *Compositor) Particles() *ParticleSystem {
	return c.particles
}

// Gradient exposes the gradient cache.
func (c *Compositor) Gradient() *GradientCache {
	return c.gradient
}

// Resize adopts a new canvas size: particles spawn inside the new bounds
// and the gradient cache is regenerated, discarding any run in progress.
// The returned channel closes when the new gradient run is done.
func (c *Compositor) Resize(size image.Point) <-chan struct{} {
	if c.pending != nil && size == c.size {
		return c.pending
	}
	c.size = size
	c.log.Debugf("canvas resized to %dx%d", size.X, size.Y)
	if c.particles != nil {
		c.particles.SetBounds(size)
	}
	if c.gradient == nil {
		done := make(chan struct{})
		close(done)
		c.pending = done
		return done
	}
	c.pending = c.gradient.Generate(size)
	return c.pending
}

// Draw composites one frame. canvas is the rendered text (background
// already underneath) and is drawn on by the particle system when
// particles are active. nowMs drives the particle spawn clock.
func (c *Compositor) Draw(canvas *image.RGBA, nowMs int64) Frame {
	if c.particles != nil && c.pipeline.Enabled(EffectParticles) {
		c.particles.SpawnTick(nowMs)
		c.particles.AdvanceAndRender(canvas)
	}
	img, offset := c.pipeline.Apply(canvas)
	return Frame{Image: img, Offset: offset}
}

// Present hands a frame to the display surface.
func (c *Compositor) Present(s Surface, f Frame) {
	s.Present(f.Image, f.Offset)
}

// ImageSurface is an in-memory display. Each Present clears it to
// Background and copies the frame at its offset.
type ImageSurface struct {
	Image      *image.RGBA
	Background color.RGBA
}

// NewImageSurface allocates a surface of the given size.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		Image:      NewCanvas(width, height),
		Background: color.RGBA{0, 0, 0, 255},
	}
}

// Present implements Surface.
func (s *ImageSurface) Present(img *image.RGBA, offset image.Point) {
	Fill(s.Image, s.Background)
	if img == nil {
		return
	}
	r := img.Bounds().Sub(img.Bounds().Min).Add(offset)
	draw.Draw(s.Image, r, img, img.Bounds().Min, draw.Src)
}
