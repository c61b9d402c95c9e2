package effects

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"slices"

	"glitchpad/internal/logger"
	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

// transform is one pixel stage of the pipeline.
type transform func(p *Pipeline, src *image.RGBA) *image.RGBA

// transforms dispatches active effects to their pixel stage. Rotate,
// particles and shake have no entry: rotate is applied per glyph by the
// text renderer, particles are drawn by the compositor and shake only
// moves the finished frame.
var transforms = [effectCount]transform{
	EffectBlur: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return Blur(src, p.cfg.Blur.Passes, p.cfg.Blur.Offset, p.cfg.Blur.Alpha)
	},
	EffectGradient: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		if p.gradient == nil {
			return src
		}
		return p.gradient.Overlay(src)
	},
	EffectGlitch: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return Glitch(src, p.rng, p.cfg.Glitch.Bands, p.cfg.Glitch.MaxBandHeight, p.cfg.Glitch.MaxShift)
	},
	EffectScanlines: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return Scanlines(src, p.cfg.Scanlines.Spacing, p.cfg.Scanlines.Alpha)
	},
	EffectWave: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return WaveDistortion(src, p.cfg.Wave.Amplitude, p.cfg.Wave.Frequency, p.wavePhase)
	},
	EffectNoise: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return p.noise.Apply(src)
	},
	EffectChromatic: func(p *Pipeline, src *image.RGBA) *image.RGBA {
		return ChromaticAberration(src, p.cfg.Chromatic.Shift)
	},
}

// Pipeline holds the ordered set of active effects and their per-frame
// state. It is driven from the render loop only.
type Pipeline struct {
	cfg      config.EffectsConfig
	log      *logger.Logger
	rng      *rand.Rand
	gradient *GradientCache
	noise    *NoiseOverlay

	active    []Effect
	shake     shakeState
	rotation  float64 // degrees
	wavePhase float64 // radians
}

// NewPipeline creates a pipeline with no active effects. gradient may be nil,
// in which case the gradient effect passes frames through.
func NewPipeline(cfg config.EffectsConfig, gradient *GradientCache, rng *rand.Rand, log *logger.Logger) *Pipeline {
	if cfg.Shake.DurationFrames <= 0 {
		cfg.Shake.DurationFrames = 60
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log.Named("pipeline"),
		rng:      rng,
		gradient: gradient,
		noise:    NewNoiseOverlay(cfg.Noise, rng),
	}
}

// AddEffect activates the named effect at the end of the application
// order. Adding an active effect is a no-op; unknown names return an error
// wrapping ErrInvalidEffect and change nothing.
func (p *Pipeline) AddEffect(name string) error {
	e, err := ParseEffect(name)
	if err != nil {
		return err
	}
	return p.Enable(e)
}

// RemoveEffect deactivates the named effect. Unknown or inactive names are
// ignored.
func (p *Pipeline) RemoveEffect(name string) {
	if e, err := ParseEffect(name); err == nil {
		p.Disable(e)
	}
}

// HasEffect reports whether the named effect is active.
func (p *Pipeline) HasEffect(name string) bool {
	e, err := ParseEffect(name)
	return err == nil && p.Enabled(e)
}

// Enable is AddEffect for an already parsed effect.
func (p *Pipeline) Enable(e Effect) error {
	if !e.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidEffect, e)
	}
	if p.Enabled(e) {
		return nil
	}
	p.resetState(e)
	p.active = append(p.active, e)
	p.log.Debugf("enabled %s, order %v", e, p.active)
	return nil
}

// Disable is RemoveEffect for an already parsed effect.
func (p *Pipeline) Disable(e Effect) {
	i := slices.Index(p.active, e)
	if i < 0 {
		return
	}
	p.active = slices.Delete(p.active, i, i+1)
	p.resetState(e)
	p.log.Debugf("disabled %s", e)
}

// Enabled reports whether e is active.
func (p *Pipeline) Enabled(e Effect) bool {
	return slices.Contains(p.active, e)
}

// Active returns the active effects in application order.
func (p *Pipeline) Active() []Effect {
	return slices.Clone(p.active)
}

func (p *Pipeline) resetState(e Effect) {
	switch e {
	case EffectShake:
		p.shake.reset()
	case EffectNoise:
		p.noise.Reset()
	}
}

// Rotation is the current per-glyph rotation angle in degrees, [0, 360).
func (p *Pipeline) Rotation() float64 {
	return p.rotation
}

// WavePhase is the current wave distortion phase in radians.
func (p *Pipeline) WavePhase() float64 {
	return p.wavePhase
}

// ShakeAmplitude is the envelope used for the most recent shake offset.
func (p *Pipeline) ShakeAmplitude() int {
	return p.shake.amplitude
}

// ResetShake restarts the shake envelope from its peak.
func (p *Pipeline) ResetShake() {
	p.shake.reset()
}

// TriggerShake activates shake from the top of its envelope.
func (p *Pipeline) TriggerShake() {
	if !p.Enabled(EffectShake) {
		p.active = append(p.active, EffectShake)
	}
	p.shake.reset()
}

// Apply advances the per-frame animation state and runs src through every
// active effect in order. It returns the transformed canvas and the display
// offset produced by shake. With nothing active, src is returned as is.
func (p *Pipeline) Apply(src *image.RGBA) (*image.RGBA, image.Point) {
	p.rotation = util.WrapFloat(p.rotation+p.cfg.Rotate.StepDegrees, 360)
	p.wavePhase = util.WrapFloat(p.wavePhase+p.cfg.Wave.PhaseStep, 2*math.Pi)

	out := src
	var offset image.Point
	// Shake may deactivate itself mid-walk.
	for _, e := range slices.Clone(p.active) {
		if e == EffectShake {
			d, done := p.shake.step(p.cfg.Shake, p.rng)
			offset = offset.Add(d)
			if done {
				p.Disable(EffectShake)
			}
			continue
		}
		if fn := transforms[e]; fn != nil {
			out = fn(p, out)
		}
	}
	return out, offset
}
