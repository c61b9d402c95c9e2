package effects

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

var (
	particleColor = color.RGBA{255, 255, 255, 255}
	glowColor     = color.NRGBA{20, 20, 60, 0}
)

// Particle is a single glowing mote. Size is in pixels, Lifespan in
// seconds of nominal frame time.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Lifespan float64
}

// Alive reports whether the particle survives the next reap.
func (p Particle) Alive() bool {
	return p.Size > 0 && p.Lifespan > 0
}

// ParticleSystem spawns particles on a fixed wall-clock interval and
// advances them once per rendered frame.
type ParticleSystem struct {
	cfg       config.ParticleConfig
	decay     float64 // lifespan lost per frame
	bounds    image.Point
	rng       *rand.Rand
	particles []Particle
	lastSpawn int64
}

// NewParticleSystem creates an empty emitter for a canvas of size bounds.
// fps fixes the per-frame lifespan decay at 1/(2*fps).
func NewParticleSystem(cfg config.ParticleConfig, fps int, bounds image.Point, rng *rand.Rand) *ParticleSystem {
	if fps <= 0 {
		fps = 60
	}
	return &ParticleSystem{
		cfg:    cfg,
		decay:  1 / float64(fps*2),
		bounds: bounds,
		rng:    rng,
	}
}

// SpawnTick creates at most one particle if SpawnIntervalMs has passed
// since the previous spawn.
func (ps *ParticleSystem) SpawnTick(nowMs int64) bool {
	if nowMs-ps.lastSpawn < int64(ps.cfg.SpawnIntervalMs) {
		return false
	}
	ps.particles = append(ps.particles, ps.newParticle())
	ps.lastSpawn = nowMs
	return true
}

func (ps *ParticleSystem) newParticle() Particle {
	mx := math.Min(ps.cfg.Margin, float64(ps.bounds.X)/2)
	my := math.Min(ps.cfg.Margin, float64(ps.bounds.Y)/2)
	return Particle{
		X:        util.RandomFloat(ps.rng, mx, math.Max(mx, float64(ps.bounds.X)-mx)),
		Y:        util.RandomFloat(ps.rng, my, math.Max(my, float64(ps.bounds.Y)-my)),
		VX:       util.RandomFloat(ps.rng, -1.0, 1.0),
		VY:       util.RandomFloat(ps.rng, -1.0, -0.5),
		Size:     float64(util.RandomInt(ps.rng, ps.cfg.MinSize, ps.cfg.MaxSize)),
		Lifespan: util.RandomFloat(ps.rng, ps.cfg.MinLifespan, ps.cfg.MaxLifespan),
	}
}

// AdvanceAndRender integrates every particle by one frame, draws the ones
// still visible onto canvas and drops the dead ones.
func (ps *ParticleSystem) AdvanceAndRender(canvas *image.RGBA) {
	glow := glowColor
	glow.A = ps.cfg.GlowAlpha

	live := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Size -= ps.cfg.SizeDecay
		p.VY += ps.cfg.Gravity
		p.Lifespan -= ps.decay

		if p.Size > 0 && canvas != nil {
			r := int(p.Size)
			cx, cy := int(p.X), int(p.Y)
			fillCircle(canvas, cx, cy, r, particleColor)
			addCircle(canvas, cx, cy, r*2, glow)
		}

		if p.Alive() {
			live = append(live, p)
		}
	}
	ps.particles = live
}

// Add inserts a particle directly, bypassing the spawn clock.
func (ps *ParticleSystem) Add(p Particle) {
	ps.particles = append(ps.particles, p)
}

// Particles returns a snapshot of the live particles.
func (ps *ParticleSystem) Particles() []Particle {
	return append([]Particle(nil), ps.particles...)
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// SetBounds changes the spawn area. Existing particles keep their positions.
func (ps *ParticleSystem) SetBounds(size image.Point) {
	ps.bounds = size
}

// Reset drops every particle and rearms the spawn clock.
func (ps *ParticleSystem) Reset() {
	ps.particles = ps.particles[:0]
	ps.lastSpawn = 0
}
