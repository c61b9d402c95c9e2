// Package sfx synthesizes the editor's sound cues and mixes them into an
// interleaved float32 output buffer.
package sfx

import (
	"math"
	"math/rand"

	"glitchpad/internal/util"
)

// SampleRate is the output rate every generated cue is rendered at.
const SampleRate = 44100

// Generator renders procedural cues at a fixed sample rate.
type Generator struct {
	sampleRate int
	rng        *rand.Rand
}

// NewGenerator creates a generator with its own random source.
func NewGenerator(sampleRate int, seed int64) *Generator {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	return &Generator{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Explosion renders a short blast: a noise burst over a falling low rumble,
// both under an exponential decay, with a few crackles in the tail.
func (g *Generator) Explosion(durationSeconds float64) []float32 {
	n := int(durationSeconds * float64(g.sampleRate))
	if n <= 0 {
		return nil
	}
	samples := make([]float32, n)

	// One-pole low-pass keeps the burst dull, like a distant boom.
	var lp float64
	phase := 0.0
	for i := range samples {
		t := float64(i) / float64(g.sampleRate)
		progress := float64(i) / float64(n)
		env := math.Exp(-5 * progress)

		noise := util.RandomFloat(g.rng, -1, 1)
		cutoff := 0.35 * (1 - 0.8*progress)
		lp += cutoff * (noise - lp)

		freq := util.Lerp(90, 35, progress)
		phase += 2 * math.Pi * freq / float64(g.sampleRate)
		rumble := math.Sin(phase) * math.Exp(-3*t)

		samples[i] = float32((0.8*lp + 0.6*rumble) * env)
	}

	// Crackles: short noise bursts in the second half.
	crackles := 4 + g.rng.Intn(6)
	burst := int(0.004 * float64(g.sampleRate))
	for c := 0; c < crackles; c++ {
		start := n/2 + g.rng.Intn(max(1, n/2-burst))
		amp := util.RandomFloat(g.rng, 0.1, 0.3)
		for i := start; i < min(n, start+burst); i++ {
			fade := 1 - float64(i-start)/float64(burst)
			samples[i] += float32(util.RandomFloat(g.rng, -amp, amp) * fade)
		}
	}

	fadeEdges(samples, int(0.005*float64(g.sampleRate)))
	Normalize(samples)
	return samples
}

// fadeEdges ramps the first and last fade samples to avoid clicks.
func fadeEdges(samples []float32, fade int) {
	fade = min(fade, len(samples)/2)
	for i := 0; i < fade; i++ {
		f := float32(i) / float32(fade)
		samples[i] *= f
		samples[len(samples)-1-i] *= f
	}
}

// Normalize scales samples into [-1, 1] and boosts very quiet cues.
func Normalize(samples []float32) {
	var peak float32
	for _, s := range samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}

	var gain float32 = 1
	switch {
	case peak > 1:
		gain = 1 / peak
	case peak < 0.1:
		gain = 0.7 / peak
	}
	if gain == 1 {
		return
	}
	for i := range samples {
		samples[i] *= gain
	}
}

// softKnee is where SoftClip starts bending the signal.
const softKnee = 0.8

// SoftClip passes values up to the knee unchanged and bends the rest with
// tanh so the result never leaves [-1, 1].
func SoftClip(x float32) float32 {
	a := math.Abs(float64(x))
	if a <= softKnee {
		return x
	}
	y := softKnee + (1-softKnee)*math.Tanh((a-softKnee)/(1-softKnee))
	return float32(math.Copysign(y, float64(x)))
}
