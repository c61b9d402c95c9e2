package effects

import (
	"image"
	"math/rand"

	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

// shakeState is a linear decay envelope counted in frames.
type shakeState struct {
	timer     int
	amplitude int
}

// step returns this frame's display offset and whether the envelope ran out.
func (s *shakeState) step(cfg config.ShakeConfig, rng *rand.Rand) (image.Point, bool) {
	s.amplitude = int(float64(cfg.Amplitude) * (1 - float64(s.timer)/float64(cfg.DurationFrames)))
	if s.amplitude < 0 {
		s.amplitude = 0
	}
	off := image.Pt(
		util.RandomInt(rng, -s.amplitude, s.amplitude),
		util.RandomInt(rng, -s.amplitude, s.amplitude),
	)
	s.timer++
	return off, s.timer >= cfg.DurationFrames
}

func (s *shakeState) reset() {
	s.timer = 0
	s.amplitude = 0
}
