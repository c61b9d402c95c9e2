package effects

import (
	"image"
	"math/rand"

	"golang.org/x/image/draw"

	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

// NoiseOverlay adds film grain from a small random tile that is only
// regenerated every UpdateEvery frames.
type NoiseOverlay struct {
	cfg    config.NoiseConfig
	rng    *rand.Rand
	tile   *image.NRGBA
	frames int
}

// NewNoiseOverlay builds the overlay with its first tile already filled.
func NewNoiseOverlay(cfg config.NoiseConfig, rng *rand.Rand) *NoiseOverlay {
	if cfg.TileSize <= 0 {
		cfg.TileSize = 128
	}
	if cfg.UpdateEvery <= 0 {
		cfg.UpdateEvery = 1
	}
	cfg.Intensity = util.ClampInt(cfg.Intensity, 1, 256)
	n := &NoiseOverlay{
		cfg:  cfg,
		rng:  rng,
		tile: image.NewNRGBA(image.Rect(0, 0, cfg.TileSize, cfg.TileSize)),
	}
	n.regenerate()
	return n
}

func (n *NoiseOverlay) regenerate() {
	pix := n.tile.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = uint8(n.rng.Intn(n.cfg.Intensity))
		pix[i+1] = uint8(n.rng.Intn(n.cfg.Intensity))
		pix[i+2] = uint8(n.rng.Intn(n.cfg.Intensity))
		pix[i+3] = n.cfg.Alpha
	}
}

// Apply returns a copy of src with the scaled tile added on top.
func (n *NoiseOverlay) Apply(src *image.RGBA) *image.RGBA {
	if n.frames%n.cfg.UpdateEvery == 0 {
		n.regenerate()
	}
	n.frames++

	out := Clone(src)
	if out.Bounds().Empty() {
		return out
	}
	addBlend(out, scaleNRGBA(n.tile, out.Bounds().Size(), draw.ApproxBiLinear))
	return out
}

// Tile exposes the current grain tile.
func (n *NoiseOverlay) Tile() *image.NRGBA {
	return n.tile
}

// Reset restarts the regeneration counter.
func (n *NoiseOverlay) Reset() {
	n.frames = 0
}
