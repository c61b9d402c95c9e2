package effects

import (
	"image"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"

	"glitchpad/internal/logger"
	"glitchpad/internal/util"
	"glitchpad/pkg/config"
)

// Per-channel phase offsets in radians.
var gradientChannelOffsets = [3]float64{0, 2, 4}

// gradientSet is an immutable, complete run of frames.
type gradientSet struct {
	generation uint64
	size       image.Point
	frames     []*image.NRGBA
}

// GradientCache precomputes a looping color wash on a background goroutine
// and hands finished frames to the render loop.
//
// Generate may be called from any goroutine. Ready, NextFrame and Overlay
// belong to the render loop.
type GradientCache struct {
	cfg        config.GradientConfig
	frameCount int
	log        *logger.Logger

	generation atomic.Uint64
	published  atomic.Pointer[gradientSet]

	seen         *gradientSet
	current      int
	delayCounter int
}

// NewGradientCache creates an empty cache. cfg.Frames must be positive.
func NewGradientCache(cfg config.GradientConfig, log *logger.Logger) *GradientCache {
	if cfg.Frames <= 0 {
		cfg.Frames = 60
	}
	return &GradientCache{
		cfg:        cfg,
		frameCount: cfg.Frames,
		log:        log.Named("gradient"),
	}
}

// FrameCount is the number of frames a complete cache holds.
func (gc *GradientCache) FrameCount() int {
	return gc.frameCount
}

// Generate starts computing a full run of frames for size. Any generation
// still in flight becomes stale: it stops early and never publishes. The
// returned channel is closed once this generation has published or been
// discarded. The previously published run stays readable meanwhile.
func (gc *GradientCache) Generate(size image.Point) <-chan struct{} {
	gen := gc.generation.Add(1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		start := time.Now()
		frames, ok := gc.render(gen, size)
		if !ok {
			gc.log.Debugf("generation %d superseded before completion", gen)
			return
		}
		if !gc.publish(&gradientSet{generation: gen, size: size, frames: frames}) {
			gc.log.Debugf("generation %d discarded, newer run already published", gen)
			return
		}
		gc.log.Infof("published %d frames at %dx%d in %s", len(frames), size.X, size.Y, time.Since(start).Round(time.Millisecond))
	}()
	return done
}

// render builds the frames locally, bailing out when a newer generation starts.
func (gc *GradientCache) render(gen uint64, size image.Point) ([]*image.NRGBA, bool) {
	w, h := max(size.X, 0), max(size.Y, 0)
	frames := make([]*image.NRGBA, 0, gc.frameCount)
	for i := 0; i < gc.frameCount; i++ {
		if gc.generation.Load() != gen {
			return nil, false
		}
		phase := 2 * math.Pi * float64(i) / float64(gc.frameCount)
		frames = append(frames, gc.renderFrame(w, h, phase))
	}
	return frames, true
}

func (gc *GradientCache) renderFrame(w, h int, phase float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fy := float64(y) / float64(h)
		off := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			ratio := (float64(x)/float64(w) + fy) / 2
			base := 2*math.Pi*ratio + phase
			for c, chOff := range gradientChannelOffsets {
				img.Pix[off+c] = uint8(util.Clamp(gc.cfg.Brightness+gc.cfg.Amplitude*math.Sin(base+chOff), 0, 255))
			}
			img.Pix[off+3] = gc.cfg.Alpha
			off += 4
		}
	}
	return img
}

// publish swaps in set unless a newer generation is already visible.
func (gc *GradientCache) publish(set *gradientSet) bool {
	for {
		old := gc.published.Load()
		if old != nil && old.generation > set.generation {
			return false
		}
		if gc.published.CompareAndSwap(old, set) {
			return true
		}
	}
}

// Ready reports whether a complete run of frames is available.
func (gc *GradientCache) Ready() bool {
	set := gc.published.Load()
	return set != nil && len(set.frames) == gc.frameCount
}

// NextFrame returns the current frame and advances the cyclic cursor once
// FrameDelay calls have passed. The cursor restarts when a new run is
// published. ok is false until the cache is ready.
func (gc *GradientCache) NextFrame() (frame *image.NRGBA, ok bool) {
	set := gc.published.Load()
	if set == nil || len(set.frames) != gc.frameCount {
		return nil, false
	}
	if set != gc.seen {
		gc.seen = set
		gc.current = 0
		gc.delayCounter = 0
	}

	frame = set.frames[gc.current]
	gc.delayCounter++
	if gc.delayCounter >= gc.cfg.FrameDelay {
		gc.current = (gc.current + 1) % len(set.frames)
		gc.delayCounter = 0
	}
	return frame, true
}

// Overlay returns a copy of dst with the next gradient frame added on top,
// resampled to dst's size when needed. Before the cache is ready it is a
// plain copy.
func (gc *GradientCache) Overlay(dst *image.RGBA) *image.RGBA {
	out := Clone(dst)
	frame, ok := gc.NextFrame()
	if !ok || out.Bounds().Empty() {
		return out
	}
	addBlend(out, scaleNRGBA(frame, out.Bounds().Size(), draw.ApproxBiLinear))
	return out
}
