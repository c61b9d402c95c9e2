package effects

import (
	"bytes"
	"errors"
	"image"
	"math"
	"math/rand"
	"slices"
	"testing"

	"glitchpad/internal/logger"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(testConfig(), nil, rand.New(rand.NewSource(11)), logger.Discard())
}

func TestAddRemoveEffect(t *testing.T) {
	p := newTestPipeline(t)
	for _, name := range Registry() {
		if err := p.AddEffect(name); err != nil {
			t.Fatalf("AddEffect(%q): %v", name, err)
		}
		if !p.HasEffect(name) {
			t.Fatalf("HasEffect(%q) false after add", name)
		}
		p.RemoveEffect(name)
		if p.HasEffect(name) {
			t.Fatalf("HasEffect(%q) true after remove", name)
		}
	}
}

func TestAddEffectIsIdempotent(t *testing.T) {
	p := newTestPipeline(t)
	for i := 0; i < 3; i++ {
		if err := p.AddEffect("glitch"); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Active(); len(got) != 1 || got[0] != EffectGlitch {
		t.Fatalf("Active() = %v, want [glitch]", got)
	}
}

func TestAddUnknownEffect(t *testing.T) {
	p := newTestPipeline(t)
	_ = p.AddEffect("wave")

	err := p.AddEffect("sparkle")
	if !errors.Is(err, ErrInvalidEffect) {
		t.Fatalf("AddEffect(sparkle) error = %v, want ErrInvalidEffect", err)
	}
	if got := p.Active(); !slices.Equal(got, []Effect{EffectWave}) {
		t.Fatalf("active set changed to %v", got)
	}
	if p.HasEffect("sparkle") {
		t.Fatal("HasEffect reported an unknown name")
	}
	p.RemoveEffect("sparkle")
	if got := p.Active(); len(got) != 1 {
		t.Fatalf("RemoveEffect of unknown name changed the set to %v", got)
	}
	if err := p.Enable(Effect(99)); !errors.Is(err, ErrInvalidEffect) {
		t.Fatalf("Enable(99) error = %v", err)
	}
}

func TestActiveKeepsInsertionOrder(t *testing.T) {
	p := newTestPipeline(t)
	for _, name := range []string{"noise", "blur", "chromatic", "wave"} {
		_ = p.AddEffect(name)
	}
	p.RemoveEffect("blur")
	_ = p.AddEffect("blur")

	want := []Effect{EffectNoise, EffectChromatic, EffectWave, EffectBlur}
	if got := p.Active(); !slices.Equal(got, want) {
		t.Fatalf("Active() = %v, want %v", got, want)
	}
}

func TestApplyWithNothingActive(t *testing.T) {
	p := newTestPipeline(t)
	src := patternCanvas(20, 10)
	want := append([]byte(nil), src.Pix...)

	out, off := p.Apply(src)
	if off != (image.Point{}) {
		t.Errorf("offset = %v, want zero", off)
	}
	if !bytes.Equal(out.Pix, want) {
		t.Error("frame changed with no active effects")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	p := newTestPipeline(t)
	for _, name := range []string{"blur", "glitch", "scanlines", "wave", "noise", "chromatic", "gradient"} {
		_ = p.AddEffect(name)
	}
	src := patternCanvas(32, 24)
	want := append([]byte(nil), src.Pix...)
	for i := 0; i < 5; i++ {
		out, _ := p.Apply(src)
		if out.Bounds().Size() != src.Bounds().Size() {
			t.Fatalf("output size %v", out.Bounds().Size())
		}
	}
	if !bytes.Equal(src.Pix, want) {
		t.Fatal("Apply modified its input")
	}
}

func TestApplyOrderMatters(t *testing.T) {
	src := patternCanvas(24, 12)

	a := newTestPipeline(t)
	_ = a.AddEffect("chromatic")
	_ = a.AddEffect("scanlines")
	outA, _ := a.Apply(src)

	b := newTestPipeline(t)
	_ = b.AddEffect("scanlines")
	_ = b.AddEffect("chromatic")
	outB, _ := b.Apply(src)

	want := Scanlines(ChromaticAberration(src, 5), 2, 40)
	if !bytes.Equal(outA.Pix, want.Pix) {
		t.Error("chromatic then scanlines not applied in insertion order")
	}
	want = ChromaticAberration(Scanlines(src, 2, 40), 5)
	if !bytes.Equal(outB.Pix, want.Pix) {
		t.Error("scanlines then chromatic not applied in insertion order")
	}
}

func TestAnimationCounters(t *testing.T) {
	p := newTestPipeline(t)
	src := NewCanvas(4, 4)
	for i := 0; i < 370; i++ {
		p.Apply(src)
	}
	if got := p.Rotation(); math.Abs(got-10) > 1e-6 {
		t.Errorf("rotation after 370 frames = %v, want 10", got)
	}
	if got := p.WavePhase(); got < 0 || got >= 2*math.Pi {
		t.Errorf("wave phase %v outside [0, 2pi)", got)
	}
}

func TestShakeDecaysAndDeactivates(t *testing.T) {
	p := newTestPipeline(t)
	if err := p.AddEffect("shake"); err != nil {
		t.Fatal(err)
	}
	src := NewCanvas(8, 8)

	prev := math.MaxInt
	for frame := 1; frame <= 60; frame++ {
		_, off := p.Apply(src)
		amp := p.ShakeAmplitude()
		if amp > prev {
			t.Fatalf("frame %d: amplitude grew from %d to %d", frame, prev, amp)
		}
		prev = amp
		if abs(off.X) > amp || abs(off.Y) > amp {
			t.Fatalf("frame %d: offset %v exceeds amplitude %d", frame, off, amp)
		}
		if frame == 1 && amp != 15 {
			t.Fatalf("first frame amplitude = %d, want 15", amp)
		}
		if frame == 59 && !p.HasEffect("shake") {
			t.Fatal("shake ended before its duration")
		}
	}
	if p.HasEffect("shake") {
		t.Fatal("shake still active after 60 frames")
	}
	if _, off := p.Apply(src); off != (image.Point{}) {
		t.Fatalf("offset %v after shake ended", off)
	}
}

func TestTriggerShakeRestartsEnvelope(t *testing.T) {
	p := newTestPipeline(t)
	p.TriggerShake()
	src := NewCanvas(8, 8)
	for i := 0; i < 30; i++ {
		p.Apply(src)
	}
	p.TriggerShake()
	p.Apply(src)
	if p.ShakeAmplitude() != 15 {
		t.Fatalf("amplitude after retrigger = %d, want 15", p.ShakeAmplitude())
	}
	if got := p.Active(); len(got) != 1 {
		t.Fatalf("TriggerShake duplicated the effect: %v", got)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
