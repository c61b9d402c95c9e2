package effects

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"glitchpad/internal/logger"
)

func TestCompositorIdentityWithoutEffects(t *testing.T) {
	c := New(testConfig(), 60, image.Pt(32, 16), logger.Discard())
	waitDone(t, c.Resize(image.Pt(32, 16)))

	canvas := patternCanvas(32, 16)
	want := append([]byte(nil), canvas.Pix...)
	for now := int64(0); now < 500; now += 16 {
		f := c.Draw(canvas, now)
		if f.Offset != (image.Point{}) {
			t.Fatalf("offset %v with no effects", f.Offset)
		}
		if !bytes.Equal(f.Image.Pix, want) {
			t.Fatal("frame differs from the input canvas")
		}
	}
	if c.Particles().Len() != 0 {
		t.Fatal("particles spawned while inactive")
	}
}

func TestCompositorActivatesConfiguredEffects(t *testing.T) {
	cfg := testConfig()
	cfg.Active = []string{"wave", "bogus", "particles"}
	c := New(cfg, 60, image.Pt(64, 64), logger.Discard())

	got := c.Pipeline().Active()
	if len(got) != 2 || got[0] != EffectWave || got[1] != EffectParticles {
		t.Fatalf("Active() = %v, want [wave particles]", got)
	}
}

func TestCompositorDrawsParticles(t *testing.T) {
	c := New(testConfig(), 60, image.Pt(80, 80), logger.Discard())
	if err := c.Pipeline().AddEffect("particles"); err != nil {
		t.Fatal(err)
	}
	canvas := NewCanvas(80, 80)
	for now := int64(0); now <= 200; now += 10 {
		c.Draw(canvas, now)
	}
	if c.Particles().Len() == 0 {
		t.Fatal("no particles spawned")
	}
	lit := false
	for i := 0; i < len(canvas.Pix); i += 4 {
		if canvas.Pix[i] == 255 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatal("particles were not drawn onto the canvas")
	}
}

func TestCompositorResize(t *testing.T) {
	c := New(testConfig(), 60, image.Pt(20, 20), logger.Discard())
	first := c.Resize(image.Pt(20, 20))
	if again := c.Resize(image.Pt(20, 20)); again != first {
		t.Fatal("same-size resize restarted generation")
	}
	waitDone(t, c.Resize(image.Pt(40, 10)))

	f, ok := c.Gradient().NextFrame()
	if !ok {
		t.Fatal("gradient not ready after resize")
	}
	if f.Bounds().Size() != image.Pt(40, 10) {
		t.Fatalf("gradient size %v, want 40x10", f.Bounds().Size())
	}
}

func TestImageSurfacePresentsAtOffset(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Background = color.RGBA{1, 2, 3, 255}
	frame := NewCanvas(10, 10)
	Fill(frame, color.RGBA{200, 0, 0, 255})

	c := NewCompositor(nil, nil, nil, logger.Discard())
	c.Present(s, Frame{Image: frame, Offset: image.Pt(3, -2)})

	if got := s.Image.RGBAAt(3, 0); got.R != 200 {
		t.Errorf("(3,0) = %v, want frame pixel", got)
	}
	if got := s.Image.RGBAAt(2, 0); got != s.Background {
		t.Errorf("(2,0) = %v, want background", got)
	}
	if got := s.Image.RGBAAt(5, 9); got != s.Background {
		t.Errorf("(5,9) = %v, want background below the shifted frame", got)
	}
	if got := s.Image.RGBAAt(9, 7); got.R != 200 {
		t.Errorf("(9,7) = %v, want frame pixel", got)
	}

	s.Present(nil, image.Point{})
	if got := s.Image.RGBAAt(5, 5); got != s.Background {
		t.Errorf("nil frame left %v behind", got)
	}
}
