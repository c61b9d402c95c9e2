package util

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

func TestRandomIntInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := RandomInt(rng, 4, 15)
		if v < 4 || v > 15 {
			t.Fatalf("RandomInt out of range: %d", v)
		}
		seen[v] = true
	}
	if !seen[4] || !seen[15] {
		t.Fatalf("expected both bounds to be reachable, saw %v", seen)
	}
	if v := RandomInt(rng, 3, 3); v != 3 {
		t.Fatalf("RandomInt(3,3) = %d", v)
	}
	if v := RandomInt(rng, 5, 2); v < 2 || v > 5 {
		t.Fatalf("swapped bounds gave %d", v)
	}
}

func TestRandomFloatRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		v := RandomFloat(rng, -1, -0.5)
		if v < -1 || v >= -0.5 {
			t.Fatalf("RandomFloat out of range: %v", v)
		}
	}
}

func TestModAndWrap(t *testing.T) {
	if got := Mod(-1, 5); got != 4 {
		t.Errorf("Mod(-1,5) = %d", got)
	}
	if got := Mod(12, 5); got != 2 {
		t.Errorf("Mod(12,5) = %d", got)
	}
	if got := WrapFloat(361, 360); got != 1 {
		t.Errorf("WrapFloat(361,360) = %v", got)
	}
	if got := WrapFloat(-0.5, 2*math.Pi); got <= 0 || got >= 2*math.Pi {
		t.Errorf("WrapFloat negative = %v", got)
	}
}

func TestAddSat(t *testing.T) {
	if AddSat(200, 100) != 255 {
		t.Error("expected saturation")
	}
	if AddSat(10, 20) != 30 {
		t.Error("expected plain sum")
	}
}

func TestLuminance(t *testing.T) {
	if l := Luminance(color.RGBA{255, 255, 255, 255}); math.Abs(l-255) > 1e-9 {
		t.Errorf("white luminance = %v", l)
	}
	if l := Luminance(color.RGBA{0, 0, 0, 255}); l != 0 {
		t.Errorf("black luminance = %v", l)
	}
}
