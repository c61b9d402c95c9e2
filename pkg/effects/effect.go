// Package effects is the frame composition engine: a particle emitter, an
// asynchronously built gradient cache, a set of CPU pixel transforms and
// the ordered pipeline that chains them every frame.
package effects

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEffect is returned for names outside the effect registry.
var ErrInvalidEffect = errors.New("invalid effect")

// Effect identifies one entry of the fixed effect registry.
type Effect uint8

// Registry order. The numeric values index the pipeline dispatch table.
const (
	EffectBlur Effect = iota
	EffectRotate
	EffectGradient
	EffectParticles
	EffectShake
	EffectGlitch
	EffectScanlines
	EffectWave
	EffectNoise
	EffectChromatic

	effectCount
)

var effectNames = [effectCount]string{
	EffectBlur:      "blur",
	EffectRotate:    "rotate",
	EffectGradient:  "gradient",
	EffectParticles: "particles",
	EffectShake:     "shake",
	EffectGlitch:    "glitch",
	EffectScanlines: "scanlines",
	EffectWave:      "wave",
	EffectNoise:     "noise",
	EffectChromatic: "chromatic",
}

func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Effect(%d)", uint8(e))
	}
	return effectNames[e]
}

// Valid reports whether e is part of the registry.
func (e Effect) Valid() bool {
	return e < effectCount
}

// ParseEffect maps a registry name to its Effect. Matching is exact apart
// from surrounding whitespace and case.
func ParseEffect(name string) (Effect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range effectNames {
		if n == key {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidEffect, name)
}

// Registry lists every known effect name in registry order.
func Registry() []string {
	names := make([]string, len(effectNames))
	copy(names, effectNames[:])
	return names
}
