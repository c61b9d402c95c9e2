package editor

import (
	"fmt"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font sizes reachable with the mouse wheel.
const (
	MinFontSize  = 16
	MaxFontSize  = 500
	FontSizeStep = 10
)

var builtinFonts = map[string][]byte{
	"regular":  goregular.TTF,
	"bold":     gobold.TTF,
	"mono":     gomono.TTF,
	"monobold": gomonobold.TTF,
}

// FontNames lists the bundled font names.
func FontNames() []string {
	names := make([]string, 0, len(builtinFonts))
	for n := range builtinFonts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type faceKey struct {
	name string
	size int
}

// FontBank parses the bundled fonts once and caches a face per size.
type FontBank struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontBank parses every bundled font.
func NewFontBank() (*FontBank, error) {
	b := &FontBank{
		fonts: make(map[string]*opentype.Font, len(builtinFonts)),
		faces: make(map[faceKey]font.Face),
	}
	for name, data := range builtinFonts {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing font %s: %w", name, err)
		}
		b.fonts[name] = f
	}
	return b, nil
}

// Face returns the face for name at size pixels per em.
func (b *FontBank) Face(name string, size int) (font.Face, error) {
	key := faceKey{name, size}
	if f, ok := b.faces[key]; ok {
		return f, nil
	}
	base, ok := b.fonts[name]
	if !ok {
		return nil, fmt.Errorf("unknown font %q", name)
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating %s face at %d: %w", name, size, err)
	}
	b.faces[key] = face
	return face, nil
}

// Close releases every cached face.
func (b *FontBank) Close() {
	for k, f := range b.faces {
		f.Close()
		delete(b.faces, k)
	}
}
