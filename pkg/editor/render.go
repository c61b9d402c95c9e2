package editor

import (
	"image"
	"image/color"
	"math"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

var backgroundColor = color.RGBA{30, 30, 30, 255}

// CursorWidth is the caret width in pixels.
const CursorWidth = 2

// Caret blink period in rendered frames; visible for the first half.
const blinkPeriod = 20

// glyphAdvance is the horizontal advance of r in whole pixels. Runes the
// face has no glyph for fall back to their terminal cell width at half an
// em per cell. Control runes are zero.
func glyphAdvance(face font.Face, r rune, size int) int {
	if adv, ok := face.GlyphAdvance(r); ok && adv > 0 {
		return adv.Round()
	}
	return runewidth.RuneWidth(r) * size / 2
}

// lineWidth is the pixel offset of column col in line.
func lineWidth(face font.Face, line []rune, col, size int) int {
	w := 0
	for _, r := range line[:col] {
		w += glyphAdvance(face, r, size)
	}
	return w
}

// glyphPainter draws single runes, optionally rotated about the center of
// their cell.
type glyphPainter struct {
	face    font.Face
	src     *image.Uniform
	ascent  int
	height  int
	scratch *image.RGBA
}

func newGlyphPainter(face font.Face, col color.RGBA, height int) *glyphPainter {
	return &glyphPainter{
		face:   face,
		src:    image.NewUniform(col),
		ascent: face.Metrics().Ascent.Ceil(),
		height: height,
	}
}

// paint draws r with its cell's top-left corner at (x, y).
func (g *glyphPainter) paint(dst *image.RGBA, r rune, x, y, adv int, degrees float64) {
	if degrees == 0 {
		g.drawGlyph(dst, r, image.Pt(x, y))
		return
	}

	cell := image.Rect(0, 0, adv, g.height)
	if g.scratch == nil || !cell.In(g.scratch.Bounds()) {
		g.scratch = image.NewRGBA(image.Rect(0, 0, max(adv, g.height), g.height*2))
	}
	clear(g.scratch.Pix)
	g.drawGlyph(g.scratch, r, image.Point{})

	// Counterclockwise on screen, about the cell center.
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	sx, sy := float64(adv)/2, float64(g.height)/2
	cx, cy := float64(x)+sx, float64(y)+sy
	m := f64.Aff3{
		cos, sin, cx - cos*sx - sin*sy,
		-sin, cos, cy + sin*sx - cos*sy,
	}
	draw.BiLinear.Transform(dst, m, g.scratch, cell, draw.Over, nil)
}

func (g *glyphPainter) drawGlyph(dst *image.RGBA, r rune, topLeft image.Point) {
	dot := fixed.P(topLeft.X, topLeft.Y+g.ascent)
	dr, mask, maskp, _, ok := g.face.Glyph(dot, r)
	if !ok {
		return
	}
	draw.DrawMask(dst, dr, g.src, image.Point{}, mask, maskp, draw.Over)
}

// visibleLines returns the half-open range of lines that intersect a
// canvas of the given height when line 0 starts at viewY.
func visibleLines(count, lineHeight, viewY, height int) (start, end int) {
	if lineHeight <= 0 {
		return 0, 0
	}
	start = min(count, max(0, floorDiv(-viewY, lineHeight)))
	end = min(count, floorDiv(height-viewY, lineHeight)+1)
	return start, max(start, end)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
