package effects

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"golang.org/x/image/draw"

	"glitchpad/internal/util"
)

// Blur ghosts the canvas: every pass i blends a low-alpha copy shifted by
// +offset*i and -offset*i on both axes.
func Blur(src *image.RGBA, passes, offset int, alpha uint8) *image.RGBA {
	out := Clone(src)
	if out.Bounds().Empty() {
		return out
	}
	mask := image.NewUniform(color.Alpha{A: alpha})
	size := out.Bounds().Size()
	for i := 1; i <= passes; i++ {
		for _, d := range []image.Point{{offset * i, offset * i}, {-offset * i, -offset * i}} {
			r := image.Rectangle{Min: d, Max: d.Add(size)}
			draw.DrawMask(out, r, src, src.Bounds().Min, mask, image.Point{}, draw.Over)
		}
	}
	return out
}

// Glitch tears the canvas: bands times, a horizontal strip of 1..maxBand
// rows is rolled sideways by up to maxShift pixels.
func Glitch(src *image.RGBA, rng *rand.Rand, bands, maxBand, maxShift int) *image.RGBA {
	out := Clone(src)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w == 0 || h == 0 {
		return out
	}
	if maxBand < 1 {
		maxBand = 1
	}
	row := make([]byte, w*4)
	for n := 0; n < bands; n++ {
		y := util.RandomInt(rng, 0, max(0, h-10))
		bh := util.RandomInt(rng, 1, maxBand)
		shift := util.RandomInt(rng, -maxShift, maxShift)
		for yy := y; yy < min(h, y+bh); yy++ {
			rollRow(out.Pix[yy*out.Stride:yy*out.Stride+w*4], row, shift)
		}
	}
	return out
}

// rollRow shifts the pixels of line cyclically to the right by shift.
func rollRow(line, scratch []byte, shift int) {
	w := len(line) / 4
	if w == 0 {
		return
	}
	shift = util.Mod(shift, w)
	if shift == 0 {
		return
	}
	copy(scratch, line)
	split := (w - shift) * 4
	copy(line, scratch[split:len(line)])
	copy(line[shift*4:], scratch[:split])
}

// ChromaticAberration splits the color channels: red is rolled right by
// shift columns, blue left by shift, green stays in place.
func ChromaticAberration(src *image.RGBA, shift int) *image.RGBA {
	out := Clone(src)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w == 0 || util.Mod(shift, w) == 0 {
		return out
	}
	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Bounds().Min.X, src.Bounds().Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < w; x++ {
			rx := util.Mod(x-shift, w)
			bx := util.Mod(x+shift, w)
			out.Pix[di+x*4+0] = src.Pix[si+rx*4+0]
			out.Pix[di+x*4+2] = src.Pix[si+bx*4+2]
		}
	}
	return out
}

// Scanlines darkens every spacing-th row with translucent black.
func Scanlines(src *image.RGBA, spacing int, alpha uint8) *image.RGBA {
	out := Clone(src)
	if spacing < 1 {
		spacing = 1
	}
	shade := image.NewUniform(color.RGBA{A: alpha})
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	for y := 0; y < h; y += spacing {
		draw.Draw(out, image.Rect(0, y, w, y+1), shade, image.Point{}, draw.Over)
	}
	return out
}

// WaveDistortion copies each row y shifted by
// int(amplitude*sin(frequency*y+phase)). Uncovered pixels are opaque black.
func WaveDistortion(src *image.RGBA, amplitude, frequency, phase float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewCanvas(w, h)
	for y := 0; y < h; y++ {
		off := int(amplitude * math.Sin(frequency*float64(y)+phase))
		if off >= w || off <= -w {
			continue
		}
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		if off >= 0 {
			copy(out.Pix[di+off*4:di+w*4], src.Pix[si:si+(w-off)*4])
		} else {
			copy(out.Pix[di:di+(w+off)*4], src.Pix[si-off*4:si+w*4])
		}
	}
	return out
}
