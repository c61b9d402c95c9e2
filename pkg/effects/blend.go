package effects

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"glitchpad/internal/util"
)

// NewCanvas allocates an opaque black canvas. Negative sizes clamp to zero.
func NewCanvas(width, height int) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// Clone copies src into a new canvas anchored at the origin.
func Clone(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Fill paints the whole canvas with c.
func Fill(dst *image.RGBA, c color.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// scaleNRGBA resamples src to size. Same-size sources are returned as is.
func scaleNRGBA(src *image.NRGBA, size image.Point, scaler draw.Scaler) *image.NRGBA {
	if src.Bounds().Size() == size {
		return src
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	if src.Bounds().Empty() || dst.Bounds().Empty() {
		return dst
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// addBlend adds src onto dst weighted by each source pixel's alpha,
// saturating per channel. Destination alpha is left untouched.
func addBlend(dst *image.RGBA, src *image.NRGBA) {
	db := dst.Bounds()
	sb := src.Bounds()
	w := min(db.Dx(), sb.Dx())
	h := min(db.Dy(), sb.Dy())
	for y := 0; y < h; y++ {
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		for x := 0; x < w; x, di, si = x+1, di+4, si+4 {
			a := uint32(src.Pix[si+3])
			if a == 0 {
				continue
			}
			dst.Pix[di+0] = util.AddSat(dst.Pix[di+0], uint8(uint32(src.Pix[si+0])*a/255))
			dst.Pix[di+1] = util.AddSat(dst.Pix[di+1], uint8(uint32(src.Pix[si+1])*a/255))
			dst.Pix[di+2] = util.AddSat(dst.Pix[di+2], uint8(uint32(src.Pix[si+2])*a/255))
		}
	}
}

// fillCircle paints an opaque disc. Pixels outside dst are clipped.
func fillCircle(dst *image.RGBA, cx, cy, r int, c color.RGBA) {
	forEachInCircle(dst, cx, cy, r, func(i int) {
		dst.Pix[i+0] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = c.A
	})
}

// addCircle adds c (weighted by c.A) inside a disc.
func addCircle(dst *image.RGBA, cx, cy, r int, c color.NRGBA) {
	a := uint32(c.A)
	ar := uint8(uint32(c.R) * a / 255)
	ag := uint8(uint32(c.G) * a / 255)
	ab := uint8(uint32(c.B) * a / 255)
	forEachInCircle(dst, cx, cy, r, func(i int) {
		dst.Pix[i+0] = util.AddSat(dst.Pix[i+0], ar)
		dst.Pix[i+1] = util.AddSat(dst.Pix[i+1], ag)
		dst.Pix[i+2] = util.AddSat(dst.Pix[i+2], ab)
	})
}

func forEachInCircle(dst *image.RGBA, cx, cy, r int, fn func(pixOffset int)) {
	if r <= 0 {
		return
	}
	b := dst.Bounds()
	area := image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(b)
	r2 := r * r
	for y := area.Min.Y; y < area.Max.Y; y++ {
		dy := y - cy
		for x := area.Min.X; x < area.Max.X; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				fn(dst.PixOffset(x, y))
			}
		}
	}
}
