package editor

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"glitchpad/internal/util"
)

// Background is a decoded backdrop image with a copy scaled to the canvas.
type Background struct {
	src    image.Image
	scaled *image.RGBA
}

// LoadBackground decodes a PNG, JPEG, BMP or WebP file.
func LoadBackground(path string) (*Background, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening background: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding background %s: %w", path, err)
	}
	return NewBackground(img), nil
}

// NewBackground wraps an already decoded image.
func NewBackground(img image.Image) *Background {
	return &Background{src: img}
}

// Scaled returns the image resampled to size, reusing the previous result
// when the size has not changed.
func (bg *Background) Scaled(size image.Point) *image.RGBA {
	if bg.scaled != nil && bg.scaled.Bounds().Size() == size {
		return bg.scaled
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if !dst.Bounds().Empty() && !bg.src.Bounds().Empty() {
		draw.CatmullRom.Scale(dst, dst.Bounds(), bg.src, bg.src.Bounds(), draw.Src, nil)
	}
	bg.scaled = dst
	return dst
}

// TextColor picks black text on bright backgrounds and white otherwise.
func (bg *Background) TextColor() color.RGBA {
	return ContrastColor(AverageColor(bg.src))
}

// AverageColor is the mean color of every pixel in img.
func AverageColor(img image.Image) color.RGBA {
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if n == 0 {
		return color.RGBA{}
	}
	var r, g, bl, a uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			bl += uint64(c.B)
			a += uint64(c.A)
		}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), uint8(a / n)}
}

// ContrastColor returns black for colors brighter than mid-grey, white
// otherwise.
func ContrastColor(c color.RGBA) color.RGBA {
	if util.Luminance(c) > 128 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
