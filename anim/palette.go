package anim

import (
	"image"
	"image/color"
	"time"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
)

// PaletteCycleFrameDuration is how long each frame produced by PaletteCycle
// is shown.
const PaletteCycleFrameDuration = 250 * time.Millisecond

// Palette returns the distinct colors of an image in order of first
// appearance, scanning rows top to bottom and each row left to right.
func Palette(img image.Image) color.Palette {
	palette, _ := discoverPalette(img)
	return palette
}

// discoverPalette returns the palette of img along with the palette index of
// every pixel, in scan order.
func discoverPalette(img image.Image) (color.Palette, []int) {
	b := img.Bounds()
	seen := map[color.NRGBA]int{}
	palette := color.Palette{}
	indices := make([]int, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			idx, ok := seen[c]
			if !ok {
				idx = len(palette)
				seen[c] = idx
				palette = append(palette, c)
			}
			indices = append(indices, idx)
		}
	}
	return palette, indices
}

// PaletteCycle animates a static image by rotating its palette. With n
// distinct colors, n frames are produced; in frame k (counting from 0) every
// pixel whose original color sits at palette position i shows the color at
// position (i-k-1) mod n, so every color takes the place of the one after it.
// The first frame is thus already rotated by one step, and the last frame is
// the original image.
//
// Every pixel is visited once per frame, so the cost grows with area times
// palette size. Only use this on small sprites.
func PaletteCycle(img image.Image) (*AnimatedSprite, error) {
	palette, indices := discoverPalette(img)
	n := len(palette)
	b := img.Bounds()
	glog.V(2).Infof("palette cycling %dx%d image with %d colors", b.Dx(), b.Dy(), n)

	list := make([]SurfaceDuration, 0, n)
	for k := range iter.N(n) {
		surface := image.NewNRGBA(b)
		px := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				surface.SetNRGBA(x, y, palette[(indices[px]+n-(k+1))%n].(color.NRGBA))
				px++
			}
		}
		list = append(list, SurfaceDuration{Surface: surface, Duration: PaletteCycleFrameDuration})
	}
	return FromSurfaceDurations(list)
}
