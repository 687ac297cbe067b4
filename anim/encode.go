package anim

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// EncodeOptions control GIF encoding.
type EncodeOptions struct {
	// Quantizer, if set, builds the palette of every frame. By default,
	// gogif's median cut quantizer is used.
	Quantizer draw.Quantizer

	// NumColor is the number of opaque colors per frame, at most 255. One
	// more palette entry is always reserved for transparency. Defaults to 255.
	NumColor int

	// LoopCount is passed on to image/gif. 0 loops forever.
	LoopCount int
}

func (o *EncodeOptions) numColor() int {
	if o == nil || o.NumColor <= 0 || o.NumColor > 255 {
		return 255
	}
	return o.NumColor
}

// EncodeGIF writes every frame of the animation, with its duration, as an
// animated GIF.
func (s *AnimatedSprite) EncodeGIF(w io.Writer, o *EncodeOptions) error {
	images := make([]image.Image, len(s.frames))
	delays := make([]time.Duration, len(s.frames))
	for idx, f := range s.frames {
		images[idx] = f.Surface
		delays[idx] = f.Duration
	}
	return EncodeGIF(w, images, delays, o)
}

// EncodeGIF writes the passed images as an animated GIF, showing each image
// for the matching delay. Delays are rounded down to GIF's 10ms resolution.
func EncodeGIF(w io.Writer, images []image.Image, delays []time.Duration, o *EncodeOptions) error {
	if len(images) == 0 {
		return errors.Wrap(ErrInvalidArgument, "no frames to encode")
	}
	if len(images) != len(delays) {
		return errors.Wrapf(ErrInvalidArgument, "%d frames but %d delays", len(images), len(delays))
	}

	g := gif.GIF{
		BackgroundIndex: 0, // color.Transparent
	}
	if o != nil {
		g.LoopCount = o.LoopCount
	}

	for idx, img := range images {
		var pal color.Palette
		if o != nil && o.Quantizer != nil {
			pal = o.Quantizer.Quantize(make(color.Palette, 0, o.numColor()), img)
			if len(pal) > o.numColor() {
				pal = pal[:o.numColor()]
			}
		} else {
			// gogif only produces a palette as a side effect of quantizing
			// into a paletted image.
			quantizer := gogif.MedianCutQuantizer{NumColor: o.numColor()}
			pm := image.NewPaletted(img.Bounds(), nil)
			quantizer.Quantize(pm, img.Bounds(), img, image.ZP)
			pal = pm.Palette
		}

		// Transparent comes first so that the empty image defaults to it.
		withTransparent := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal...))
		draw.Draw(withTransparent, img.Bounds(), img, img.Bounds().Min, draw.Over)

		g.Image = append(g.Image, withTransparent)
		g.Delay = append(g.Delay, int(delays[idx]/gifDelayUnit))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	if err := gif.EncodeAll(w, &g); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}
