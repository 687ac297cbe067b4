package anim

// This file contains decoding of animated GIFs into frame sequences.

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// gifDelayUnit is the unit of the GIF per-frame delay field.
const gifDelayUnit = 10 * time.Millisecond

// FromGIF decodes an animated (or single frame) GIF into an animation.
//
// When anchors is not nil, every frame gets the anchors listed for its index
// in the passed sidecar; see AnchorsFromConfig.
func FromGIF(r io.Reader, anchors *ini.File) (*AnimatedSprite, error) {
	frames, err := FramesFromGIF(r, anchors)
	if err != nil {
		return nil, err
	}
	return New(frames)
}

// FramesFromGIF decodes every frame of a GIF, in order, as a full canvas
// sized RGBA surface. Partial frames are composited over the previous canvas
// the way a viewer would show them, honoring each frame's disposal method.
func FramesFromGIF(r io.Reader, anchors *ini.File) ([]Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "decoding gif: %v", err)
	}
	if len(g.Image) == 0 {
		return nil, errors.Wrap(ErrParse, "gif contains no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]Frame, 0, len(g.Image))
	var start time.Duration
	for idx, pm := range g.Image {
		var disposal byte
		if idx < len(g.Disposal) {
			disposal = g.Disposal[idx]
		}
		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)

		var duration time.Duration
		if idx < len(g.Delay) {
			duration = time.Duration(g.Delay[idx]) * gifDelayUnit
		}

		frame := Frame{
			Surface:  cloneRGBA(canvas),
			Start:    start,
			Duration: duration,
		}
		if anchors != nil {
			frame.Anchors, err = AnchorsFromConfig(anchors, idx)
			if err != nil {
				return nil, err
			}
		}
		frames = append(frames, frame)
		start += duration

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	glog.V(2).Infof("decoded gif: %d frames, %v total, %dx%d", len(frames), start, bounds.Dx(), bounds.Dy())
	return frames, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
