package walkabout

import (
	"image"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/anim"
)

// margin is how far children can reach outside the parent's frame: a child
// is never larger than its own largest frame.
func (w *Walkabout) margin() image.Point {
	var m image.Point
	for _, c := range w.children {
		s := c.Size()
		m.X = max(m.X, s.X)
		m.Y = max(m.Y, s.Y)
	}
	return m
}

// CanvasSize returns the size of the images produced by Snapshot.
func (w *Walkabout) CanvasSize() image.Point {
	m := w.margin()
	return w.size.Add(m.Mul(2))
}

// Snapshot draws the walkabout and its children, advanced by delta, onto a
// new transparent image of CanvasSize. The walkabout's own frame is placed
// with its top left corner at the margin reserved for children, regardless
// of its world position.
func (w *Walkabout) Snapshot(delta time.Duration) (*image.RGBA, error) {
	m := w.margin()
	canvas := image.NewRGBA(image.Rectangle{Max: w.CanvasSize()})

	offset := image.Pt(int(math.Floor(w.x)), int(math.Floor(w.y))).Sub(m)
	if err := w.Draw(canvas, offset, delta); err != nil {
		return nil, err
	}
	return canvas, nil
}

// Record takes n snapshots, step apart, starting with the current state.
// It returns the images along with how long each is shown. A step of 0
// records the current animation's frames exactly once each.
func (w *Walkabout) Record(step time.Duration, n int) ([]image.Image, []time.Duration, error) {
	if step < 0 || n < 0 {
		return nil, nil, errors.Wrapf(anim.ErrInvalidArgument, "cannot record %d snapshots %v apart", n, step)
	}
	if step == 0 {
		return w.recordFrames()
	}

	images := make([]image.Image, 0, n)
	delays := make([]time.Duration, 0, n)
	var delta time.Duration
	for i := 0; i < n; i++ {
		img, err := w.Snapshot(delta)
		if err != nil {
			return nil, nil, err
		}
		images = append(images, img)
		delays = append(delays, step)
		delta = step
	}
	return images, delays, nil
}

// recordFrames snapshots the current animation once per frame, advancing
// precisely to the start of the next frame each time.
func (w *Walkabout) recordFrames() ([]image.Image, []time.Duration, error) {
	current := w.CurrentAnimation()
	current.Reset()
	for _, c := range w.children {
		c.CurrentAnimation().Reset()
	}

	frames := current.Frames()
	images := make([]image.Image, 0, len(frames))
	delays := make([]time.Duration, 0, len(frames))
	for _, f := range frames {
		// A frame is active up to and including its end, so the first
		// instant it shows is just past its start.
		target := f.Start
		if f.Start > 0 {
			target++
		}
		delta := max(target-current.Elapsed(), 0)
		img, err := w.Snapshot(delta)
		if err != nil {
			return nil, nil, err
		}
		images = append(images, img)
		delays = append(delays, f.Duration)
	}
	return images, delays, nil
}

// EncodeGIF records the walkabout (see Record) and writes it as an animated
// GIF.
func (w *Walkabout) EncodeGIF(out io.Writer, step time.Duration, n int, o *anim.EncodeOptions) error {
	images, delays, err := w.Record(step, n)
	if err != nil {
		return err
	}
	return anim.EncodeGIF(out, images, delays, o)
}
