package anim

import (
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// AnimatedSprite is a looping animation together with the cursor which
// tracks how far into the current cycle it is.
type AnimatedSprite struct {
	frames []Frame
	total  time.Duration

	elapsed time.Duration // time elapsed within the current cycle
	active  int           // index of the active frame
}

// New constructs an animation over the passed frames. Frames must form a
// contiguous timeline starting at 0 with a total duration above zero.
func New(frames []Frame) (*AnimatedSprite, error) {
	if len(frames) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "animation needs at least one frame")
	}
	var want time.Duration
	for idx, f := range frames {
		if f.Duration < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d has negative duration %v", idx, f.Duration)
		}
		if f.Start != want {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d starts at %v; want %v", idx, f.Start, want)
		}
		if f.Surface == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "frame %d has no surface", idx)
		}
		want = f.End()
	}
	if want <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "animation has zero total duration")
	}
	return &AnimatedSprite{
		frames: frames,
		total:  want,
	}, nil
}

// SurfaceDuration pairs a surface with how long it is shown.
type SurfaceDuration struct {
	Surface  image.Image
	Duration time.Duration
}

// FromSurfaceDurations builds an animation from surfaces shown one after
// another, each for its duration. The resulting frames carry no anchors.
func FromSurfaceDurations(list []SurfaceDuration) (*AnimatedSprite, error) {
	frames := make([]Frame, 0, len(list))
	var running time.Duration
	for _, sd := range list {
		frames = append(frames, Frame{
			Surface:  sd.Surface,
			Start:    running,
			Duration: sd.Duration,
		})
		running += sd.Duration
	}
	return New(frames)
}

// Advance moves the cursor forward by delta, wrapping around to the first
// frame once the end of the animation is reached.
func (s *AnimatedSprite) Advance(delta time.Duration) error {
	if delta < 0 {
		return errors.Wrapf(ErrInvalidArgument, "cannot advance animation by negative %v", delta)
	}
	s.elapsed += delta

	if s.elapsed >= s.total {
		s.elapsed %= s.total
		s.active = 0
	}

	// A frame remains active up to and including its end time.
	for s.elapsed > s.frames[s.active].End() {
		s.active++
	}
	glog.V(3).Infof("animation advanced by %v: elapsed %v, frame %d", delta, s.elapsed, s.active)
	return nil
}

// Reset rewinds the cursor to the first frame.
func (s *AnimatedSprite) Reset() {
	s.elapsed = 0
	s.active = 0
}

// ActiveIndex returns the index of the frame the cursor is on.
func (s *AnimatedSprite) ActiveIndex() int {
	return s.active
}

// ActiveFrame returns the frame the cursor is on.
func (s *AnimatedSprite) ActiveFrame() Frame {
	return s.frames[s.active]
}

// Image returns the surface of the frame preceding the active one, wrapping
// to the last frame while the first one is active.
//
// This lags ActiveFrame by one frame. It is what has always been shown as
// the sprite's image, and timing of existing content depends on it.
func (s *AnimatedSprite) Image() image.Image {
	idx := s.active - 1
	if idx < 0 {
		idx = len(s.frames) - 1
	}
	return s.frames[idx].Surface
}

// Elapsed returns the time elapsed within the current cycle.
func (s *AnimatedSprite) Elapsed() time.Duration {
	return s.elapsed
}

// TotalDuration is the sum of all frame durations.
func (s *AnimatedSprite) TotalDuration() time.Duration {
	return s.total
}

func (s *AnimatedSprite) Len() int {
	return len(s.frames)
}

// Frame returns the frame with the passed index.
func (s *AnimatedSprite) Frame(idx int) Frame {
	return s.frames[idx]
}

// Frames returns a copy of the frame list.
func (s *AnimatedSprite) Frames() []Frame {
	return append([]Frame(nil), s.frames...)
}

// LargestFrameSize returns the pixel size of the frame with the largest area.
func (s *AnimatedSprite) LargestFrameSize() image.Point {
	var largest image.Point
	for _, f := range s.frames {
		size := f.Surface.Bounds().Size()
		if size.X*size.Y > largest.X*largest.Y {
			largest = size
		}
	}
	return largest
}

// Clone returns an animation over the same surfaces with its own cursor,
// rewound to the first frame.
func (s *AnimatedSprite) Clone() *AnimatedSprite {
	return &AnimatedSprite{
		frames: s.Frames(),
		total:  s.total,
	}
}

// Normalize converts every frame surface to *image.RGBA, so that later
// compositing does not need to convert pixel formats on every draw.
func (s *AnimatedSprite) Normalize() {
	for idx := range s.frames {
		s.frames[idx].Surface = toRGBA(s.frames[idx].Surface)
	}
}

func (s *AnimatedSprite) String() string {
	return fmt.Sprintf("<animation frames(%d) total(%v) at(%v, frame %d)>", len(s.frames), s.total, s.elapsed, s.active)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
