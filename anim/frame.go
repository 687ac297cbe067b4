package anim

import (
	"fmt"
	"image"
	"time"
)

// Frame is one surface of an animation, shown from Start for Duration.
//
// Anchors is nil when the animation was decoded without a sidecar.
type Frame struct {
	Surface  image.Image
	Start    time.Duration
	Duration time.Duration
	Anchors  LabeledAnchors
}

// End returns the time at which the frame stops being shown.
func (f Frame) End() time.Duration {
	return f.Start + f.Duration
}

// Anchor returns the frame's anchor with the passed label.
func (f Frame) Anchor(label string) (Anchor, error) {
	return f.Anchors.Get(label)
}

func (f Frame) String() string {
	return fmt.Sprintf("<frame duration(%v) start(%v) end(%v)>", f.Duration, f.Start, f.End())
}
