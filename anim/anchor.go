package anim

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Anchor is a pixel offset within a frame. Two anchors, one on each of two
// surfaces, are lined up to pin one surface onto the other.
type Anchor struct {
	X, Y int
}

func (a Anchor) Add(b Anchor) Anchor {
	return Anchor{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Anchor) Sub(b Anchor) Anchor {
	return Anchor{X: a.X - b.X, Y: a.Y - b.Y}
}

// Point returns the anchor as an image.Point, for use with image/draw.
func (a Anchor) Point() image.Point {
	return image.Pt(a.X, a.Y)
}

func (a Anchor) String() string {
	return fmt.Sprintf("(%d, %d)", a.X, a.Y)
}

// ParseAnchor parses the sidecar representation of an anchor, "x,y".
func ParseAnchor(s string) (Anchor, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Anchor{}, errors.Wrapf(ErrParse, "anchor %q: want exactly two comma separated values", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Anchor{}, errors.Wrapf(ErrParse, "anchor %q: bad x: %v", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Anchor{}, errors.Wrapf(ErrParse, "anchor %q: bad y: %v", s, err)
	}
	return Anchor{X: x, Y: y}, nil
}

// LabeledAnchors are the anchors of a single frame, keyed by label (for
// example "head_anchor").
type LabeledAnchors map[string]Anchor

// Get returns the anchor with the passed label.
func (l LabeledAnchors) Get(label string) (Anchor, error) {
	a, ok := l[label]
	if !ok {
		return Anchor{}, errors.Wrapf(ErrNotFound, "no anchor labeled %q", label)
	}
	return a, nil
}

// AnchorsFromConfig reads the anchors for the frame with the passed index out
// of an anchor sidecar. Every section of the sidecar is an anchor label and
// must contain an entry for the frame.
func AnchorsFromConfig(cfg *ini.File, frameIndex int) (LabeledAnchors, error) {
	key := strconv.Itoa(frameIndex)
	anchors := LabeledAnchors{}
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		k, err := section.GetKey(key)
		if err != nil {
			return nil, errors.Wrapf(ErrNotFound, "anchor %q has no entry for frame %d", section.Name(), frameIndex)
		}
		a, err := ParseAnchor(k.String())
		if err != nil {
			return nil, errors.Wrapf(err, "anchor %q for frame %d", section.Name(), frameIndex)
		}
		anchors[section.Name()] = a
	}
	return anchors, nil
}
