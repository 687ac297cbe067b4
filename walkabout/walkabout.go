// Package walkabout composes characters out of animated sprites: one
// animation per (action, direction) pair, with child walkabouts (hats,
// carried items) pinned to the parent's head anchor in every frame.
package walkabout

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sort"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/anim"
	"badc0de.net/pkg/go-hypatia/resources"
)

// Category is the resource category walkabout directories live in.
const Category = "walkabouts"

// HeadAnchor is the anchor label children are aligned on.
const HeadAnchor = "head_anchor"

// Walkabout is a character sprite which picks its animation by the current
// action and direction.
//
// Children are not owned by the walkabout. The same child may be attached to
// several parents; it is positioned anew relative to whichever parent draws
// it.
type Walkabout struct {
	Name string

	animations map[Action]map[Direction]*anim.AnimatedSprite
	size       image.Point

	action    Action
	direction Direction

	x, y     float64
	children []*Walkabout
}

// New loads the walkabout directory (or zip archive) of the passed name from
// src and builds the action and direction grid out of its GIF sprites.
//
// Every animation gets its own cursor, even when src hands out shared
// resources.
func New(src resources.Source, directory string, position image.Point, children ...*Walkabout) (*Walkabout, error) {
	res, err := src.Load(Category, directory)
	if err != nil {
		return nil, errors.Wrapf(err, "loading walkabout %q", directory)
	}
	gifs, ok := res.ByExtension(".gif")
	if !ok {
		return nil, &BadWalkaboutError{FailedName: directory, Reason: "no animated sprites found"}
	}

	names := make([]string, 0, len(gifs))
	for name := range gifs {
		names = append(names, name)
	}
	sort.Strings(names)

	w := &Walkabout{
		Name:       directory,
		animations: map[Action]map[Direction]*anim.AnimatedSprite{},
		action:     Stand,
		direction:  South,
		x:          float64(position.X),
		y:          float64(position.Y),
		children:   children,
	}
	for _, name := range names {
		a, d, err := ParseSpriteName(name)
		if err != nil {
			return nil, &BadWalkaboutError{FailedName: directory, Reason: err.Error()}
		}
		asset, ok := gifs[name].(resources.Animation)
		if !ok {
			return nil, &BadWalkaboutError{FailedName: directory, Reason: fmt.Sprintf("sprite %q decoded as %v", name, gifs[name].Kind())}
		}
		if w.animations[a] == nil {
			w.animations[a] = map[Direction]*anim.AnimatedSprite{}
		}
		if _, dup := w.animations[a][d]; dup {
			return nil, &BadWalkaboutError{FailedName: directory, Reason: fmt.Sprintf("sprite %q duplicates %v %v", name, a, d)}
		}
		sprite := asset.Clone()
		w.animations[a][d] = sprite

		if s := sprite.LargestFrameSize(); s.X*s.Y > w.size.X*w.size.Y {
			w.size = s
		}
	}

	if w.animations[Stand][South] == nil {
		return nil, &BadWalkaboutError{FailedName: directory, Reason: "no stand_south (or only) sprite"}
	}
	glog.V(2).Infof("walkabout %q: %d sprites, size %v, %d children", directory, len(names), w.size, len(children))
	return w, nil
}

// Animations returns the animations for the passed action, by direction. It
// returns nil if the walkabout has no sprite for the action.
func (w *Walkabout) Animations(a Action) map[Direction]*anim.AnimatedSprite {
	return w.animations[a]
}

// Animation returns the animation for the passed grid cell.
func (w *Walkabout) Animation(a Action, d Direction) (*anim.AnimatedSprite, error) {
	s, ok := w.animations[a][d]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "walkabout %q has no %v %v sprite", w.Name, a, d)
	}
	return s, nil
}

// Len returns the number of populated grid cells.
func (w *Walkabout) Len() int {
	n := 0
	for _, byDirection := range w.animations {
		n += len(byDirection)
	}
	return n
}

// CurrentAnimation returns the animation for the current action and
// direction.
func (w *Walkabout) CurrentAnimation() *anim.AnimatedSprite {
	return w.animations[w.action][w.direction]
}

func (w *Walkabout) Action() Action       { return w.action }
func (w *Walkabout) Direction() Direction { return w.direction }

// SetState switches to another grid cell, which must be populated.
func (w *Walkabout) SetState(a Action, d Direction) error {
	if _, err := w.Animation(a, d); err != nil {
		return err
	}
	w.action = a
	w.direction = d
	return nil
}

// SetAction keeps the current direction and switches the action.
func (w *Walkabout) SetAction(a Action) error {
	return w.SetState(a, w.direction)
}

// SetDirection keeps the current action and switches the direction.
func (w *Walkabout) SetDirection(d Direction) error {
	return w.SetState(w.action, d)
}

// Position returns the top left corner of the walkabout in world pixels.
func (w *Walkabout) Position() (x, y float64) {
	return w.x, w.y
}

func (w *Walkabout) SetPosition(x, y float64) {
	w.x, w.y = x, y
}

func (w *Walkabout) Move(dx, dy float64) {
	w.x += dx
	w.y += dy
}

// ScreenPosition returns where the top left corner lands on screen when the
// camera's top left corner is at offset.
func (w *Walkabout) ScreenPosition(offset image.Point) image.Point {
	return image.Pt(int(math.Floor(w.x)), int(math.Floor(w.y))).Sub(offset)
}

// Size returns the size of the largest frame of any of the walkabout's
// animations.
func (w *Walkabout) Size() image.Point {
	return w.size
}

func (w *Walkabout) Children() []*Walkabout {
	return w.children
}

func (w *Walkabout) AddChild(c *Walkabout) {
	w.children = append(w.children, c)
}

// Update advances the current animation.
func (w *Walkabout) Update(delta time.Duration) error {
	return w.CurrentAnimation().Advance(delta)
}

// Image returns the surface the current animation presents as its image.
// See anim.AnimatedSprite.Image.
func (w *Walkabout) Image() image.Image {
	return w.CurrentAnimation().Image()
}

// Draw advances the current animation by delta and draws its active frame
// onto dst, followed by every child. Each child is advanced by delta too,
// and placed so that its head anchor lands on the parent's head anchor.
// Children of children are not drawn.
func (w *Walkabout) Draw(dst draw.Image, offset image.Point, delta time.Duration) error {
	pos := w.ScreenPosition(offset)
	if err := w.Update(delta); err != nil {
		return errors.Wrapf(err, "walkabout %q", w.Name)
	}

	frame := w.CurrentAnimation().ActiveFrame()
	blit(dst, frame.Surface, pos)

	head, err := frame.Anchor(HeadAnchor)
	if err != nil {
		return errors.Wrapf(err, "walkabout %q frame %d", w.Name, w.CurrentAnimation().ActiveIndex())
	}
	parentAnchor := anim.Anchor{X: pos.X, Y: pos.Y}.Add(head)

	for _, child := range w.children {
		ca := child.CurrentAnimation()
		if err := ca.Advance(delta); err != nil {
			return errors.Wrapf(err, "child walkabout %q", child.Name)
		}
		childHead, err := ca.ActiveFrame().Anchor(HeadAnchor)
		if err != nil {
			return errors.Wrapf(err, "child walkabout %q frame %d", child.Name, ca.ActiveIndex())
		}
		blit(dst, ca.Image(), parentAnchor.Sub(childHead).Point())
	}
	return nil
}

func blit(dst draw.Image, src image.Image, at image.Point) {
	sb := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(sb.Size())}, src, sb.Min, draw.Over)
}

// RuntimeSetup prepares the walkabout for drawing, converting the surfaces
// of the animations which can be shown to a uniform pixel format. For a
// single sprite walkabout that is its only animation, otherwise walking and
// standing towards north, south, east and west, all of which must exist.
// Children are set up as well.
func (w *Walkabout) RuntimeSetup() error {
	actions := []Action{Walk, Stand}
	directions := []Direction{North, South, East, West}
	if w.Len() == 1 {
		actions = []Action{Stand}
		directions = []Direction{South}
	}

	for _, a := range actions {
		for _, d := range directions {
			s, err := w.Animation(a, d)
			if err != nil {
				return errors.Wrap(err, "runtime setup")
			}
			s.Normalize()
		}
	}
	for _, c := range w.children {
		if err := c.RuntimeSetup(); err != nil {
			return errors.Wrapf(err, "child of %q", w.Name)
		}
	}
	return nil
}

func (w *Walkabout) String() string {
	return fmt.Sprintf("<walkabout %q sprites(%d) %v %v at(%g, %g) children(%d)>", w.Name, w.Len(), w.action, w.direction, w.x, w.y, len(w.children))
}
