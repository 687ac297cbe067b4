package walkabout

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"badc0de.net/pkg/go-hypatia/anim"
	"badc0de.net/pkg/go-hypatia/resources"
	"badc0de.net/pkg/go-hypatia/ttesting"
)

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

type pixelCheck struct {
	name string
	at   image.Point
	want color.Color
}

func checkPixels(t *testing.T, img image.Image, checks []pixelCheck) {
	t.Helper()
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if got := img.At(c.at.X, c.at.Y); !sameColor(got, c.want) {
				t.Errorf("at %v: got %v; want %v", c.at, got, c.want)
			}
		})
	}
}

// hatSource has a 30x40 red "body" with its head anchor at (10,20) in the
// first frame and (12,22) in the second, and a 4x4 blue "hat" with its head
// anchor at (2,3).
func hatSource(t *testing.T) fakeSource {
	return fakeSource{
		"body": {
			"only.gif": spriteGIF(t, 30, 40, red, red),
			"only.ini": headAnchors(image.Pt(10, 20), image.Pt(12, 22)),
		},
		"hat": {
			"only.gif": spriteGIF(t, 4, 4, blue),
			"only.ini": headAnchors(image.Pt(2, 3)),
		},
		"bare": {
			"only.gif": spriteGIF(t, 4, 4, green),
		},
	}
}

func TestDrawAlignsChildOnHeadAnchor(t *testing.T) {
	src := hatSource(t)
	hat := mustNew(t, src, "hat", image.Point{})
	body := mustNew(t, src, "body", image.Pt(5, 5), hat)

	screen := image.NewRGBA(image.Rect(0, 0, 60, 60))
	if err := body.Draw(screen, image.Point{}, 0); err != nil {
		t.Fatalf("draw: %v", err)
	}
	// Head at (5,5)+(10,20) = (15,25); hat corner at (15,25)-(2,3) = (13,22).
	checkPixels(t, screen, []pixelCheck{
		{"body corner", image.Pt(5, 5), red},
		{"outside body", image.Pt(4, 4), color.Transparent},
		{"hat corner", image.Pt(13, 22), blue},
		{"hat far corner", image.Pt(16, 25), blue},
		{"body left of hat", image.Pt(12, 22), red},
		{"body past hat", image.Pt(17, 26), red},
	})

	// The second body frame moves the head by (2,2); the hat follows.
	screen = image.NewRGBA(image.Rect(0, 0, 60, 60))
	if err := body.Draw(screen, image.Point{}, 101*time.Millisecond); err != nil {
		t.Fatalf("draw: %v", err)
	}
	checkPixels(t, screen, []pixelCheck{
		{"moved hat corner", image.Pt(15, 24), blue},
		{"old hat corner", image.Pt(13, 22), red},
	})
}

func TestDrawHonorsCameraOffset(t *testing.T) {
	src := hatSource(t)
	hat := mustNew(t, src, "hat", image.Point{})
	body := mustNew(t, src, "body", image.Pt(5, 5), hat)
	body.Move(0.75, 0.75)

	screen := image.NewRGBA(image.Rect(0, 0, 60, 60))
	if err := body.Draw(screen, image.Pt(3, 2), 0); err != nil {
		t.Fatalf("draw: %v", err)
	}
	// floor(5.75)-3 = 2, floor(5.75)-2 = 3; hat at (2+10-2, 3+20-3).
	checkPixels(t, screen, []pixelCheck{
		{"body corner", image.Pt(2, 3), red},
		{"before body", image.Pt(1, 3), color.Transparent},
		{"hat corner", image.Pt(10, 20), blue},
	})
}

func TestDrawNeedsHeadAnchors(t *testing.T) {
	src := hatSource(t)
	screen := image.NewRGBA(image.Rect(0, 0, 60, 60))

	bare := mustNew(t, src, "bare", image.Point{})
	ttesting.AssertErrorIs(t, "parent without anchors", bare.Draw(screen, image.Point{}, 0), ErrNotFound)

	body := mustNew(t, src, "body", image.Point{}, mustNew(t, src, "bare", image.Point{}))
	ttesting.AssertErrorIs(t, "child without anchors", body.Draw(screen, image.Point{}, 0), ErrNotFound)

	ttesting.AssertErrorIs(t, "negative delta", body.Draw(screen, image.Point{}, -time.Millisecond), anim.ErrInvalidArgument)
}

func TestSharedChild(t *testing.T) {
	src := hatSource(t)
	hat := mustNew(t, src, "hat", image.Point{})
	left := mustNew(t, src, "body", image.Pt(0, 0), hat)
	right := mustNew(t, src, "body", image.Pt(40, 0), hat)

	screen := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for _, w := range []*Walkabout{left, right} {
		if err := w.Draw(screen, image.Point{}, 0); err != nil {
			t.Fatalf("draw %v: %v", w, err)
		}
	}
	checkPixels(t, screen, []pixelCheck{
		{"hat on left body", image.Pt(8, 17), blue},
		{"hat on right body", image.Pt(48, 17), blue},
	})
}

func TestRecord(t *testing.T) {
	src := fakeSource{
		"body": {
			"only.gif": spriteGIF(t, 30, 40, red, green),
			"only.ini": headAnchors(image.Pt(10, 20), image.Pt(10, 20)),
		},
		"hat": hatSource(t)["hat"],
	}
	hat := mustNew(t, src, "hat", image.Point{})
	body := mustNew(t, src, "body", image.Pt(100, 100), hat)

	ttesting.AssertEqualPoint(t, "canvas size", body.CanvasSize(), image.Pt(38, 48))

	images, delays, err := body.Record(0, 0)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	ttesting.AssertEqualInt(t, "one image per frame", len(images), 2)
	ttesting.AssertEqualDuration(t, "frame delay", delays[1], 100*time.Millisecond)
	checkPixels(t, images[0], []pixelCheck{
		{"first frame at margin", image.Pt(4, 4), red},
		{"margin is clear", image.Pt(3, 3), color.Transparent},
	})
	checkPixels(t, images[1], []pixelCheck{
		{"second frame", image.Pt(4, 4), green},
		{"hat", image.Pt(4+10-2, 4+20-3), blue},
	})

	images, _, err = body.Record(30*time.Millisecond, 5)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	ttesting.AssertEqualInt(t, "fixed step snapshots", len(images), 5)

	buf := &bytes.Buffer{}
	if err := body.EncodeGIF(buf, 0, 0, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	g, err := gif.DecodeAll(buf)
	if err != nil {
		t.Fatalf("decoding encoded walkabout: %v", err)
	}
	ttesting.AssertEqualInt(t, "gif frames", len(g.Image), 2)
	ttesting.AssertEqualInt(t, "gif delay", g.Delay[0], 10)

	_, _, err = body.Record(-time.Second, 1)
	ttesting.AssertErrorIs(t, "negative step", err, resources.ErrInvalidArgument)
}
