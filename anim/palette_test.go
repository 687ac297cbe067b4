package anim

import (
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-hypatia/ttesting"
)

func TestPaletteCycleTwoColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, testRed)
	img.Set(1, 0, testBlue)

	s, err := PaletteCycle(img)
	if err != nil {
		t.Fatalf("failed to palette cycle: %v", err)
	}
	ttesting.AssertEqualInt(t, "one frame per palette entry", s.Len(), 2)
	ttesting.AssertEqualDuration(t, "frame duration", s.Frame(0).Duration, PaletteCycleFrameDuration)
	ttesting.AssertEqualDuration(t, "total duration", s.TotalDuration(), 2*PaletteCycleFrameDuration)

	first := s.Frame(0).Surface
	if !sameColor(first.At(0, 0), testBlue) || !sameColor(first.At(1, 0), testRed) {
		t.Errorf("first frame should have colors swapped")
	}
	last := s.Frame(1).Surface
	if !sameColor(last.At(0, 0), testRed) || !sameColor(last.At(1, 0), testBlue) {
		t.Errorf("last frame should equal the original image")
	}
}

func TestPaletteCycleRotatesBackward(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, testRed)
	img.Set(1, 0, testGreen)
	img.Set(0, 1, testBlue)
	img.Set(1, 1, testRed)

	pal := Palette(img)
	ttesting.AssertEqualInt(t, "palette size", len(pal), 3)
	if !sameColor(pal[0], testRed) || !sameColor(pal[1], testGreen) || !sameColor(pal[2], testBlue) {
		t.Fatalf("palette should be in row-major order of first appearance; got %v", pal)
	}

	s, err := PaletteCycle(img)
	if err != nil {
		t.Fatalf("failed to palette cycle: %v", err)
	}
	ttesting.AssertEqualInt(t, "frame count", s.Len(), 3)

	for _, tc := range []struct {
		name  string
		frame int
		x, y  int
		want  color.Color
	}{
		{"frame 0 moves red to blue", 0, 0, 0, testBlue},
		{"frame 0 moves green to red", 0, 1, 0, testRed},
		{"frame 0 moves blue to green", 0, 0, 1, testGreen},
		{"frame 1 moves red to green", 1, 1, 1, testGreen},
		{"frame 1 moves green to blue", 1, 1, 0, testBlue},
		{"frame 2 is the original", 2, 1, 0, testGreen},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Frame(tc.frame).Surface.At(tc.x, tc.y)
			if !sameColor(got, tc.want) {
				t.Errorf("got %v; want %v", got, tc.want)
			}
		})
	}
}

func TestPaletteCycleStrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, testRed)
	img.Set(1, 0, testGreen)
	img.Set(2, 0, testBlue)

	s, err := PaletteCycle(img)
	if err != nil {
		t.Fatalf("failed to palette cycle: %v", err)
	}
	for _, tc := range []struct {
		frame int
		want  []color.Color
	}{
		{0, []color.Color{testBlue, testRed, testGreen}},
		{1, []color.Color{testGreen, testBlue, testRed}},
		{2, []color.Color{testRed, testGreen, testBlue}},
	} {
		surface := s.Frame(tc.frame).Surface
		for x, want := range tc.want {
			if got := surface.At(x, 0); !sameColor(got, want) {
				t.Errorf("frame %d pixel %d: got %v; want %v", tc.frame, x, got, want)
			}
		}
	}
}

func TestPaletteCycleEmptyImage(t *testing.T) {
	_, err := PaletteCycle(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	ttesting.AssertErrorIs(t, "empty image", err, ErrInvalidArgument)
}
