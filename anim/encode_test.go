package anim

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/ericpauley/go-quantize/quantize"

	"badc0de.net/pkg/go-hypatia/ttesting"
)

func TestEncodeGIFRoundTrip(t *testing.T) {
	s, _, _ := twoFrames(t)

	for _, tc := range []struct {
		name string
		o    *EncodeOptions
	}{
		{"default quantizer", nil},
		{"median cut from go-quantize", &EncodeOptions{Quantizer: quantize.MedianCutQuantizer{}, NumColor: 16}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := s.EncodeGIF(buf, tc.o); err != nil {
				t.Fatalf("failed to encode: %v", err)
			}
			g, err := gif.DecodeAll(buf)
			if err != nil {
				t.Fatalf("failed to decode encoded gif: %v", err)
			}
			ttesting.AssertEqualInt(t, "frame count", len(g.Image), 2)
			ttesting.AssertEqualInt(t, "first delay", g.Delay[0], 10)
			ttesting.AssertEqualInt(t, "second delay", g.Delay[1], 15)
			if !sameColor(g.Image[1].At(0, 0), color.NRGBA{B: 255, A: 255}) {
				t.Errorf("second frame: got %v; want blue", g.Image[1].At(0, 0))
			}
		})
	}
}

func TestEncodeGIFRejectsMismatchedInput(t *testing.T) {
	buf := &bytes.Buffer{}
	err := EncodeGIF(buf, nil, nil, nil)
	ttesting.AssertErrorIs(t, "no frames", err, ErrInvalidArgument)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	err = EncodeGIF(buf, []image.Image{img}, []time.Duration{time.Second, time.Second}, nil)
	ttesting.AssertErrorIs(t, "delay count mismatch", err, ErrInvalidArgument)
}
