// Package imageprint prints images and animations on a terminal.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/anim"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// Mode256Color prints two characters per pixel, colored with the
	// closest 256 color palette entry.
	Mode256Color Mode = iota
	// Mode24bit prints two characters per pixel with a 24 bit background
	// color escape sequence.
	Mode24bit
	// ModeNoColor prints characters only. Only makes sense without Blanks.
	ModeNoColor
	// ModeITerm sends the image as an inline PNG using iTerm2's escape
	// sequences.
	ModeITerm
	// ModeRasTerm uses kitty, iTerm or sixel graphics, whichever the
	// terminal supports.
	ModeRasTerm
)

var modeNames = map[string]Mode{
	"256color": Mode256Color,
	"24bit":    Mode24bit,
	"nocolor":  ModeNoColor,
	"iterm":    ModeITerm,
	"rasterm":  ModeRasTerm,
}

// ParseMode parses a mode name as accepted on command lines: 256color,
// 24bit, nocolor, iterm or rasterm.
func ParseMode(s string) (Mode, error) {
	m, ok := modeNames[s]
	if !ok {
		return 0, errors.Errorf("unknown print mode %q", s)
	}
	return m, nil
}

// Printer prints images to Out.
type Printer struct {
	Out  io.Writer
	Mode Mode
	// Blanks prints colored spaces instead of characters shaded by
	// brightness.
	Blanks bool
}

func (p *Printer) shade(col ic.Color) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == ModeNoColor {
			fmt.Fprint(p.Out, "  ")
		} else {
			fmt.Fprint(p.Out, "\x1b[0m  ")
		}
		return
	}

	s := "  "
	if !p.Blanks {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			s = ".."
		case a < 64:
			s = "--"
		case a < 128:
			s = "=="
		default:
			s = "##"
		}
	}

	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch p.Mode {
	case ModeNoColor:
		fmt.Fprint(p.Out, s)
	case Mode24bit:
		fmt.Fprintf(p.Out, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
	default:
		fmt.Fprint(p.Out, color.RGB(r, g, b, true).Sprint(s))
	}
}

func (p *Printer) printCharacters(i image.Image) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			p.shade(i.At(x, y))
		}
		if p.Mode != ModeNoColor {
			fmt.Fprint(p.Out, "\x1b[0m")
		}
		fmt.Fprint(p.Out, "\n")
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func (p *Printer) printITerm(i image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	bEnc.Close()
	fmt.Fprintf(p.Out, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, len(b.String()), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
	return nil
}

// Print draws a single image. The name is only used by modes which send
// whole files to the terminal.
func (p *Printer) Print(i image.Image, name string) error {
	switch p.Mode {
	case ModeITerm:
		return p.printITerm(i, name)
	case ModeRasTerm:
		return p.printRasTerm(i)
	default:
		p.printCharacters(i)
		return nil
	}
}

// Play shows images one after another in place, each for its delay, the
// passed number of times. Character modes rewind the cursor between images;
// graphics modes print the images below each other.
func (p *Printer) Play(images []image.Image, delays []time.Duration, loops int) error {
	if len(images) != len(delays) {
		return errors.Wrapf(anim.ErrInvalidArgument, "%d images but %d delays", len(images), len(delays))
	}
	for l := 0; l < loops; l++ {
		for idx, img := range images {
			if idx > 0 || l > 0 {
				if p.Mode == Mode256Color || p.Mode == Mode24bit || p.Mode == ModeNoColor {
					fmt.Fprintf(p.Out, "\x1b[%dA", img.Bounds().Dy())
				}
			}
			if err := p.Print(img, fmt.Sprintf("frame%d.png", idx)); err != nil {
				return err
			}
			time.Sleep(delays[idx])
		}
	}
	return nil
}
