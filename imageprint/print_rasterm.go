//go:build !windows

package imageprint

import (
	"fmt"
	"image"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// printRasTerm draws an image using the RasTerm library.
//
// This enables drawing in kitty, iTerm, WezTerm and sixel capable terminals.
func (p *Printer) printRasTerm(i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(p.Out, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(p.Out, i)
	default:
		capable, serr := rasterm.IsSixelCapable()
		if serr != nil || !capable {
			return errors.New("terminal supports neither kitty, iterm nor sixel graphics")
		}
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.ZP)
		err = rasterm.Settings{}.SixelWriteImage(p.Out, palettedImage)
	}
	if err != nil {
		return errors.Wrap(err, "rasterm")
	}
	fmt.Fprint(p.Out, "\n")
	return nil
}
