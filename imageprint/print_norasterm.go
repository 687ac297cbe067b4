//go:build windows

package imageprint

import (
	"image"

	"github.com/pkg/errors"
)

func (p *Printer) printRasTerm(i image.Image) error {
	return errors.New("rasterm not supported on windows")
}
