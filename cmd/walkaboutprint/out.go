package main

import (
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-hypatia/imageprint"
)

// fit shrinks img so that it fits on the terminal.
func fit(img image.Image, m imageprint.Mode) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		return img
	}
	if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (m == imageprint.ModeRasTerm || m == imageprint.ModeITerm) {
		// Prefer pixel size if there's a chance we print out an image rather than characters.
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	// Every pixel takes two columns.
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
}
