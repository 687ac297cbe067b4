// Command walkaboutprint prints a walkabout, along with its children, on the
// terminal. It can also write the walkabout out as an animated GIF, or
// palette cycle a PNG from a resource and print that.
package main

import (
	"flag"
	"image"
	"os"
	"strings"
	"time"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/anim"
	"badc0de.net/pkg/go-hypatia/imageprint"
	"badc0de.net/pkg/go-hypatia/paths"
	"badc0de.net/pkg/go-hypatia/resources"
	"badc0de.net/pkg/go-hypatia/walkabout"
)

var (
	walkaboutName = flag.String("walkabout", "", "walkabout directory (or zip archive) to print")
	childNames    = flag.String("children", "", "comma separated walkabouts to attach on the head anchor")
	action        = flag.String("action", "stand", "action to show: stand or walk")
	direction     = flag.String("direction", "south", "direction to show, such as south or north_east")
	paletteCycle  = flag.String("palette_cycle", "", "category/name/file.png of a PNG to palette cycle instead of printing a walkabout")
	gifOut        = flag.String("gif_out", "", "if set, write the animation to this GIF file instead of printing it")

	mode     = flag.String("mode", "24bit", "how to print: 256color, 24bit, nocolor, iterm or rasterm")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", false, "whether to shrink frames to fit the terminal")
	loops    = flag.Int("loops", 1, "how many times to play the animation")
	banner   = flag.Bool("banner", false, "print a banner first")

	resourcesPath string
)

func loadWalkabout(src resources.Source) (*walkabout.Walkabout, error) {
	var children []*walkabout.Walkabout
	if *childNames != "" {
		for _, name := range strings.Split(*childNames, ",") {
			c, err := walkabout.New(src, strings.TrimSpace(name), image.Point{})
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
	}

	w, err := walkabout.New(src, *walkaboutName, image.Point{}, children...)
	if err != nil {
		return nil, err
	}

	a, ok := walkabout.ParseAction(*action)
	if !ok {
		return nil, errors.Wrapf(resources.ErrInvalidArgument, "unknown action %q", *action)
	}
	d, ok := walkabout.ParseDirection(*direction)
	if !ok {
		return nil, errors.Wrapf(resources.ErrInvalidArgument, "unknown direction %q", *direction)
	}
	if err := w.SetState(a, d); err != nil {
		return nil, err
	}
	if err := w.RuntimeSetup(); err != nil {
		glog.Warningf("walkabout %q is not fully set up: %v", w.Name, err)
	}
	return w, nil
}

func loadPaletteCycle(src resources.Source) ([]image.Image, []time.Duration, error) {
	parts := strings.SplitN(*paletteCycle, "/", 3)
	if len(parts) != 3 {
		return nil, nil, errors.Wrapf(resources.ErrInvalidArgument, "--palette_cycle wants category/name/file.png, got %q", *paletteCycle)
	}
	res, err := src.Load(parts[0], parts[1])
	if err != nil {
		return nil, nil, err
	}
	b, err := res.Bytes(parts[2])
	if err != nil {
		return nil, nil, err
	}
	img, err := b.DecodeImage()
	if err != nil {
		return nil, nil, err
	}
	s, err := anim.PaletteCycle(img)
	if err != nil {
		return nil, nil, err
	}
	images := make([]image.Image, 0, s.Len())
	delays := make([]time.Duration, 0, s.Len())
	for _, f := range s.Frames() {
		images = append(images, f.Surface)
		delays = append(delays, f.Duration)
	}
	return images, delays, nil
}

func main() {
	paths.SetupResourcesRootFlag(&resourcesPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("hypatia", "", true).Print()
	}

	m, err := imageprint.ParseMode(*mode)
	if err != nil {
		glog.Exitf("%v", err)
	}

	src := resources.NewLoader(resourcesPath, resources.DefaultDecoders())

	var images []image.Image
	var delays []time.Duration
	switch {
	case *paletteCycle != "":
		images, delays, err = loadPaletteCycle(src)
	case *walkaboutName != "":
		var w *walkabout.Walkabout
		if w, err = loadWalkabout(src); err == nil {
			images, delays, err = w.Record(0, 0)
		}
	default:
		glog.Exit("pass --walkabout or --palette_cycle")
	}
	if err != nil {
		glog.Exitf("%v", err)
	}

	if *gifOut != "" {
		if err := writeGIF(*gifOut, images, delays); err != nil {
			glog.Exitf("%v", err)
		}
		return
	}

	p := &imageprint.Printer{Out: os.Stdout, Mode: m, Blanks: *blanks}
	if *downsize {
		for idx, img := range images {
			images[idx] = fit(img, m)
		}
	}
	if err := p.Play(images, delays, *loops); err != nil {
		glog.Exitf("%v", err)
	}
}

func writeGIF(path string, images []image.Image, delays []time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := anim.EncodeGIF(f, images, delays, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
