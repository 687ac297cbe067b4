package resources

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"badc0de.net/pkg/go-hypatia/anim"
)

// Kind tells which decoder produced an asset.
type Kind int

const (
	KindRaw Kind = iota
	KindBytes
	KindText
	KindConfig
	KindAnimation
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindConfig:
		return "config"
	case KindAnimation:
		return "animation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Asset is a decoded file of a resource. It is one of Raw, Bytes, Text,
// Config or Animation.
type Asset interface {
	Kind() Kind
}

// Raw is the untouched payload of a file whose extension has no decoder.
type Raw []byte

func (Raw) Kind() Kind { return KindRaw }

// Bytes is a binary payload kept for later consumption, such as an embedded
// image.
type Bytes []byte

func (Bytes) Kind() Kind { return KindBytes }

// Reader returns a new reader over the payload.
func (b Bytes) Reader() *bytes.Reader {
	return bytes.NewReader(b)
}

// DecodeImage decodes the payload as a PNG or GIF image.
func (b Bytes) DecodeImage() (image.Image, error) {
	img, _, err := image.Decode(b.Reader())
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "decoding image: %v", err)
	}
	return img, nil
}

// Text is decoded UTF-8 text.
type Text string

func (Text) Kind() Kind { return KindText }

// Config is a parsed INI document.
type Config struct {
	*ini.File
}

func (Config) Kind() Kind { return KindConfig }

// Animation is a decoded animated image.
//
// The sprite's cursor is shared by everyone holding the asset. Consumers which
// advance it should work on a Clone.
type Animation struct {
	*anim.AnimatedSprite
}

func (Animation) Kind() Kind { return KindAnimation }
