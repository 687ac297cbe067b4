package resources

// This file contains the per-extension decoders that turn raw archive
// payloads into assets.

import (
	"bytes"
	"path"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"gopkg.in/ini.v1"

	"badc0de.net/pkg/go-hypatia/anim"
)

// Decoder turns the raw payload stored under name into an asset. The whole
// raw map is passed so that a decoder can consult related files, such as a
// sidecar. Decoders only ever read raw payloads, never decoded assets.
type Decoder interface {
	Decode(raw RawAssetMap, name string) (Asset, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(raw RawAssetMap, name string) (Asset, error)

func (f DecoderFunc) Decode(raw RawAssetMap, name string) (Asset, error) {
	return f(raw, name)
}

// Passthrough wraps a payload as Raw, unmodified.
var Passthrough Decoder = DecoderFunc(func(raw RawAssetMap, name string) (Asset, error) {
	payload, err := lookupRaw(raw, name)
	if err != nil {
		return nil, err
	}
	return Raw(payload), nil
})

// DecoderTable maps lowercase file extensions, including the leading dot, to
// the decoder for files with that extension.
type DecoderTable map[string]Decoder

// DefaultDecoders returns the table for the file types found in game
// resources: PNG images kept as bytes, text, INI configuration, and animated
// GIFs with optional INI anchor sidecars.
func DefaultDecoders() DecoderTable {
	config := DecoderFunc(DecodeConfig)
	return DecoderTable{
		".png": DecoderFunc(DecodeBytes),
		".txt": DecoderFunc(DecodeText),
		".ini": config,
		".gif": GIFDecoder{Sidecar: config},
	}
}

// For returns the decoder for the passed file name, by its extension.
// Unknown extensions get Passthrough.
func (t DecoderTable) For(name string) Decoder {
	if d, ok := t[strings.ToLower(path.Ext(name))]; ok {
		return d
	}
	return Passthrough
}

// Decode decodes the payload stored under name with the decoder for its
// extension.
func (t DecoderTable) Decode(raw RawAssetMap, name string) (Asset, error) {
	glog.V(2).Infof("decoding %q (%d bytes)", name, len(raw[name]))
	return t.For(name).Decode(raw, name)
}

func lookupRaw(raw RawAssetMap, name string) ([]byte, error) {
	payload, ok := raw[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "no file %q", name)
	}
	return payload, nil
}

// DecodeBytes keeps the payload as Bytes.
func DecodeBytes(raw RawAssetMap, name string) (Asset, error) {
	payload, err := lookupRaw(raw, name)
	if err != nil {
		return nil, err
	}
	return Bytes(payload), nil
}

// DecodeText decodes the payload as UTF-8 text.
func DecodeText(raw RawAssetMap, name string) (Asset, error) {
	payload, err := lookupRaw(raw, name)
	if err != nil {
		return nil, err
	}
	s, err := decodeUTF8(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", name)
	}
	return Text(s), nil
}

// DecodeConfig decodes the payload as UTF-8 text and parses it as an INI
// document.
func DecodeConfig(raw RawAssetMap, name string) (Asset, error) {
	payload, err := lookupRaw(raw, name)
	if err != nil {
		return nil, err
	}
	s, err := decodeUTF8(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", name)
	}
	f, err := ini.Load([]byte(s))
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%q: %v", name, err)
	}
	return Config{f}, nil
}

func decodeUTF8(b []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", errors.Wrapf(ErrEncoding, "%v", err)
	}
	return string(out), nil
}

// GIFDecoder decodes animated GIFs.
//
// If a file with the same base name and an ".ini" extension is present, its
// raw payload is decoded with Sidecar and used as the anchor sidecar.
type GIFDecoder struct {
	Sidecar Decoder
}

// SidecarName returns the name of the anchor sidecar for the passed GIF.
func SidecarName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ".ini"
}

func (d GIFDecoder) Decode(raw RawAssetMap, name string) (Asset, error) {
	payload, err := lookupRaw(raw, name)
	if err != nil {
		return nil, err
	}

	var anchors *ini.File
	sidecar := SidecarName(name)
	if _, ok := raw[sidecar]; ok {
		sd := d.Sidecar
		if sd == nil {
			sd = DecoderFunc(DecodeConfig)
		}
		a, err := sd.Decode(raw, sidecar)
		if err != nil {
			return nil, errors.Wrapf(err, "anchor sidecar of %q", name)
		}
		cfg, ok := a.(Config)
		if !ok {
			return nil, errors.Wrapf(ErrParse, "anchor sidecar of %q decoded as %v, not config", name, a.Kind())
		}
		anchors = cfg.File
	}

	s, err := anim.FromGIF(bytes.NewReader(payload), anchors)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", name)
	}
	return Animation{s}, nil
}
