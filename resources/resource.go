package resources

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"badc0de.net/pkg/go-hypatia/anim"
)

// Resource is the fully decoded content of one resource archive.
type Resource struct {
	Category string
	Name     string

	assets map[string]Asset
}

// Decode decodes every payload of raw with the decoder table. The raw map is
// not modified; all decoders see the same raw payloads. Nothing is returned
// if any file fails to decode.
func Decode(category, name string, raw RawAssetMap, table DecoderTable) (*Resource, error) {
	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	assets := make(map[string]Asset, len(raw))
	for _, n := range names {
		a, err := table.Decode(raw, n)
		if err != nil {
			return nil, errors.Wrapf(err, "resource %s/%s", category, name)
		}
		assets[n] = a
	}
	return &Resource{
		Category: category,
		Name:     name,
		assets:   assets,
	}, nil
}

// Get returns the asset stored under the passed file name.
func (r *Resource) Get(name string) (Asset, error) {
	a, ok := r.assets[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "resource %s/%s has no %q", r.Category, r.Name, name)
	}
	return a, nil
}

// Has reports whether the resource contains the passed file name.
func (r *Resource) Has(name string) bool {
	_, ok := r.assets[name]
	return ok
}

// Len returns the number of assets.
func (r *Resource) Len() int {
	return len(r.assets)
}

// Names returns all file names in the resource, sorted.
func (r *Resource) Names() []string {
	names := make([]string, 0, len(r.assets))
	for n := range r.assets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByExtension returns all assets whose file extension matches ext, compared
// without regard to case. The leading dot of ext is optional.
//
// If there are no such assets, the returned map is nil and ok is false; a
// returned map is never empty.
func (r *Resource) ByExtension(ext string) (assets map[string]Asset, ok bool) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for n, a := range r.assets {
		if strings.ToLower(path.Ext(n)) != ext {
			continue
		}
		if assets == nil {
			assets = map[string]Asset{}
		}
		assets[n] = a
	}
	return assets, assets != nil
}

func (r *Resource) typed(name string, kind Kind) (Asset, error) {
	a, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if a.Kind() != kind {
		return nil, errors.Wrapf(ErrInvalidArgument, "%q is %v, not %v", name, a.Kind(), kind)
	}
	return a, nil
}

// Text returns the text asset stored under the passed name.
func (r *Resource) Text(name string) (string, error) {
	a, err := r.typed(name, KindText)
	if err != nil {
		return "", err
	}
	return string(a.(Text)), nil
}

// Config returns the configuration asset stored under the passed name.
func (r *Resource) Config(name string) (*ini.File, error) {
	a, err := r.typed(name, KindConfig)
	if err != nil {
		return nil, err
	}
	return a.(Config).File, nil
}

// Bytes returns the byte stream asset stored under the passed name.
func (r *Resource) Bytes(name string) (Bytes, error) {
	a, err := r.typed(name, KindBytes)
	if err != nil {
		return nil, err
	}
	return a.(Bytes), nil
}

// Animation returns the animation stored under the passed name.
//
// The returned sprite is shared with every other caller; Clone it before
// advancing.
func (r *Resource) Animation(name string) (*anim.AnimatedSprite, error) {
	a, err := r.typed(name, KindAnimation)
	if err != nil {
		return nil, err
	}
	return a.(Animation).AnimatedSprite, nil
}

func (r *Resource) String() string {
	return fmt.Sprintf("<resource %s/%s assets(%d)>", r.Category, r.Name, len(r.assets))
}
