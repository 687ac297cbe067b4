package resources

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/anim"
)

var (
	// ErrNotFound is returned for a missing resource directory or archive, and
	// for lookups of names the resource does not contain.
	ErrNotFound = anim.ErrNotFound

	// ErrEncoding is returned when a text asset is not valid UTF-8.
	ErrEncoding = errors.New("encoding error")

	// ErrParse is returned for malformed configuration documents, anchor
	// sidecars and animated images.
	ErrParse = anim.ErrParse

	// ErrInvalidArgument is returned when an asset is requested as a kind it
	// was not decoded as, and for resource names which are not a single path
	// element.
	ErrInvalidArgument = anim.ErrInvalidArgument
)
