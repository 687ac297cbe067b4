package anim

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a named thing (an anchor label, a sidecar
	// entry for a frame) is absent.
	ErrNotFound = errors.New("not found")

	// ErrParse is returned for malformed anchor pairs and undecodable
	// animation containers.
	ErrParse = errors.New("parse error")

	// ErrInvalidArgument is returned for negative tick deltas and for frame
	// sequences which cannot form a timeline (empty, non-contiguous, or with
	// zero total duration).
	ErrInvalidArgument = errors.New("invalid argument")
)
