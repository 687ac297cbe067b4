package walkabout

import (
	"fmt"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-hypatia/resources"
)

var (
	// ErrBadWalkabout is matched by every *BadWalkaboutError.
	ErrBadWalkabout = errors.New("bad walkabout")

	// ErrNotFound is returned for grid entries or anchors which are needed
	// but absent.
	ErrNotFound = resources.ErrNotFound
)

// BadWalkaboutError reports a walkabout directory which cannot be turned
// into a walkabout: it has no animated sprites, or a sprite name does not
// follow the <action>_<direction> convention.
type BadWalkaboutError struct {
	FailedName string
	Reason     string
}

func (e *BadWalkaboutError) Error() string {
	return fmt.Sprintf("bad walkabout %q: %s", e.FailedName, e.Reason)
}

func (e *BadWalkaboutError) Is(target error) bool {
	return target == ErrBadWalkabout
}
