package route

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
)

// ErrMalformedPath is matched by every *MalformedPathError via errors.Is.
var ErrMalformedPath = errors.New("malformed content path")

// MalformedPathError reports a content path that does not split into
// guide/framework/language/chapter.
type MalformedPathError struct {
	// Path is the path as received, before normalization.
	Path string
	// Segments is the number of non-empty segments found.
	Segments int
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("unexpected content path %q: want %d segments, got %d", e.Path, segmentCount, e.Segments)
}

// Is makes errors.Is(err, ErrMalformedPath) hold.
func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// Classified wraps the error as a fatal validation error for the build.
func (e *MalformedPathError) Classified() *ferrors.ClassifiedError {
	return ferrors.ValidationError(ErrMalformedPath.Error()).
		WithCause(e).
		WithContext("path", e.Path).
		WithContext("segments", e.Segments).
		Build()
}
