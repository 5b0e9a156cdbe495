package quovadis

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrGestureRejected indicates a predictive-back gesture could not start
	// because the root stack has nothing to pop. This is normal flow
	// control, not a fault; the gesture source simply gets no preview.
	ErrGestureRejected = errors.New("predictive back rejected: nothing to pop")

	// ErrGestureBusy indicates a gesture start arrived while a previous
	// gesture was still committing or cancelling. Re-triggers are ignored
	// until the coordinator returns to idle.
	ErrGestureBusy = errors.New("predictive back already in flight")

	// ErrNoNavigator indicates the engine was constructed without a
	// navigator and cannot resolve authoritative state.
	ErrNoNavigator = errors.New("no navigator configured")

	// ErrNoContentResolver indicates the engine was constructed without a
	// content resolver and could never render a screen.
	ErrNoContentResolver = errors.New("no content resolver configured")
)

// ResolutionError represents a configuration fault in an external resolver:
// a destination with no registered content. The engine cannot recover from
// it at the domain level, so it is surfaced to the caller rather than
// swallowed like wrapper or override misses.
type ResolutionError struct {
	Op  string // operation that failed (e.g. "resolve_content")
	Key string // node key being rendered
	Err error  // underlying error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quovadis: %s: key %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("quovadis: %s: key %q", e.Op, e.Key)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsResolutionError checks if an error is a resolver configuration fault.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}
