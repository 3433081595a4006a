package harness

import (
	"errors"
	"fmt"
)

// MismatchError indicates that a sink's read-back did not reproduce the
// appended message sequence.
type MismatchError struct {
	Sink     string
	Expected []string
	Observed []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sink %s read-back mismatch: expected %q, observed %q",
		e.Sink, e.Expected, e.Observed)
}

// IsMismatch checks if an error is a MismatchError.
func IsMismatch(err error) bool {
	var mismatchError *MismatchError
	return errors.As(err, &mismatchError)
}
