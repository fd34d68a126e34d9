package bindpath

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is wrapped by every RangeError.
var ErrOutOfRange = errors.New("segment range out of bounds")

// RangeError reports an invalid Slice, Skip or Limit request.
type RangeError struct {
	From, To, Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bindpath: range [%d:%d] with %d segments: %s", e.From, e.To, e.Len, ErrOutOfRange)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
