package tokenstream

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrEndOfInput is returned when a read is attempted with nothing left to
// consume. It is always distinct from a kind mismatch, so callers can tell
// "wrong shape" from "not enough data".
var ErrEndOfInput = errors.New("unexpected end of input")

// ErrTrailingInput is returned by [Unmarshal] when decoding the target value
// succeeded but did not consume the whole input sequence.
var ErrTrailingInput = errors.New("unexpected input remaining")

// MismatchError is returned when a scalar of one kind was requested but the
// next token carries a different kind. The token is not consumed.
type MismatchError struct {
	Expected Kind
	Found    Kind
}

func (m MismatchError) Error() string {
	return fmt.Sprintf("expected %s but found %s", m.Expected, m.Found)
}

// NotSupportedError indicates a target type outside of the supported
// vocabulary, e.g. a string, map or float target.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}
