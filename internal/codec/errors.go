package codec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a payload could not be turned into a game.
type ErrorKind string

const (
	MalformedJSON ErrorKind = "malformed_json"
	InvalidShape  ErrorKind = "invalid_shape"
	InvalidGame   ErrorKind = "invalid_game"
)

// DecodeError reports a failed Unmarshal.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode game (%s): %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf returns the kind of a DecodeError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

func shapeErrorf(format string, args ...any) error {
	return &DecodeError{Kind: InvalidShape, Err: fmt.Errorf(format, args...)}
}
