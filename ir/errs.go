package ir

import (
	"errors"
	"fmt"
)

var (
	ErrWrongType = errors.New("wrong type")
	ErrInvalidID = errors.New("invalid node id")
	ErrAttached  = errors.New("node already attached")
)

// TypeError reports a conversion of a node to a Go value of a type the node
// does not hold.
type TypeError struct {
	Path string
	Want Type
	Got  Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s at %s: want %s, got %s", ErrWrongType, e.Path, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrWrongType
}
