package pointer

import "errors"

var (
	ErrInvalid  = errors.New("invalid pointer")
	ErrLocation = errors.New("invalid document location")
)
