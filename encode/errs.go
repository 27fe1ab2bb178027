package encode

import (
	"errors"
	"fmt"

	"github.com/signadot/docref/format"
)

var (
	ErrEncoding  = errors.New("encoding error")
	ErrNonFinite = fmt.Errorf("%w: non-finite number", ErrEncoding)
	ErrBadFormat = format.ErrBadFormat
)
