package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/docref/format"
)

var (
	ErrParse     = errors.New("parse error")
	ErrEmpty     = fmt.Errorf("%w: empty document", ErrParse)
	ErrBadFormat = format.ErrBadFormat
)
