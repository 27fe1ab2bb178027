package docref

import (
	"errors"
	"fmt"

	"github.com/signadot/docref/codec"
	"github.com/signadot/docref/fetch"
	"github.com/signadot/docref/pointer"
)

var (
	ErrInvalidPointer      = pointer.ErrInvalid
	ErrPathNotFound        = errors.New("path not found")
	ErrDocumentUnavailable = fetch.ErrUnavailable
	ErrUnsupportedEncoding = codec.ErrUnsupportedEncoding
	ErrCyclicReference     = errors.New("cyclic reference")
)

// RefError reports the reference whose resolution failed.
type RefError struct {
	// Ref is the reference string as written.
	Ref string
	// Document is the document containing the reference.
	Document pointer.Identity
	// At is the location of the object holding the reference.
	At  string
	Err error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("reference %q at %s%s: %v", e.Ref, e.Document, e.At, e.Err)
}

func (e *RefError) Unwrap() error { return e.Err }

// PathError reports a path absent from a document.
type PathError struct {
	Path     string
	Document pointer.Identity
	// Missing is the first segment of Path which was not found.
	Missing string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: unable to find path %q (at %q) in the document %q", ErrPathNotFound, e.Path, e.Missing, e.Document)
}

func (e *PathError) Is(target error) bool {
	return target == ErrPathNotFound
}
