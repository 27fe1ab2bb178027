package parse

import (
	"fmt"

	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
)

// Parse parses d into a tree.  The default format is YAML, which also
// accepts JSON documents.
func Parse(d []byte, opts ...ParseOption) (*ir.Tree, error) {
	o := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(o)
	}
	var (
		t   *ir.Tree
		err error
	)
	switch o.format {
	case format.JSONFormat:
		t, err = parseJSON(d, o)
	case format.YAMLFormat:
		t, err = parseYAML(d)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, o.format)
	}
	if err != nil {
		if o.source != "" {
			return nil, fmt.Errorf("%s: %w", o.source, err)
		}
		return nil, err
	}
	return t, nil
}
