package docref

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/parse"
)

// Merge replaces the Marker by the Replacement patched with the other
// properties of the Marker, following JSON merge patch semantics: a null
// property deletes, objects merge recursively and anything else overwrites.
// Fields keep the order of the Replacement, new ones follow in Marker order.
func (s *Splice) Merge() error {
	fields, values, err := s.Tree.AsObject(s.Marker)
	if err != nil || len(fields) <= 1 {
		return s.Inline()
	}
	if err := s.Reanchor(); err != nil {
		return err
	}
	patch := ir.New()
	obj := patch.NewObject()
	for i, f := range fields {
		if f == s.MarkerKey {
			continue
		}
		if err := patch.Set(obj, f, patch.Copy(s.Tree, values[i])); err != nil {
			return err
		}
	}
	if err := patch.SetRoot(obj); err != nil {
		return err
	}
	merged, err := mergePatch(s.Tree, s.Replacement, patch)
	if err != nil {
		return fmt.Errorf("merging siblings of %s: %w", s.Ref.Ref, err)
	}
	if err := ir.OrderLike(merged, merged.Root(), []*ir.Tree{s.Tree, patch}, []ir.ID{s.Replacement, obj}); err != nil {
		return err
	}
	s.Replacement = s.Tree.Copy(merged, merged.Root())
	return s.Tree.Replace(s.Marker, s.Replacement)
}

func mergePatch(doc *ir.Tree, id ir.ID, patch *ir.Tree) (*ir.Tree, error) {
	d, err := wireJSON(doc, id)
	if err != nil {
		return nil, err
	}
	p, err := wireJSON(patch, patch.Root())
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out, parse.ParseJSON(), parse.StrictJSON(true))
}

func wireJSON(t *ir.Tree, id ir.ID) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	err := encode.EncodeNode(t, id, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true))
	return buf.Bytes(), err
}
