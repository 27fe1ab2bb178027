package docref

import (
	"context"
	"fmt"

	"github.com/signadot/docref/debug"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

// resolve runs the resolution pass of d unless it has started already.  A
// document whose pass is under way is returned as is: its tree is live and
// partially resolved.
func (s *Session) resolve(ctx context.Context, d *Document) error {
	switch d.state {
	case resolving, resolved:
		return nil
	case failed:
		return d.err
	}
	if s.prefetch > 0 {
		s.prefetchFrom(ctx, d)
	}
	d.state = resolving
	if debug.Resolve() {
		debug.Logf("resolve %s\n", d.id)
	}
	if err := s.expand(ctx, d, d.tree.Root()); err != nil {
		d.state = failed
		d.err = err
		s.log.Warn("resolution failed", "doc", d.id.String(), "error", err)
		return err
	}
	d.state = resolved
	return nil
}

// subtree returns the node of d at segs, resolving d first.
func (s *Session) subtree(ctx context.Context, d *Document, segs []string) (ir.ID, error) {
	if err := s.resolve(ctx, d); err != nil {
		return ir.NoID, err
	}
	return find(d, segs)
}

func find(d *Document, segs []string) (ir.ID, error) {
	id, at := d.tree.Lookup(d.tree.Root(), segs)
	if id == ir.NoID {
		return ir.NoID, &PathError{
			Path:     "#" + pointer.Fragment(segs),
			Document: d.id,
			Missing:  segs[at],
		}
	}
	return id, nil
}

// target returns the document and node addressed by r.
func (s *Session) target(ctx context.Context, host *Document, r Ref) (*Document, ir.ID, error) {
	doc := host
	if !r.Nested {
		var err error
		doc, err = s.document(ctx, r.Document)
		if err != nil {
			return nil, ir.NoID, err
		}
	}
	id, err := s.subtree(ctx, doc, r.Path)
	if err != nil {
		return nil, ir.NoID, err
	}
	return doc, id, nil
}

// markers returns the objects under top holding a reference, in document
// order.
func (s *Session) markers(t *ir.Tree, top ir.ID) []ir.ID {
	var res []ir.ID
	t.Walk(top, func(id ir.ID) bool {
		if _, ok := s.markerRef(t, id); ok {
			res = append(res, id)
		}
		return true
	})
	return res
}

// markerRef returns the reference held by the object id.  Only string
// valued reference properties are references.
func (s *Session) markerRef(t *ir.Tree, id ir.ID) (string, bool) {
	v, ok := t.Field(id, s.marker)
	if !ok || t.Type(v) != ir.StringType {
		return "", false
	}
	return t.Node(v).String, true
}

// expand replaces the references under top in d by copies of their
// targets.
//
// The references are collected before any replacement.  A reference whose
// object was detached by an earlier replacement is skipped: its content was
// subsumed by a copy which has been expanded already.
func (s *Session) expand(ctx context.Context, d *Document, top ir.ID) error {
	t := d.tree
	for _, m := range s.markers(t, top) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.Detached(m) {
			continue
		}
		raw, _ := s.markerRef(t, m)
		p, err := pointer.Parse(d.id, raw)
		if err != nil {
			return d.refError(raw, m, err)
		}
		r := Ref{Pointer: p, Root: d.isRoot()}
		if !s.policy.ShouldResolve(r) {
			continue
		}
		key := p.Key()
		if s.visiting[key] {
			if s.policy.OnCycle(r) == CycleFail {
				return d.refError(raw, m, fmt.Errorf("%w: %s", ErrCyclicReference, key))
			}
			s.log.Info("keeping cyclic reference", "ref", raw, "doc", d.id.String(), "at", t.Path(m))
			continue
		}
		s.visiting[key] = true
		src, tid, err := s.splice(ctx, d, m, r)
		delete(s.visiting, key)
		if err != nil {
			return d.refError(raw, m, err)
		}
		if debug.Splice() && src != nil {
			debug.Logf("spliced %s at %s%s\n", key, d.id, t.Path(tid))
			debug.LogAny(ir.ToAny(t, tid))
		}
	}
	return nil
}

// refCycle reports whether id in d is a reference which, followed through
// further references only, comes back to a reference being resolved.  Such
// a target expands to nothing but another reference of the cycle.
func (s *Session) refCycle(d *Document, id ir.ID) bool {
	seen := map[string]bool{}
	for {
		raw, ok := s.markerRef(d.tree, id)
		if !ok {
			return false
		}
		p, err := pointer.Parse(d.id, raw)
		if err != nil || !s.policy.ShouldResolve(Ref{Pointer: p, Root: d.isRoot()}) {
			return false
		}
		key := p.Key()
		if s.visiting[key] || seen[key] {
			return true
		}
		seen[key] = true
		if !p.Nested && p.Document != d.id {
			if d, ok = s.Lookup(p.Document); !ok {
				return false
			}
		}
		if id, _ = d.tree.Lookup(d.tree.Root(), p.Path); id == ir.NoID {
			return false
		}
	}
}

// splice resolves the reference r held by the object m of host and has the
// policy put a copy of the target in place of m.  It returns the document
// supplying the copy, or nil if m was detached meanwhile.
func (s *Session) splice(ctx context.Context, host *Document, m ir.ID, r Ref) (*Document, ir.ID, error) {
	src, tid, err := s.target(ctx, host, r)
	if err != nil {
		return nil, ir.NoID, err
	}
	// a target whose document is mid pass may hold unexpanded references.
	if src.state == resolving {
		if err := s.expand(ctx, src, tid); err != nil {
			return nil, ir.NoID, err
		}
		// the target itself may have been a reference.
		if src.tree.Detached(tid) {
			if tid, err = find(src, r.Path); err != nil {
				return nil, ir.NoID, err
			}
		}
	}
	if host.tree.Detached(m) {
		return nil, ir.NoID, nil
	}
	if s.refCycle(src, tid) {
		if s.policy.OnCycle(r) == CycleFail {
			return nil, ir.NoID, fmt.Errorf("%w: %s", ErrCyclicReference, r.Key())
		}
		s.log.Info("keeping cyclic reference", "ref", r.Ref, "doc", host.id.String(), "at", host.tree.Path(m))
		return nil, ir.NoID, nil
	}
	repl := host.tree.Copy(src.tree, tid)
	sp := &Splice{
		Ref:         r,
		Tree:        host.tree,
		Host:        host.id,
		Marker:      m,
		MarkerKey:   s.marker,
		Replacement: repl,
	}
	if err := s.policy.ApplySplice(sp); err != nil {
		return nil, ir.NoID, err
	}
	return src, sp.Replacement, nil
}
