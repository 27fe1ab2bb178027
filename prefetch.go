package docref

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

// prefetchFrom loads the documents reachable from d by references the
// policy would resolve, breadth first, with at most s.prefetch fetches in
// flight.  Failures are only logged: resolution reports them if the
// document turns out to be needed.
func (s *Session) prefetchFrom(ctx context.Context, d *Document) {
	seen := map[pointer.Identity]bool{d.id: true}
	frontier := s.externalRefs(d, seen)
	for len(frontier) > 0 && ctx.Err() == nil {
		docs := make([]*Document, len(frontier))
		var g errgroup.Group
		g.SetLimit(s.prefetch)
		for i, id := range frontier {
			g.Go(func() error {
				doc, err := s.document(ctx, id)
				if err != nil {
					s.log.Debug("prefetch failed", "doc", id.String(), "error", err)
					return nil
				}
				docs[i] = doc
				return nil
			})
		}
		g.Wait()
		frontier = frontier[:0:0]
		for _, doc := range docs {
			if doc != nil && doc.state == unresolved {
				frontier = append(frontier, s.externalRefs(doc, seen)...)
			}
		}
	}
}

// externalRefs returns the unseen documents referenced from the tree of d.
func (s *Session) externalRefs(d *Document, seen map[pointer.Identity]bool) []pointer.Identity {
	var res []pointer.Identity
	root := d.isRoot()
	for _, m := range s.markers(d.tree, d.tree.Root()) {
		p, err := s.markerPointer(d, m)
		if err != nil || p.Nested || seen[p.Document] {
			continue
		}
		if !s.policy.ShouldResolve(Ref{Pointer: p, Root: root}) {
			continue
		}
		seen[p.Document] = true
		res = append(res, p.Document)
	}
	return res
}

func (s *Session) markerPointer(d *Document, m ir.ID) (pointer.Pointer, error) {
	raw, _ := s.markerRef(d.tree, m)
	return pointer.Parse(d.id, raw)
}
