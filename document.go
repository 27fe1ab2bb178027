package docref

import (
	"context"

	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

type state int

const (
	unresolved state = iota
	// resolving documents count as resolved: requests for them made while
	// their own pass is under way see the live tree.
	resolving
	resolved
	failed
)

// Document is a document of a Session.  Its tree is parsed once and
// rewritten in place by resolution.
type Document struct {
	sess     *Session
	id       pointer.Identity
	original []byte
	tree     *ir.Tree
	root     bool

	state state
	err   error
}

func (d *Document) Identity() pointer.Identity { return d.id }

func (d *Document) Session() *Session { return d.sess }

// Original returns the document text as fetched.
func (d *Document) Original() []byte { return d.original }

// Resolved reports whether the document was resolved without error.
func (d *Document) Resolved() bool {
	d.sess.resolveMu.Lock()
	defer d.sess.resolveMu.Unlock()
	return d.state == resolved
}

// Tree resolves the document and returns its tree.  Resolution happens once:
// later calls return the same tree, or the error of the failed resolution.
func (d *Document) Tree(ctx context.Context) (*ir.Tree, error) {
	s := d.sess
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()
	if err := s.resolve(ctx, d); err != nil {
		return nil, err
	}
	return d.tree, nil
}

// Subtree resolves the document and returns the node at path segs.
func (d *Document) Subtree(ctx context.Context, segs []string) (*ir.Tree, ir.ID, error) {
	s := d.sess
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()
	id, err := s.subtree(ctx, d, segs)
	if err != nil {
		return nil, ir.NoID, err
	}
	return d.tree, id, nil
}

// Get returns the resolved node addressed by ref, a reference interpreted
// relative to d.
func (d *Document) Get(ctx context.Context, ref string) (*ir.Tree, ir.ID, error) {
	p, err := pointer.Parse(d.id, ref)
	if err != nil {
		return nil, ir.NoID, err
	}
	target := d
	if !p.Nested {
		if target, err = d.sess.LoadIdentity(ctx, p.Document); err != nil {
			return nil, ir.NoID, err
		}
	}
	return target.Subtree(ctx, p.Path)
}

// Text resolves the document and serializes it with the session's output
// codec.
func (d *Document) Text(ctx context.Context) ([]byte, error) {
	t, err := d.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return d.sess.out.Serialize(t)
}

func (d *Document) refError(ref string, at ir.ID, err error) error {
	return &RefError{Ref: ref, Document: d.id, At: d.tree.Path(at), Err: err}
}

func (d *Document) isRoot() bool {
	d.sess.mu.Lock()
	defer d.sess.mu.Unlock()
	return d.root
}
