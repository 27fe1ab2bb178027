package docref

import (
	"fmt"

	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

// CycleAction is what a Policy wants done with a reference whose target is
// being resolved further up the chain of references leading to it.
type CycleAction int

const (
	// CycleKeep leaves the reference in place, unresolved.  Its target
	// is then unrolled once: the reference is copied into the expansion
	// of the target, where it remains.
	CycleKeep CycleAction = iota
	// CycleFail fails resolution with ErrCyclicReference.
	CycleFail
)

func (a CycleAction) String() string {
	switch a {
	case CycleKeep:
		return "keep"
	case CycleFail:
		return "fail"
	default:
		return fmt.Sprintf("CycleAction(%d)", int(a))
	}
}

// ParseCycleAction parses "keep" or "fail".
func ParseCycleAction(v string) (CycleAction, error) {
	switch v {
	case "keep":
		return CycleKeep, nil
	case "fail":
		return CycleFail, nil
	}
	return 0, fmt.Errorf("unknown cycle action %q", v)
}

// Ref is a reference found during resolution.
type Ref struct {
	pointer.Pointer
	// Root is set when the reference was found in a document loaded by
	// Session.Load rather than one loaded to satisfy another reference.
	Root bool
}

// SameDocument reports whether r addresses the document holding it, either
// as a nested pointer or by naming that document.
func (r Ref) SameDocument() bool {
	return r.Nested || r.Document == r.Base
}

// Splice describes the replacement of a reference by a copy of its target.
type Splice struct {
	Ref
	// Tree is the tree of the document holding the reference.
	Tree *ir.Tree
	// Host is the identity of that document.
	Host pointer.Identity
	// Marker is the object holding the reference property.
	Marker    ir.ID
	MarkerKey string
	// Replacement is an unattached copy of the target in Tree.
	Replacement ir.ID
}

// Policy decides which references are resolved and how replacements are
// put in place.
type Policy interface {
	ShouldResolve(r Ref) bool
	OnCycle(r Ref) CycleAction
	ApplySplice(s *Splice) error
}

// Inline replaces the Marker by the Replacement.
func (s *Splice) Inline() error {
	if err := s.Reanchor(); err != nil {
		return err
	}
	return s.Tree.Replace(s.Marker, s.Replacement)
}

// Reanchor rewrites the references left in the Replacement so that they
// keep addressing the same nodes once in the Host document.  References
// which do not parse are left alone.
func (s *Splice) Reanchor() error {
	if s.Document == s.Host {
		return nil
	}
	var err error
	s.Tree.Walk(s.Replacement, func(id ir.ID) bool {
		v, ok := s.Tree.Field(id, s.MarkerKey)
		if !ok || s.Tree.Type(v) != ir.StringType {
			return true
		}
		p, perr := pointer.Parse(s.Document, s.Tree.Node(v).String)
		if perr != nil {
			return true
		}
		err = s.Tree.Set(id, s.MarkerKey, s.Tree.NewString(p.RelativeTo(s.Host)))
		return err == nil
	})
	return err
}

// InlinePolicy resolves every reference, replacing it by its target.
type InlinePolicy struct {
	Cycles CycleAction
	// MergeSiblings keeps the properties found next to a reference by
	// merging them over the replacement as a JSON merge patch.  Without
	// it they are dropped.
	MergeSiblings bool
}

func Inline() *InlinePolicy {
	return &InlinePolicy{}
}

func (p *InlinePolicy) ShouldResolve(Ref) bool { return true }

func (p *InlinePolicy) OnCycle(Ref) CycleAction { return p.Cycles }

func (p *InlinePolicy) ApplySplice(s *Splice) error {
	if p.MergeSiblings {
		return s.Merge()
	}
	return s.Inline()
}

// ExternalOnlyPolicy resolves references to other documents and keeps
// references within a document as they are.
type ExternalOnlyPolicy struct {
	InlinePolicy
}

func ExternalOnly() *ExternalOnlyPolicy {
	return &ExternalOnlyPolicy{}
}

func (p *ExternalOnlyPolicy) ShouldResolve(r Ref) bool {
	return !r.SameDocument()
}
