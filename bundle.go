package docref

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/pointer"
)

// DefaultSection is where Bundle places hoisted definitions by default.
var DefaultSection = []string{"definitions"}

// BundlePolicy produces a self-contained root document in which references
// remain named: targets in other documents are copied once into a section
// of the root, such as #/components/schemas, and the references to them
// point there.  References within the root are kept.  Documents other than
// the root are inlined into what gets hoisted.
type BundlePolicy struct {
	Section []string
	Cycles  CycleAction

	mu      sync.Mutex
	hoisted map[hoistKey]string
}

type hoistKey struct {
	tree   *ir.Tree
	target string
}

// Bundle returns a BundlePolicy hoisting into section, DefaultSection if
// none is given.
func Bundle(section ...string) *BundlePolicy {
	if len(section) == 0 {
		section = DefaultSection
	}
	return &BundlePolicy{Section: section, hoisted: map[hoistKey]string{}}
}

func (b *BundlePolicy) ShouldResolve(r Ref) bool {
	return !(r.Root && r.SameDocument())
}

func (b *BundlePolicy) OnCycle(Ref) CycleAction { return b.Cycles }

func (b *BundlePolicy) ApplySplice(s *Splice) error {
	if !s.Root || s.SameDocument() || s.Marker == s.Tree.Root() {
		return s.Inline()
	}
	if err := s.Reanchor(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := hoistKey{tree: s.Tree, target: s.Key()}
	name, ok := b.hoisted[key]
	if !ok {
		sec, err := s.Tree.EnsureObjectPath(s.Tree.Root(), b.Section)
		if err != nil {
			return fmt.Errorf("bundle section: %w", err)
		}
		name = b.freeName(s.Tree, sec, s.Replacement, hoistName(s.Pointer))
		if _, exists := s.Tree.Field(sec, name); !exists {
			if err := s.Tree.Set(sec, name, s.Replacement); err != nil {
				return err
			}
		}
		b.hoisted[key] = name
	}
	local := pointer.Local(s.Host, append(append([]string{}, b.Section...), name)...)
	stub := s.Tree.NewObject()
	if err := s.Tree.Set(stub, s.MarkerKey, s.Tree.NewString(local.Ref)); err != nil {
		return err
	}
	return s.Tree.Replace(s.Marker, stub)
}

// freeName returns name, or name followed by a number, such that the
// section either lacks the field or already holds a value equal to repl.
func (b *BundlePolicy) freeName(t *ir.Tree, sec, repl ir.ID, name string) string {
	cand := name
	for i := 2; ; i++ {
		v, ok := t.Field(sec, cand)
		if !ok || ir.Equal(t, v, t, repl) {
			return cand
		}
		cand = name + strconv.Itoa(i)
	}
}

// hoistName is the last path segment of p, or the base name of its
// document for whole document references.
func hoistName(p pointer.Pointer) string {
	if len(p.Path) != 0 {
		return p.Path[len(p.Path)-1]
	}
	base := path.Base(p.Document.URL().Path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "/" || base == "." {
		return "document"
	}
	return base
}
