package ir

import (
	"fmt"
	"slices"
	"strconv"
)

// ID addresses a node within the arena of a single Tree.  IDs are stable for
// the life of the tree: splicing moves IDs between slots, it never
// renumbers them.
type ID int32

// NoID is the ID of no node; it is the Parent of roots and of nodes which
// have not been attached yet.
const NoID ID = -1

type Node struct {
	Type        Type
	Parent      ID
	ParentIndex int
	ParentField string

	// Fields[i] is the key for Values[i] when Type is ObjectType.
	Fields []string
	Values []ID

	String string
	Bool   bool
	// Number holds the source text of numbers read from text, and is the
	// only representation of numbers fitting neither Int64 nor Float64.
	Number  string
	Float64 *float64
	Int64   *int64

	detached bool
}

// Tree is a mutable document tree stored as an arena of nodes.
//
// Nodes are created unattached and become part of the tree by SetRoot, Set,
// Append or Replace.  A node removed from the tree by Replace or Delete is
// marked detached together with its whole subtree, so holders of its ID can
// tell that it no longer belongs to the document.
type Tree struct {
	nodes []*Node
	root  ID
}

func New() *Tree {
	return &Tree{root: NoID}
}

func (t *Tree) Root() ID { return t.root }

func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given id, or nil if id is not in the arena.
func (t *Tree) Node(id ID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) Type(id ID) Type {
	n := t.Node(id)
	if n == nil {
		return NullType
	}
	return n.Type
}

func (t *Tree) add(n *Node) ID {
	n.Parent = NoID
	t.nodes = append(t.nodes, n)
	return ID(len(t.nodes) - 1)
}

func (t *Tree) NewNull() ID {
	return t.add(&Node{Type: NullType})
}

func (t *Tree) NewString(v string) ID {
	return t.add(&Node{Type: StringType, String: v})
}

func (t *Tree) NewBool(v bool) ID {
	return t.add(&Node{Type: BoolType, Bool: v})
}

func (t *Tree) NewInt(v int64) ID {
	return t.add(&Node{Type: NumberType, Int64: &v})
}

func (t *Tree) NewFloat(v float64) ID {
	return t.add(&Node{Type: NumberType, Float64: &v})
}

// NewNumber creates a number node from its text representation.
func (t *Tree) NewNumber(text string) ID {
	n := &Node{Type: NumberType, Number: text}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		n.Int64 = &i
	} else if f, err := strconv.ParseFloat(text, 64); err == nil {
		n.Float64 = &f
	}
	return t.add(n)
}

func (t *Tree) NewObject() ID {
	return t.add(&Node{Type: ObjectType})
}

func (t *Tree) NewArray() ID {
	return t.add(&Node{Type: ArrayType})
}

func (t *Tree) checkFree(id ID) (*Node, error) {
	n := t.Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if n.Parent != NoID || n.detached || id == t.root {
		return nil, fmt.Errorf("%w: %d", ErrAttached, id)
	}
	return n, nil
}

func (t *Tree) container(id ID, want Type) (*Node, error) {
	n := t.Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if n.Type != want {
		return nil, &TypeError{Path: t.Path(id), Want: want, Got: n.Type}
	}
	return n, nil
}

// SetRoot makes the unattached node id the root of the tree.  A previous
// root is detached.
func (t *Tree) SetRoot(id ID) error {
	n, err := t.checkFree(id)
	if err != nil {
		return err
	}
	if old := t.Node(t.root); old != nil {
		t.markDetached(t.root)
	}
	n.ParentIndex = 0
	n.ParentField = ""
	t.root = id
	return nil
}

// Set sets the field key of object obj to the unattached node child.  An
// existing value under key is replaced in place, keeping field order.
func (t *Tree) Set(obj ID, key string, child ID) error {
	o, err := t.container(obj, ObjectType)
	if err != nil {
		return err
	}
	if i := o.index(key); i >= 0 {
		return t.Replace(o.Values[i], child)
	}
	c, err := t.checkFree(child)
	if err != nil {
		return err
	}
	c.Parent = obj
	c.ParentIndex = len(o.Values)
	c.ParentField = key
	o.Fields = append(o.Fields, key)
	o.Values = append(o.Values, child)
	return nil
}

// Append adds the unattached node child at the end of array arr.
func (t *Tree) Append(arr ID, child ID) error {
	a, err := t.container(arr, ArrayType)
	if err != nil {
		return err
	}
	c, err := t.checkFree(child)
	if err != nil {
		return err
	}
	c.Parent = arr
	c.ParentIndex = len(a.Values)
	c.ParentField = ""
	a.Values = append(a.Values, child)
	return nil
}

// Replace puts the unattached node repl in the slot occupied by old and
// detaches old along with its subtree.
func (t *Tree) Replace(old, repl ID) error {
	o := t.Node(old)
	if o == nil {
		return fmt.Errorf("%w: %d", ErrInvalidID, old)
	}
	if o.detached {
		return fmt.Errorf("%w: %d is detached", ErrInvalidID, old)
	}
	if old == t.root {
		return t.SetRoot(repl)
	}
	r, err := t.checkFree(repl)
	if err != nil {
		return err
	}
	p := t.Node(o.Parent)
	if p == nil {
		return fmt.Errorf("%w: %d is not attached", ErrInvalidID, old)
	}
	p.Values[o.ParentIndex] = repl
	r.Parent = o.Parent
	r.ParentIndex = o.ParentIndex
	r.ParentField = o.ParentField
	t.markDetached(old)
	return nil
}

// Delete removes field key from object obj, detaching its value.
func (t *Tree) Delete(obj ID, key string) bool {
	o, err := t.container(obj, ObjectType)
	if err != nil {
		return false
	}
	i := o.index(key)
	if i < 0 {
		return false
	}
	t.markDetached(o.Values[i])
	o.Fields = append(o.Fields[:i], o.Fields[i+1:]...)
	o.Values = append(o.Values[:i], o.Values[i+1:]...)
	for j := i; j < len(o.Values); j++ {
		t.nodes[o.Values[j]].ParentIndex = j
	}
	return true
}

func (t *Tree) markDetached(id ID) {
	n := t.nodes[id]
	n.Parent = NoID
	t.walk(id, func(c ID) bool {
		t.nodes[c].detached = true
		return true
	})
}

// Detached reports whether id has been removed from the tree.  Nodes which
// were never attached are not detached.
func (t *Tree) Detached(id ID) bool {
	n := t.Node(id)
	return n == nil || n.detached
}

// Field returns the value of field key in object obj.
func (t *Tree) Field(obj ID, key string) (ID, bool) {
	n := t.Node(obj)
	if n == nil || n.Type != ObjectType {
		return NoID, false
	}
	i := n.index(key)
	if i < 0 {
		return NoID, false
	}
	return n.Values[i], true
}

// Child returns the child of id named by seg: a field of an object, or an
// element of an array when seg is a decimal index.
func (t *Tree) Child(id ID, seg string) (ID, bool) {
	n := t.Node(id)
	if n == nil {
		return NoID, false
	}
	switch n.Type {
	case ObjectType:
		return t.Field(id, seg)
	case ArrayType:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(n.Values) {
			return NoID, false
		}
		return n.Values[i], true
	}
	return NoID, false
}

// Lookup descends from id along segs.  When a segment is absent, it returns
// NoID and the index of the failing segment.
func (t *Tree) Lookup(id ID, segs []string) (ID, int) {
	cur := id
	for i, seg := range segs {
		next, ok := t.Child(cur, seg)
		if !ok {
			return NoID, i
		}
		cur = next
	}
	return cur, len(segs)
}

// Walk visits the subtree rooted at id in document order, parents before
// children.  Returning false from fn skips the children of the visited node.
func (t *Tree) Walk(id ID, fn func(ID) bool) {
	if t.Node(id) == nil {
		return
	}
	t.walk(id, fn)
}

func (t *Tree) walk(id ID, fn func(ID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].Values {
		t.walk(c, fn)
	}
}

// SortFields reorders the fields of object obj by cmp, keeping the relative
// order of fields cmp considers equal.
func (t *Tree) SortFields(obj ID, cmp func(a, b string) int) error {
	o, err := t.container(obj, ObjectType)
	if err != nil {
		return err
	}
	idx := make([]int, len(o.Fields))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return cmp(o.Fields[i], o.Fields[j])
	})
	fields := make([]string, len(idx))
	values := make([]ID, len(idx))
	for i, j := range idx {
		fields[i] = o.Fields[j]
		values[i] = o.Values[j]
		t.nodes[values[i]].ParentIndex = i
	}
	o.Fields, o.Values = fields, values
	return nil
}

func (n *Node) index(key string) int {
	for i, f := range n.Fields {
		if f == key {
			return i
		}
	}
	return -1
}
