package ir

// Copy deep copies the subtree of src rooted at id into t and returns the
// root of the copy, unattached.  src may be t itself.
func (t *Tree) Copy(src *Tree, id ID) ID {
	n := src.nodes[id]
	dst := &Node{
		Type:   n.Type,
		String: n.String,
		Bool:   n.Bool,
		Number: n.Number,
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	children := n.Values
	if len(n.Fields) != 0 {
		dst.Fields = make([]string, len(n.Fields))
		copy(dst.Fields, n.Fields)
	}
	dstID := t.add(dst)
	if len(children) == 0 {
		return dstID
	}
	values := make([]ID, len(children))
	for i, c := range children {
		cID := t.Copy(src, c)
		cn := t.nodes[cID]
		cn.Parent = dstID
		cn.ParentIndex = i
		if dst.Type == ObjectType {
			cn.ParentField = dst.Fields[i]
		}
		values[i] = cID
	}
	dst.Values = values
	return dstID
}

// Clone returns a new tree holding a copy of the subtree rooted at id.
func (t *Tree) Clone(id ID) *Tree {
	res := New()
	res.root = res.Copy(t, id)
	return res
}
