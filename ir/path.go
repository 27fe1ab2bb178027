package ir

import (
	"strconv"
	"strings"
)

// Segments returns the object fields and array indices leading from the
// top of id's tree (the root, or the top of a detached subtree) to id.
func (t *Tree) Segments(id ID) []string {
	var res []string
	for cur := id; ; {
		n := t.Node(cur)
		if n == nil || n.Parent == NoID {
			break
		}
		p := t.nodes[n.Parent]
		switch p.Type {
		case ObjectType:
			res = append(res, n.ParentField)
		case ArrayType:
			res = append(res, strconv.Itoa(n.ParentIndex))
		default:
			panic("parent but not in container")
		}
		cur = n.Parent
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// Path returns the location of id as a pointer fragment, such as "#/a/0/b".
func (t *Tree) Path(id ID) string {
	return FormatPath(t.Segments(id))
}

// FormatPath renders segments as a pointer fragment.
func FormatPath(segs []string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(s)
	}
	if len(segs) == 0 {
		b.WriteByte('/')
	}
	return b.String()
}

// EnsureObjectPath descends from id along segs, creating empty objects for
// absent fields, and returns the object found or created at the end.
func (t *Tree) EnsureObjectPath(id ID, segs []string) (ID, error) {
	cur := id
	for _, seg := range segs {
		next, ok := t.Field(cur, seg)
		if !ok {
			next = t.NewObject()
			if err := t.Set(cur, seg, next); err != nil {
				return NoID, err
			}
		}
		if t.Type(next) != ObjectType {
			return NoID, &TypeError{Path: t.Path(next), Want: ObjectType, Got: t.Type(next)}
		}
		cur = next
	}
	return cur, nil
}
