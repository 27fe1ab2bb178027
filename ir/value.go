package ir

import (
	"math"
)

func (t *Tree) typeErr(id ID, want Type) error {
	return &TypeError{Path: t.Path(id), Want: want, Got: t.Type(id)}
}

func (t *Tree) AsString(id ID) (string, error) {
	n := t.Node(id)
	if n == nil || n.Type != StringType {
		return "", t.typeErr(id, StringType)
	}
	return n.String, nil
}

func (t *Tree) AsBool(id ID) (bool, error) {
	n := t.Node(id)
	if n == nil || n.Type != BoolType {
		return false, t.typeErr(id, BoolType)
	}
	return n.Bool, nil
}

// AsInt returns the value of an integral number node.
func (t *Tree) AsInt(id ID) (int64, error) {
	n := t.Node(id)
	if n == nil || n.Type != NumberType {
		return 0, t.typeErr(id, NumberType)
	}
	if n.Int64 != nil {
		return *n.Int64, nil
	}
	if n.Float64 != nil && *n.Float64 == math.Trunc(*n.Float64) &&
		*n.Float64 >= math.MinInt64 && *n.Float64 < math.MaxInt64 {
		return int64(*n.Float64), nil
	}
	return 0, t.typeErr(id, NumberType)
}

func (t *Tree) AsFloat(id ID) (float64, error) {
	n := t.Node(id)
	if n == nil || n.Type != NumberType {
		return 0, t.typeErr(id, NumberType)
	}
	f, ok := n.float()
	if !ok {
		return 0, t.typeErr(id, NumberType)
	}
	return f, nil
}

// AsArray returns the elements of an array node.
func (t *Tree) AsArray(id ID) ([]ID, error) {
	n := t.Node(id)
	if n == nil || n.Type != ArrayType {
		return nil, t.typeErr(id, ArrayType)
	}
	return n.Values, nil
}

// AsObject returns the keys and values of an object node, in order.
func (t *Tree) AsObject(id ID) ([]string, []ID, error) {
	n := t.Node(id)
	if n == nil || n.Type != ObjectType {
		return nil, nil, t.typeErr(id, ObjectType)
	}
	return n.Fields, n.Values, nil
}
