package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ToAny converts the subtree at id into plain Go values: map[string]any,
// []any, string, bool, int64, float64, json.Number or nil.
func ToAny(t *Tree, id ID) any {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	switch n.Type {
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f] = ToAny(t, n.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(t, v)
		}
		return res
	case StringType:
		return n.String
	case BoolType:
		return n.Bool
	case NumberType:
		switch {
		case n.Int64 != nil:
			return *n.Int64
		case n.Float64 != nil:
			return *n.Float64
		default:
			return json.Number(n.Number)
		}
	}
	return nil
}

// FromAny builds a tree from plain Go values.  Map keys are sorted.
func FromAny(v any) (*Tree, error) {
	t := New()
	id, err := t.AddAny(v)
	if err != nil {
		return nil, err
	}
	t.root = id
	return t, nil
}

// AddAny adds plain Go values to t as a new unattached subtree.
func (t *Tree) AddAny(v any) (ID, error) {
	switch x := v.(type) {
	case nil:
		return t.NewNull(), nil
	case string:
		return t.NewString(x), nil
	case bool:
		return t.NewBool(x), nil
	case int:
		return t.NewInt(int64(x)), nil
	case int64:
		return t.NewInt(x), nil
	case uint64:
		if x > 1<<63-1 {
			return t.NewNumber(fmt.Sprint(x)), nil
		}
		return t.NewInt(int64(x)), nil
	case float64:
		return t.NewFloat(x), nil
	case json.Number:
		return t.NewNumber(string(x)), nil
	case map[string]any:
		obj := t.NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			c, err := t.AddAny(x[k])
			if err != nil {
				return NoID, err
			}
			if err := t.Set(obj, k, c); err != nil {
				return NoID, err
			}
		}
		return obj, nil
	case []any:
		arr := t.NewArray()
		for _, e := range x {
			c, err := t.AddAny(e)
			if err != nil {
				return NoID, err
			}
			if err := t.Append(arr, c); err != nil {
				return NoID, err
			}
		}
		return arr, nil
	default:
		return NoID, fmt.Errorf("%w: cannot convert %T", ErrWrongType, v)
	}
}
