package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing the node aID of a with the node bID
// of b.  The result will be 0 if they are equal, -1 if a < b, and +1 if a > b.
func Compare(a *Tree, aID ID, b *Tree, bID ID) int {
	an, bn := a.Node(aID), b.Node(bID)
	if an == nil && bn == nil {
		return 0
	}
	if an == nil {
		return -1
	}
	if bn == nil {
		return 1
	}

	rankA := rank(an.Type)
	rankB := rank(bn.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch an.Type {
	case NumberType:
		return compareNumbers(an, bn)
	case StringType:
		return strings.Compare(an.String, bn.String)
	case BoolType:
		if an.Bool == bn.Bool {
			return 0
		}
		if !an.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, an, b, bn)
	case ObjectType:
		return compareObjects(a, an, b, bn)
	}
	return 0
}

// Equal reports whether two nodes hold the same value, with object fields
// compared in order.
func Equal(a *Tree, aID ID, b *Tree, bID ID) bool {
	return Compare(a, aID, b, bID) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	af, aok := a.float()
	bf, bok := b.float()
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	if aok != bok {
		if aok {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Number, b.Number)
}

func (n *Node) float() (float64, bool) {
	switch {
	case n.Int64 != nil:
		return float64(*n.Int64), true
	case n.Float64 != nil:
		return *n.Float64, true
	}
	return 0, false
}

func compareArrays(a *Tree, an *Node, b *Tree, bn *Node) int {
	lenA := len(an.Values)
	lenB := len(bn.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a, an.Values[i], b, bn.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a *Tree, an *Node, b *Tree, bn *Node) int {
	lenA := len(an.Fields)
	lenB := len(bn.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(an.Fields[i], bn.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a, an.Values[i], b, bn.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
