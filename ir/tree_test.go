package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildAB(t *testing.T) (*Tree, ID, ID) {
	t.Helper()
	tr := New()
	root := tr.NewObject()
	a := tr.NewObject()
	b := tr.NewObject()
	if err := tr.Set(a, "x", tr.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := tr.Set(b, "y", tr.NewString("z")); err != nil {
		t.Fatal(err)
	}
	if err := tr.Set(root, "a", a); err != nil {
		t.Fatal(err)
	}
	if err := tr.Set(root, "b", b); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	return tr, a, b
}

func TestSetKeepsOrder(t *testing.T) {
	tr, _, _ := buildAB(t)
	fields, _, err := tr.AsObject(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, fields); diff != "" {
		t.Error(diff)
	}
	if err := tr.Set(tr.Root(), "a", tr.NewNull()); err != nil {
		t.Fatal(err)
	}
	fields, _, _ = tr.AsObject(tr.Root())
	if diff := cmp.Diff([]string{"a", "b"}, fields); diff != "" {
		t.Errorf("replacing a field reordered: %s", diff)
	}
}

func TestReplaceDetachesSubtree(t *testing.T) {
	tr, a, b := buildAB(t)
	x, ok := tr.Field(a, "x")
	if !ok {
		t.Fatal("no x")
	}
	repl := tr.NewString("gone")
	if err := tr.Replace(a, repl); err != nil {
		t.Fatal(err)
	}
	if !tr.Detached(a) || !tr.Detached(x) {
		t.Error("replaced subtree not detached")
	}
	if tr.Detached(b) || tr.Detached(repl) {
		t.Error("unrelated node detached")
	}
	got, ok := tr.Field(tr.Root(), "a")
	if !ok || got != repl {
		t.Errorf("slot holds %d, want %d", got, repl)
	}
	if path := tr.Path(repl); path != "#/a" {
		t.Errorf("path %q", path)
	}
	if err := tr.Replace(a, tr.NewNull()); err == nil {
		t.Error("replacing a detached node succeeded")
	}
}

func TestReplaceRoot(t *testing.T) {
	tr, a, _ := buildAB(t)
	old := tr.Root()
	repl := tr.NewArray()
	if err := tr.Replace(old, repl); err != nil {
		t.Fatal(err)
	}
	if tr.Root() != repl {
		t.Error("root not replaced")
	}
	if !tr.Detached(old) || !tr.Detached(a) {
		t.Error("old root not detached")
	}
}

func TestAttachTwice(t *testing.T) {
	tr, a, _ := buildAB(t)
	err := tr.Set(tr.Root(), "c", a)
	if !errors.Is(err, ErrAttached) {
		t.Errorf("got %v, want ErrAttached", err)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	tr, a, _ := buildAB(t)
	other := New()
	c := other.Copy(tr, a)
	if err := other.SetRoot(c); err != nil {
		t.Fatal(err)
	}
	x, _ := other.Field(c, "x")
	*other.Node(x).Int64 = 42
	orig, _ := tr.Field(a, "x")
	if v, _ := tr.AsInt(orig); v != 1 {
		t.Errorf("source mutated through copy: %d", v)
	}
	if !Equal(tr, tr.Root(), tr.Clone(tr.Root()), 0) {
		t.Error("clone differs")
	}
}

func TestLookup(t *testing.T) {
	tr, err := FromAny(map[string]any{
		"a": map[string]any{"list": []any{"p", map[string]any{"q": true}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		segs []string
		want any
		fail int
	}{
		{segs: nil, want: ToAny(tr, tr.Root()), fail: -1},
		{segs: []string{"a", "list", "0"}, want: "p", fail: -1},
		{segs: []string{"a", "list", "1", "q"}, want: true, fail: -1},
		{segs: []string{"a", "nope"}, fail: 1},
		{segs: []string{"a", "list", "7"}, fail: 2},
		{segs: []string{"a", "list", "x"}, fail: 2},
	}
	for _, tc := range tests {
		id, at := tr.Lookup(tr.Root(), tc.segs)
		if tc.fail >= 0 {
			if id != NoID || at != tc.fail {
				t.Errorf("%v: got (%d, %d), want failure at %d", tc.segs, id, at, tc.fail)
			}
			continue
		}
		if diff := cmp.Diff(tc.want, ToAny(tr, id)); diff != "" {
			t.Errorf("%v: %s", tc.segs, diff)
		}
	}
}

func TestConversions(t *testing.T) {
	tr := New()
	s := tr.NewString("s")
	f := tr.NewNumber("2.0")
	if _, err := tr.AsInt(s); !errors.Is(err, ErrWrongType) {
		t.Errorf("AsInt on string: %v", err)
	}
	var te *TypeError
	if _, err := tr.AsBool(s); !errors.As(err, &te) || te.Want != BoolType || te.Got != StringType {
		t.Errorf("AsBool on string: %v", err)
	}
	if v, err := tr.AsInt(f); err != nil || v != 2 {
		t.Errorf("AsInt(2.0) = %d, %v", v, err)
	}
	if v, err := tr.AsFloat(tr.NewInt(3)); err != nil || v != 3 {
		t.Errorf("AsFloat(3) = %v, %v", v, err)
	}
}

func TestCompareNumbers(t *testing.T) {
	tr := New()
	if !Equal(tr, tr.NewInt(1), tr, tr.NewNumber("1.0")) {
		t.Error("1 != 1.0")
	}
	if Compare(tr, tr.NewInt(1), tr, tr.NewInt(2)) >= 0 {
		t.Error("1 >= 2")
	}
}

func TestDelete(t *testing.T) {
	tr, a, b := buildAB(t)
	if !tr.Delete(tr.Root(), "a") {
		t.Fatal("delete failed")
	}
	if !tr.Detached(a) {
		t.Error("deleted value not detached")
	}
	if n := tr.Node(b); n.ParentIndex != 0 {
		t.Errorf("b index %d after delete", n.ParentIndex)
	}
}

func TestEnsureObjectPath(t *testing.T) {
	tr, _, _ := buildAB(t)
	id, err := tr.EnsureObjectPath(tr.Root(), []string{"components", "schemas"})
	if err != nil {
		t.Fatal(err)
	}
	if got := tr.Path(id); got != "#/components/schemas" {
		t.Errorf("path %q", got)
	}
	if _, err := tr.EnsureObjectPath(tr.Root(), []string{"a", "x", "deeper"}); !errors.Is(err, ErrWrongType) {
		t.Errorf("descending into a number: %v", err)
	}
}

func TestSortFields(t *testing.T) {
	tr, err := FromAny(map[string]any{"c": 1, "a": 2, "b": 3})
	if err != nil {
		t.Fatal(err)
	}
	rank := map[string]int{"b": 0, "c": 1}
	err = tr.SortFields(tr.Root(), func(x, y string) int {
		rx, okx := rank[x]
		ry, oky := rank[y]
		switch {
		case okx && oky:
			return rx - ry
		case okx:
			return -1
		case oky:
			return 1
		}
		return 0
	})
	if err != nil {
		t.Fatal(err)
	}
	fields, values, _ := tr.AsObject(tr.Root())
	if diff := cmp.Diff([]string{"b", "c", "a"}, fields); diff != "" {
		t.Error(diff)
	}
	for i, v := range values {
		if n := tr.Node(v); n.ParentIndex != i || n.ParentField != fields[i] {
			t.Errorf("field %d has index %d field %q", i, n.ParentIndex, n.ParentField)
		}
	}
}
