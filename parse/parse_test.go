package parse

import (
	"errors"
	"testing"

	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSONOrder(t *testing.T) {
	tr, err := Parse([]byte(`{"z": 1, "a": [true, null, "s"], "m": {"k": 1.5}}`), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	fields, _, err := tr.AsObject(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, fields); diff != "" {
		t.Error(diff)
	}
	want := map[string]any{
		"z": int64(1),
		"a": []any{true, nil, "s"},
		"m": map[string]any{"k": 1.5},
	}
	if diff := cmp.Diff(want, ir.ToAny(tr, tr.Root())); diff != "" {
		t.Error(diff)
	}
}

func TestParseJSONC(t *testing.T) {
	in := []byte(`{
  // comment
  "a": 1, /* more */
  "b": [1, 2,],
}`)
	tr, err := Parse(in, ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"a": int64(1), "b": []any{int64(1), int64(2)}}, ir.ToAny(tr, tr.Root())); diff != "" {
		t.Error(diff)
	}
	if _, err := Parse(in, ParseJSON(), StrictJSON(true)); !errors.Is(err, ErrParse) {
		t.Errorf("strict: got %v", err)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []string{
		``,
		`{"a": `,
		`[1, 2`,
		`{"a": 1} {"b": 2}`,
	}
	for _, in := range tests {
		_, err := Parse([]byte(in), ParseJSON(), ParseSource("in.json"))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v, want ErrParse", in, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	in := []byte(`
b: 2
a:
  - x
  - {y: -3}
base: &base
  kind: widget
copy: *base
`)
	tr, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	fields, _, _ := tr.AsObject(tr.Root())
	if diff := cmp.Diff([]string{"b", "a", "base", "copy"}, fields); diff != "" {
		t.Error(diff)
	}
	want := map[string]any{
		"b":    int64(2),
		"a":    []any{"x", map[string]any{"y": int64(-3)}},
		"base": map[string]any{"kind": "widget"},
		"copy": map[string]any{"kind": "widget"},
	}
	if diff := cmp.Diff(want, ir.ToAny(tr, tr.Root())); diff != "" {
		t.Error(diff)
	}
}

func TestParseYAMLAcceptsJSON(t *testing.T) {
	tr, err := Parse([]byte(`{"$ref": "#/b", "n": 1}`), ParseFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"$ref": "#/b", "n": int64(1)}, ir.ToAny(tr, tr.Root())); diff != "" {
		t.Error(diff)
	}
}
