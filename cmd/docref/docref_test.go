package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/signadot/docref"
	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/parse"
	"github.com/signadot/docref/pointer"
)

func TestPolicy(t *testing.T) {
	tests := []struct {
		cfg     ResolveConfig
		check   func(docref.Policy) bool
		wantErr bool
	}{
		{
			check: func(p docref.Policy) bool {
				ip, ok := p.(*docref.InlinePolicy)
				return ok && ip.Cycles == docref.CycleKeep && !ip.MergeSiblings
			},
		},
		{
			cfg: ResolveConfig{Policy: "external", Cycles: "fail", Merge: true},
			check: func(p docref.Policy) bool {
				ep, ok := p.(*docref.ExternalOnlyPolicy)
				return ok && ep.Cycles == docref.CycleFail && ep.MergeSiblings
			},
		},
		{
			cfg: ResolveConfig{Policy: "bundle", Section: "components/schemas"},
			check: func(p docref.Policy) bool {
				bp, ok := p.(*docref.BundlePolicy)
				return ok && cmp.Equal(bp.Section, []string{"components", "schemas"})
			},
		},
		{
			cfg: ResolveConfig{When: "!nested"},
			check: func(p docref.Policy) bool {
				wp, ok := p.(*docref.WhenPolicy)
				return ok && wp.String() == "!nested"
			},
		},
		{cfg: ResolveConfig{Policy: "everything"}, wantErr: true},
		{cfg: ResolveConfig{Cycles: "loop"}, wantErr: true},
		{cfg: ResolveConfig{When: "nested +"}, wantErr: true},
	}
	for i, tc := range tests {
		p, err := tc.cfg.policy()
		if tc.wantErr {
			if err == nil {
				t.Errorf("%d: no error", i)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if !tc.check(p) {
			t.Errorf("%d: unexpected policy %#v", i, p)
		}
	}
}

func TestPointerTree(t *testing.T) {
	p, err := pointer.Parse(pointer.MustIdentity("file:///specs/api/main.json"), "../lib.json#/a/0")
	if err != nil {
		t.Fatal(err)
	}
	tr := pointerTree(p)
	fields, _, err := tr.AsObject(tr.Root())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ref", "document", "folder", "nested", "path", "absolute"}, fields); diff != "" {
		t.Error(diff)
	}
	want := map[string]any{
		"ref":      "../lib.json#/a/0",
		"document": "file:///specs/lib.json",
		"folder":   "file:///specs/",
		"nested":   false,
		"path":     []any{"a", "0"},
		"absolute": "file:///specs/lib.json#/a/0",
	}
	if diff := cmp.Diff(want, ir.ToAny(tr, tr.Root())); diff != "" {
		t.Error(diff)
	}
}

func TestWriteLineDiff(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	a := "{\n  \"a\": {\n    \"$ref\": \"#/b\"\n  }\n}\n"
	b := "{\n  \"a\": {\n    \"x\": 1\n  }\n}\n"
	n, err := writeLineDiff(buf, "main.json", a, b, false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("%d changed lines", n)
	}
	out := buf.String()
	for _, want := range []string{"-    \"$ref\": \"#/b\"\n", "+    \"x\": 1\n", "   \"a\": {\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	buf.Reset()
	if n, _ := writeLineDiff(buf, "main.json", a, a, false); n != 0 || buf.Len() != 0 {
		t.Errorf("identical texts: %d %q", n, buf.String())
	}
}

func TestApplyPatch(t *testing.T) {
	tr, err := parse.Parse([]byte(`{"a": {"x": 1}, "b": [1, 2]}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	patch, err := jsonpatch.DecodePatch([]byte(`[
		{"op": "replace", "path": "/a/x", "value": 2},
		{"op": "add", "path": "/b/2", "value": 3},
		{"op": "remove", "path": "/a"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := applyPatch(tr, patch)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"b": []any{int64(1), int64(2), int64(3)}}
	if diff := cmp.Diff(want, ir.ToAny(res, res.Root())); diff != "" {
		t.Error(diff)
	}
}

func TestApplyPatchKeepsOrder(t *testing.T) {
	tr, err := parse.Parse([]byte(`{"z": 1, "m": 2, "a": {"y": 1, "b": 2}}`), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	patch, err := jsonpatch.DecodePatch([]byte(`[
		{"op": "replace", "path": "/m", "value": 3},
		{"op": "add", "path": "/c", "value": 4}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := applyPatch(tr, patch)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(res, encode.EncodeWire(true))
	if want := `{"z":1,"m":3,"a":{"y":1,"b":2},"c":4}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWatchFiles(t *testing.T) {
	got, err := watchFiles([]string{"a.json", "b.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.json", "b.yaml"}, got); diff != "" {
		t.Error(diff)
	}
	for _, args := range [][]string{nil, {"a.json", "-"}} {
		if _, err := watchFiles(args); !errors.Is(err, cli.ErrUsage) {
			t.Errorf("%v: got %v, want ErrUsage", args, err)
		}
	}
}
