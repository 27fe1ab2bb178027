package pointer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	base := MustIdentity("file:///specs/api/main.json")
	tests := []struct {
		name   string
		ref    string
		doc    string
		nested bool
		path   []string
	}{
		{
			name: "external",
			ref:  "other.json#/a/b",
			doc:  "file:///specs/api/other.json",
			path: []string{"a", "b"},
		},
		{
			name:   "nested",
			ref:    "#/a/b",
			doc:    "file:///specs/api/main.json",
			nested: true,
			path:   []string{"a", "b"},
		},
		{
			name:   "nested root",
			ref:    "#",
			doc:    "file:///specs/api/main.json",
			nested: true,
		},
		{
			name: "document only",
			ref:  "../common/types.yaml",
			doc:  "file:///specs/common/types.yaml",
		},
		{
			name:   "malformed segments",
			ref:    "#//a//b",
			doc:    "file:///specs/api/main.json",
			nested: true,
			path:   []string{"a", "b"},
		},
		{
			name: "escaped segments",
			ref:  "paths.json#/paths/~1users~1{id}/get",
			doc:  "file:///specs/api/paths.json",
			path: []string{"paths", "/users/{id}", "get"},
		},
		{
			name: "absolute url",
			ref:  "HTTPS://Example.com:443/x/../lib.json#/Widget",
			doc:  "https://example.com/lib.json",
			path: []string{"Widget"},
		},
		{
			name: "self by name",
			ref:  "./main.json#/a",
			doc:  "file:///specs/api/main.json",
			path: []string{"a"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(base, tc.ref)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.Document.String(); got != tc.doc {
				t.Errorf("document %q, want %q", got, tc.doc)
			}
			if p.Nested != tc.nested {
				t.Errorf("nested %v, want %v", p.Nested, tc.nested)
			}
			if diff := cmp.Diff(tc.path, p.Path); diff != "" {
				t.Errorf("path: %s", diff)
			}
			if p.Base != base {
				t.Errorf("base %s", p.Base)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(MustIdentity("/x.json"), "")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestIdentityEquality(t *testing.T) {
	a := MustIdentity("file:///specs/api/../api/main.json")
	b, err := MustIdentity("file:///specs/other/x.json").Resolve("../api/main.json")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("%s != %s", a, b)
	}
	if a.Folder() != "file:///specs/api/" {
		t.Errorf("folder %q", a.Folder())
	}
	if p, ok := a.FilePath(); !ok || p != "/specs/api/main.json" {
		t.Errorf("file path %q %v", p, ok)
	}
	h := MustIdentity("http://example.com/a/b.json#frag")
	if h.String() != "http://example.com/a/b.json" || h.Folder() != "http://example.com/a/" {
		t.Errorf("http identity %s folder %s", h, h.Folder())
	}
}

func TestRelativeTo(t *testing.T) {
	lib := MustIdentity("file:///specs/lib/types.json")
	tests := []struct {
		host string
		segs []string
		want string
	}{
		{host: "file:///specs/lib/types.json", segs: []string{"Gadget"}, want: "#/Gadget"},
		{host: "file:///specs/lib/main.json", segs: []string{"Gadget"}, want: "types.json#/Gadget"},
		{host: "file:///specs/api/main.json", segs: []string{"a", "b/c"}, want: "../lib/types.json#/a/b~1c"},
		{host: "file:///specs/api/main.json", want: "../lib/types.json"},
		{host: "https://example.com/main.json", segs: []string{"G"}, want: "file:///specs/lib/types.json#/G"},
	}
	for _, tc := range tests {
		p := Pointer{Document: lib, Path: tc.segs}
		if got := p.RelativeTo(MustIdentity(tc.host)); got != tc.want {
			t.Errorf("from %s: got %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestRoundTripRelative(t *testing.T) {
	host := MustIdentity("file:///specs/api/main.json")
	p := Pointer{Document: MustIdentity("file:///specs/lib/types.json"), Path: []string{"x"}}
	q, err := Parse(host, p.RelativeTo(host))
	if err != nil {
		t.Fatal(err)
	}
	if q.Key() != p.Key() {
		t.Errorf("%s != %s", q.Key(), p.Key())
	}
}
