package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"json", "YAML", "yml"} {
		c, err := Lookup(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if name == "json" && c.Format() != format.JSONFormat {
			t.Errorf("json codec has format %s", c.Format())
		}
	}
	if _, err := Lookup("toml"); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("toml: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	in := `{"a": {"$ref": "#/b"}, "b": [1, "two"]}`
	for _, c := range []Codec{JSON(), YAML()} {
		tr, err := c.Parse([]byte(in), "mem://in.json")
		if err != nil {
			t.Fatalf("%s: %v", c.Format(), err)
		}
		out, err := c.Serialize(tr)
		if err != nil {
			t.Fatalf("%s: %v", c.Format(), err)
		}
		back, err := c.Parse(out, "out")
		if err != nil {
			t.Fatalf("%s: reparse: %v", c.Format(), err)
		}
		if !ir.Equal(tr, tr.Root(), back, back.Root()) {
			t.Errorf("%s: round trip differs:\n%s", c.Format(), out)
		}
	}
}

func TestParseErrorNamesSource(t *testing.T) {
	_, err := JSON().Parse([]byte(`{`), "file:///x/bad.json")
	if err == nil || !strings.Contains(err.Error(), "file:///x/bad.json") {
		t.Errorf("got %v", err)
	}
}

func TestByExtension(t *testing.T) {
	c := Auto()
	tests := []struct {
		source string
		want   format.Format
	}{
		{source: "file:///specs/a.json", want: format.JSONFormat},
		{source: "https://example.com/a.JSONC?x=y.yaml", want: format.JSONFormat},
		{source: "file:///specs/a.yml", want: format.YAMLFormat},
		{source: "file:///specs/a", want: format.YAMLFormat},
	}
	for _, tc := range tests {
		if got := c.For(tc.source).Format(); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.source, got, tc.want)
		}
	}
	tr, err := c.Parse([]byte("{\n  // comment\n  \"a\": 1,\n}"), "file:///specs/c.json")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := tr.Field(tr.Root(), "a"); !ok || tr.Type(v) != ir.NumberType {
		t.Error("a not parsed")
	}
}
