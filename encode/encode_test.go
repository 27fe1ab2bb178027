package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/parse"
)

func mustParse(t *testing.T, s string) *ir.Tree {
	t.Helper()
	tr, err := parse.Parse([]byte(s), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestEncodeJSON(t *testing.T) {
	tr := mustParse(t, `{"z":1,"a":[true,null,"<s>"],"e":{},"f":1.50}`)
	want := `{
  "z": 1,
  "a": [
    true,
    null,
    "<s>"
  ],
  "e": {},
  "f": 1.50
}`
	if got := MustString(tr); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	wire := MustString(tr, EncodeWire(true))
	if wire != `{"z":1,"a":[true,null,"<s>"],"e":{},"f":1.50}` {
		t.Errorf("wire %s", wire)
	}
}

func TestEncodeYAMLKeepsOrder(t *testing.T) {
	tr := mustParse(t, `{"z":1,"a":{"y":"v","b":[1,2]}}`)
	got := MustString(tr, EncodeFormat(format.YAMLFormat))
	zi, ai, yi, bi := strings.Index(got, "z:"), strings.Index(got, "a:"), strings.Index(got, `"y":`), strings.Index(got, "b:")
	if zi < 0 || !(zi < ai && ai < yi && yi < bi) {
		t.Errorf("order not kept:\n%s", got)
	}
	back, err := parse.Parse([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(tr, tr.Root(), back, back.Root()) {
		t.Errorf("yaml round trip differs:\n%s", got)
	}
}

func TestEncodeNonFinite(t *testing.T) {
	tr := ir.New()
	if err := tr.SetRoot(tr.NewFloat(math.Inf(1))); err != nil {
		t.Fatal(err)
	}
	err := Encode(tr, &bytes.Buffer{})
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("got %v", err)
	}
}

func TestEncodeColorsMarksRefs(t *testing.T) {
	tr := mustParse(t, `{"$ref":"#/a"}`)
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.ObjectType, Attr: RefColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	got := MustString(tr, EncodeColors(c), EncodeWire(true))
	if got != `{"$ref":<"#/a">}` {
		t.Errorf("got %s", got)
	}
}
