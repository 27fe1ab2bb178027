package codec

import (
	"bytes"
	"net/url"

	"github.com/signadot/docref/encode"
	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
	"github.com/signadot/docref/parse"
)

// Codec converts between document text and trees for one encoding.
type Codec interface {
	Format() format.Format
	// Parse parses text read from the document named source.
	Parse(d []byte, source string) (*ir.Tree, error)
	Serialize(t *ir.Tree) ([]byte, error)
}

// Text is the Codec built on the parse and encode packages.
type Text struct {
	form      format.Format
	parseOpts []parse.ParseOption
	encOpts   []encode.EncodeOption
}

func New(f format.Format) *Text {
	return &Text{form: f}
}

func JSON() *Text { return New(format.JSONFormat) }
func YAML() *Text { return New(format.YAMLFormat) }

// WithParseOptions returns a copy of c adding parse options.
func (c *Text) WithParseOptions(opts ...parse.ParseOption) *Text {
	res := *c
	res.parseOpts = append(append([]parse.ParseOption{}, c.parseOpts...), opts...)
	return &res
}

// WithEncodeOptions returns a copy of c adding encode options.
func (c *Text) WithEncodeOptions(opts ...encode.EncodeOption) *Text {
	res := *c
	res.encOpts = append(append([]encode.EncodeOption{}, c.encOpts...), opts...)
	return &res
}

func (c *Text) Format() format.Format { return c.form }

func (c *Text) Parse(d []byte, source string) (*ir.Tree, error) {
	opts := append([]parse.ParseOption{parse.ParseFormat(c.form), parse.ParseSource(source)}, c.parseOpts...)
	return parse.Parse(d, opts...)
}

func (c *Text) Serialize(t *ir.Tree) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	opts := append([]encode.EncodeOption{encode.EncodeFormat(c.form)}, c.encOpts...)
	if err := encode.Encode(t, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ByExtension parses documents with the registered codec matching the
// extension of their source name and falls back to Fallback otherwise.  It
// serializes with Fallback.
type ByExtension struct {
	Fallback Codec
}

// Auto reads ".json" sources as JSON, with comments allowed, and everything
// else as YAML.  It writes YAML.
func Auto() *ByExtension {
	return &ByExtension{Fallback: YAML()}
}

func (c *ByExtension) Format() format.Format { return c.Fallback.Format() }

func (c *ByExtension) Parse(d []byte, source string) (*ir.Tree, error) {
	return c.For(source).Parse(d, source)
}

// For returns the codec parsing source.
func (c *ByExtension) For(source string) Codec {
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		source = u.Path
	}
	if f, ok := format.FromExtension(source); ok {
		if r, err := For(f); err == nil {
			return r
		}
	}
	return c.Fallback
}

func (c *ByExtension) Serialize(t *ir.Tree) ([]byte, error) {
	return c.Fallback.Serialize(t)
}
