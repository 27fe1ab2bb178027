package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/docref/format"
	"github.com/signadot/docref/ir"
)

type EncState struct {
	depth, indent int
	wire          bool
	refKey        string

	format format.Format
	colors *Colors
}

// Encode writes the tree t to w.  The default format is JSON.
func Encode(t *ir.Tree, w io.Writer, opts ...EncodeOption) error {
	return EncodeNode(t, t.Root(), w, opts...)
}

// EncodeNode writes the subtree of t rooted at id to w.
func EncodeNode(t *ir.Tree, id ir.ID, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		refKey: "$ref",
	}
	for _, opt := range opts {
		opt(es)
	}
	if t.Node(id) == nil {
		return fmt.Errorf("%w: %w: %d", ErrEncoding, ir.ErrInvalidID, id)
	}
	switch es.format {
	case format.JSONFormat:
		buf := bytes.NewBuffer(nil)
		if err := es.jsonValue(buf, t, id, false); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	case format.YAMLFormat:
		return es.encodeYAML(t, id, w)
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, es.format)
	}
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(t, a, s)
}

func (es *EncState) nl(buf *bytes.Buffer) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) jsonValue(buf *bytes.Buffer, t *ir.Tree, id ir.ID, ref bool) error {
	n := t.Node(id)
	switch n.Type {
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			buf.WriteString(es.color(ir.ObjectType, SepColor, "{}"))
			return nil
		}
		buf.WriteString(es.color(ir.ObjectType, SepColor, "{"))
		es.depth++
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteString(es.color(ir.ObjectType, SepColor, ","))
			}
			es.nl(buf)
			buf.WriteString(es.color(ir.ObjectType, FieldColor, quote(f)))
			buf.WriteString(es.color(ir.ObjectType, SepColor, ":"))
			if !es.wire {
				buf.WriteByte(' ')
			}
			v := n.Values[i]
			isRef := f == es.refKey && t.Type(v) == ir.StringType
			if err := es.jsonValue(buf, t, v, isRef); err != nil {
				return err
			}
		}
		es.depth--
		es.nl(buf)
		buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	case ir.ArrayType:
		if len(n.Values) == 0 {
			buf.WriteString(es.color(ir.ArrayType, SepColor, "[]"))
			return nil
		}
		buf.WriteString(es.color(ir.ArrayType, SepColor, "["))
		es.depth++
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteString(es.color(ir.ArrayType, SepColor, ","))
			}
			es.nl(buf)
			if err := es.jsonValue(buf, t, v, false); err != nil {
				return err
			}
		}
		es.depth--
		es.nl(buf)
		buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	case ir.StringType:
		if ref {
			buf.WriteString(es.color(ir.ObjectType, RefColor, quote(n.String)))
			return nil
		}
		buf.WriteString(es.color(ir.StringType, ValueColor, quote(n.String)))
	case ir.NumberType:
		s, err := numberText(n)
		if err != nil {
			return fmt.Errorf("%w at %s", err, t.Path(id))
		}
		buf.WriteString(es.color(ir.NumberType, ValueColor, s))
	case ir.BoolType:
		buf.WriteString(es.color(ir.BoolType, ValueColor, strconv.FormatBool(n.Bool)))
	case ir.NullType:
		buf.WriteString(es.color(ir.NullType, ValueColor, "null"))
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
	}
	return nil
}

func quote(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func numberText(n *ir.Node) (string, error) {
	switch {
	case n.Number != "":
		return n.Number, nil
	case n.Int64 != nil:
		return strconv.FormatInt(*n.Int64, 10), nil
	case n.Float64 != nil:
		f := *n.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", ErrNonFinite
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("%w: empty number", ErrEncoding)
}

// MustString encodes t and returns the result without surrounding space.
func MustString(t *ir.Tree, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(t, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
