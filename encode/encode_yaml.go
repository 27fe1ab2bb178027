package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/docref/ir"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

func (es *EncState) encodeYAML(t *ir.Tree, id ir.ID, w io.Writer) error {
	v, err := toYAML(t, id)
	if err != nil {
		return err
	}
	opts := []yaml.EncodeOption{
		yaml.Indent(es.indent),
		yaml.IndentSequence(true),
	}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if es.colors != nil {
		s := es.colorYAML(string(d))
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		d = []byte(s)
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts a subtree to the values go-yaml encodes with object field
// order preserved.
func toYAML(t *ir.Tree, id ir.ID) (any, error) {
	n := t.Node(id)
	switch n.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(n.Fields))
		for i, f := range n.Fields {
			v, err := toYAML(t, n.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: f, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, c := range n.Values {
			v, err := toYAML(t, c)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.StringType:
		return n.String, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NullType:
		return nil, nil
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return *n.Int64, nil
		case n.Float64 != nil:
			return *n.Float64, nil
		}
		if u, err := strconv.ParseUint(n.Number, 10, 64); err == nil {
			return u, nil
		}
		return nil, fmt.Errorf("%w: number %q at %s", ErrEncoding, n.Number, t.Path(id))
	}
	return nil, fmt.Errorf("%w: unknown node type %s", ErrEncoding, n.Type)
}

func (es *EncState) colorYAML(src string) string {
	p := printer.Printer{
		MapKey: es.property(ir.ObjectType, FieldColor),
		String: es.property(ir.StringType, ValueColor),
		Number: es.property(ir.NumberType, ValueColor),
		Bool:   es.property(ir.BoolType, ValueColor),
	}
	return p.PrintTokens(lexer.Tokenize(src))
}

func (es *EncState) property(t ir.Type, a ColorAttr) printer.PrintFunc {
	prefix, suffix := es.colors.escapes(t, a)
	return func() *printer.Property {
		return &printer.Property{Prefix: prefix, Suffix: suffix}
	}
}
