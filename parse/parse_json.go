package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/docref/ir"

	"github.com/tidwall/jsonc"
)

func parseJSON(d []byte, o *parseOpts) (*ir.Tree, error) {
	if !o.strict {
		d = jsonc.ToJSON(d)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	t := ir.New()
	root, err := decodeJSON(dec, t)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrParse, dec.InputOffset())
	}
	if err := t.SetRoot(root); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeJSON reads one value from dec token by token so that object fields
// keep their document order.
func decodeJSON(dec *json.Decoder, t *ir.Tree) (ir.ID, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ir.NoID, err
		}
		return ir.NoID, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeJSONObject(dec, t)
		case '[':
			return decodeJSONArray(dec, t)
		}
		return ir.NoID, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, x, dec.InputOffset())
	case string:
		return t.NewString(x), nil
	case json.Number:
		return t.NewNumber(x.String()), nil
	case bool:
		return t.NewBool(x), nil
	case nil:
		return t.NewNull(), nil
	}
	return ir.NoID, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}

func decodeJSONObject(dec *json.Decoder, t *ir.Tree) (ir.ID, error) {
	obj := t.NewObject()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return ir.NoID, fmt.Errorf("%w: %w", ErrParse, err)
		}
		key, ok := kt.(string)
		if !ok {
			return ir.NoID, fmt.Errorf("%w: object key %v is not a string", ErrParse, kt)
		}
		v, err := decodeJSON(dec, t)
		if err != nil {
			return ir.NoID, unexpectedEOF(err)
		}
		if err := t.Set(obj, key, v); err != nil {
			return ir.NoID, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return ir.NoID, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder, t *ir.Tree) (ir.ID, error) {
	arr := t.NewArray()
	for dec.More() {
		v, err := decodeJSON(dec, t)
		if err != nil {
			return ir.NoID, unexpectedEOF(err)
		}
		if err := t.Append(arr, v); err != nil {
			return ir.NoID, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return ir.NoID, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return arr, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrParse, io.ErrUnexpectedEOF)
	}
	return err
}
