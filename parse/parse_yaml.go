package parse

import (
	"fmt"
	"time"

	"github.com/signadot/docref/ir"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte) (*ir.Tree, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	t := ir.New()
	root, err := fromYAML(t, v)
	if err != nil {
		return nil, err
	}
	if err := t.SetRoot(root); err != nil {
		return nil, err
	}
	return t, nil
}

func fromYAML(t *ir.Tree, v any) (ir.ID, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		obj := t.NewObject()
		for _, item := range x {
			key, err := yamlKey(item.Key)
			if err != nil {
				return ir.NoID, err
			}
			c, err := fromYAML(t, item.Value)
			if err != nil {
				return ir.NoID, err
			}
			if err := t.Set(obj, key, c); err != nil {
				return ir.NoID, err
			}
		}
		return obj, nil
	case []any:
		arr := t.NewArray()
		for _, e := range x {
			c, err := fromYAML(t, e)
			if err != nil {
				return ir.NoID, err
			}
			if err := t.Append(arr, c); err != nil {
				return ir.NoID, err
			}
		}
		return arr, nil
	case int:
		return t.NewInt(int64(x)), nil
	case int8, int16, int32, uint, uint8, uint16, uint32:
		return t.NewNumber(fmt.Sprint(x)), nil
	case time.Time:
		return t.NewString(x.Format(time.RFC3339Nano)), nil
	}
	id, err := t.AddAny(v)
	if err != nil {
		return ir.NoID, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return id, nil
}

func yamlKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("%w: unsupported key type %T", ErrParse, k)
}
