// Package record reads typed values out of the generic mappings that layout
// elements are stored in and restored from.
//
// Mappings come from two places: JSON decoding (numbers are float64,
// sequences are []interface{}) and Store methods (ints, []float64,
// []interface{}). Every accessor accepts both forms.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Params is a stored or extracted element record.
type Params = map[string]interface{}

// ErrType is returned when a present value has the wrong type.
var ErrType = errors.New("unexpected value type")

// Number converts a numeric value of any common Go or JSON type.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Int extracts an integer, returning defaultValue when the key is missing.
func Int(params Params, key string, defaultValue int) (int, error) {
	obj, ok := params[key]
	if !ok || obj == nil {
		return defaultValue, nil
	}
	f, ok := Number(obj)
	if !ok {
		return defaultValue, fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
	return int(f), nil
}

// Float extracts a real number, returning defaultValue when the key is missing.
func Float(params Params, key string, defaultValue float64) (float64, error) {
	obj, ok := params[key]
	if !ok || obj == nil {
		return defaultValue, nil
	}
	f, ok := Number(obj)
	if !ok {
		return defaultValue, fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
	return f, nil
}

// Bool extracts a flag stored either as a boolean or as a 0/1 number.
func Bool(params Params, key string) (bool, error) {
	obj, ok := params[key]
	if !ok || obj == nil {
		return false, nil
	}
	if b, ok := obj.(bool); ok {
		return b, nil
	}
	f, ok := Number(obj)
	if !ok {
		return false, fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
	return f != 0, nil
}

// String extracts a string, returning "" when the key is missing.
func String(params Params, key string) (string, error) {
	obj, ok := params[key]
	if !ok || obj == nil {
		return "", nil
	}
	s, ok := obj.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
	return s, nil
}

// Floats extracts a numeric sequence. ok is false when the key is missing.
func Floats(params Params, key string) (vals []float64, ok bool, err error) {
	obj, present := params[key]
	if !present || obj == nil {
		return nil, false, nil
	}
	switch seq := obj.(type) {
	case []float64:
		vals = append(vals, seq...)
	case []interface{}:
		vals = make([]float64, 0, len(seq))
		for i, item := range seq {
			f, ok := Number(item)
			if !ok {
				return nil, true, fmt.Errorf("%s[%d]: %w %T", key, i, ErrType, item)
			}
			vals = append(vals, f)
		}
	default:
		return nil, true, fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
	return vals, true, nil
}

// Records extracts a sequence of nested records, returning nil when the key
// is missing.
func Records(params Params, key string) ([]Params, error) {
	obj, ok := params[key]
	if !ok || obj == nil {
		return nil, nil
	}
	switch seq := obj.(type) {
	case []Params:
		return seq, nil
	case []interface{}:
		out := make([]Params, 0, len(seq))
		for i, item := range seq {
			m, ok := item.(Params)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: %w %T", key, i, ErrType, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w %T", key, ErrType, obj)
	}
}

// Flag converts a boolean to the 0/1 form used in stored records.
func Flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseInt coerces an identifier-like value to an int. Integral floats,
// numeric strings and json.Number are accepted.
func ParseInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, err
		}
		return i, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return int(i), nil
	}
	f, ok := Number(v)
	if !ok {
		return 0, fmt.Errorf("%w %T", ErrType, v)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%v is not integral", f)
	}
	return int(f), nil
}
