package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// errUploadInJSON is returned when a CustomUpload reaches the JSON encoder.
var errUploadInJSON = errors.New("custom upload values require multipart encoding")

// Params holds call parameters keyed by name. Values may be any Go value;
// they are converted to a Value with ToValue before use.
type Params map[string]any

// Value is the closed set of parameter shapes: Scalar, Sequence, Mapping
// and CustomUpload.
type Value interface {
	isValue()
}

// Scalar is a terminal value: nil, string, bool, int64, float64 or
// json.Number.
type Scalar struct {
	v any
}

// Sequence is an ordered list of values.
type Sequence []Value

// Mapping is a set of named values.
type Mapping map[string]Value

// CustomUpload is file-like content sent as a multipart file part. It is
// never descended into when params are flattened.
type CustomUpload struct {
	Content     io.Reader
	Filename    string
	ContentType string
}

func (Scalar) isValue()       {}
func (Sequence) isValue()     {}
func (Mapping) isValue()      {}
func (CustomUpload) isValue() {}

// Null returns the nil scalar.
func Null() Scalar { return Scalar{} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{v: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{v: i} }

// Float returns a floating point scalar.
func Float(f float64) Scalar { return Scalar{v: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{v: b} }

// IsNull reports whether s holds no value.
func (s Scalar) IsNull() bool { return s.v == nil }

// Interface returns the underlying Go value.
func (s Scalar) Interface() any { return s.v }

// String formats the scalar the way it appears in paths, queries and form
// fields. Null formats as the empty string.
func (s Scalar) String() string {
	switch v := s.v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Truthy reports whether the scalar counts as present for route
// interpolation: empty strings, zero numbers, false and null do not.
func (s Scalar) Truthy() bool {
	switch v := s.v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	default:
		return true
	}
}

// ToValue converts a Go value into a Value. Values that are already a
// Value pass through. Types without a direct mapping go through a JSON
// round trip, so structs honour their json tags.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Scalar{}
	case *CustomUpload:
		if t == nil {
			return Scalar{}
		}
		return *t
	case Value:
		return t
	case string:
		return Scalar{v: t}
	case bool:
		return Scalar{v: t}
	case int:
		return Scalar{v: int64(t)}
	case int8:
		return Scalar{v: int64(t)}
	case int16:
		return Scalar{v: int64(t)}
	case int32:
		return Scalar{v: int64(t)}
	case int64:
		return Scalar{v: t}
	case uint:
		return Scalar{v: int64(t)}
	case uint8:
		return Scalar{v: int64(t)}
	case uint16:
		return Scalar{v: int64(t)}
	case uint32:
		return Scalar{v: int64(t)}
	case uint64:
		if t > math.MaxInt64 {
			return Scalar{v: float64(t)}
		}
		return Scalar{v: int64(t)}
	case float32:
		return Scalar{v: float64(t)}
	case float64:
		return Scalar{v: t}
	case json.Number:
		return Scalar{v: t}
	case time.Time:
		return Scalar{v: t.Format(time.RFC3339)}
	case []any:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = ToValue(item)
		}
		return seq
	case []string:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = Scalar{v: item}
		}
		return seq
	case []int:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = Scalar{v: int64(item)}
		}
		return seq
	case []int64:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = Scalar{v: item}
		}
		return seq
	case []float64:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = Scalar{v: item}
		}
		return seq
	case []Value:
		return Sequence(t)
	case Params:
		return toMapping(t)
	case map[string]any:
		return toMapping(t)
	case map[string]string:
		m := make(Mapping, len(t))
		for k, item := range t {
			m[k] = Scalar{v: item}
		}
		return m
	case map[string]Value:
		return Mapping(t)
	case fmt.Stringer:
		return Scalar{v: t.String()}
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return Scalar{v: fmt.Sprint(t)}
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return Scalar{v: string(data)}
		}
		return ToValue(decoded)
	}
}

func toMapping(in map[string]any) Mapping {
	m := make(Mapping, len(in))
	for k, item := range in {
		m[k] = ToValue(item)
	}
	return m
}

// truthy reports whether a value satisfies a route placeholder.
func truthy(v Value) bool {
	switch t := v.(type) {
	case Scalar:
		return t.Truthy()
	case Sequence, Mapping, CustomUpload:
		return true
	default:
		return false
	}
}

// stringify renders a value for a URL path segment. Sequences join with
// commas so a list of ids becomes "1,2,3".
func stringify(v Value) string {
	switch t := v.(type) {
	case Scalar:
		return t.String()
	case Sequence:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	case Mapping:
		plain, err := plainValue(t)
		if err != nil {
			return ""
		}
		data, _ := json.Marshal(plain)
		return string(data)
	case CustomUpload:
		return t.Filename
	default:
		return ""
	}
}

// plainValue converts a Value back into plain Go data for JSON encoding.
func plainValue(v Value) (any, error) {
	switch t := v.(type) {
	case Scalar:
		return t.v, nil
	case Sequence:
		out := make([]any, len(t))
		for i, item := range t {
			p, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case Mapping:
		out := make(map[string]any, len(t))
		for k, item := range t {
			p, err := plainValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = p
		}
		return out, nil
	case CustomUpload:
		return nil, errUploadInJSON
	default:
		return nil, nil
	}
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
