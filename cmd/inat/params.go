package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	inaturalist "github.com/inaturalist/inaturalist-go"
)

// parseParams turns key=value pairs into params. Keys are converted to
// snake_case, and dots nest ("observation.taxonId=3" becomes
// {"observation": {"taxon_id": 3}}). A repeated key collects its values
// into a list.
func parseParams(pairs []string) (inaturalist.Params, error) {
	params := inaturalist.Params{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q: want key=value", pair)
		}

		path := strings.Split(key, ".")
		for i, part := range path {
			path[i] = strcase.ToSnake(part)
		}
		if err := setPath(params, path, parseValue(raw)); err != nil {
			return nil, fmt.Errorf("param %q: %w", pair, err)
		}
	}
	return params, nil
}

func setPath(m map[string]any, path []string, v any) error {
	key := path[0]
	if len(path) == 1 {
		switch existing := m[key].(type) {
		case nil:
			m[key] = v
		case []any:
			m[key] = append(existing, v)
		case map[string]any:
			return fmt.Errorf("%s is already an object", key)
		default:
			m[key] = []any{existing, v}
		}
		return nil
	}

	child, ok := m[key].(map[string]any)
	if !ok {
		if m[key] != nil {
			return fmt.Errorf("%s is already a value", key)
		}
		child = map[string]any{}
		m[key] = child
	}
	return setPath(child, path[1:], v)
}

// parseValue reads integers, floats and booleans; anything else stays a
// string.
func parseValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
