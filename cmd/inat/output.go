package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	inaturalist "github.com/inaturalist/inaturalist-go"
)

// render writes a call result as JSON or YAML. A nil result prints
// nothing.
func render(w io.Writer, format string, result any) error {
	var v any
	switch r := result.(type) {
	case nil:
		return nil
	case *inaturalist.Response:
		v = r.Value()
	case inaturalist.Array:
		v = []any(r)
	default:
		v = r
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
