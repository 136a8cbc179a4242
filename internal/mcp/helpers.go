package mcpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
)

// parseJSON parses a single JSON object into the struct pointed to by target.
// Keys must match a field's json name exactly, including case, and nothing
// may follow the object.
func parseJSON(data string, target any) error {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}

	known := jsonFieldNames(reflect.TypeOf(target).Elem())
	for key := range fields {
		if !known[key] {
			return fmt.Errorf("json: unknown field %q", key)
		}
	}
	return json.Unmarshal([]byte(data), target)
}

// jsonFieldNames returns the json names of the exported fields of struct type t.
func jsonFieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names[name] = true
	}
	return names
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func getBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// getString returns a trimmed string argument, or an error when it is required and empty.
func getString(args map[string]any, key string, required bool) (string, error) {
	v, _ := args[key].(string)
	v = strings.TrimSpace(v)
	if v == "" && required {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// getBlockID reads a block ID. JSON numbers arrive as float64; string IDs are
// accepted as well since block IDs exceed what some clients keep exact.
func getBlockID(args map[string]any) (int64, error) {
	switch v := args["blockId"].(type) {
	case float64:
		if v != math.Trunc(v) || v <= 0 {
			return 0, fmt.Errorf("blockId must be a positive integer")
		}
		return int64(v), nil
	case string:
		var id int64
		if _, err := fmt.Sscan(strings.TrimSpace(v), &id); err != nil || id <= 0 {
			return 0, fmt.Errorf("blockId must be a positive integer")
		}
		return id, nil
	}
	return 0, fmt.Errorf("blockId is required")
}
