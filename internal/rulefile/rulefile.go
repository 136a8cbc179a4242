// Package rulefile reads and writes portable rule files: an ordered block
// sequence plus the rule's name, encoded as JSON or YAML.
package rulefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rulecanvas/internal/domain"
	"rulecanvas/internal/palette"
)

// Version is the only rule file version this package understands.
const Version = 1

var (
	ErrUnsupportedFormat  = errors.New("unsupported rule file format")
	ErrUnsupportedVersion = errors.New("unsupported rule file version")
	ErrInvalidBlock       = errors.New("invalid block")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File is the on-disk shape of a rule.
type File struct {
	Version  int            `json:"version" yaml:"version"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Category string         `json:"category,omitempty" yaml:"category,omitempty"`
	Blocks   []domain.Block `json:"blocks" yaml:"blocks"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Supported reports whether path has a rule file extension.
func Supported(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Encode writes f to w.
func Encode(w io.Writer, format Format, f File) error {
	if f.Version == 0 {
		f.Version = Version
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Decode reads a rule file from r and validates its blocks.
func Decode(r io.Reader, format Format) (File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := f.normalize(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Read opens path and decodes it using the format implied by its extension.
func Read(path string) (File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return File{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open rule file: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Write encodes f to path, creating parent directories as needed.
func Write(path string, f File) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create rule file directory: %w", err)
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rule file: %w", err)
	}
	if err := Encode(fh, format, f); err != nil {
		fh.Close()
		return fmt.Errorf("encode rule file: %w", err)
	}
	return fh.Close()
}

// normalize checks the version and every block, filling a missing category
// or label from the block's palette template.
func (f *File) normalize() error {
	if f.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	seen := make(map[int64]bool, len(f.Blocks))
	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.ID <= 0 {
			return fmt.Errorf("%w: block %d has no id", ErrInvalidBlock, i)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidBlock, b.ID)
		}
		seen[b.ID] = true

		t, ok := palette.Lookup(b.Kind)
		if !ok {
			return fmt.Errorf("%w: block %d: %w", ErrInvalidBlock, b.ID, palette.ErrUnknownKind)
		}
		if b.Category == "" {
			b.Category = t.Category
		}
		if b.Category != t.Category {
			return fmt.Errorf("%w: block %d: category %q does not match kind %q", ErrInvalidBlock, b.ID, b.Category, b.Kind)
		}
		if b.Label == "" {
			b.Label = t.Label
		}
		if err := palette.Validate(b.Kind, b.Config); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrInvalidBlock, b.ID, err)
		}
	}
	return nil
}
