// Package catalog loads the reference catalog of expected export files.
//
// The default catalog is embedded in the binary; a replacement document with
// the same layout can be loaded from disk:
//
//	files:
//	  - path: "Customer/Customer barebone.csv"
//	    headers: ["Created Date", "ID"]
//	    row_count:           # optional
//	      exact: 48
//	      min: 1
//	    rows:                # optional, one token list per expected row
//	      - ["DATETIME", "INTEGER"]
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/ppiankov/exportcheck/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// ErrInvalid is returned when a catalog document breaks a structural rule
var ErrInvalid = errors.New("invalid catalog")

type document struct {
	Files []entry `yaml:"files"`
}

type entry struct {
	Path     string           `yaml:"path"`
	Headers  []string         `yaml:"headers"`
	RowCount *model.CountRule `yaml:"row_count,omitempty"`
	Rows     [][]string       `yaml:"rows,omitempty"`
}

// Default returns the embedded reference catalog
func Default() (*model.Catalog, error) {
	cat, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return cat, nil
}

// Load reads a catalog document from disk, or the embedded one when path is empty
func Load(file string) (*model.Catalog, error) {
	if file == "" {
		return Default()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", file, err)
	}
	return cat, nil
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*model.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	seen := make(map[string]bool, len(doc.Files))
	schemas := make([]model.FileSchema, 0, len(doc.Files))

	for i, e := range doc.Files {
		schema, err := e.toSchema()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalid, i+1, err)
		}
		if seen[schema.Path] {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalid, schema.Path)
		}
		seen[schema.Path] = true
		schemas = append(schemas, schema)
	}

	return model.NewCatalog(schemas), nil
}

func (e entry) toSchema() (model.FileSchema, error) {
	p := strings.TrimSpace(e.Path)
	if p == "" {
		return model.FileSchema{}, errors.New("empty path")
	}
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(p) || strings.HasPrefix(p, "../") || p == ".." {
		return model.FileSchema{}, fmt.Errorf("%q: path must be relative to the scan directory", e.Path)
	}
	if len(e.Headers) == 0 {
		return model.FileSchema{}, fmt.Errorf("%q: no headers", p)
	}

	var rule model.CountRule
	if e.RowCount != nil {
		rule = *e.RowCount
	}
	if rule.Exact != nil && *rule.Exact < 0 {
		return model.FileSchema{}, fmt.Errorf("%q: negative exact row count", p)
	}
	if rule.Min != nil && *rule.Min < 0 {
		return model.FileSchema{}, fmt.Errorf("%q: negative minimum row count", p)
	}

	schema := model.FileSchema{Path: p, Headers: e.Headers}

	if len(e.Rows) == 0 {
		schema.Rows = model.RowCountOnly{Rule: rule}
		return schema, nil
	}

	rows := make([]model.ColumnSchema, len(e.Rows))
	for i, r := range e.Rows {
		if len(r) != len(e.Headers) {
			return model.FileSchema{}, fmt.Errorf("%q: row %d has %d rules for %d headers", p, i+1, len(r), len(e.Headers))
		}
		rows[i] = model.ColumnSchema(r)
	}
	schema.Rows = model.RowCountAndCells{Rule: rule, Rows: rows}
	return schema, nil
}
