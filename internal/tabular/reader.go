// Package tabular reads exported CSV files into a header row and data rows.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEncoding is returned when a file is not valid UTF-8 (or BOM-marked UTF-16)
var ErrEncoding = errors.New("invalid text encoding")

// Table is the parsed content of one file
type Table struct {
	Header []string   // First record, names trimmed
	Rows   [][]string // Remaining records, cells untouched
}

// Reader parses CSV files from a filesystem
type Reader struct {
	fs         afero.Fs
	lazyQuotes bool
}

// NewReader creates a reader over fs
func NewReader(fs afero.Fs, lazyQuotes bool) *Reader {
	return &Reader{
		fs:         fs,
		lazyQuotes: lazyQuotes,
	}
}

// Read parses the file at path
func (r *Reader) Read(path string) (*Table, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return r.Parse(raw)
}

// Parse decodes and parses raw file content
func (r *Reader) Parse(raw []byte) (*Table, error) {
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	text = normalizeNewlines(text)

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = r.lazyQuotes

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return &Table{Header: []string{}, Rows: [][]string{}}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &Table{
		Header: header,
		Rows:   records[1:],
	}, nil
}

// decode strips a UTF-8 BOM, transcodes BOM-marked UTF-16 and rejects
// anything that is not valid UTF-8 afterwards. BOMOverride bypasses its
// fallback once a BOM is seen, so the output is validated again.
func decode(raw []byte) ([]byte, error) {
	t := transform.Chain(unicode.BOMOverride(encoding.UTF8Validator), encoding.UTF8Validator)
	out, _, err := transform.Bytes(t, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return out, nil
}

func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}
