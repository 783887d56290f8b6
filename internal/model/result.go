package model

import (
	"fmt"
	"strings"
)

// Status is the per-file verdict
type Status string

const (
	StatusPass       Status = "PASS"       // No issues of any kind
	StatusFail       Status = "FAIL"       // Header, row-count, cell or read failure
	StatusMissing    Status = "MISSING"    // Expected file absent
	StatusUnexpected Status = "UNEXPECTED" // File present but not in the catalog
)

// FileResult is the verification outcome for a single file
type FileResult struct {
	Path         string               `json:"path"`
	Status       Status               `json:"status"`
	Header       *HeaderDiff          `json:"header,omitempty"`
	RowCount     []RowCountIssue      `json:"row_count,omitempty"`
	Cells        []CellIssue          `json:"cells,omitempty"`
	Placeholders []PlaceholderFinding `json:"placeholders,omitempty"`
	ReadError    string               `json:"read_error,omitempty"`
}

// Passed reports whether the file reached PASS
func (r *FileResult) Passed() bool {
	return r.Status == StatusPass
}

// HeaderOK reports whether the header matched
func (r *FileResult) HeaderOK() bool {
	return r.Header == nil
}

// RowCountOK reports whether every row-count rule held
func (r *FileResult) RowCountOK() bool {
	return len(r.RowCount) == 0
}

// HeaderDiff describes a header mismatch
type HeaderDiff struct {
	Missing      []string `json:"missing,omitempty"` // Expected columns absent from the file
	Extra        []string `json:"extra,omitempty"`   // File columns absent from the catalog
	OrderDiffers bool     `json:"order_differs"`     // Same names, different order
}

func (d HeaderDiff) String() string {
	var parts []string
	if len(d.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns: %s", quoteList(d.Missing)))
	}
	if len(d.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra columns: %s", quoteList(d.Extra)))
	}
	if d.OrderDiffers {
		parts = append(parts, "column order differs")
	}
	return strings.Join(parts, "; ")
}

// RowCountKind identifies which count rule was violated
type RowCountKind string

const (
	RowCountExact RowCountKind = "exact"
	RowCountMin   RowCountKind = "min"
)

// RowCountIssue is a violated row-count rule
type RowCountIssue struct {
	Kind     RowCountKind `json:"kind"`
	Expected int          `json:"expected"`
	Actual   int          `json:"actual"`
}

func (i RowCountIssue) String() string {
	if i.Kind == RowCountMin {
		return fmt.Sprintf("expected at least %d, got %d", i.Expected, i.Actual)
	}
	return fmt.Sprintf("expected %d, got %d", i.Expected, i.Actual)
}

// CellIssue is a cell that failed its matcher, or an expected row that is absent
type CellIssue struct {
	Row        int    `json:"row"` // 1-based data row number
	Column     string `json:"column,omitempty"`
	Expected   string `json:"expected,omitempty"` // Rule token
	Actual     string `json:"actual,omitempty"`   // Trimmed, truncated cell value
	RowMissing bool   `json:"row_missing,omitempty"`
}

func (i CellIssue) String() string {
	if i.RowMissing {
		return fmt.Sprintf("Row %d: row missing from file", i.Row)
	}
	return fmt.Sprintf("Row %d, [%s]: expected pattern '%s' but got '%s'", i.Row, i.Column, i.Expected, i.Actual)
}

// PlaceholderFinding is a cell that looks like a serialization artifact
type PlaceholderFinding struct {
	Row    int    `json:"row"`    // 1-based data row number
	Column string `json:"column"` // From the file's own header
	Value  string `json:"value"`  // Raw value, truncated for display
	Rule   string `json:"rule"`   // Name of the rule that fired
	Reason string `json:"reason"` // Human-readable explanation
}

func (f PlaceholderFinding) String() string {
	return fmt.Sprintf("Row %d, [%s]: %q (%s)", f.Row, f.Column, f.Value, f.Reason)
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
