package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/pattern"
)

// MaxActualLen is the display limit for a mismatched cell value
const MaxActualLen = 80

// FileVerifier checks one file's parsed content against its catalog entry
type FileVerifier struct {
	compiler *pattern.Compiler
}

// NewFileVerifier creates a verifier sharing the given compiler
func NewFileVerifier(compiler *pattern.Compiler) *FileVerifier {
	if compiler == nil {
		compiler = pattern.NewCompiler()
	}
	return &FileVerifier{compiler: compiler}
}

// Verify checks header, row count and cells. The file is assumed to exist.
func (v *FileVerifier) Verify(header []string, rows [][]string, schema model.FileSchema) model.FileResult {
	result := model.FileResult{
		Path:   schema.Path,
		Status: model.StatusPass,
	}

	// 1. Header
	if diff, ok := diffHeader(schema.Headers, header); !ok {
		result.Header = &diff
	}

	// 2. Row count
	var rule model.CountRule
	if schema.Rows != nil {
		rule = schema.Rows.Count()
	}
	result.RowCount = checkRowCount(rule, len(rows))

	// 3. Cells, only when the entry declares per-row rules
	if cells, ok := schema.Rows.(model.RowCountAndCells); ok {
		result.Cells = v.checkCells(schema.Headers, cells.Rows, rows)
	}

	if result.Header != nil || len(result.RowCount) > 0 || len(result.Cells) > 0 {
		result.Status = model.StatusFail
	}

	return result
}

// diffHeader compares headers in order. ok is true when they are identical.
func diffHeader(expected, actual []string) (model.HeaderDiff, bool) {
	if slices.Equal(expected, actual) {
		return model.HeaderDiff{}, true
	}

	diff := model.HeaderDiff{
		Missing: subtract(expected, actual),
		Extra:   subtract(actual, expected),
	}
	if len(diff.Missing) == 0 && len(diff.Extra) == 0 {
		diff.OrderDiffers = true
	}
	return diff, false
}

// checkRowCount evaluates both rules independently, exact first
func checkRowCount(rule model.CountRule, actual int) []model.RowCountIssue {
	var issues []model.RowCountIssue
	if rule.Exact != nil && actual != *rule.Exact {
		issues = append(issues, model.RowCountIssue{
			Kind:     model.RowCountExact,
			Expected: *rule.Exact,
			Actual:   actual,
		})
	}
	if rule.Min != nil && actual < *rule.Min {
		issues = append(issues, model.RowCountIssue{
			Kind:     model.RowCountMin,
			Expected: *rule.Min,
			Actual:   actual,
		})
	}
	return issues
}

func (v *FileVerifier) checkCells(headers []string, expected []model.ColumnSchema, rows [][]string) []model.CellIssue {
	var issues []model.CellIssue

	for i, columns := range expected {
		if i >= len(rows) {
			issues = append(issues, model.CellIssue{Row: i + 1, RowMissing: true})
			continue
		}
		actual := rows[i]

		for j, token := range columns {
			value := ""
			if j < len(actual) {
				value = strings.TrimSpace(actual[j])
			}
			if v.compiler.Compile(token).Matches(value) {
				continue
			}
			issues = append(issues, model.CellIssue{
				Row:      i + 1,
				Column:   columnName(headers, j),
				Expected: token,
				Actual:   model.Truncate(value, MaxActualLen),
			})
		}
	}

	return issues
}

func columnName(headers []string, idx int) string {
	if idx < len(headers) {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// subtract returns the items of a not present in b, in a's order
func subtract(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if !set[s] {
			out = append(out, s)
		}
	}
	return out
}
