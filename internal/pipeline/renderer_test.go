package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/exportcheck/internal/model"
)

func cleanReport() *model.Report {
	files := []model.FileResult{
		{Path: "A.csv", Status: model.StatusPass},
		{Path: "B.csv", Status: model.StatusPass},
	}
	return &model.Report{
		RunID:      "run-1",
		Files:      files,
		Unexpected: []string{},
		Summary:    model.Summarize(files),
	}
}

func failingReport() *model.Report {
	cells := make([]model.CellIssue, 0, 5)
	for i := 1; i <= 5; i++ {
		cells = append(cells, model.CellIssue{Row: i, Column: "ID", Expected: "INTEGER", Actual: "x"})
	}
	files := []model.FileResult{
		{Path: "A.csv", Status: model.StatusPass},
		{Path: "B.csv", Status: model.StatusFail, Cells: cells},
		{Path: "C.csv", Status: model.StatusMissing},
		{
			Path:   "Z.csv",
			Status: model.StatusUnexpected,
			Placeholders: []model.PlaceholderFinding{
				{Row: 1, Column: "Name", Value: "[object Object]", Rule: "object-object", Reason: "JavaScript [object Object] serialization bug"},
			},
		},
	}
	return &model.Report{
		RunID:      "run-2",
		Files:      files,
		Unexpected: []string{"Z.csv"},
		Summary:    model.Summarize(files),
	}
}

func TestRenderSummary_Clean(t *testing.T) {
	r := NewRenderer(false, 0)
	var buf bytes.Buffer
	if err := r.RenderSummary(&buf, cleanReport()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ALL CHECKS PASSED") {
		t.Error("expected clean verdict")
	}
	if strings.Contains(out, "CELL-LEVEL ISSUES") || strings.Contains(out, "PLACEHOLDER / PSEUDO-BLANK VALUES") {
		t.Error("expected no issue sections for a clean report")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no ANSI escapes with color disabled")
	}
}

func TestRenderSummary_Issues(t *testing.T) {
	r := NewRenderer(false, 0)
	var buf bytes.Buffer
	if err := r.RenderSummary(&buf, failingReport()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"CELL-LEVEL ISSUES",
		"Row 5, [ID]: expected pattern 'INTEGER' but got 'x'",
		"PLACEHOLDER / PSEUDO-BLANK VALUES",
		`Row 1, [Name]: "[object Object]"`,
		"STRUCTURAL/CONTENT CHECKS FAILED | 1 PLACEHOLDER VALUE(S) DETECTED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected summary to contain %q\n%s", want, out)
		}
	}

	// Missing sorts ahead of failures in the file table
	if strings.Index(out, "C.csv") > strings.Index(out, "B.csv") {
		t.Error("expected MISSING file listed before FAIL file")
	}
}

func TestRenderSummary_MaxIssues(t *testing.T) {
	r := NewRenderer(false, 2)
	var buf bytes.Buffer
	if err := r.RenderSummary(&buf, failingReport()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "... and 3 more") {
		t.Errorf("expected truncation marker, got:\n%s", out)
	}
	if strings.Contains(out, "Row 3, [ID]") {
		t.Error("expected rows past the limit to be hidden")
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")
	r := NewRenderer(false, 0)

	if err := r.RenderJSON(failingReport(), path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("expected valid JSON, got %v", err)
	}
	if got.Summary.Missing != 1 || got.Summary.Unexpected != 1 {
		t.Errorf("expected summary to survive, got %+v", got.Summary)
	}
}

func TestMarkdown(t *testing.T) {
	out := NewRenderer(false, 0).Markdown(failingReport())

	for _, want := range []string{
		"# Export Verification Report",
		"- **Outcome:** issues found",
		"| C.csv | MISSING |",
		"## Issues",
		"### B.csv",
		"## Placeholder values",
		"| 1 | Name | `[object Object]` |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}

	clean := NewRenderer(false, 0).Markdown(cleanReport())
	if !strings.Contains(clean, "all checks passed") {
		t.Error("expected clean outcome line")
	}
}
