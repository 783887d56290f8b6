package validate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/tabular"
	"go.uber.org/zap"
)

func table(header []string, rows ...[]string) *tabular.Table {
	return &tabular.Table{Header: header, Rows: rows}
}

func testCatalog() *model.Catalog {
	return model.NewCatalog([]model.FileSchema{
		cellsSchema("Customer/a.csv", []string{"ID", "Name"}, model.ColumnSchema{"INTEGER", "ANY"}),
		cellsSchema("X.csv", []string{"ID"}, model.ColumnSchema{"INTEGER"}),
	})
}

func newBatch() *BatchVerifier {
	return NewBatchVerifier(nil, nil, zap.NewNop())
}

func resultFor(t *testing.T, r *model.Report, path string) model.FileResult {
	t.Helper()
	for _, f := range r.Files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no result for %s", path)
	return model.FileResult{}
}

func TestBatch_MissingFile(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Table: table([]string{"ID", "Name"}, []string{"42", "Acme"})},
	})

	report := newBatch().Run(testCatalog(), snap)

	x := resultFor(t, report, "X.csv")
	if x.Status != model.StatusMissing {
		t.Errorf("expected MISSING, got %s", x.Status)
	}
	if x.Header != nil || len(x.RowCount) != 0 || len(x.Cells) != 0 {
		t.Errorf("expected no checks on missing file, got %+v", x)
	}
	if a := resultFor(t, report, "Customer/a.csv"); a.Status != model.StatusPass {
		t.Errorf("expected PASS, got %s", a.Status)
	}
	if !report.HasIssues() {
		t.Error("expected batch with a missing file to have issues")
	}
}

func TestBatch_UnexpectedFileWithPlaceholder(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Table: table([]string{"ID", "Name"}, []string{"42", "Acme"})},
		{Path: "X.csv", Table: table([]string{"ID"}, []string{"7"})},
		{Path: "Y.csv", Table: table([]string{"Col"}, []string{"null"})},
		{Path: "A/empty.csv", Table: table([]string{"Col"}, []string{"ok"})},
	})

	report := newBatch().Run(testCatalog(), snap)

	if diff := cmp.Diff([]string{"A/empty.csv", "Y.csv"}, report.Unexpected); diff != "" {
		t.Errorf("unexpected files mismatch (-want +got):\n%s", diff)
	}

	y := resultFor(t, report, "Y.csv")
	if y.Status != model.StatusUnexpected {
		t.Errorf("expected UNEXPECTED, got %s", y.Status)
	}
	want := []model.PlaceholderFinding{{
		Row: 1, Column: "Col", Value: "null", Rule: "literal-null",
		Reason: "literal 'null', likely a code artifact",
	}}
	if diff := cmp.Diff(want, y.Placeholders); diff != "" {
		t.Errorf("placeholder mismatch (-want +got):\n%s", diff)
	}

	clean := resultFor(t, report, "A/empty.csv")
	if clean.Status != model.StatusUnexpected {
		t.Errorf("expected standalone UNEXPECTED verdict even without findings, got %s", clean.Status)
	}

	// Catalog entries come first in catalog order, then unexpected files by path
	var order []string
	for _, f := range report.Files {
		order = append(order, f.Path)
	}
	if diff := cmp.Diff([]string{"Customer/a.csv", "X.csv", "A/empty.csv", "Y.csv"}, order); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}

	if report.Summary.Unexpected != 2 || report.Summary.Expected != 2 || report.Summary.Placeholders != 1 {
		t.Errorf("unexpected summary %+v", report.Summary)
	}
}

func TestBatch_PlaceholderOnAnyColumnKeepsPass(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Table: table([]string{"ID", "Name"}, []string{"42", "   "})},
		{Path: "X.csv", Table: table([]string{"ID"}, []string{"1"})},
	})

	report := newBatch().Run(testCatalog(), snap)

	a := resultFor(t, report, "Customer/a.csv")
	if a.Status != model.StatusPass {
		t.Errorf("expected schema verdict PASS, got %s", a.Status)
	}
	if len(a.Placeholders) != 1 || a.Placeholders[0].Rule != "whitespace-only" {
		t.Fatalf("expected one whitespace-only finding, got %v", a.Placeholders)
	}
	if a.Placeholders[0].Value != "   " {
		t.Errorf("expected raw untrimmed value, got %q", a.Placeholders[0].Value)
	}
	if !report.HasIssues() {
		t.Error("expected placeholder finding to make the batch unclean")
	}
}

func TestBatch_Clean(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Table: table([]string{"ID", "Name"}, []string{"42", "Acme"})},
		{Path: "X.csv", Table: table([]string{"ID"}, []string{"1"})},
	})

	report := newBatch().Run(testCatalog(), snap)

	if report.HasIssues() {
		t.Errorf("expected clean batch, got %+v", report.Files)
	}
	if report.Summary.Passed != 2 {
		t.Errorf("expected 2 passed, got %d", report.Summary.Passed)
	}
	if report.Unexpected == nil || len(report.Unexpected) != 0 {
		t.Errorf("expected empty non-nil unexpected list, got %v", report.Unexpected)
	}
}

func TestBatch_UnreadableFile(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Err: errors.New("parse csv: bare quote")},
		{Path: "X.csv", Table: table([]string{"ID"}, []string{"1"})},
		{Path: "Z.csv", Err: errors.New("invalid text encoding")},
	})

	report := newBatch().Run(testCatalog(), snap)

	a := resultFor(t, report, "Customer/a.csv")
	if a.Status != model.StatusFail {
		t.Errorf("expected FAIL for unreadable catalog file, got %s", a.Status)
	}
	if a.ReadError == "" {
		t.Error("expected read error to be reported")
	}

	if x := resultFor(t, report, "X.csv"); x.Status != model.StatusPass {
		t.Errorf("expected other files to still be verified, got %s", x.Status)
	}

	z := resultFor(t, report, "Z.csv")
	if z.Status != model.StatusUnexpected || z.ReadError == "" {
		t.Errorf("expected UNEXPECTED with read error, got %+v", z)
	}
}

func TestBatch_Idempotent(t *testing.T) {
	snap := tabular.NewSnapshot([]tabular.File{
		{Path: "Customer/a.csv", Table: table([]string{"ID", "Name"}, []string{"abc", "NaN"})},
		{Path: "Y.csv", Table: table([]string{"Col"}, []string{"#REF!"}, []string{"undefined"})},
	})
	b := newBatch()

	first := b.Run(testCatalog(), snap)
	second := b.Run(testCatalog(), snap)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("expected identical reports (-first +second):\n%s", diff)
	}
}
