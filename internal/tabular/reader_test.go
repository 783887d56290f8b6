package tabular

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestReader_Parse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   [][]string
	}{
		{
			name:       "simple",
			input:      "ID,Name\n42,Acme\n",
			wantHeader: []string{"ID", "Name"},
			wantRows:   [][]string{{"42", "Acme"}},
		},
		{
			name:       "utf-8 bom is stripped",
			input:      "\xEF\xBB\xBFID,Name\n1,x\n",
			wantHeader: []string{"ID", "Name"},
			wantRows:   [][]string{{"1", "x"}},
		},
		{
			name:       "crlf and lone cr",
			input:      "ID,Name\r\n1,a\r2,b\r\n",
			wantHeader: []string{"ID", "Name"},
			wantRows:   [][]string{{"1", "a"}, {"2", "b"}},
		},
		{
			name:       "quoted fields keep commas and padding",
			input:      "ID,Name\n1,\"Acme, Inc\"\n2,\"   \"\n",
			wantHeader: []string{"ID", "Name"},
			wantRows:   [][]string{{"1", "Acme, Inc"}, {"2", "   "}},
		},
		{
			name:       "header names are trimmed",
			input:      " ID , Name \n1,x\n",
			wantHeader: []string{"ID", "Name"},
			wantRows:   [][]string{{"1", "x"}},
		},
		{
			name:       "ragged rows are allowed",
			input:      "A,B,C\n1\n1,2,3,4\n",
			wantHeader: []string{"A", "B", "C"},
			wantRows:   [][]string{{"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:       "header only",
			input:      "A,B\n",
			wantHeader: []string{"A", "B"},
			wantRows:   [][]string{},
		},
		{
			name:       "empty file",
			input:      "",
			wantHeader: []string{},
			wantRows:   [][]string{},
		},
	}

	r := NewReader(afero.NewMemMapFs(), false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := r.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if diff := cmp.Diff(tt.wantHeader, table.Header); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRows, table.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_Parse_UTF16BOM(t *testing.T) {
	// "A,B\n1,2\n" as UTF-16LE with BOM
	input := []byte{0xFF, 0xFE}
	for _, c := range "A,B\n1,2\n" {
		input = append(input, byte(c), 0x00)
	}

	table, err := NewReader(afero.NewMemMapFs(), false).Parse(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, table.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_Parse_InvalidUTF8(t *testing.T) {
	_, err := NewReader(afero.NewMemMapFs(), false).Parse([]byte("A,B\n\xff\xfe\xfd,1\n"))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestReader_Parse_BOMInvalidUTF8(t *testing.T) {
	_, err := NewReader(afero.NewMemMapFs(), false).Parse([]byte("\xEF\xBB\xBFa,b\n\xff,x\n"))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding for BOM-prefixed invalid UTF-8, got %v", err)
	}
}

func TestReader_Parse_TruncatedQuote(t *testing.T) {
	_, err := NewReader(afero.NewMemMapFs(), false).Parse([]byte("A,B\n1,\"unterminated\n"))
	if err == nil {
		t.Fatal("expected parse error for unterminated quote")
	}
}

func TestReader_Read(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/exports/a.csv", []byte("ID\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader(fs, false)
	table, err := r.Read("/exports/a.csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(table.Rows))
	}

	if _, err := r.Read("/exports/missing.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
