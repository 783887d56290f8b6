package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/ppiankov/exportcheck/internal/model"
)

const ruleWidth = 100

// Renderer formats a finalized report. It holds options only.
type Renderer struct {
	color     bool
	maxIssues int
}

// NewRenderer creates a renderer. maxIssues limits detail lines per file; 0 prints all.
func NewRenderer(useColor bool, maxIssues int) *Renderer {
	return &Renderer{
		color:     useColor,
		maxIssues: maxIssues,
	}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

type palette struct {
	bold, red, green, yellow, cyan, magenta *color.Color
	boldRed, boldGreen, boldMagenta         *color.Color
}

func (r *Renderer) palette() palette {
	paint := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if !r.color {
			c.DisableColor()
		}
		return c
	}
	return palette{
		bold:        paint(color.Bold),
		red:         paint(color.FgHiRed),
		green:       paint(color.FgHiGreen),
		yellow:      paint(color.FgHiYellow),
		cyan:        paint(color.FgHiCyan),
		magenta:     paint(color.FgHiMagenta),
		boldRed:     paint(color.FgHiRed, color.Bold),
		boldGreen:   paint(color.FgHiGreen, color.Bold),
		boldMagenta: paint(color.FgHiMagenta, color.Bold),
	}
}

func (p palette) status(s model.Status) string {
	switch s {
	case model.StatusPass:
		return p.green.Sprint(s)
	case model.StatusFail:
		return p.red.Sprint(s)
	case model.StatusMissing:
		return p.yellow.Sprint(s)
	case model.StatusUnexpected:
		return p.cyan.Sprint(s)
	default:
		return string(s)
	}
}

// RenderSummary prints the human-readable summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) error {
	p := r.palette()
	s := report.Summary
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.bold.Sprint(heavy))
	fmt.Fprintln(w, p.bold.Sprint("  EXPORTED FILE VERIFICATION SUMMARY"))
	fmt.Fprintln(w, p.bold.Sprint(heavy))
	fmt.Fprintln(w)
	if report.BaseDir != "" {
		fmt.Fprintf(w, "  Directory            : %s\n", report.BaseDir)
	}
	fmt.Fprintf(w, "  Total expected files : %d\n", s.Expected)
	fmt.Fprintf(w, "  %s             : %d\n", p.green.Sprint("✓ Passed"), s.Passed)
	fmt.Fprintf(w, "  %s             : %d\n", p.red.Sprint("✗ Failed"), s.Failed)
	fmt.Fprintf(w, "  %s            : %d\n", p.yellow.Sprint("⚠ Missing"), s.Missing)
	fmt.Fprintf(w, "  %s         : %d\n", p.cyan.Sprint("? Unexpected"), s.Unexpected)
	fmt.Fprintf(w, "  %s       : %d value(s) across %d file(s)\n", p.magenta.Sprint("⊘ Placeholders"), s.Placeholders, s.FilesWithPlaceholders)
	fmt.Fprintln(w)

	// File-by-file table
	table := tablewriter.NewWriter(w)
	table.Header("File", "Status", "Details")
	for _, f := range sortedForDisplay(report.Files) {
		if err := table.Append([]string{f.Path, p.status(f.Status), details(f)}); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintln(w)

	// Detailed issues
	if hasStructuralDetail(report.Files) {
		fmt.Fprintln(w, p.bold.Sprint(light))
		fmt.Fprintln(w, p.bold.Sprint("  CELL-LEVEL ISSUES"))
		fmt.Fprintln(w, p.bold.Sprint(light))
		for _, f := range report.Files {
			lines := issueLines(f)
			if len(lines) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n  %s\n", p.bold.Sprint(f.Path))
			r.printLimited(w, "    • ", lines)
		}
		fmt.Fprintln(w)
	}

	if s.Placeholders > 0 {
		fmt.Fprintln(w, p.bold.Sprint(light))
		fmt.Fprintln(w, p.boldMagenta.Sprint("  PLACEHOLDER / PSEUDO-BLANK VALUES"))
		fmt.Fprintln(w, p.bold.Sprint(light))
		fmt.Fprintln(w, "  Values that are not real data: serialization artifacts,")
		fmt.Fprintln(w, "  whitespace masquerading as blank, or programmatic nulls.")
		for _, f := range report.Files {
			if len(f.Placeholders) == 0 {
				continue
			}
			lines := make([]string, len(f.Placeholders))
			for i, ph := range f.Placeholders {
				lines[i] = ph.String()
			}
			fmt.Fprintf(w, "\n  %s\n", p.bold.Sprint(f.Path))
			r.printLimited(w, "    ⊘ ", lines)
		}
		fmt.Fprintln(w)
	}

	// Final verdict
	fmt.Fprintln(w, heavy)
	if report.Clean() {
		fmt.Fprintf(w, "  %s\n", p.boldGreen.Sprint("ALL CHECKS PASSED ✓"))
	} else {
		var parts []string
		if s.Failed > 0 || s.Missing > 0 || s.Unexpected > 0 {
			parts = append(parts, p.boldRed.Sprint("STRUCTURAL/CONTENT CHECKS FAILED"))
		}
		if s.Placeholders > 0 {
			parts = append(parts, p.boldMagenta.Sprintf("%d PLACEHOLDER VALUE(S) DETECTED", s.Placeholders))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, " | "))
	}
	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w)

	return nil
}

func (r *Renderer) printLimited(w io.Writer, bullet string, lines []string) {
	shown := lines
	if r.maxIssues > 0 && len(lines) > r.maxIssues {
		shown = lines[:r.maxIssues]
	}
	for _, line := range shown {
		fmt.Fprintf(w, "%s%s\n", bullet, line)
	}
	if rest := len(lines) - len(shown); rest > 0 {
		fmt.Fprintf(w, "%s... and %d more\n", bullet, rest)
	}
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString("# Export Verification Report\n\n")
	if report.RunID != "" {
		fmt.Fprintf(&b, "- **Run:** `%s`\n", report.RunID)
	}
	if report.BaseDir != "" {
		fmt.Fprintf(&b, "- **Directory:** `%s`\n", report.BaseDir)
	}
	if !report.StartedAt.IsZero() {
		fmt.Fprintf(&b, "- **Started:** %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if report.Clean() {
		b.WriteString("- **Outcome:** all checks passed\n\n")
	} else {
		b.WriteString("- **Outcome:** issues found\n\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Expected files | %d |\n", s.Expected)
	fmt.Fprintf(&b, "| Passed | %d |\n", s.Passed)
	fmt.Fprintf(&b, "| Failed | %d |\n", s.Failed)
	fmt.Fprintf(&b, "| Missing | %d |\n", s.Missing)
	fmt.Fprintf(&b, "| Unexpected | %d |\n", s.Unexpected)
	fmt.Fprintf(&b, "| Placeholder values | %d (in %d files) |\n\n", s.Placeholders, s.FilesWithPlaceholders)

	b.WriteString("## Files\n\n")
	b.WriteString("| File | Status | Details |\n|---|---|---|\n")
	for _, f := range sortedForDisplay(report.Files) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", mdCell(f.Path), f.Status, mdCell(details(f)))
	}
	b.WriteString("\n")

	if hasStructuralDetail(report.Files) {
		b.WriteString("## Issues\n")
		for _, f := range report.Files {
			lines := issueLines(f)
			if len(lines) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", f.Path)
			for _, line := range lines {
				fmt.Fprintf(&b, "- %s\n", line)
			}
		}
		b.WriteString("\n")
	}

	if s.Placeholders > 0 {
		b.WriteString("## Placeholder values\n")
		for _, f := range report.Files {
			if len(f.Placeholders) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", f.Path)
			b.WriteString("| Row | Column | Value | Reason |\n|---|---|---|---|\n")
			for _, ph := range f.Placeholders {
				fmt.Fprintf(&b, "| %d | %s | `%s` | %s |\n", ph.Row, mdCell(ph.Column), mdCell(ph.Value), mdCell(ph.Reason))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// sortedForDisplay orders MISSING first, then FAIL, then everything else, by path
func sortedForDisplay(files []model.FileResult) []model.FileResult {
	rank := func(s model.Status) int {
		switch s {
		case model.StatusMissing:
			return 0
		case model.StatusFail:
			return 1
		default:
			return 2
		}
	}
	out := make([]model.FileResult, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Status), rank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// details is the one-line description shown in the file table
func details(f model.FileResult) string {
	var parts []string
	if f.Status == model.StatusUnexpected {
		parts = append(parts, "file not in reference set")
	}
	if f.ReadError != "" {
		parts = append(parts, "unreadable: "+f.ReadError)
	}
	if f.Header != nil {
		parts = append(parts, "Headers: "+f.Header.String())
	}
	for _, rc := range f.RowCount {
		parts = append(parts, "Rows: "+rc.String())
	}
	if n := len(f.Cells); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cell issue(s)", n))
	}
	if n := len(f.Placeholders); n > 0 {
		parts = append(parts, fmt.Sprintf("%d placeholder(s)", n))
	}
	return strings.Join(parts, "; ")
}

// issueLines lists read, header, row-count and cell issues for one file
func issueLines(f model.FileResult) []string {
	var lines []string
	if f.ReadError != "" {
		lines = append(lines, "unreadable: "+f.ReadError)
	}
	if f.Header != nil {
		lines = append(lines, "Headers: "+f.Header.String())
	}
	for _, rc := range f.RowCount {
		lines = append(lines, "Rows: "+rc.String())
	}
	for _, c := range f.Cells {
		lines = append(lines, c.String())
	}
	return lines
}

func hasStructuralDetail(files []model.FileResult) bool {
	for _, f := range files {
		if len(issueLines(f)) > 0 {
			return true
		}
	}
	return false
}

func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
