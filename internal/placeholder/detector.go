// Package placeholder finds cell values that look blank or null but are
// really serialization artifacts: stringified objects, whitespace padding,
// programmatic null literals and spreadsheet error values.
//
// The scan is independent of any schema and inspects every cell.
package placeholder

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/exportcheck/internal/model"
)

// MaxValueLen is the display limit for a finding's raw value
const MaxValueLen = 60

// Rule is one artifact pattern
type Rule struct {
	Name   string
	Reason string
	re     *regexp.Regexp
}

// Matches reports whether the rule fires for value
func (r Rule) Matches(value string) bool {
	return r.re.MatchString(value)
}

// DefaultRules returns the artifact rules in evaluation order.
// The specific [object Object] rule must precede the general marker.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "object-object",
			Reason: "JavaScript [object Object] serialization bug",
			re:     regexp.MustCompile(`\[object Object\]`),
		},
		{
			Name:   "object-marker",
			Reason: "JavaScript [object ...] serialization bug",
			re:     regexp.MustCompile(`\[object .+\]`),
		},
		{
			Name:   "whitespace-only",
			Reason: "whitespace-only value (should be truly empty)",
			re:     regexp.MustCompile(`^[\s\v\p{Z}\x1c-\x1f\x85]+$`),
		},
		{
			Name:   "literal-null",
			Reason: "literal 'null', likely a code artifact",
			re:     regexp.MustCompile(`(?i)^null$`),
		},
		{
			Name:   "literal-undefined",
			Reason: "literal 'undefined', likely a code artifact",
			re:     regexp.MustCompile(`(?i)^undefined$`),
		},
		{
			Name:   "literal-nan",
			Reason: "literal 'NaN', likely a code artifact",
			re:     regexp.MustCompile(`^NaN$`),
		},
		{
			Name:   "literal-none",
			Reason: "literal 'None', likely a Python artifact",
			re:     regexp.MustCompile(`^None$`),
		},
		{
			Name:   "spreadsheet-error",
			Reason: "spreadsheet error value",
			re:     regexp.MustCompile(`(?i)^(#N/A|#REF!|#VALUE!|#DIV/0!)$`),
		},
	}
}

// Detector applies an ordered rule list, first match wins per cell
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector with the default rules
func NewDetector() *Detector {
	return &Detector{rules: DefaultRules()}
}

// Rules returns the rules in evaluation order
func (d *Detector) Rules() []Rule {
	return d.rules
}

// Match returns the first rule that fires for value
func (d *Detector) Match(value string) (Rule, bool) {
	for _, r := range d.rules {
		if r.Matches(value) {
			return r, true
		}
	}
	return Rule{}, false
}

// Scan inspects every cell of rows. Column names come from header.
func (d *Detector) Scan(header []string, rows [][]string) []model.PlaceholderFinding {
	var findings []model.PlaceholderFinding

	for i, row := range rows {
		for j, raw := range row {
			rule, ok := d.Match(raw)
			if !ok {
				continue
			}
			findings = append(findings, model.PlaceholderFinding{
				Row:    i + 1,
				Column: columnName(header, j),
				Value:  model.Truncate(raw, MaxValueLen),
				Rule:   rule.Name,
				Reason: rule.Reason,
			})
		}
	}

	return findings
}

func columnName(header []string, idx int) string {
	if idx < len(header) {
		return header[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}
