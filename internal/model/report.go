package model

import "time"

// Report is the finalized outcome of one verification run
type Report struct {
	RunID      string       `json:"run_id"`
	BaseDir    string       `json:"base_dir"`
	StartedAt  time.Time    `json:"started_at"`
	Files      []FileResult `json:"files"`      // Catalog order, then unexpected files by path
	Unexpected []string     `json:"unexpected"` // Sorted relative paths
	Summary    Summary      `json:"summary"`
}

// Summary aggregates the per-file verdicts
type Summary struct {
	Expected              int `json:"expected"`
	Passed                int `json:"passed"`
	Failed                int `json:"failed"`
	Missing               int `json:"missing"`
	Unexpected            int `json:"unexpected"`
	Placeholders          int `json:"placeholders"`
	FilesWithPlaceholders int `json:"files_with_placeholders"`
}

// Summarize computes the summary from the file results
func Summarize(files []FileResult) Summary {
	var s Summary
	for _, f := range files {
		switch f.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusMissing:
			s.Missing++
		case StatusUnexpected:
			s.Unexpected++
		}
		if f.Status != StatusUnexpected {
			s.Expected++
		}
		if len(f.Placeholders) > 0 {
			s.FilesWithPlaceholders++
			s.Placeholders += len(f.Placeholders)
		}
	}
	return s
}

// HasIssues reports whether the batch is not clean
func (r *Report) HasIssues() bool {
	for _, f := range r.Files {
		if f.Status != StatusPass || len(f.Placeholders) > 0 {
			return true
		}
	}
	return len(r.Unexpected) > 0
}

// Clean reports whether every expected file passed with no placeholders or extras
func (r *Report) Clean() bool {
	return !r.HasIssues()
}
