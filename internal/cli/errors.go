package cli

import (
	"fmt"

	"github.com/ppiankov/exportcheck/internal/model"
)

// IssuesError reports a completed run whose batch was not clean
type IssuesError struct {
	Summary model.Summary
}

func (e *IssuesError) Error() string {
	s := e.Summary
	return fmt.Sprintf("verification found issues: %d failed, %d missing, %d unexpected, %d placeholder(s)",
		s.Failed, s.Missing, s.Unexpected, s.Placeholders)
}
