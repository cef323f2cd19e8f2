package batch

import (
	"fmt"
)

// Summary accumulates the outcome of one batch run: item counts plus the
// ordered warning and error lines shown to the operator.
type Summary struct {
	Created             int      `json:"created"`
	Updated             int      `json:"updated"`
	Deleted             int      `json:"deleted"`
	Skipped             int      `json:"skipped"`
	Errored             int      `json:"errored"`
	AssessmentsAffected int      `json:"assessments_affected"`
	Warnings            []string `json:"warnings,omitempty"`
	Errors              []string `json:"errors,omitempty"`
}

func (s *Summary) Warnf(format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

func (s *Summary) Errorf(format string, args ...interface{}) {
	s.Errored++
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Lines returns every warning and error in report order.
func (s *Summary) Lines() []string {
	out := make([]string, 0, len(s.Warnings)+len(s.Errors))
	out = append(out, s.Warnings...)
	out = append(out, s.Errors...)
	return out
}

func (s *Summary) String() string {
	return fmt.Sprintf("created=%d updated=%d deleted=%d skipped=%d errored=%d assessments_affected=%d",
		s.Created, s.Updated, s.Deleted, s.Skipped, s.Errored, s.AssessmentsAffected)
}
