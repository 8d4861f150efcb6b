package pactum

import (
	"time"

	"github.com/google/uuid"
)

// ReportSection holds the outcome of one pipeline stage
type ReportSection struct {
	Stage   string           `json:"stage"`
	Result  ValidationResult `json:"result"`
	Skipped bool             `json:"skipped,omitempty"`
	Reason  string           `json:"reason,omitempty"`
}

// Report is the assembled outcome of a pipeline run. The host decides what
// to do with it: render it, route it to notification channels, or persist
// it. The library only builds the value.
type Report struct {
	ID          string            `json:"id"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt time.Time         `json:"completedAt"`
	Sections    []ReportSection   `json:"sections"`
	Summaries   map[string]string `json:"summaries"`
	Warnings    []string          `json:"warnings"`
}

// newReport creates an empty report with a fresh run ID
func newReport() *Report {
	return &Report{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Sections:  make([]ReportSection, 0),
		Summaries: make(map[string]string),
		Warnings:  make([]string, 0),
	}
}

// OK reports whether every executed stage passed. Skipped stages do not
// count against the run.
func (r *Report) OK() bool {
	for _, section := range r.Sections {
		if section.Skipped {
			continue
		}
		if !section.Result.OK {
			return false
		}
	}
	return true
}

// Section returns the section recorded for the named stage
func (r *Report) Section(stage string) (ReportSection, bool) {
	for _, section := range r.Sections {
		if section.Stage == stage {
			return section, true
		}
	}
	return ReportSection{}, false
}

// FailedStages lists the names of stages whose result carries errors,
// in run order
func (r *Report) FailedStages() []string {
	failed := make([]string, 0)
	for _, section := range r.Sections {
		if !section.Skipped && !section.Result.OK {
			failed = append(failed, section.Stage)
		}
	}
	return failed
}

// ErrorCount returns the total number of validation messages across all
// executed stages
func (r *Report) ErrorCount() int {
	count := 0
	for _, section := range r.Sections {
		count += len(section.Result.Errors)
	}
	return count
}

// addSection appends the outcome of an executed stage
func (r *Report) addSection(stage string, result ValidationResult) {
	r.Sections = append(r.Sections, ReportSection{
		Stage:  stage,
		Result: result,
	})
}

// addSkippedSection records a stage a guard kept from running
func (r *Report) addSkippedSection(stage string, reason string) {
	r.Sections = append(r.Sections, ReportSection{
		Stage:   stage,
		Result:  newValidationResult(nil),
		Skipped: true,
		Reason:  reason,
	})
}

// addWarning records a non-fatal problem observed during the run
func (r *Report) addWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// setSummary records a derived value under its key
func (r *Report) setSummary(key string, text string) {
	r.Summaries[key] = text
}
