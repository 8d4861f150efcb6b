package pactum

// CheckFunc performs one stage's validation work. Checks never return Go
// errors; everything they find about the records goes into the
// ValidationResult.
type CheckFunc func(ctx Context) ValidationResult

// GuardFunc decides whether a stage should run
type GuardFunc func(ctx Context) bool

// SummaryFunc computes one derived value for the report. Returning an
// empty key tells the runner to discard the result.
type SummaryFunc func(ctx Context) (key string, text string)

// Stage is one named unit of pipeline work: guards that decide whether it
// runs, checks that validate records, and summaries that derive report
// values after the checks.
type Stage struct {
	Name      string
	Guards    []GuardFunc
	Checks    []CheckFunc
	Summaries []SummaryFunc
}

// NewStage creates a new stage with the given name
func NewStage(name string) *Stage {
	return &Stage{
		Name:      name,
		Guards:    make([]GuardFunc, 0),
		Checks:    make([]CheckFunc, 0),
		Summaries: make([]SummaryFunc, 0),
	}
}

// WithGuard adds a guard condition to the stage
func (s *Stage) WithGuard(guard GuardFunc) *Stage {
	s.Guards = append(s.Guards, guard)
	return s
}

// WithCheck adds a check to the stage
func (s *Stage) WithCheck(check CheckFunc) *Stage {
	s.Checks = append(s.Checks, check)
	return s
}

// WithSummary adds a summary computation to the stage
func (s *Stage) WithSummary(summary SummaryFunc) *Stage {
	s.Summaries = append(s.Summaries, summary)
	return s
}

// hasWork reports whether the stage would do anything when run
func (s *Stage) hasWork() bool {
	return len(s.Checks) > 0 || len(s.Summaries) > 0
}
