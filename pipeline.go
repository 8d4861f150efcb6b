package pactum

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ============================================================================
// Pipeline Interface
// ============================================================================

// PipelineDefinition represents an immutable, validated pipeline
// configuration. Definitions are safe to share; every run gets its own
// Runner.
type PipelineDefinition interface {
	NewRun() Runner
	StageNames() []string
	Stages() []*Stage
}

// Runner executes a pipeline definition once over a dataset. Runners are
// single-use: a second Execute returns an error instead of re-running.
type Runner interface {
	Execute(ctx context.Context, dataset *Dataset) (*Report, error)

	AddObserver(observer Observer)
	RemoveObserver(observer Observer)
}

// pipelineDefinition implements the PipelineDefinition interface
type pipelineDefinition struct {
	stages    []*Stage
	observers []Observer
}

// NewRun creates a fresh runner carrying the definition's observers
func (d *pipelineDefinition) NewRun() Runner {
	runner := &pipelineRunner{
		definition: d,
		observers:  NewObserverManager(),
	}
	for _, observer := range d.observers {
		runner.observers.AddObserver(observer)
	}
	return runner
}

// StageNames returns the stage names in run order
func (d *pipelineDefinition) StageNames() []string {
	names := make([]string, 0, len(d.stages))
	for _, stage := range d.stages {
		names = append(names, stage.Name)
	}
	return names
}

// Stages returns the configured stages in run order for inspection
func (d *pipelineDefinition) Stages() []*Stage {
	stages := make([]*Stage, len(d.stages))
	copy(stages, d.stages)
	return stages
}

// ============================================================================
// Runner Implementation
// ============================================================================

// pipelineRunner implements the Runner interface
type pipelineRunner struct {
	definition *pipelineDefinition
	observers  *ObserverManager
	executed   bool

	mutex sync.Mutex
}

// AddObserver attaches an observer to this run only
func (r *pipelineRunner) AddObserver(observer Observer) {
	r.observers.AddObserver(observer)
}

// RemoveObserver detaches an observer from this run
func (r *pipelineRunner) RemoveObserver(observer Observer) {
	r.observers.RemoveObserver(observer)
}

// Execute drives every stage in declaration order over the dataset and
// assembles the report. Domain validation failures land in the report;
// the returned error covers only runner misuse and cancellation.
func (r *pipelineRunner) Execute(parent context.Context, dataset *Dataset) (*Report, error) {
	r.mutex.Lock()
	if r.executed {
		r.mutex.Unlock()
		return nil, NewRunnerReusedError()
	}
	r.executed = true
	r.mutex.Unlock()

	if dataset == nil {
		return nil, NewNilDatasetError()
	}
	if parent == nil {
		parent = context.Background()
	}

	report := newReport()
	ctx := newRunContext(parent, dataset, report)

	r.observers.NotifyRunStarted(ctx)

	for _, stage := range r.definition.stages {
		if err := parent.Err(); err != nil {
			abort := NewRunAbortedError(stage.Name, err)
			r.observers.NotifyError(abort, ctx)
			return nil, abort
		}

		ctx.updateStage(stage.Name)

		if skip, reason := r.stageSkipped(stage, ctx, report); skip {
			report.addSkippedSection(stage.Name, reason)
			r.observers.NotifyStageSkipped(stage.Name, reason, ctx)
			continue
		}

		r.observers.NotifyStageStarted(stage.Name, ctx)

		result := newValidationResult(nil)
		for _, check := range stage.Checks {
			checkResult, err := safeExecuteCheck(stage.Name, check, ctx)
			if err != nil {
				report.addWarning(err.Error())
				r.observers.NotifyError(err, ctx)
				continue
			}
			result = result.Merge(checkResult)
		}

		report.addSection(stage.Name, result)
		r.observers.NotifyStageCompleted(stage.Name, result, ctx)

		for _, summary := range stage.Summaries {
			key, text, err := safeComputeSummary(stage.Name, summary, ctx)
			if err != nil {
				report.addWarning(err.Error())
				r.observers.NotifyError(err, ctx)
				continue
			}
			if key == "" {
				continue
			}
			report.setSummary(key, text)
			r.observers.NotifySummaryComputed(stage.Name, key, text, ctx)
		}
	}

	ctx.updateStage("")
	report.CompletedAt = time.Now()
	r.observers.NotifyRunCompleted(report, ctx)

	return report, nil
}

// stageSkipped evaluates the stage guards in order; the first guard that
// rejects or panics skips the stage
func (r *pipelineRunner) stageSkipped(stage *Stage, ctx Context, report *Report) (bool, string) {
	for _, guard := range stage.Guards {
		passed, err := safeEvaluateGuard(guard, ctx)
		if err != nil {
			report.addWarning(fmt.Sprintf("guard panicked in stage '%s'", stage.Name))
			r.observers.NotifyError(err, ctx)
			return true, "guard panicked"
		}
		if !passed {
			return true, "guard rejected stage"
		}
	}
	return false, ""
}

// safeExecuteCheck safely executes a check function with panic recovery
func safeExecuteCheck(stage string, check CheckFunc, ctx Context) (result ValidationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = newValidationResult(nil)
			err = NewCheckPanicError(stage, r)
		}
	}()

	result = check(ctx)
	return result, nil
}

// safeComputeSummary safely executes a summary function with panic recovery
func safeComputeSummary(stage string, summary SummaryFunc, ctx Context) (key string, text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			key = ""
			text = ""
			err = NewCheckPanicError(stage, r)
		}
	}()

	key, text = summary(ctx)
	return key, text, nil
}

// safeEvaluateGuard safely evaluates a guard function with panic recovery
func safeEvaluateGuard(guard GuardFunc, ctx Context) (result bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = fmt.Errorf("guard panic: %v", r)
		}
	}()

	result = guard(ctx)
	return result, nil
}
