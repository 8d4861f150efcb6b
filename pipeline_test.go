package pactum

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPipeline_FullRunOverValidDataset(t *testing.T) {
	definition := DefaultPipeline("2024-07-01")
	runner := definition.NewRun()

	report, err := runner.Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !report.OK() {
		t.Errorf("Expected clean run, got failed stages %v", report.FailedStages())
	}

	if len(report.Sections) != 6 {
		t.Fatalf("Expected 6 sections, got %d", len(report.Sections))
	}

	expectedOrder := []string{StageContract, StageSchedule, StageReminders, StageBudget, StageVariations, StageCompliance}
	for i, stage := range expectedOrder {
		if report.Sections[i].Stage != stage {
			t.Errorf("Expected section %d to be %s, got %s", i, stage, report.Sections[i].Stage)
		}
		AssertSectionOK(t, report, stage)
	}

	budgetLine := AssertSummary(t, report, SummaryKeyBudget)
	expected := "Budget Q1: committed 500000 USD, spent 240000, variance -260000, forecast delta 10000"
	if budgetLine != expected {
		t.Errorf("Expected %q, got %q", expected, budgetLine)
	}

	lagLine := AssertSummary(t, report, SummaryKeyScheduleLag)
	if lagLine != "1 of 2 schedule entries lagging behind 2024-07-01" {
		t.Errorf("Unexpected schedule lag summary: %q", lagLine)
	}

	tallyLine := AssertSummary(t, report, SummaryKeyCompliance)
	if tallyLine != "major:pending=1, minor:collected=1" {
		t.Errorf("Unexpected compliance tally summary: %q", tallyLine)
	}

	if report.ErrorCount() != 0 {
		t.Errorf("Expected no validation messages, got %d", report.ErrorCount())
	}

	if report.CompletedAt.Before(report.StartedAt) {
		t.Error("Expected completion after start")
	}
}

func TestPipeline_ValidationFailuresLandInReport(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Contract = &ContractMetadata{}

	report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Expected validation failures to not surface as run errors, got %v", err)
	}

	if report.OK() {
		t.Error("Expected report to fail")
	}

	failed := report.FailedStages()
	if len(failed) != 1 || failed[0] != StageContract {
		t.Errorf("Expected only the contract stage to fail, got %v", failed)
	}

	section, _ := report.Section(StageContract)
	AssertErrorCount(t, section.Result, 8)

	// A failing stage never stops the stages after it
	if len(report.Sections) != 6 {
		t.Errorf("Expected all 6 stages to run, got %d sections", len(report.Sections))
	}
}

func TestPipeline_GuardSkipsContractStage(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Contract = nil

	observer := NewTestObserver()
	runner := DefaultPipeline("2024-07-01").NewRun()
	runner.AddObserver(observer)

	report, err := runner.Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	AssertSectionSkipped(t, report, StageContract)

	section, _ := report.Section(StageContract)
	if section.Reason != "guard rejected stage" {
		t.Errorf("Expected guard rejection reason, got %q", section.Reason)
	}

	// Skipped stages do not count against the run
	if !report.OK() {
		t.Errorf("Expected clean run, got failed stages %v", report.FailedStages())
	}

	if observer.SkipCount() != 1 {
		t.Errorf("Expected 1 skip notification, got %d", observer.SkipCount())
	}

	if observer.StageCompletedCount() != 5 {
		t.Errorf("Expected 5 completed stages, got %d", observer.StageCompletedCount())
	}
}

func TestPipeline_GuardSkipsBudgetStage(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Budget = nil

	report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	AssertSectionSkipped(t, report, StageBudget)
	AssertNoSummary(t, report, SummaryKeyBudget)

	// The other summaries are unaffected
	AssertSummary(t, report, SummaryKeyScheduleLag)
	AssertSummary(t, report, SummaryKeyCompliance)
}

func TestPipeline_PanickingCheckBecomesWarning(t *testing.T) {
	observer := NewTestObserver()

	explosiveCheck := func(ctx Context) ValidationResult {
		panic("check exploded")
	}

	definition := NewPipeline().
		Stage("explosive").Check(explosiveCheck).
		Stage(StageBudget).Check(CheckBudget).
		Build()

	runner := definition.NewRun()
	runner.AddObserver(observer)

	report, err := runner.Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Expected panicking check to not abort the run, got %v", err)
	}

	if len(report.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", report.Warnings)
	}

	if !strings.Contains(report.Warnings[0], "check panicked in stage 'explosive'") {
		t.Errorf("Unexpected warning: %q", report.Warnings[0])
	}

	if observer.ErrorCount() != 1 {
		t.Errorf("Expected 1 error notification, got %d", observer.ErrorCount())
	}

	// The stage after the panicking one still runs
	AssertSectionOK(t, report, StageBudget)
}

func TestPipeline_PanickingGuardSkipsStage(t *testing.T) {
	explosiveGuard := func(ctx Context) bool { panic("guard exploded") }

	definition := NewPipeline().
		Stage("guarded").When(explosiveGuard).Check(CheckContract).
		Stage(StageBudget).Check(CheckBudget).
		Build()

	report, err := definition.NewRun().Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	AssertSectionSkipped(t, report, "guarded")

	section, _ := report.Section("guarded")
	if section.Reason != "guard panicked" {
		t.Errorf("Expected guard panic reason, got %q", section.Reason)
	}

	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "guard panicked in stage 'guarded'") {
		t.Errorf("Expected guard panic warning, got %v", report.Warnings)
	}

	AssertSectionOK(t, report, StageBudget)
}

func TestPipeline_PanickingSummaryBecomesWarning(t *testing.T) {
	explosiveSummary := func(ctx Context) (string, string) { panic("summary exploded") }

	definition := NewPipeline().
		Stage(StageBudget).Check(CheckBudget).Summarize(explosiveSummary).
		Build()

	report, err := definition.NewRun().Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// The checks already passed; only the summary is lost
	AssertSectionOK(t, report, StageBudget)

	if len(report.Summaries) != 0 {
		t.Errorf("Expected no summaries, got %v", report.Summaries)
	}

	if len(report.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", report.Warnings)
	}
}

func TestPipeline_EmptyKeySummaryDiscarded(t *testing.T) {
	observer := NewTestObserver()

	keylessSummary := func(ctx Context) (string, string) { return "", "discard me" }

	definition := NewPipeline().
		Stage(StageBudget).Check(CheckBudget).Summarize(keylessSummary).
		Build()

	runner := definition.NewRun()
	runner.AddObserver(observer)

	report, err := runner.Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(report.Summaries) != 0 {
		t.Errorf("Expected empty-key summary to be discarded, got %v", report.Summaries)
	}

	if observer.SummaryCount() != 0 {
		t.Errorf("Expected no summary notifications, got %d", observer.SummaryCount())
	}

	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestPipeline_NilDataset(t *testing.T) {
	report, err := CreateSimplePipeline().NewRun().Execute(context.Background(), nil)

	if report != nil {
		t.Error("Expected nil report")
	}

	if GetErrorCode(err) != ErrCodeNilDataset {
		t.Errorf("Expected nil dataset error, got %v", err)
	}
}

func TestPipeline_RunnerSingleUse(t *testing.T) {
	runner := CreateSimplePipeline().NewRun()

	if _, err := runner.Execute(context.Background(), CreateValidDataset()); err != nil {
		t.Fatalf("First execute failed: %v", err)
	}

	_, err := runner.Execute(context.Background(), CreateValidDataset())
	if GetErrorCode(err) != ErrCodeRunnerReused {
		t.Errorf("Expected runner reused error, got %v", err)
	}
}

func TestPipeline_DefinitionReusableAcrossRuns(t *testing.T) {
	definition := DefaultPipeline("2024-07-01")

	first, err := definition.NewRun().Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	second, err := definition.NewRun().Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if first.ID == second.ID {
		t.Error("Expected each run to get its own report ID")
	}

	if !first.OK() || !second.OK() {
		t.Error("Expected both runs to pass")
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	observer := NewTestObserver()
	runner := CreateSimplePipeline().NewRun()
	runner.AddObserver(observer)

	parent, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Execute(parent, CreateValidDataset())

	if report != nil {
		t.Error("Expected nil report for aborted run")
	}

	if GetErrorCode(err) != ErrCodeRunAborted {
		t.Fatalf("Expected run aborted error, got %v", err)
	}

	if !errors.Is(err, context.Canceled) {
		t.Error("Expected aborted run to wrap the cancellation cause")
	}

	if observer.ErrorCount() != 1 {
		t.Errorf("Expected 1 error notification, got %d", observer.ErrorCount())
	}
}

func TestPipeline_NilParentContext(t *testing.T) {
	report, err := CreateSimplePipeline().NewRun().Execute(nil, CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report == nil {
		t.Error("Expected report")
	}
}

func TestPipeline_ObserverEventFlow(t *testing.T) {
	observer := NewTestObserver()
	runner := DefaultPipeline("2024-07-01").NewRun()
	runner.AddObserver(observer)

	_, err := runner.Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(observer.RunStarts) != 1 {
		t.Errorf("Expected 1 run start, got %d", len(observer.RunStarts))
	}

	if len(observer.StageStarts) != 6 {
		t.Errorf("Expected 6 stage starts, got %d", len(observer.StageStarts))
	}

	if observer.StageCompletedCount() != 6 {
		t.Errorf("Expected 6 stage completions, got %d", observer.StageCompletedCount())
	}

	if observer.SummaryCount() != 3 {
		t.Errorf("Expected 3 summaries, got %d", observer.SummaryCount())
	}

	if len(observer.RunDones) != 1 {
		t.Errorf("Expected 1 run completion, got %d", len(observer.RunDones))
	}

	if observer.SkipCount() != 0 || observer.ErrorCount() != 0 {
		t.Error("Expected no skips and no errors for a full dataset")
	}
}

func TestPipeline_RemoveObserver(t *testing.T) {
	observer := NewTestObserver()
	runner := CreateSimplePipeline().NewRun()
	runner.AddObserver(observer)
	runner.RemoveObserver(observer)

	_, err := runner.Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if observer.StageCompletedCount() != 0 || len(observer.RunDones) != 0 {
		t.Error("Expected removed observer to receive nothing")
	}
}

func TestPipeline_BudgetSummaryOnOverrun(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Budget.Spent = Amount(620000)

	report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// The overrun fails validation but the snapshot is fully populated,
	// so the narrative still renders
	section, _ := report.Section(StageBudget)
	AssertHasError(t, section.Result, "spent cannot exceed committed without a variation order")

	line := AssertSummary(t, report, SummaryKeyBudget)
	if !strings.Contains(line, "variance 120000") {
		t.Errorf("Expected overrun variance in narrative, got %q", line)
	}
}

func TestPipeline_BudgetSummarySkippedWhenUnderpopulated(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Budget.Spent = nil

	report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	section, _ := report.Section(StageBudget)
	AssertHasError(t, section.Result, "spent must be numeric")

	AssertNoSummary(t, report, SummaryKeyBudget)

	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestPipeline_MalformedReferenceDate(t *testing.T) {
	report, err := DefaultPipeline("mid 2024").NewRun().Execute(context.Background(), CreateValidDataset())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	AssertNoSummary(t, report, SummaryKeyScheduleLag)
	AssertSummary(t, report, SummaryKeyBudget)
}

func TestValidateDataset(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		AssertValid(t, ValidateDataset(CreateValidDataset()))
	})

	t.Run("nil dataset", func(t *testing.T) {
		AssertValid(t, ValidateDataset(nil))
	})

	t.Run("failures merge in stage order", func(t *testing.T) {
		dataset := CreateValidDataset()
		dataset.Contract.Vendor = nil
		dataset.Variations = []VariationOrder{{}}

		result := ValidateDataset(dataset)

		AssertErrorCount(t, result, 7)
		AssertErrorAt(t, result, 0, "vendor missing")
		AssertHasError(t, result, "requestId missing at index 0")
		AssertHasError(t, result, "currency missing at index 0")
	})

	t.Run("absent records validate clean", func(t *testing.T) {
		AssertValid(t, ValidateDataset(&Dataset{}))
	})
}
