package pactum

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex       sync.RWMutex
	StageDones  []StageResultEvent
	RunDones    []RunEvent
	RunStarts   []ContextEvent
	StageStarts []StageEvent
	Skips       []StageSkipEvent
	Summaries   []SummaryEvent
	Errors      []ErrorEvent
}

type StageResultEvent struct {
	Stage  string
	Result ValidationResult
	Ctx    Context
}

type StageEvent struct {
	Stage string
	Ctx   Context
}

type StageSkipEvent struct {
	Stage  string
	Reason string
	Ctx    Context
}

type SummaryEvent struct {
	Stage string
	Key   string
	Text  string
	Ctx   Context
}

type ErrorEvent struct {
	Error error
	Ctx   Context
}

type RunEvent struct {
	Report *Report
	Ctx    Context
}

type ContextEvent struct {
	Ctx Context
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		StageDones:  make([]StageResultEvent, 0),
		RunDones:    make([]RunEvent, 0),
		RunStarts:   make([]ContextEvent, 0),
		StageStarts: make([]StageEvent, 0),
		Skips:       make([]StageSkipEvent, 0),
		Summaries:   make([]SummaryEvent, 0),
		Errors:      make([]ErrorEvent, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnStageCompleted(stage string, result ValidationResult, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StageDones = append(o.StageDones, StageResultEvent{Stage: stage, Result: result, Ctx: ctx})
}

func (o *TestObserver) OnRunCompleted(report *Report, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.RunDones = append(o.RunDones, RunEvent{Report: report, Ctx: ctx})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnRunStarted(ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.RunStarts = append(o.RunStarts, ContextEvent{Ctx: ctx})
}

func (o *TestObserver) OnStageStarted(stage string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StageStarts = append(o.StageStarts, StageEvent{Stage: stage, Ctx: ctx})
}

func (o *TestObserver) OnStageSkipped(stage string, reason string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Skips = append(o.Skips, StageSkipEvent{Stage: stage, Reason: reason, Ctx: ctx})
}

func (o *TestObserver) OnSummaryComputed(stage string, key string, text string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Summaries = append(o.Summaries, SummaryEvent{Stage: stage, Key: key, Text: text, Ctx: ctx})
}

func (o *TestObserver) OnError(err error, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, ErrorEvent{Error: err, Ctx: ctx})
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StageDones = nil
	o.RunDones = nil
	o.RunStarts = nil
	o.StageStarts = nil
	o.Skips = nil
	o.Summaries = nil
	o.Errors = nil
}

func (o *TestObserver) StageCompletedCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.StageDones)
}

func (o *TestObserver) SkipCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Skips)
}

func (o *TestObserver) SummaryCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Summaries)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

func (o *TestObserver) LastStageCompleted() *StageResultEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.StageDones) == 0 {
		return nil
	}
	return &o.StageDones[len(o.StageDones)-1]
}

func (o *TestObserver) LastSummary() *SummaryEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Summaries) == 0 {
		return nil
	}
	return &o.Summaries[len(o.Summaries)-1]
}

// Test record builders - common record sets for testing

// CreateValidContract creates a fully populated contract record
func CreateValidContract() ContractMetadata {
	return ContractMetadata{
		ContractID: Text("CT-1001"),
		Vendor:     Text("Skyline Logistics"),
		Title:      Text("Warehouse Automation Rollout"),
		StartDate:  Text("2024-01-01"),
		EndDate:    Text("2025-12-31"),
		TotalValue: Amount(500000),
		Currency:   CurrencyUSD.Ptr(),
		RiskRating: RiskMedium.Ptr(),
	}
}

// CreateValidSchedule creates two fully populated schedule entries
func CreateValidSchedule() []ScheduleEntry {
	return []ScheduleEntry{
		{
			TaskID:    Text("T-1"),
			Milestone: Text("Site survey complete"),
			DueDate:   Text("2024-03-15"),
			Owner:     Text("Dana Whitfield"),
			Status:    ScheduleInProgress.Ptr(),
		},
		{
			TaskID:    Text("T-2"),
			Milestone: Text("Conveyor install"),
			DueDate:   Text("2024-09-30"),
			Owner:     Text("Priya Raman"),
			Status:    ScheduleNotStarted.Ptr(),
		},
	}
}

// CreateValidReminders creates one fully populated document reminder
func CreateValidReminders() []DocumentReminder {
	return []DocumentReminder{
		{
			DocumentName: Text("Insurance Certificate"),
			Owner:        Text("Dana Whitfield"),
			DueDate:      Text("2024-05-01"),
			Channel:      ChannelEmail.Ptr(),
		},
	}
}

// CreateValidBudget creates a fully populated budget snapshot
func CreateValidBudget() BudgetSnapshot {
	return BudgetSnapshot{
		ContractID: Text("CT-1001"),
		Period:     Text("Q1"),
		Committed:  Amount(500000),
		Spent:      Amount(240000),
		Forecast:   Amount(510000),
		Currency:   CurrencyUSD.Ptr(),
	}
}

// CreateValidVariation creates a fully populated variation order
func CreateValidVariation() VariationOrder {
	return VariationOrder{
		RequestID:       Text("VO-7"),
		ContractID:      Text("CT-1001"),
		Description:     Text("Add second packing line"),
		EstimatedImpact: Amount(42000),
		Currency:        CurrencyUSD.Ptr(),
		Status:          VariationSubmitted.Ptr(),
	}
}

// CreateValidCheckpoints creates fully populated compliance checkpoints
func CreateValidCheckpoints() []ComplianceCheckpoint {
	return []ComplianceCheckpoint{
		{
			Clause:       Text("GDPR-7.2"),
			ControlOwner: Text("Compliance Office"),
			Severity:     SeverityMajor.Ptr(),
			Status:       CheckpointPending.Ptr(),
		},
		{
			Clause:       Text("ISO-27001-A.12"),
			ControlOwner: Text("IT Security"),
			EvidenceURL:  Text("https://evidence.example.com/iso-a12"),
			Severity:     SeverityMinor.Ptr(),
			Status:       CheckpointCollected.Ptr(),
		},
	}
}

// CreateValidDataset creates a dataset with every record shape populated
func CreateValidDataset() *Dataset {
	contract := CreateValidContract()
	budget := CreateValidBudget()
	return &Dataset{
		Contract:    &contract,
		Schedule:    CreateValidSchedule(),
		Reminders:   CreateValidReminders(),
		Budget:      &budget,
		Variations:  []VariationOrder{CreateValidVariation()},
		Checkpoints: CreateValidCheckpoints(),
	}
}

// CreateSimplePipeline creates a one-stage pipeline for testing
func CreateSimplePipeline() PipelineDefinition {
	return NewPipeline().
		Stage(StageContract).Check(CheckContract).
		Build()
}

// CreateTestContext creates a context over the given dataset
func CreateTestContext(dataset *Dataset) Context {
	return NewContext(nil, dataset)
}

// Test assertions and utilities

// AssertValid checks that the result carries no errors
func AssertValid(t *testing.T, result ValidationResult) {
	t.Helper()
	if !result.OK {
		t.Errorf("Expected valid result, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %d", len(result.Errors))
	}
}

// AssertErrorCount checks the exact number of messages in the result
func AssertErrorCount(t *testing.T, result ValidationResult, expected int) {
	t.Helper()
	if result.OK && expected > 0 {
		t.Error("Expected result to be invalid")
	}
	if len(result.Errors) != expected {
		t.Errorf("Expected %d errors, got %d: %v", expected, len(result.Errors), result.Errors)
	}
}

// AssertHasError checks that the result contains the exact message
func AssertHasError(t *testing.T, result ValidationResult, message string) {
	t.Helper()
	for _, candidate := range result.Errors {
		if candidate == message {
			return
		}
	}
	t.Errorf("Expected error %q, got %v", message, result.Errors)
}

// AssertNoError checks that the result does not contain the exact message
func AssertNoError(t *testing.T, result ValidationResult, message string) {
	t.Helper()
	for _, candidate := range result.Errors {
		if candidate == message {
			t.Errorf("Did not expect error %q", message)
		}
	}
}

// AssertErrorAt checks the message at a fixed position, pinning check order
func AssertErrorAt(t *testing.T, result ValidationResult, index int, message string) {
	t.Helper()
	if index >= len(result.Errors) {
		t.Errorf("Expected error %q at position %d, but result has only %d errors", message, index, len(result.Errors))
		return
	}
	if result.Errors[index] != message {
		t.Errorf("Expected error %q at position %d, got %q", message, index, result.Errors[index])
	}
}

// AssertSectionOK checks that the report section for a stage passed
func AssertSectionOK(t *testing.T, report *Report, stage string) {
	t.Helper()
	section, ok := report.Section(stage)
	if !ok {
		t.Errorf("Expected report to have section %q", stage)
		return
	}
	if section.Skipped {
		t.Errorf("Expected section %q to have run, but it was skipped: %s", stage, section.Reason)
		return
	}
	if !section.Result.OK {
		t.Errorf("Expected section %q to pass, got errors %v", stage, section.Result.Errors)
	}
}

// AssertSectionSkipped checks that a guard kept the stage from running
func AssertSectionSkipped(t *testing.T, report *Report, stage string) {
	t.Helper()
	section, ok := report.Section(stage)
	if !ok {
		t.Errorf("Expected report to have section %q", stage)
		return
	}
	if !section.Skipped {
		t.Errorf("Expected section %q to be skipped", stage)
	}
}

// AssertSummary checks that the report carries a summary under the key
func AssertSummary(t *testing.T, report *Report, key string) string {
	t.Helper()
	text, ok := report.Summaries[key]
	if !ok {
		t.Errorf("Expected report to have summary %q, got %v", key, report.Summaries)
	}
	return text
}

// AssertNoSummary checks that no summary was recorded under the key
func AssertNoSummary(t *testing.T, report *Report, key string) {
	t.Helper()
	if text, ok := report.Summaries[key]; ok {
		t.Errorf("Did not expect summary %q, got %q", key, text)
	}
}
