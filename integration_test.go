package pactum

import (
	"context"
	"encoding/json"
	"testing"
)

func TestIntegration_GovernanceReview(t *testing.T) {
	// A review cycle the way a host workflow would drive it: records arrive
	// as JSON, the canned pipeline validates them, the report goes back out
	// as JSON.
	payload := `{
		"contract": {
			"contractId": "CT-3310",
			"vendor": "Meridian Fitout",
			"title": "Office Refurbishment",
			"startDate": "2024-02-01",
			"endDate": "2024-11-30",
			"totalValue": 820000,
			"currency": "GBP",
			"riskRating": "high"
		},
		"schedule": [
			{"taskId": "T-1", "milestone": "Strip-out complete", "dueDate": "2024-04-15", "owner": "Lee Quinn", "status": "done"},
			{"taskId": "T-2", "milestone": "Partitions installed", "dueDate": "2024-06-01", "owner": "Lee Quinn", "status": "blocked"},
			{"taskId": "T-3", "milestone": "Fit-off", "dueDate": "2024-10-15", "owner": "Sam Archer", "status": "not-started"}
		],
		"budget": {
			"contractId": "CT-3310",
			"period": "Q2",
			"committed": 820000,
			"spent": 305000,
			"forecast": 838000,
			"currency": "GBP"
		},
		"variations": [
			{"requestId": "VO-1", "contractId": "CT-3310", "description": "Upgrade lighting controls", "estimatedImpact": 18000, "currency": "GBP", "status": "approved"}
		],
		"checkpoints": [
			{"clause": "HSE-4.1", "controlOwner": "Site Safety", "severity": "major", "status": "collected", "evidenceUrl": "https://evidence.example.com/hse-41"},
			{"clause": "HSE-4.2", "controlOwner": "Site Safety", "severity": "major", "status": "pending"}
		]
	}`

	var dataset Dataset
	if err := json.Unmarshal([]byte(payload), &dataset); err != nil {
		t.Fatalf("Failed to decode dataset: %v", err)
	}

	observer := NewTestObserver()
	runner := DefaultPipeline("2024-07-01").NewRun()
	runner.AddObserver(observer)

	report, err := runner.Execute(context.Background(), &dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !report.OK() {
		t.Fatalf("Expected clean review, got failed stages %v", report.FailedStages())
	}

	// T-2 is blocked and overdue; T-1 is done and T-3 is not due yet
	lagLine := AssertSummary(t, report, SummaryKeyScheduleLag)
	if lagLine != "1 of 3 schedule entries lagging behind 2024-07-01" {
		t.Errorf("Unexpected lag summary: %q", lagLine)
	}

	budgetLine := AssertSummary(t, report, SummaryKeyBudget)
	expectedBudget := "Budget Q2: committed 820000 GBP, spent 305000, variance -515000, forecast delta 18000"
	if budgetLine != expectedBudget {
		t.Errorf("Expected %q, got %q", expectedBudget, budgetLine)
	}

	tallyLine := AssertSummary(t, report, SummaryKeyCompliance)
	if tallyLine != "major:collected=1, major:pending=1" {
		t.Errorf("Unexpected tally summary: %q", tallyLine)
	}

	if len(observer.RunStarts) != 1 || len(observer.RunDones) != 1 {
		t.Error("Expected exactly one run start and one run completion")
	}

	// The report round-trips as JSON for the host to route
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to render report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}

	if decoded.ID != report.ID || len(decoded.Sections) != 6 {
		t.Error("Expected report to survive the JSON round trip")
	}
}

func TestIntegration_ReviewWithFindings(t *testing.T) {
	dataset := CreateValidDataset()
	dataset.Contract.EndDate = Text("TBD")
	dataset.Budget.Spent = Amount(520000)
	dataset.Variations = append(dataset.Variations, VariationOrder{
		RequestID:  Text("VO-8"),
		ContractID: Text("CT-1001"),
		Status:     VariationDraft.Ptr(),
	})
	dataset.Checkpoints = append(dataset.Checkpoints, ComplianceCheckpoint{
		Clause:   Text("GDPR-9.9"),
		Severity: SeverityInfo.Ptr(),
		Status:   CheckpointFailed.Ptr(),
	})

	report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.OK() {
		t.Fatal("Expected findings")
	}

	expectedFailed := []string{StageContract, StageBudget, StageVariations, StageCompliance}
	failed := report.FailedStages()
	if len(failed) != len(expectedFailed) {
		t.Fatalf("Expected failures in %v, got %v", expectedFailed, failed)
	}
	for i, stage := range expectedFailed {
		if failed[i] != stage {
			t.Errorf("Expected failure %d to be %s, got %s", i, stage, failed[i])
		}
	}

	contractSection, _ := report.Section(StageContract)
	AssertHasError(t, contractSection.Result, "endDate missing or invalid")

	budgetSection, _ := report.Section(StageBudget)
	AssertHasError(t, budgetSection.Result, "spent cannot exceed committed without a variation order")

	variationSection, _ := report.Section(StageVariations)
	AssertHasError(t, variationSection.Result, "description missing at index 1")
	AssertHasError(t, variationSection.Result, "estimatedImpact must be numeric at index 1")

	complianceSection, _ := report.Section(StageCompliance)
	AssertHasError(t, complianceSection.Result, "controlOwner missing at index 2")

	// Summaries still render for populated records: the budget narrative
	// carries the overrun and the tally counts all three checkpoints
	budgetLine := AssertSummary(t, report, SummaryKeyBudget)
	expectedBudget := "Budget Q1: committed 500000 USD, spent 520000, variance 20000, forecast delta 10000"
	if budgetLine != expectedBudget {
		t.Errorf("Expected %q, got %q", expectedBudget, budgetLine)
	}

	tallyLine := AssertSummary(t, report, SummaryKeyCompliance)
	if tallyLine != "info:failed=1, major:pending=1, minor:collected=1" {
		t.Errorf("Unexpected tally summary: %q", tallyLine)
	}
}

func TestIntegration_PipelineAgreesWithValidateDataset(t *testing.T) {
	datasets := []*Dataset{
		CreateValidDataset(),
		{},
		{Contract: &ContractMetadata{}, Budget: &BudgetSnapshot{}},
		{Schedule: []ScheduleEntry{{}, {}}, Variations: []VariationOrder{{}}},
	}

	for i, dataset := range datasets {
		report, err := DefaultPipeline("2024-07-01").NewRun().Execute(context.Background(), dataset)
		if err != nil {
			t.Fatalf("Execute failed for dataset %d: %v", i, err)
		}

		direct := ValidateDataset(dataset)

		if report.ErrorCount() != len(direct.Errors) {
			t.Errorf("Dataset %d: pipeline found %d messages, ValidateDataset found %d",
				i, report.ErrorCount(), len(direct.Errors))
		}

		if report.OK() != direct.OK {
			t.Errorf("Dataset %d: pipeline OK %v, ValidateDataset OK %v", i, report.OK(), direct.OK)
		}
	}
}

func TestIntegration_CustomRenewalStage(t *testing.T) {
	// Hosts can mix canned checks with their own stages
	renewalWindow := func(ctx Context) ValidationResult {
		ds := ctx.Dataset()
		mc := newMessageCollector()
		if ds.Contract != nil && isISODate(ds.Contract.EndDate) {
			if *ds.Contract.EndDate < "2025-01-01" {
				mc.add("endDate falls inside the renewal freeze")
			}
		}
		return mc.result()
	}

	definition := NewPipeline().
		Stage(StageContract).When(HasContract).Check(CheckContract).
		Stage("renewal").When(HasContract).Check(renewalWindow).
		Build()

	dataset := CreateValidDataset()
	dataset.Contract.EndDate = Text("2024-10-31")

	report, err := definition.NewRun().Execute(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	AssertSectionOK(t, report, StageContract)

	renewalSection, _ := report.Section("renewal")
	AssertHasError(t, renewalSection.Result, "endDate falls inside the renewal freeze")
}
