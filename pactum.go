// Package pactum provides field validation and summary computation for
// contract-governance records: contract metadata, delivery schedules,
// document reminders, budget snapshots, variation orders, and compliance
// checkpoints.
//
// The library is meant to be embedded as the validation step of an
// external workflow system. Validators accept partially populated records,
// never panic, and report every failure they find as plain text messages
// inside a ValidationResult. Summary functions derive budget variance,
// schedule lag, and compliance tallies from records that have already been
// validated. The pipeline wraps both behind a fluent builder, observer
// hooks, and an assembled report, while keeping all I/O with the caller.
package pactum

// DefaultPipeline assembles the canned governance pipeline: one stage per
// record shape, in data-model order, with the budget narrative, schedule
// lag, and compliance tally summaries attached. The reference date is used
// for the schedule lag computation; single-record stages are skipped when
// the dataset does not carry their record.
func DefaultPipeline(referenceDate string) PipelineDefinition {
	return NewPipeline().
		Stage(StageContract).When(HasContract).Check(CheckContract).
		Stage(StageSchedule).Check(CheckSchedule).Summarize(ScheduleLagStep(referenceDate)).
		Stage(StageReminders).Check(CheckReminders).
		Stage(StageBudget).When(HasBudget).Check(CheckBudget).Summarize(SummarizeBudgetStep).
		Stage(StageVariations).Check(CheckVariations).
		Stage(StageCompliance).Check(CheckCompliance).Summarize(ComplianceTallyStep).
		Build()
}

// ValidateDataset runs every canned check over the dataset without the
// pipeline machinery and merges the outcomes into one result. Convenient
// for hosts that only want a verdict, not a report.
func ValidateDataset(dataset *Dataset) ValidationResult {
	if dataset == nil {
		return newValidationResult(nil)
	}
	result := newValidationResult(nil)
	if dataset.Contract != nil {
		result = result.Merge(ValidateContractMetadata(*dataset.Contract))
	}
	result = result.Merge(ValidateSchedule(dataset.Schedule))
	result = result.Merge(ValidateReminders(dataset.Reminders))
	if dataset.Budget != nil {
		result = result.Merge(ValidateBudget(*dataset.Budget))
	}
	mc := newMessageCollector()
	for i, order := range dataset.Variations {
		for _, message := range ValidateVariation(order).Errors {
			mc.addf("%s at index %d", message, i)
		}
	}
	result = result.Merge(mc.result())
	result = result.Merge(ValidateCompliance(dataset.Checkpoints))
	return result
}
