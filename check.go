package pactum

import (
	"fmt"
	"sort"
	"strings"
)

// Stage names used by the canned pipeline
const (
	StageContract   = "contract"
	StageSchedule   = "schedule"
	StageReminders  = "reminders"
	StageBudget     = "budget"
	StageVariations = "variations"
	StageCompliance = "compliance"
)

// Summary keys used by the canned summary steps
const (
	SummaryKeyBudget      = "budget"
	SummaryKeyScheduleLag = "schedule-lag"
	SummaryKeyCompliance  = "compliance-tally"
)

// HasContract passes when the dataset carries contract metadata
func HasContract(ctx Context) bool {
	ds := ctx.Dataset()
	return ds != nil && ds.Contract != nil
}

// HasBudget passes when the dataset carries a budget snapshot
func HasBudget(ctx Context) bool {
	ds := ctx.Dataset()
	return ds != nil && ds.Budget != nil
}

// CheckContract validates the dataset's contract metadata. An absent
// record validates like an empty one: every required field is reported
// missing.
func CheckContract(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil || ds.Contract == nil {
		return ValidateContractMetadata(ContractMetadata{})
	}
	return ValidateContractMetadata(*ds.Contract)
}

// CheckSchedule validates the dataset's schedule entries
func CheckSchedule(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil {
		return newValidationResult(nil)
	}
	return ValidateSchedule(ds.Schedule)
}

// CheckReminders validates the dataset's document reminders
func CheckReminders(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil {
		return newValidationResult(nil)
	}
	return ValidateReminders(ds.Reminders)
}

// CheckBudget validates the dataset's budget snapshot. An absent snapshot
// validates like an empty one.
func CheckBudget(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil || ds.Budget == nil {
		return ValidateBudget(BudgetSnapshot{})
	}
	return ValidateBudget(*ds.Budget)
}

// CheckVariations validates every variation order in the dataset. Each
// order is validated independently and its messages are qualified with the
// order's zero-based index.
func CheckVariations(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil {
		return newValidationResult(nil)
	}
	mc := newMessageCollector()
	for i, order := range ds.Variations {
		result := ValidateVariation(order)
		for _, message := range result.Errors {
			mc.addf("%s at index %d", message, i)
		}
	}
	return mc.result()
}

// CheckCompliance validates the dataset's compliance checkpoints
func CheckCompliance(ctx Context) ValidationResult {
	ds := ctx.Dataset()
	if ds == nil {
		return newValidationResult(nil)
	}
	return ValidateCompliance(ds.Checkpoints)
}

// SummarizeBudgetStep renders the budget narrative line into the report.
// The step only fires when the snapshot carries every field the narrative
// needs; SummarizeBudget itself stays free of defensive checks.
func SummarizeBudgetStep(ctx Context) (string, string) {
	ds := ctx.Dataset()
	if ds == nil || !budgetPopulated(ds.Budget) {
		return "", ""
	}
	return SummaryKeyBudget, SummarizeBudget(*ds.Budget)
}

// budgetPopulated reports whether the snapshot has every field the budget
// narrative dereferences
func budgetPopulated(snapshot *BudgetSnapshot) bool {
	if snapshot == nil {
		return false
	}
	return isNonEmpty(snapshot.Period) &&
		snapshot.Committed != nil &&
		snapshot.Spent != nil &&
		snapshot.Forecast != nil &&
		snapshot.Currency != nil &&
		snapshot.Currency.valid()
}

// ScheduleLagStep builds a summary step that counts schedule entries
// lagging behind the given reference date. A reference date that is not
// shaped like YYYY-MM-DD produces no summary.
func ScheduleLagStep(referenceDate string) SummaryFunc {
	return func(ctx Context) (string, string) {
		ds := ctx.Dataset()
		if ds == nil || !isoDatePattern.MatchString(referenceDate) {
			return "", ""
		}
		lagging := ScheduleLag(ds.Schedule, referenceDate)
		return SummaryKeyScheduleLag, fmt.Sprintf("%d of %d schedule entries lagging behind %s",
			len(lagging), len(ds.Schedule), referenceDate)
	}
}

// ComplianceTallyStep renders the severity:status tally into the report.
// The step only fires when every checkpoint carries the severity and
// status the tally dereferences.
func ComplianceTallyStep(ctx Context) (string, string) {
	ds := ctx.Dataset()
	if ds == nil || len(ds.Checkpoints) == 0 {
		return "", ""
	}
	for _, checkpoint := range ds.Checkpoints {
		if checkpoint.Severity == nil || checkpoint.Status == nil {
			return "", ""
		}
	}
	tally := ComplianceSummary(ds.Checkpoints)

	keys := make([]string, 0, len(tally))
	for key := range tally {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, tally[key]))
	}
	return SummaryKeyCompliance, strings.Join(parts, ", ")
}
