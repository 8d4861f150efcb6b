package pactum

import (
	"fmt"
	"regexp"
	"strings"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isNonEmpty reports whether value points at text with content left after
// trimming leading and trailing whitespace
func isNonEmpty(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

// isISODate reports whether value is shaped like YYYY-MM-DD. The check is
// structural only; calendar validity is not examined, so 2024-13-40 passes.
func isISODate(value *string) bool {
	return value != nil && isoDatePattern.MatchString(*value)
}

// messageCollector accumulates validation messages in check order
type messageCollector struct {
	messages []string
}

func newMessageCollector() *messageCollector {
	return &messageCollector{
		messages: make([]string, 0),
	}
}

// add appends a fixed message to the collector
func (mc *messageCollector) add(message string) {
	mc.messages = append(mc.messages, message)
}

// addf appends a formatted message to the collector
func (mc *messageCollector) addf(format string, args ...any) {
	mc.messages = append(mc.messages, fmt.Sprintf(format, args...))
}

// result converts the collected messages into a ValidationResult
func (mc *messageCollector) result() ValidationResult {
	return newValidationResult(mc.messages)
}

// ValidateContractMetadata checks a contract master record for required
// fields. Checks run in declared field order, every failure is reported,
// and the validator never stops at the first problem; a fully empty record
// therefore produces exactly eight messages.
func ValidateContractMetadata(meta ContractMetadata) ValidationResult {
	mc := newMessageCollector()
	if !isNonEmpty(meta.ContractID) {
		mc.add("contractId missing")
	}
	if !isNonEmpty(meta.Vendor) {
		mc.add("vendor missing")
	}
	if !isNonEmpty(meta.Title) {
		mc.add("title missing")
	}
	if !isNonEmpty(meta.StartDate) || !isISODate(meta.StartDate) {
		mc.add("startDate missing or invalid")
	}
	if !isNonEmpty(meta.EndDate) || !isISODate(meta.EndDate) {
		mc.add("endDate missing or invalid")
	}
	if meta.TotalValue == nil || *meta.TotalValue <= 0 {
		mc.add("totalValue must be a positive number")
	}
	if meta.Currency == nil || !meta.Currency.valid() {
		mc.add("currency missing")
	}
	if meta.RiskRating == nil || !meta.RiskRating.valid() {
		mc.add("riskRating missing")
	}
	return mc.result()
}

// ValidateSchedule checks every entry of a delivery schedule. Messages
// carry the zero-based index of the entry they belong to, and entries are
// validated independently so a broken entry never hides problems in the
// entries after it.
func ValidateSchedule(entries []ScheduleEntry) ValidationResult {
	mc := newMessageCollector()
	for i, entry := range entries {
		if !isNonEmpty(entry.TaskID) {
			mc.addf("taskId missing at index %d", i)
		}
		if !isNonEmpty(entry.Milestone) {
			mc.addf("milestone missing at index %d", i)
		}
		if !isNonEmpty(entry.DueDate) || !isISODate(entry.DueDate) {
			mc.addf("dueDate missing or invalid at index %d", i)
		}
		if !isNonEmpty(entry.Owner) {
			mc.addf("owner missing at index %d", i)
		}
		// status is not a required field here; ScheduleLag interprets it
	}
	return mc.result()
}

// ValidateBudget checks a budget snapshot. Besides the per-field checks it
// applies one business rule: spent above committed is flagged, not
// enforced, and the flag is independent of the field checks so both can
// appear in the same result.
func ValidateBudget(snapshot BudgetSnapshot) ValidationResult {
	mc := newMessageCollector()
	if !isNonEmpty(snapshot.ContractID) {
		mc.add("contractId missing")
	}
	if !isNonEmpty(snapshot.Period) {
		mc.add("period missing")
	}
	if snapshot.Committed == nil {
		mc.add("committed must be numeric")
	}
	if snapshot.Spent == nil {
		mc.add("spent must be numeric")
	}
	if snapshot.Forecast == nil {
		mc.add("forecast must be numeric")
	}
	if snapshot.Currency == nil || !snapshot.Currency.valid() {
		mc.add("currency missing")
	}
	if snapshot.Committed != nil && snapshot.Spent != nil && *snapshot.Spent > *snapshot.Committed {
		mc.add("spent cannot exceed committed without a variation order")
	}
	return mc.result()
}

// ValidateVariation checks a single variation order for required fields
func ValidateVariation(order VariationOrder) ValidationResult {
	mc := newMessageCollector()
	if !isNonEmpty(order.RequestID) {
		mc.add("requestId missing")
	}
	if !isNonEmpty(order.ContractID) {
		mc.add("contractId missing")
	}
	if !isNonEmpty(order.Description) {
		mc.add("description missing")
	}
	if order.EstimatedImpact == nil {
		mc.add("estimatedImpact must be numeric")
	}
	if order.Currency == nil || !order.Currency.valid() {
		mc.add("currency missing")
	}
	if order.Status == nil || !order.Status.valid() {
		mc.add("status missing")
	}
	return mc.result()
}

// ValidateCompliance checks every checkpoint of a compliance register.
// Messages carry the zero-based index of the checkpoint; evidenceUrl is
// optional and never validated.
func ValidateCompliance(checkpoints []ComplianceCheckpoint) ValidationResult {
	mc := newMessageCollector()
	for i, checkpoint := range checkpoints {
		if !isNonEmpty(checkpoint.Clause) {
			mc.addf("clause missing at index %d", i)
		}
		if !isNonEmpty(checkpoint.ControlOwner) {
			mc.addf("controlOwner missing at index %d", i)
		}
		if checkpoint.Severity == nil || !checkpoint.Severity.valid() {
			mc.addf("severity missing at index %d", i)
		}
		if checkpoint.Status == nil || !checkpoint.Status.valid() {
			mc.addf("status missing at index %d", i)
		}
	}
	return mc.result()
}

// ValidateReminders checks every document reminder. Messages carry the
// zero-based index of the reminder; notes are optional and never validated.
func ValidateReminders(reminders []DocumentReminder) ValidationResult {
	mc := newMessageCollector()
	for i, reminder := range reminders {
		if !isNonEmpty(reminder.DocumentName) {
			mc.addf("documentName missing at index %d", i)
		}
		if !isNonEmpty(reminder.Owner) {
			mc.addf("owner missing at index %d", i)
		}
		if !isNonEmpty(reminder.DueDate) || !isISODate(reminder.DueDate) {
			mc.addf("dueDate missing or invalid at index %d", i)
		}
		if reminder.Channel == nil || !reminder.Channel.valid() {
			mc.addf("channel missing at index %d", i)
		}
	}
	return mc.result()
}
