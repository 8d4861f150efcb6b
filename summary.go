package pactum

import (
	"fmt"
	"strconv"
)

// formatAmount renders a monetary amount without exponent notation so that
// whole amounts keep their raw digits (-260000, not -2.6e+05)
func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SummarizeBudget renders one fixed-format line for a fully populated
// budget snapshot. Variance is spent minus committed, forecast delta is
// forecast minus committed; positive variance indicates overrun.
//
// The snapshot must have passed ValidateBudget first. SummarizeBudget
// performs no checking of its own and dereferences every field.
func SummarizeBudget(snapshot BudgetSnapshot) string {
	variance := *snapshot.Spent - *snapshot.Committed
	forecastDelta := *snapshot.Forecast - *snapshot.Committed
	return fmt.Sprintf("Budget %s: committed %s %s, spent %s, variance %s, forecast delta %s",
		*snapshot.Period,
		formatAmount(*snapshot.Committed),
		*snapshot.Currency,
		formatAmount(*snapshot.Spent),
		formatAmount(variance),
		formatAmount(forecastDelta))
}

// ScheduleLag filters the entries that have fallen behind the reference
// date: status is anything but done and dueDate sorts strictly before
// referenceDate. Comparison is lexicographic, which matches chronological
// order only for well-formed YYYY-MM-DD strings, so entries whose dueDate
// is absent or malformed are excluded rather than mis-ranked, and a
// malformed referenceDate yields no lag at all. Input order is preserved;
// this is a filter, not a sort.
func ScheduleLag(entries []ScheduleEntry, referenceDate string) []ScheduleEntry {
	lagging := make([]ScheduleEntry, 0)
	if !isoDatePattern.MatchString(referenceDate) {
		return lagging
	}
	for _, entry := range entries {
		if entry.Status != nil && *entry.Status == ScheduleDone {
			continue
		}
		if entry.DueDate == nil || !isoDatePattern.MatchString(*entry.DueDate) {
			continue
		}
		if *entry.DueDate < referenceDate {
			lagging = append(lagging, entry)
		}
	}
	return lagging
}

// ComplianceSummary tallies checkpoints by a composite severity:status key
// in a single pass. Keys appear lazily on first occurrence; the map content
// is order-independent for a fixed multiset of checkpoints.
//
// Checkpoints must have passed ValidateCompliance first; severity and
// status are dereferenced without checking.
func ComplianceSummary(checkpoints []ComplianceCheckpoint) map[string]int {
	tally := make(map[string]int)
	for _, checkpoint := range checkpoints {
		key := fmt.Sprintf("%s:%s", *checkpoint.Severity, *checkpoint.Status)
		tally[key]++
	}
	return tally
}
