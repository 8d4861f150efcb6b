package pactum

// CurrencyCode identifies a contract currency from the closed set accepted
// by governance records
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyAUD CurrencyCode = "AUD"
	CurrencyCAD CurrencyCode = "CAD"
	CurrencySGD CurrencyCode = "SGD"
	CurrencyNZD CurrencyCode = "NZD"
)

// valid reports whether the code belongs to the closed currency set.
// Anything outside the set, including the empty string, counts as absent.
func (c CurrencyCode) valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyAUD, CurrencyCAD, CurrencySGD, CurrencyNZD:
		return true
	}
	return false
}

// Ptr returns a pointer to the code for populating optional record fields
func (c CurrencyCode) Ptr() *CurrencyCode {
	return &c
}

// RiskRating classifies the delivery risk of a contract
type RiskRating string

const (
	RiskLow    RiskRating = "low"
	RiskMedium RiskRating = "medium"
	RiskHigh   RiskRating = "high"
)

func (r RiskRating) valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Ptr returns a pointer to the rating for populating optional record fields
func (r RiskRating) Ptr() *RiskRating {
	return &r
}

// ScheduleStatus tracks the progress of a schedule entry
type ScheduleStatus string

const (
	ScheduleNotStarted ScheduleStatus = "not-started"
	ScheduleInProgress ScheduleStatus = "in-progress"
	ScheduleBlocked    ScheduleStatus = "blocked"
	ScheduleDone       ScheduleStatus = "done"
)

func (s ScheduleStatus) valid() bool {
	switch s {
	case ScheduleNotStarted, ScheduleInProgress, ScheduleBlocked, ScheduleDone:
		return true
	}
	return false
}

// Ptr returns a pointer to the status for populating optional record fields
func (s ScheduleStatus) Ptr() *ScheduleStatus {
	return &s
}

// ReminderChannel names the notification channel for a document reminder
type ReminderChannel string

const (
	ChannelEmail ReminderChannel = "email"
	ChannelSlack ReminderChannel = "slack"
)

func (c ReminderChannel) valid() bool {
	switch c {
	case ChannelEmail, ChannelSlack:
		return true
	}
	return false
}

// Ptr returns a pointer to the channel for populating optional record fields
func (c ReminderChannel) Ptr() *ReminderChannel {
	return &c
}

// VariationStatus tracks a variation order through its approval lifecycle
type VariationStatus string

const (
	VariationDraft     VariationStatus = "draft"
	VariationSubmitted VariationStatus = "submitted"
	VariationApproved  VariationStatus = "approved"
	VariationRejected  VariationStatus = "rejected"
)

func (s VariationStatus) valid() bool {
	switch s {
	case VariationDraft, VariationSubmitted, VariationApproved, VariationRejected:
		return true
	}
	return false
}

// Ptr returns a pointer to the status for populating optional record fields
func (s VariationStatus) Ptr() *VariationStatus {
	return &s
}

// CheckpointSeverity ranks how serious a compliance checkpoint is
type CheckpointSeverity string

const (
	SeverityInfo  CheckpointSeverity = "info"
	SeverityMinor CheckpointSeverity = "minor"
	SeverityMajor CheckpointSeverity = "major"
)

func (s CheckpointSeverity) valid() bool {
	switch s {
	case SeverityInfo, SeverityMinor, SeverityMajor:
		return true
	}
	return false
}

// Ptr returns a pointer to the severity for populating optional record fields
func (s CheckpointSeverity) Ptr() *CheckpointSeverity {
	return &s
}

// CheckpointStatus tracks evidence collection for a compliance checkpoint
type CheckpointStatus string

const (
	CheckpointPending   CheckpointStatus = "pending"
	CheckpointCollected CheckpointStatus = "collected"
	CheckpointFailed    CheckpointStatus = "failed"
)

func (s CheckpointStatus) valid() bool {
	switch s {
	case CheckpointPending, CheckpointCollected, CheckpointFailed:
		return true
	}
	return false
}

// Ptr returns a pointer to the status for populating optional record fields
func (s CheckpointStatus) Ptr() *CheckpointStatus {
	return &s
}

// ContractMetadata is the master record of a contract under governance.
// Record fields are pointers because records arrive partially populated
// from the host workflow; nil means the field is absent.
type ContractMetadata struct {
	ContractID *string       `json:"contractId,omitempty"`
	Vendor     *string       `json:"vendor,omitempty"`
	Title      *string       `json:"title,omitempty"`
	StartDate  *string       `json:"startDate,omitempty"`
	EndDate    *string       `json:"endDate,omitempty"`
	TotalValue *float64      `json:"totalValue,omitempty"`
	Currency   *CurrencyCode `json:"currency,omitempty"`
	RiskRating *RiskRating   `json:"riskRating,omitempty"`
}

// ScheduleEntry is one milestone or task on a contract delivery schedule
type ScheduleEntry struct {
	TaskID    *string         `json:"taskId,omitempty"`
	Milestone *string         `json:"milestone,omitempty"`
	DueDate   *string         `json:"dueDate,omitempty"`
	Owner     *string         `json:"owner,omitempty"`
	Status    *ScheduleStatus `json:"status,omitempty"`
}

// DocumentReminder asks the host workflow to chase a contract document
type DocumentReminder struct {
	DocumentName *string          `json:"documentName,omitempty"`
	Owner        *string          `json:"owner,omitempty"`
	DueDate      *string          `json:"dueDate,omitempty"`
	Channel      *ReminderChannel `json:"channel,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// BudgetSnapshot captures committed, spent, and forecast amounts for a
// contract over one reporting period
type BudgetSnapshot struct {
	ContractID *string       `json:"contractId,omitempty"`
	Period     *string       `json:"period,omitempty"`
	Committed  *float64      `json:"committed,omitempty"`
	Spent      *float64      `json:"spent,omitempty"`
	Forecast   *float64      `json:"forecast,omitempty"`
	Currency   *CurrencyCode `json:"currency,omitempty"`
}

// VariationOrder is a proposed change to contract scope or cost that
// requires approval before it takes effect
type VariationOrder struct {
	RequestID       *string          `json:"requestId,omitempty"`
	ContractID      *string          `json:"contractId,omitempty"`
	Description     *string          `json:"description,omitempty"`
	EstimatedImpact *float64         `json:"estimatedImpact,omitempty"`
	Currency        *CurrencyCode    `json:"currency,omitempty"`
	Status          *VariationStatus `json:"status,omitempty"`
}

// ComplianceCheckpoint is a single compliance control with an evidence
// status and severity
type ComplianceCheckpoint struct {
	Clause       *string             `json:"clause,omitempty"`
	ControlOwner *string             `json:"controlOwner,omitempty"`
	EvidenceURL  *string             `json:"evidenceUrl,omitempty"`
	Severity     *CheckpointSeverity `json:"severity,omitempty"`
	Status       *CheckpointStatus   `json:"status,omitempty"`
}

// ValidationResult is the outcome of validating a record or a sequence of
// records. OK is true exactly when Errors is empty; Errors preserves the
// order the checks ran in.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

// newValidationResult builds a result from accumulated messages
func newValidationResult(errors []string) ValidationResult {
	if errors == nil {
		errors = make([]string, 0)
	}
	return ValidationResult{
		OK:     len(errors) == 0,
		Errors: errors,
	}
}

// Merge combines two results, preserving message order across both
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	combined := make([]string, 0, len(r.Errors)+len(other.Errors))
	combined = append(combined, r.Errors...)
	combined = append(combined, other.Errors...)
	return newValidationResult(combined)
}

// Dataset bundles the governance records for one pipeline run. Every field
// is optional; stages decide what to do when their records are absent.
type Dataset struct {
	Contract    *ContractMetadata      `json:"contract,omitempty"`
	Schedule    []ScheduleEntry        `json:"schedule,omitempty"`
	Reminders   []DocumentReminder     `json:"reminders,omitempty"`
	Budget      *BudgetSnapshot        `json:"budget,omitempty"`
	Variations  []VariationOrder       `json:"variations,omitempty"`
	Checkpoints []ComplianceCheckpoint `json:"checkpoints,omitempty"`
}

// Text returns a pointer to the given string for populating record fields
func Text(value string) *string {
	return &value
}

// Amount returns a pointer to the given number for populating record fields
func Amount(value float64) *float64 {
	return &value
}
