package pactum

import "fmt"

// ErrorCode represents specific error conditions in the validation pipeline.
// Domain validation failures never surface through these types; they are
// reported as messages inside a ValidationResult. The codes below cover
// misuse of the pipeline API itself.
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Pipeline configuration is invalid
	ErrCodeInvalidConfiguration
	// Pipeline was built without any stage
	ErrCodeEmptyPipeline
	// Stage name was declared more than once
	ErrCodeDuplicateStage
	// Stage has neither checks nor summaries
	ErrCodeStageWithoutWork
	// Stage was not found in the pipeline
	ErrCodeStageNotFound
	// Run was started without a dataset
	ErrCodeNilDataset
	// Check or summary panicked during a run
	ErrCodeCheckPanicked
	// Runner was executed more than once
	ErrCodeRunnerReused
	// Run was aborted before completion
	ErrCodeRunAborted
)

// ConfigurationError represents pipeline configuration issues
type ConfigurationError struct {
	Code  ErrorCode
	Stage string
	Issue string
}

func (e *ConfigurationError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("configuration error in stage '%s': %s", e.Stage, e.Issue)
	}
	return fmt.Sprintf("configuration error: %s", e.Issue)
}

// NewConfigurationError creates a new configuration error with custom values
func NewConfigurationError(code ErrorCode, stage string, issue string) *ConfigurationError {
	return &ConfigurationError{
		Code:  code,
		Stage: stage,
		Issue: issue,
	}
}

// NewEmptyPipelineError creates the error for a pipeline built with no stages
func NewEmptyPipelineError() *ConfigurationError {
	return &ConfigurationError{
		Code:  ErrCodeEmptyPipeline,
		Issue: "pipeline has no stages",
	}
}

// NewDuplicateStageError creates the error for a stage declared twice
func NewDuplicateStageError(stage string) *ConfigurationError {
	return &ConfigurationError{
		Code:  ErrCodeDuplicateStage,
		Stage: stage,
		Issue: fmt.Sprintf("stage '%s' is declared more than once", stage),
	}
}

// NewStageWithoutWorkError creates the error for a stage with nothing to run
func NewStageWithoutWorkError(stage string) *ConfigurationError {
	return &ConfigurationError{
		Code:  ErrCodeStageWithoutWork,
		Stage: stage,
		Issue: fmt.Sprintf("stage '%s' has no checks and no summaries", stage),
	}
}

// StageError represents stage lookup failures
type StageError struct {
	Code    ErrorCode
	Stage   string
	Message string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage error [%s]: %s", e.Stage, e.Message)
}

// NewStageNotFoundError creates a new stage not found error
func NewStageNotFoundError(stage string) *StageError {
	return &StageError{
		Code:    ErrCodeStageNotFound,
		Stage:   stage,
		Message: fmt.Sprintf("stage '%s' not found", stage),
	}
}

// CheckError represents a check or summary that panicked during a run.
// The panic payload is preserved in Recovered.
type CheckError struct {
	Stage     string
	Recovered any
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check panicked in stage '%s': %v", e.Stage, e.Recovered)
}

// NewCheckPanicError creates a new check panic error
func NewCheckPanicError(stage string, recovered any) *CheckError {
	return &CheckError{
		Stage:     stage,
		Recovered: recovered,
	}
}

// RunError represents runner lifecycle errors
type RunError struct {
	Code      ErrorCode
	Operation string
	Message   string
	Cause     error
}

func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("run error during %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("run error during %s: %s", e.Operation, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// NewNilDatasetError creates the error for a run started without records
func NewNilDatasetError() *RunError {
	return &RunError{
		Code:      ErrCodeNilDataset,
		Operation: "execute",
		Message:   "dataset is nil",
	}
}

// NewRunnerReusedError creates the error for a second execution of a runner
func NewRunnerReusedError() *RunError {
	return &RunError{
		Code:      ErrCodeRunnerReused,
		Operation: "execute",
		Message:   "runner has already been executed",
	}
}

// NewRunAbortedError creates the error for a run cancelled mid-flight
func NewRunAbortedError(stage string, cause error) *RunError {
	return &RunError{
		Code:      ErrCodeRunAborted,
		Operation: "execute",
		Message:   fmt.Sprintf("run aborted before stage '%s'", stage),
		Cause:     cause,
	}
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsStageError checks if an error is a StageError
func IsStageError(err error) bool {
	_, ok := err.(*StageError)
	return ok
}

// IsCheckError checks if an error is a CheckError
func IsCheckError(err error) bool {
	_, ok := err.(*CheckError)
	return ok
}

// IsRunError checks if an error is a RunError
func IsRunError(err error) bool {
	_, ok := err.(*RunError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ConfigurationError:
		return e.Code
	case *StageError:
		return e.Code
	case *RunError:
		return e.Code
	case *CheckError:
		return ErrCodeCheckPanicked
	default:
		return ErrCodeNone
	}
}
