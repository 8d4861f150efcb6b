package pactum

import (
	"context"
	"sync"
)

// Context provides access to data and information during a pipeline run
type Context interface {
	context.Context

	Get(key string) (any, bool)
	Set(key string, value any)
	GetAll() map[string]any

	Dataset() *Dataset
	CurrentStage() string
	Report() *Report

	WithValue(key string, value any) Context
	Fork() Context
}

// runContext implements the Context interface
type runContext struct {
	context.Context
	data         map[string]any
	dataset      *Dataset
	report       *Report
	currentStage string

	mutex sync.RWMutex
}

// NewContext creates a run context detached from any runner, mainly for
// exercising custom checks and guards on their own
func NewContext(parent context.Context, dataset *Dataset) Context {
	if parent == nil {
		parent = context.Background()
	}
	return &runContext{
		Context: parent,
		data:    make(map[string]any),
		dataset: dataset,
		report:  newReport(),
	}
}

// NewSimpleContext creates a simple context for testing
func NewSimpleContext() Context {
	return &runContext{
		Context: context.Background(),
		data:    make(map[string]any),
		dataset: &Dataset{},
		report:  newReport(),
	}
}

// newRunContext creates the context a runner threads through its stages
func newRunContext(parent context.Context, dataset *Dataset, report *Report) *runContext {
	return &runContext{
		Context: parent,
		data:    make(map[string]any),
		dataset: dataset,
		report:  report,
	}
}

// Get retrieves a value from the context
func (ctx *runContext) Get(key string) (any, bool) {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	value, exists := ctx.data[key]
	return value, exists
}

// Set stores a value in the context
func (ctx *runContext) Set(key string, value any) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.data[key] = value
}

// GetAll returns a copy of all context data
func (ctx *runContext) GetAll() map[string]any {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	result := make(map[string]any)
	for k, v := range ctx.data {
		result[k] = v
	}
	return result
}

// Dataset returns the records the run is validating
func (ctx *runContext) Dataset() *Dataset {
	return ctx.dataset
}

// CurrentStage returns the name of the stage being executed
func (ctx *runContext) CurrentStage() string {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return ctx.currentStage
}

// Report returns the report as assembled so far. Sections only appear
// after their stage has completed.
func (ctx *runContext) Report() *Report {
	return ctx.report
}

// WithValue creates a new context with an additional key-value pair
func (ctx *runContext) WithValue(key string, value any) Context {
	newCtx := &runContext{
		Context:      ctx.Context,
		data:         make(map[string]any),
		dataset:      ctx.dataset,
		report:       ctx.report,
		currentStage: ctx.currentStage,
	}

	ctx.mutex.RLock()
	for k, v := range ctx.data {
		newCtx.data[k] = v
	}
	ctx.mutex.RUnlock()

	newCtx.data[key] = value

	return newCtx
}

// Fork creates a new context with copied data
func (ctx *runContext) Fork() Context {
	newCtx := &runContext{
		Context:      ctx.Context,
		data:         make(map[string]any),
		dataset:      ctx.dataset,
		report:       ctx.report,
		currentStage: ctx.currentStage,
	}

	ctx.mutex.RLock()
	for k, v := range ctx.data {
		newCtx.data[k] = v
	}
	ctx.mutex.RUnlock()

	return newCtx
}

// updateStage records the stage the runner is about to execute
func (ctx *runContext) updateStage(stage string) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.currentStage = stage
}
