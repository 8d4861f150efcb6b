package pactum

import "fmt"

// Observer represents an entity that observes pipeline run lifecycle
type Observer interface {
	// Required methods

	// OnStageCompleted is called after a stage has run its checks
	OnStageCompleted(stage string, result ValidationResult, ctx Context)

	// OnRunCompleted is called once the whole run has finished
	OnRunCompleted(report *Report, ctx Context)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnRunStarted is called before the first stage executes
	OnRunStarted(ctx Context)

	// OnStageStarted is called before a stage runs its checks
	OnStageStarted(stage string, ctx Context)

	// OnStageSkipped is called when a guard keeps a stage from running
	OnStageSkipped(stage string, reason string, ctx Context)

	// OnSummaryComputed is called when a stage produces a derived value
	OnSummaryComputed(stage string, key string, text string, ctx Context)

	// OnError is called when an error occurs during processing
	OnError(err error, ctx Context)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnStageCompleted implements the required Observer method
func (o *BaseObserver) OnStageCompleted(stage string, result ValidationResult, ctx Context) {
	// Default implementation - no operation
}

// OnRunCompleted implements the required Observer method
func (o *BaseObserver) OnRunCompleted(report *Report, ctx Context) {
	// Default implementation - no operation
}

// OnRunStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnRunStarted(ctx Context) {
	// Default implementation - no operation
}

// OnStageStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnStageStarted(stage string, ctx Context) {
	// Default implementation - no operation
}

// OnStageSkipped implements the optional ExtendedObserver method
func (o *BaseObserver) OnStageSkipped(stage string, reason string, ctx Context) {
	// Default implementation - no operation
}

// OnSummaryComputed implements the optional ExtendedObserver method
func (o *BaseObserver) OnSummaryComputed(stage string, key string, text string, ctx Context) {
	// Default implementation - no operation
}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error, ctx Context) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// NotifyStageCompleted notifies all observers that a stage has run
func (om *ObserverManager) NotifyStageCompleted(stage string, result ValidationResult, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Observer panicked - tell its error hook if it has one, but never crash the run
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in OnStageCompleted: %v", r), ctx)
						}()
					}
				}
			}()
			observer.OnStageCompleted(stage, result, ctx)
		}()
	}
}

// NotifyRunCompleted notifies all observers that the run has finished
func (om *ObserverManager) NotifyRunCompleted(report *Report, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in OnRunCompleted: %v", r), ctx)
						}()
					}
				}
			}()
			observer.OnRunCompleted(report, ctx)
		}()
	}
}

// NotifyRunStarted notifies all observers that the run is starting
func (om *ObserverManager) NotifyRunStarted(ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnRunStarted(ctx)
		}
	}
}

// NotifyStageStarted notifies all observers that a stage is starting
func (om *ObserverManager) NotifyStageStarted(stage string, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnStageStarted(stage, ctx)
		}
	}
}

// NotifyStageSkipped notifies all observers that a guard skipped a stage
func (om *ObserverManager) NotifyStageSkipped(stage string, reason string, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() {
					if r := recover(); r != nil {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in OnStageSkipped: %v", r), ctx)
						}()
					}
				}()
				extObs.OnStageSkipped(stage, reason, ctx)
			}()
		}
	}
}

// NotifySummaryComputed notifies all observers of a derived value
func (om *ObserverManager) NotifySummaryComputed(stage string, key string, text string, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnSummaryComputed(stage, key, text, ctx)
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error, ctx Context) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnError(err, ctx)
		}
	}
}
