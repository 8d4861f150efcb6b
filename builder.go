package pactum

// PipelineBuilder provides the main entry point for assembling pipelines
type PipelineBuilder interface {
	Stage(name string) StageBuilder
	WithObserver(observer Observer) PipelineBuilder

	Build() PipelineDefinition
}

// StageBuilder configures the stage opened by the last Stage call
type StageBuilder interface {
	// Work binding
	Check(check CheckFunc) StageBuilder
	Summarize(summary SummaryFunc) StageBuilder

	// Guard conditions
	When(guard GuardFunc) StageBuilder
	Unless(guard GuardFunc) StageBuilder

	Stage(name string) StageBuilder
	WithObserver(observer Observer) PipelineBuilder
	Build() PipelineDefinition
}

// pipelineBuilderImpl implements PipelineBuilder
type pipelineBuilderImpl struct {
	stages    []*Stage
	observers []Observer
}

// NewPipeline creates a new pipeline builder with the fluent API
func NewPipeline() PipelineBuilder {
	return &pipelineBuilderImpl{
		stages:    make([]*Stage, 0),
		observers: make([]Observer, 0),
	}
}

// NewPipelineBuilder creates a new pipeline builder
func NewPipelineBuilder() PipelineBuilder {
	return NewPipeline()
}

// Stage opens a new stage builder. Stages run in the order they are
// declared.
func (pb *pipelineBuilderImpl) Stage(name string) StageBuilder {
	stage := NewStage(name)
	pb.stages = append(pb.stages, stage)

	return &stageBuilderImpl{
		pipelineBuilder: pb,
		stage:           stage,
	}
}

// WithObserver registers an observer carried into every run of the
// definition
func (pb *pipelineBuilderImpl) WithObserver(observer Observer) PipelineBuilder {
	pb.observers = append(pb.observers, observer)
	return pb
}

// Build validates the configuration and produces an immutable definition.
// An invalid configuration is a programming error and panics with the
// corresponding ConfigurationError.
func (pb *pipelineBuilderImpl) Build() PipelineDefinition {
	if err := pb.validate(); err != nil {
		panic(err)
	}

	stages := make([]*Stage, len(pb.stages))
	copy(stages, pb.stages)
	observers := make([]Observer, len(pb.observers))
	copy(observers, pb.observers)

	return &pipelineDefinition{
		stages:    stages,
		observers: observers,
	}
}

// validate checks the pipeline configuration
func (pb *pipelineBuilderImpl) validate() error {
	if len(pb.stages) == 0 {
		return NewEmptyPipelineError()
	}

	seen := make(map[string]bool)
	for _, stage := range pb.stages {
		if seen[stage.Name] {
			return NewDuplicateStageError(stage.Name)
		}
		seen[stage.Name] = true

		if !stage.hasWork() {
			return NewStageWithoutWorkError(stage.Name)
		}
	}

	return nil
}

// stageBuilderImpl implements StageBuilder
type stageBuilderImpl struct {
	pipelineBuilder *pipelineBuilderImpl
	stage           *Stage
}

// Check adds a check to the stage
func (sb *stageBuilderImpl) Check(check CheckFunc) StageBuilder {
	sb.stage.WithCheck(check)
	return sb
}

// Summarize adds a summary computation to the stage
func (sb *stageBuilderImpl) Summarize(summary SummaryFunc) StageBuilder {
	sb.stage.WithSummary(summary)
	return sb
}

// When guards the stage: it only runs while the guard passes
func (sb *stageBuilderImpl) When(guard GuardFunc) StageBuilder {
	sb.stage.WithGuard(guard)
	return sb
}

// Unless guards the stage with the negation of the given condition
func (sb *stageBuilderImpl) Unless(guard GuardFunc) StageBuilder {
	sb.stage.WithGuard(func(ctx Context) bool {
		return !guard(ctx)
	})
	return sb
}

// Stage closes the current stage and opens the next one
func (sb *stageBuilderImpl) Stage(name string) StageBuilder {
	return sb.pipelineBuilder.Stage(name)
}

// WithObserver registers an observer on the underlying pipeline builder
func (sb *stageBuilderImpl) WithObserver(observer Observer) PipelineBuilder {
	return sb.pipelineBuilder.WithObserver(observer)
}

// Build finishes the pipeline from any point in the chain
func (sb *stageBuilderImpl) Build() PipelineDefinition {
	return sb.pipelineBuilder.Build()
}
