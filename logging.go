package pactum

import "log/slog"

// LoggingObserver bridges pipeline observation onto structured logging.
// Stage starts and skips log at debug level, completions and summaries at
// info level, errors at error level. Validators themselves never log; the
// observer is the only place run progress becomes visible.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer. A nil logger falls back
// to slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnStageCompleted logs the outcome of an executed stage
func (o *LoggingObserver) OnStageCompleted(stage string, result ValidationResult, ctx Context) {
	o.logger.Info("stage completed",
		slog.String("stage", stage),
		slog.Bool("ok", result.OK),
		slog.Int("errors", len(result.Errors)))
}

// OnRunCompleted logs the assembled report
func (o *LoggingObserver) OnRunCompleted(report *Report, ctx Context) {
	o.logger.Info("run completed",
		slog.String("run", report.ID),
		slog.Bool("ok", report.OK()),
		slog.Int("sections", len(report.Sections)),
		slog.Int("warnings", len(report.Warnings)))
}

// OnRunStarted logs the beginning of a run
func (o *LoggingObserver) OnRunStarted(ctx Context) {
	o.logger.Info("run started", slog.String("run", ctx.Report().ID))
}

// OnStageStarted logs a stage about to run
func (o *LoggingObserver) OnStageStarted(stage string, ctx Context) {
	o.logger.Debug("stage started", slog.String("stage", stage))
}

// OnStageSkipped logs a stage a guard kept from running
func (o *LoggingObserver) OnStageSkipped(stage string, reason string, ctx Context) {
	o.logger.Debug("stage skipped",
		slog.String("stage", stage),
		slog.String("reason", reason))
}

// OnSummaryComputed logs a derived report value
func (o *LoggingObserver) OnSummaryComputed(stage string, key string, text string, ctx Context) {
	o.logger.Info("summary computed",
		slog.String("stage", stage),
		slog.String("key", key),
		slog.String("text", text))
}

// OnError logs pipeline errors
func (o *LoggingObserver) OnError(err error, ctx Context) {
	o.logger.Error("pipeline error",
		slog.String("stage", ctx.CurrentStage()),
		slog.Any("error", err))
}
