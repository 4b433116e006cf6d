// Package runner executes one annotation pass: load, annotate, store.
//
// Every failure stops the pass before anything is written. The outcome is
// reported to the user as one line; errors never escape Run.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"facultynotes/internal/annotate"
	"facultynotes/internal/logging"
	"facultynotes/internal/record"
	"facultynotes/internal/report"
)

// Store is the document source and sink.
type Store interface {
	InputPath() string
	OutputPath() string
	Load() (record.Document, error)
	Save(record.Document) error
}

// Outcome describes a finished run.
type Outcome struct {
	RunID   string
	Kind    report.Kind
	Result  annotate.Result
	Err     error
	Elapsed time.Duration
}

// Runner wires the pipeline stages together.
type Runner struct {
	store     Store
	annotator *annotate.Annotator
	reporter  *report.Reporter
	logger    *zap.Logger
	now       func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the clock used for elapsed times.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		r.now = clock
	}
}

// New builds a runner. A nil logger disables logging.
func New(store Store, annotator *annotate.Annotator, reporter *report.Reporter, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		store:     store,
		annotator: annotator,
		reporter:  reporter,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one pass and reports its outcome.
func (r *Runner) Run(ctx context.Context) Outcome {
	runID := uuid.NewString()
	log := logging.For(r.logger, logging.CategoryRun).With(zap.String("run_id", runID))
	start := r.now()

	log.Info("run started",
		zap.String("input", r.store.InputPath()),
		zap.String("output", r.store.OutputPath()))

	res, err := r.execute(ctx, log)
	out := Outcome{
		RunID:   runID,
		Result:  res,
		Err:     err,
		Elapsed: r.now().Sub(start),
	}

	if err != nil {
		out.Kind = r.reporter.Failure(r.store.InputPath(), err)
		log.Error("run failed",
			zap.Stringer("kind", out.Kind),
			zap.Error(err),
			zap.Duration("elapsed", out.Elapsed))
		return out
	}

	r.reporter.Success(r.store.OutputPath())
	log.Info("run complete",
		zap.Int("records", res.Records),
		zap.Int("annotated", res.Annotated),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", out.Elapsed))
	return out
}

func (r *Runner) execute(ctx context.Context, log *zap.Logger) (res annotate.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	doc, err := r.store.Load()
	if err != nil {
		return res, err
	}
	logging.For(log, logging.CategoryLoad).Debug("document loaded", zap.Int("records", len(doc)))

	res, err = r.annotator.Apply(ctx, doc)
	if err != nil {
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := r.store.Save(doc); err != nil {
		return res, err
	}
	logging.For(log, logging.CategoryStore).Debug("document written", zap.String("path", r.store.OutputPath()))
	return res, nil
}
