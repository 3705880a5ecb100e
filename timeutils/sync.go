package timeutils

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of a successful Syncer run.
type Result struct {
	Record      TimeRecord
	LocalTime   LocalTime
	LocalBefore time.Time
	RTT         time.Duration
	Applied     bool
}

// Syncer runs fetch, parse and apply once, in that order.
type Syncer struct {
	Fetcher *Fetcher
	Setter  ClockSetter
	Logger  *zap.Logger
	DryRun  bool

	now func() time.Time
}

// Run executes the pipeline. The first failing stage ends the run and its
// error is returned as a *StageError; no later stage is attempted.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := s.now
	if now == nil {
		now = time.Now
	}

	logger.Debug("fetching time", zap.String("url", s.Fetcher.URL))
	body, rtt, err := s.Fetcher.fetch(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageFetching, Err: err}
	}

	logger.Debug("parsing response", zap.Int("bytes", len(body)), zap.Duration("rtt", rtt))
	rec, lt, err := Parse(body)
	if err != nil {
		return nil, &StageError{Stage: StageParsing, Err: err}
	}

	res := &Result{Record: rec, LocalTime: lt, LocalBefore: now(), RTT: rtt}
	if s.DryRun {
		logger.Info("dry run, clock left untouched", zap.Stringer("local_time", lt))
		return res, nil
	}

	logger.Debug("applying local time", zap.Stringer("local_time", lt))
	if err := s.Setter.SetLocalTime(lt); err != nil {
		return nil, &StageError{Stage: StageApplying, Err: err}
	}
	res.Applied = true

	logger.Info("local time updated",
		zap.Stringer("local_time", lt),
		zap.String("timezone", rec.Timezone))
	return res, nil
}
