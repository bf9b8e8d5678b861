// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package harness drives randomized slashing sequences against a system and
// fails the run on the first disagreement with the shadow model.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/slashfuzz/eventlog"
	"github.com/ava-labs/slashfuzz/model"
	"github.com/ava-labs/slashfuzz/sut"
	safemath "github.com/ava-labs/slashfuzz/utils/math"
	"github.com/ava-labs/slashfuzz/utils/sampler"
)

var (
	errZeroSequences = errors.New("sequences must be positive")
	errZeroSteps     = errors.New("steps must be positive")
	errZeroWeights   = errors.New("at least one action weight must be positive")
	errBadEdgeBias   = errors.New("edge bias must be in [0, 1]")
	errNoParallelism = errors.New("parallelism must be positive")
	errNilFactory    = errors.New("factory must be set")
)

// Config shapes one fuzz run.
type Config struct {
	Params model.Params

	// Sequences independent histories of Steps actions each.
	Sequences uint64
	Steps     uint64

	// Seed derives every sequence's generator; sequence i draws from
	// Seed + i, so any single sequence can be replayed on its own.
	Seed uint64

	// Parallelism bounds how many sequences run at once.
	Parallelism int

	// RequestWeight and ExecuteWeight bias the per-step action pick.
	RequestWeight uint64
	ExecuteWeight uint64

	// CaptureEdgeBias and AmountEdgeBias are the probabilities a drawn
	// capture time or amount sits exactly on a bound of its range.
	CaptureEdgeBias float64
	AmountEdgeBias  float64
}

func (c Config) Verify() error {
	switch {
	case c.Sequences == 0:
		return errZeroSequences
	case c.Steps == 0:
		return errZeroSteps
	case c.RequestWeight == 0 && c.ExecuteWeight == 0:
		return errZeroWeights
	case c.CaptureEdgeBias < 0 || c.CaptureEdgeBias > 1:
		return errBadEdgeBias
	case c.AmountEdgeBias < 0 || c.AmountEdgeBias > 1:
		return errBadEdgeBias
	case c.Parallelism < 1:
		return errNoParallelism
	default:
		return c.Params.Verify()
	}
}

// Driver owns one fuzz run.
type Driver struct {
	cfg     Config
	log     *zap.Logger
	factory sut.Factory
	sink    eventlog.Sink
	metrics *metrics
}

// New builds a driver. [reg] receives the run's metrics. A nil [sink] drops
// events.
func New(cfg Config, log *zap.Logger, factory sut.Factory, sink eventlog.Sink, reg prometheus.Registerer) (*Driver, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, errNilFactory
	}
	if sink == nil {
		sink = eventlog.NoopSink{}
	}
	return &Driver{
		cfg:     cfg,
		log:     log,
		factory: factory,
		sink:    sink,
		metrics: newMetrics(reg),
	}, nil
}

// Run drives every sequence, stopping at the first violation. The returned
// stats cover whatever ran, including the failing sequence's earlier steps.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	d.log.Info("starting run",
		zap.Uint64("sequences", d.cfg.Sequences),
		zap.Uint64("steps", d.cfg.Steps),
		zap.Uint64("seed", d.cfg.Seed),
		zap.Int("parallelism", d.cfg.Parallelism),
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(int(safemath.Min(uint64(d.cfg.Parallelism), d.cfg.Sequences)))

	var (
		lock  sync.Mutex
		total Stats
	)
	for i := uint64(0); i < d.cfg.Sequences; i++ {
		index := i
		eg.Go(func() error {
			stats, err := d.runSequence(egCtx, index)
			lock.Lock()
			total.Merge(stats)
			lock.Unlock()
			return err
		})
	}
	err := eg.Wait()

	var violation *ViolationError
	if errors.As(err, &violation) {
		d.metrics.violations.Inc()
		d.log.Error("run violated the model",
			zap.Uint64("seed", violation.Seed),
			zap.Uint64("sequence", violation.Sequence),
			zap.Uint64("step", violation.Step),
			zap.String("action", violation.Action),
			zap.String("cause", violation.Cause),
			zap.String("expected", violation.Expected),
			zap.String("actual", violation.Actual),
		)
	}
	// Flush even on failure; the tail of the event log is the evidence.
	if flushErr := d.sink.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("flushing events: %w", flushErr)
	}

	d.log.Info("run finished",
		zap.Uint64("completedSequences", total.Sequences),
		zap.Uint64("steps", total.Steps),
		zap.Uint64("requestsAccepted", total.RequestsAccepted),
		zap.Uint64("requestsRejected", total.RequestsRejected),
		zap.Uint64("executionsAccepted", total.ExecutionsAccepted),
		zap.Uint64("executionsRejected", total.ExecutionsRejected),
		zap.Uint64("invariantChecks", total.InvariantChecks),
	)
	return total, err
}

// sequence bundles everything one history owns. Sequences share nothing but
// the sink and the metrics, so they can run concurrently.
type sequence struct {
	cfg     Config
	log     *zap.Logger
	picker  sampler.Picker
	sink    eventlog.Sink
	metrics *metrics

	seed  uint64
	index uint64
	step  uint64

	ledger  *model.Ledger
	calc    *model.Calculator
	checker *Checker
	sys     sut.System

	stats Stats
}

func (d *Driver) runSequence(ctx context.Context, index uint64) (Stats, error) {
	seed := d.cfg.Seed + index
	sys, err := d.factory.New()
	if err != nil {
		return Stats{}, fmt.Errorf("building system for sequence %d: %w", index, err)
	}
	ledger := model.NewLedger()
	seq := &sequence{
		cfg:     d.cfg,
		log:     d.log.With(zap.Uint64("sequence", index)),
		picker:  sampler.NewPicker(sampler.NewSource(seed)),
		sink:    d.sink,
		metrics: d.metrics,
		seed:    seed,
		index:   index,
		ledger:  ledger,
		calc:    model.NewCalculator(d.cfg.Params, ledger),
		checker: NewChecker(d.cfg.Params, ledger),
		sys:     sys,
	}

	// Warm up: leave a full look-back window behind genesis so the first
	// request has room for any admissible capture.
	seq.sys.AdvanceTime(d.cfg.Params.CaptureWindow())

	for seq.step = 0; seq.step < d.cfg.Steps; seq.step++ {
		if err := ctx.Err(); err != nil {
			return seq.stats, err
		}
		if err := seq.runStep(); err != nil {
			return seq.stats, locate(err, seq)
		}
	}
	if err := d.sink.Flush(); err != nil {
		return seq.stats, fmt.Errorf("flushing events after sequence %d: %w", index, err)
	}

	seq.stats.Sequences++
	d.metrics.sequencesDone.Inc()
	seq.log.Info("sequence completed",
		zap.Uint64("requests", seq.ledger.NumRequests()),
		zap.Uint64("executions", seq.ledger.NumExecutions()),
	)
	return seq.stats, nil
}

// runStep picks an action by weight, runs it, then re-checks the whole
// history.
func (s *sequence) runStep() error {
	draw, err := s.picker.Uint64Range(1, s.cfg.RequestWeight+s.cfg.ExecuteWeight, 0)
	if err != nil {
		return err
	}
	if draw <= s.cfg.RequestWeight {
		err = s.requestSlash()
	} else {
		err = s.executeSlash()
	}
	if err != nil {
		return err
	}
	s.stats.Steps++
	s.metrics.steps.Inc()

	if err := s.checker.Check(); err != nil {
		return err
	}
	s.stats.InvariantChecks++
	s.metrics.invariantChecks.Inc()
	return nil
}

// locate stamps replay coordinates on a violation; other errors get them as
// wrapping context.
func locate(err error, seq *sequence) error {
	var violation *ViolationError
	if errors.As(err, &violation) {
		violation.Seed = seq.seed
		violation.Sequence = seq.index
		violation.Step = seq.step
		return err
	}
	return fmt.Errorf("sequence %d step %d (seed %d): %w", seq.index, seq.step, seq.seed, err)
}
