// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memslasher is an in-memory deployment of the veto-slashing rules.
// It is the default system a fuzz run drives, written against the protocol
// rules rather than against the shadow model, so the two disagree whenever
// either gets a rule wrong.
package memslasher

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/ava-labs/slashfuzz/model"
	"github.com/ava-labs/slashfuzz/sut"
	safemath "github.com/ava-labs/slashfuzz/utils/math"
)

var (
	_ sut.System  = (*Slasher)(nil)
	_ sut.Factory = (*Factory)(nil)
)

// Factory builds fresh Slashers sharing nothing.
type Factory struct {
	Params model.Params
}

func (f Factory) New() (sut.System, error) {
	return New(f.Params)
}

// checkpoint is the running slashed total as of [time]. At most one
// checkpoint exists per timestamp.
type checkpoint struct {
	time  uint64
	value *uint256.Int
}

type request struct {
	captureTime uint64
	requestTime uint64
	amount      *uint256.Int
	completed   bool
}

// Slasher holds the full protocol state of one deployment: chain time, the
// slash request queue, the cumulative-slash checkpoint history and the newest
// slashed capture timestamp. It is not safe for concurrent use.
type Slasher struct {
	params model.Params

	now                  uint64
	requests             []request
	checkpoints          []checkpoint
	latestSlashedCapture uint64
}

func New(params model.Params) (*Slasher, error) {
	if err := params.Verify(); err != nil {
		return nil, err
	}
	return &Slasher{
		params: params,
		now:    params.GenesisTime,
	}, nil
}

func (s *Slasher) Time() uint64 {
	return s.now
}

// AdvanceTime moves chain time forward, saturating at the maximum
// representable time rather than wrapping.
func (s *Slasher) AdvanceTime(seconds uint64) {
	now, err := safemath.Add64(s.now, seconds)
	if err != nil {
		now = math.MaxUint64
	}
	s.now = now
}

func (s *Slasher) CumulativeSlash() *uint256.Int {
	if n := len(s.checkpoints); n > 0 {
		return s.checkpoints[n-1].value.Clone()
	}
	return new(uint256.Int)
}

func (s *Slasher) CumulativeSlashAt(t uint64) *uint256.Int {
	for i := len(s.checkpoints) - 1; i >= 0; i-- {
		if s.checkpoints[i].time <= t {
			return s.checkpoints[i].value.Clone()
		}
	}
	return new(uint256.Int)
}

// SlashableStake returns how much of the stake captured at [captureTime] can
// be slashed right now. Captures outside the epoch-long observation window,
// captures that have not happened yet, and captures older than the newest
// slashed one are worth nothing.
func (s *Slasher) SlashableStake(captureTime uint64) *uint256.Int {
	if captureTime < s.now-s.params.EpochDuration || captureTime >= s.now {
		return new(uint256.Int)
	}
	if captureTime < s.latestSlashedCapture {
		return new(uint256.Int)
	}
	return s.slashableAt(captureTime)
}

// slashableAt is the stake at the capture minus everything slashed since it,
// floored at zero the way the on-chain ledger floors it:
//
//	stake - min(slashedSince, stake)
func (s *Slasher) slashableAt(captureTime uint64) *uint256.Int {
	slashedSince := s.CumulativeSlash()
	slashedSince.Sub(slashedSince, s.CumulativeSlashAt(captureTime))
	stake := s.params.NetworkCapacity
	if slashedSince.Gt(stake) {
		slashedSince.Set(stake)
	}
	return new(uint256.Int).Sub(stake, slashedSince)
}

// RequestSlash queues a slash against the stake captured at [captureTime].
// The queued amount is capped at the capture's current slashable stake; a cap
// down to zero is a rejection. Returns the request's slash index.
func (s *Slasher) RequestSlash(amount *uint256.Int, captureTime uint64) (uint64, error) {
	if captureTime < s.now-s.params.CaptureWindow() || captureTime >= s.now {
		return 0, sut.ErrInvalidCaptureTimestamp
	}

	queued := new(uint256.Int).Set(amount)
	if slashable := s.SlashableStake(captureTime); queued.Gt(slashable) {
		queued.Set(slashable)
	}
	if queued.IsZero() {
		return 0, sut.ErrInsufficientSlash
	}

	s.requests = append(s.requests, request{
		captureTime: captureTime,
		requestTime: s.now,
		amount:      queued,
	})
	return uint64(len(s.requests) - 1), nil
}

// ExecuteSlash settles the request at [slashIndex] once its veto period has
// passed, slashing the requested amount capped at what the capture is still
// worth. The checkpoint history and the newest slashed capture advance only
// here.
func (s *Slasher) ExecuteSlash(slashIndex uint64) (*uint256.Int, error) {
	if slashIndex >= uint64(len(s.requests)) {
		return nil, sut.ErrOutOfBounds
	}
	req := &s.requests[slashIndex]
	switch {
	case req.completed:
		return nil, sut.ErrAlreadyCompleted
	case s.now < req.requestTime+s.params.VetoDuration:
		return nil, sut.ErrVetoPeriodNotEnded
	case s.now-req.captureTime > s.params.EpochDuration:
		return nil, sut.ErrSlashPeriodEnded
	}

	slashed := new(uint256.Int).Set(req.amount)
	if slashable := s.SlashableStake(req.captureTime); slashed.Gt(slashable) {
		slashed.Set(slashable)
	}
	if slashed.IsZero() {
		return nil, sut.ErrInsufficientSlash
	}

	req.completed = true
	cumulative := s.CumulativeSlash()
	cumulative.Add(cumulative, slashed)
	s.pushCheckpoint(s.now, cumulative)
	s.latestSlashedCapture = safemath.Max(s.latestSlashedCapture, req.captureTime)
	return slashed, nil
}

// pushCheckpoint records the running total as of [t]. A second push in the
// same second overwrites the first, keeping one checkpoint per timestamp.
func (s *Slasher) pushCheckpoint(t uint64, value *uint256.Int) {
	if n := len(s.checkpoints); n > 0 && s.checkpoints[n-1].time == t {
		s.checkpoints[n-1].value = value
		return
	}
	s.checkpoints = append(s.checkpoints, checkpoint{
		time:  t,
		value: value,
	})
}
