// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/ava-labs/slashfuzz/eventlog"
	"github.com/ava-labs/slashfuzz/sut"
	safemath "github.com/ava-labs/slashfuzz/utils/math"
)

const (
	actionRequest = "requestSlash"
	actionExecute = "executeSlash"
)

// requestSlash drives one randomized slash request and checks the system
// answers the way the model says it must: a fresh capture with a nonzero
// amount is accepted under the next slash index, a zero amount is rejected.
func (s *sequence) requestSlash() error {
	now := s.sys.Time()

	// Admissible captures are inside the look-back window, strictly newer
	// than the newest slashed capture, strictly in the past.
	lo := safemath.Max(
		safemath.BoundedSub(now+1, s.cfg.Params.CaptureWindow(), 1),
		s.ledger.LatestSlashedCapture()+1,
	)
	captureTime, err := s.picker.Uint64Range(lo, now-1, s.cfg.CaptureEdgeBias)
	if err != nil {
		return fmt.Errorf("drawing capture time in [%d, %d]: %w", lo, now-1, err)
	}

	slashable, err := s.crossCheck(actionRequest, captureTime, now)
	if err != nil {
		return err
	}

	amount := new(uint256.Int)
	if !slashable.IsZero() {
		amount = s.picker.Uint256Range(slashable, s.cfg.AmountEdgeBias)
	}
	expectAccept := !amount.IsZero()

	slashIndex, submitErr := s.sys.RequestSlash(amount, captureTime)
	if submitErr != nil && !errors.Is(submitErr, sut.ErrRejected) {
		// Not a protocol verdict, a fault of the system's plumbing.
		return fmt.Errorf("submitting slash request: %w", submitErr)
	}
	if err := s.sink.Append(eventlog.Record{
		Sequence:    s.index,
		Step:        s.step,
		Action:      actionRequest,
		Accepted:    submitErr == nil,
		Time:        now,
		SlashIndex:  slashIndex,
		CaptureTime: captureTime,
		Amount:      amount,
	}); err != nil {
		return fmt.Errorf("recording request event: %w", err)
	}

	switch {
	case expectAccept && submitErr == nil:
		if want := s.ledger.NumRequests(); slashIndex != want {
			return &ViolationError{
				Action:   actionRequest,
				Cause:    "assigned slash index",
				Expected: strconv.FormatUint(want, 10),
				Actual:   strconv.FormatUint(slashIndex, 10),
			}
		}
		s.ledger.RecordRequest(captureTime, now, amount)
		s.stats.RequestsAccepted++
		s.metrics.requestsAccepted.Inc()
		s.log.Debug("slash requested",
			zap.Uint64("slashIndex", slashIndex),
			zap.Uint64("captureTime", captureTime),
			zap.String("amount", decString(amount)),
		)
		return nil

	case !expectAccept && submitErr != nil:
		if !errors.Is(submitErr, sut.ErrInsufficientSlash) {
			return &ViolationError{
				Action:   actionRequest,
				Cause:    "rejection reason",
				Expected: sut.ErrInsufficientSlash.Error(),
				Actual:   submitErr.Error(),
			}
		}
		s.stats.RequestsRejected++
		s.metrics.requestsRejected.Inc()
		return nil

	case expectAccept:
		return &ViolationError{
			Action:   actionRequest,
			Cause:    "request outcome",
			Expected: "acceptance of " + decString(amount),
			Actual:   submitErr.Error(),
		}

	default:
		return &ViolationError{
			Action:   actionRequest,
			Cause:    "request outcome",
			Expected: sut.ErrInsufficientSlash.Error(),
			Actual:   fmt.Sprintf("acceptance under slash index %d", slashIndex),
		}
	}
}

// executeSlash picks any recorded request, matures it past its veto period if
// needed, and checks the settlement matches the model's expectation. Picking
// an already settled request on purpose probes the double-settlement
// rejection.
func (s *sequence) executeSlash() error {
	numRequests := s.ledger.NumRequests()
	if numRequests == 0 {
		// Nothing recorded yet; the step is a no-op.
		return nil
	}
	pick, err := s.picker.Index(int(numRequests))
	if err != nil {
		return fmt.Errorf("picking among %d requests: %w", numRequests, err)
	}
	slashIndex := uint64(pick)
	req, err := s.ledger.Request(slashIndex)
	if err != nil {
		return err
	}

	// Mature the veto period instead of testing it here; rejecting nearly
	// every pick would starve the settlement paths.
	if now := s.sys.Time(); now < req.RequestTime+s.cfg.Params.VetoDuration {
		s.sys.AdvanceTime(s.cfg.Params.VetoDuration)
	}
	now := s.sys.Time()

	if _, err := s.crossCheck(actionExecute, req.CaptureTime, now); err != nil {
		return err
	}
	want, err := s.calc.ExpectedExecution(req, now)
	if err != nil {
		return err
	}

	// The expected outcome mirrors the order the system checks in.
	var expectReject error
	switch {
	case req.Executed:
		expectReject = sut.ErrAlreadyCompleted
	case now-req.CaptureTime > s.cfg.Params.EpochDuration:
		expectReject = sut.ErrSlashPeriodEnded
	case want.IsZero():
		expectReject = sut.ErrInsufficientSlash
	}

	got, submitErr := s.sys.ExecuteSlash(slashIndex)
	if submitErr != nil && !errors.Is(submitErr, sut.ErrRejected) {
		return fmt.Errorf("executing request %d: %w", slashIndex, submitErr)
	}
	record := eventlog.Record{
		Sequence:    s.index,
		Step:        s.step,
		Action:      actionExecute,
		Accepted:    submitErr == nil,
		Time:        now,
		SlashIndex:  slashIndex,
		CaptureTime: req.CaptureTime,
	}
	if submitErr == nil {
		record.Amount = got
	}
	if err := s.sink.Append(record); err != nil {
		return fmt.Errorf("recording execution event: %w", err)
	}

	switch {
	case expectReject == nil && submitErr == nil:
		if got == nil || !got.Eq(want) {
			return &ViolationError{
				Action:   actionExecute,
				Cause:    fmt.Sprintf("settled amount for request %d", slashIndex),
				Expected: decString(want),
				Actual:   decString(got),
			}
		}
		if err := s.ledger.RecordExecution(slashIndex, now, got); err != nil {
			return err
		}
		s.stats.ExecutionsAccepted++
		s.metrics.executionsAccepted.Inc()
		s.log.Debug("slash settled",
			zap.Uint64("slashIndex", slashIndex),
			zap.Uint64("captureTime", req.CaptureTime),
			zap.String("amount", decString(got)),
		)
		return nil

	case expectReject != nil && submitErr != nil:
		if !errors.Is(submitErr, expectReject) {
			return &ViolationError{
				Action:   actionExecute,
				Cause:    "rejection reason",
				Expected: expectReject.Error(),
				Actual:   submitErr.Error(),
			}
		}
		s.stats.ExecutionsRejected++
		s.metrics.executionsRejected.Inc()
		return nil

	case expectReject == nil:
		return &ViolationError{
			Action:   actionExecute,
			Cause:    "execution outcome",
			Expected: "settlement of " + decString(want),
			Actual:   submitErr.Error(),
		}

	default:
		return &ViolationError{
			Action:   actionExecute,
			Cause:    "execution outcome",
			Expected: expectReject.Error(),
			Actual:   "settlement of " + decString(got),
		}
	}
}

// crossCheck compares every quantity the model can derive for [captureTime]
// against the system's answers, returning the agreed slashable stake.
func (s *sequence) crossCheck(action string, captureTime, now uint64) (*uint256.Int, error) {
	wantAt, err := s.ledger.CumulativeSlashAt(captureTime)
	if err != nil {
		return nil, err
	}
	if gotAt := s.sys.CumulativeSlashAt(captureTime); gotAt == nil || !gotAt.Eq(wantAt) {
		return nil, &ViolationError{
			Action:   action,
			Cause:    fmt.Sprintf("cumulative slash at %d", captureTime),
			Expected: decString(wantAt),
			Actual:   decString(gotAt),
		}
	}

	wantNow := s.ledger.CumulativeSlash()
	if gotNow := s.sys.CumulativeSlash(); gotNow == nil || !gotNow.Eq(wantNow) {
		return nil, &ViolationError{
			Action:   action,
			Cause:    "cumulative slash",
			Expected: decString(wantNow),
			Actual:   decString(gotNow),
		}
	}

	wantStake, err := s.calc.SlashableStake(captureTime, now)
	if err != nil {
		return nil, err
	}
	if gotStake := s.sys.SlashableStake(captureTime); gotStake == nil || !gotStake.Eq(wantStake) {
		return nil, &ViolationError{
			Action:   action,
			Cause:    fmt.Sprintf("slashable stake for capture %d", captureTime),
			Expected: decString(wantStake),
			Actual:   decString(gotStake),
		}
	}
	return wantStake, nil
}
