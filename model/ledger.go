// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"golang.org/x/exp/slices"

	safemath "github.com/ava-labs/slashfuzz/utils/math"
)

var (
	// ErrCheckpointOrder means the cumulative-slash history lost its
	// execution-time ordering. Every answer derived from the history is
	// suspect once this fires.
	ErrCheckpointOrder = errors.New("cumulative slash checkpoints out of order")

	errUnknownRequest  = errors.New("unknown slash index")
	errDoubleExecution = errors.New("request already executed")
	errTimeRegression  = errors.New("execution time regression")
)

// Request is a slash request the system accepted. Amounts are in base units.
type Request struct {
	CaptureTime uint64
	RequestTime uint64
	Amount      *uint256.Int
	Executed    bool
}

// Execution is a completed slash. Cumulative is the running total of all
// executed amounts up to and including this one; it is the checkpoint value
// the protocol records at ExecTime.
type Execution struct {
	CaptureTime uint64
	RequestTime uint64
	ExecTime    uint64
	Amount      *uint256.Int
	Cumulative  *uint256.Int
}

// Ledger is the shadow bookkeeping a fuzzed sequence trusts: every accepted
// request and every completed execution, in the order the chain saw them.
// Requests are addressed by their slash index, which matches the index the
// system under test returns. Nothing is ever deleted.
//
// Ledger is not safe for concurrent use; each sequence owns its own.
type Ledger struct {
	requests      []Request
	executions    []Execution
	latestCapture uint64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordRequest appends an accepted request and returns its slash index.
// The amount is copied.
func (l *Ledger) RecordRequest(captureTime, requestTime uint64, amount *uint256.Int) uint64 {
	l.requests = append(l.requests, Request{
		CaptureTime: captureTime,
		RequestTime: requestTime,
		Amount:      amount.Clone(),
	})
	return uint64(len(l.requests) - 1)
}

// RecordExecution marks the request at [slashIndex] executed and appends its
// checkpoint. [amount] is the value the slash actually moved, which can be
// less than the requested amount. Checkpoints must be appended in
// non-decreasing execution-time order.
func (l *Ledger) RecordExecution(slashIndex, execTime uint64, amount *uint256.Int) error {
	if slashIndex >= uint64(len(l.requests)) {
		return fmt.Errorf("%w: %d of %d", errUnknownRequest, slashIndex, len(l.requests))
	}
	req := &l.requests[slashIndex]
	if req.Executed {
		return fmt.Errorf("%w: %d", errDoubleExecution, slashIndex)
	}
	if n := len(l.executions); n > 0 && execTime < l.executions[n-1].ExecTime {
		return fmt.Errorf("%w: %d < %d", errTimeRegression, execTime, l.executions[n-1].ExecTime)
	}

	cumulative := l.CumulativeSlash()
	cumulative.Add(cumulative, amount)

	req.Executed = true
	l.executions = append(l.executions, Execution{
		CaptureTime: req.CaptureTime,
		RequestTime: req.RequestTime,
		ExecTime:    execTime,
		Amount:      amount.Clone(),
		Cumulative:  cumulative,
	})
	l.latestCapture = safemath.Max(l.latestCapture, req.CaptureTime)
	return nil
}

// CumulativeSlash returns the running total of all executed amounts.
func (l *Ledger) CumulativeSlash() *uint256.Int {
	if n := len(l.executions); n > 0 {
		return l.executions[n-1].Cumulative.Clone()
	}
	return new(uint256.Int)
}

// CumulativeSlashAt returns the checkpoint value as of [t]: the cumulative of
// the last execution at or before [t], or zero if there is none.
func (l *Ledger) CumulativeSlashAt(t uint64) (*uint256.Int, error) {
	// Upper bound: the first checkpoint strictly after [t]. Ties at [t] land
	// on the predecessor side, so same-second executions all count.
	i := sort.Search(len(l.executions), func(j int) bool {
		return l.executions[j].ExecTime > t
	})
	if err := l.verifyBracket(i, t); err != nil {
		return nil, err
	}
	if i == 0 {
		return new(uint256.Int), nil
	}
	return l.executions[i-1].Cumulative.Clone(), nil
}

// verifyBracket checks the partition the search result claims: every
// checkpoint left of [i] is at or before [t] and every checkpoint at or
// right of [i] is strictly after it. The scan assumes nothing about the
// history's order, so a history that lost its ordering around [t] fails the
// lookup instead of handing back a wrong bracket.
func (l *Ledger) verifyBracket(i int, t uint64) error {
	for j := range l.executions {
		if (j < i) != (l.executions[j].ExecTime <= t) {
			return fmt.Errorf("%w: search found %d, checkpoint %d is at %d for lookup time %d",
				ErrCheckpointOrder, i, j, l.executions[j].ExecTime, t)
		}
	}
	return nil
}

// LatestSlashedCapture returns the newest capture timestamp among executed
// requests, or zero if nothing has executed.
func (l *Ledger) LatestSlashedCapture() uint64 {
	return l.latestCapture
}

// NumRequests returns how many requests have been accepted. The next accepted
// request gets this value as its slash index.
func (l *Ledger) NumRequests() uint64 {
	return uint64(len(l.requests))
}

func (l *Ledger) NumExecutions() uint64 {
	return uint64(len(l.executions))
}

// Request returns a copy of the request at [slashIndex].
func (l *Ledger) Request(slashIndex uint64) (Request, error) {
	if slashIndex >= uint64(len(l.requests)) {
		return Request{}, fmt.Errorf("%w: %d of %d", errUnknownRequest, slashIndex, len(l.requests))
	}
	req := l.requests[slashIndex]
	req.Amount = req.Amount.Clone()
	return req, nil
}

// Executions returns the execution history in checkpoint order. The returned
// slice is the caller's; the amounts it points at are shared with the ledger
// and must be treated as read-only.
func (l *Ledger) Executions() []Execution {
	return slices.Clone(l.executions)
}
