// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/slashfuzz/model"
)

// Checker re-verifies the sliding-window safety of the whole execution
// history. The protocol must never slash more than the network capacity
// within any window of one veto duration, whichever of the three timestamps
// of an execution the window is anchored on.
type Checker struct {
	capacity *uint256.Int
	window   uint64
	ledger   *model.Ledger
}

func NewChecker(params model.Params, ledger *model.Ledger) *Checker {
	return &Checker{
		capacity: params.NetworkCapacity.Clone(),
		window:   params.VetoDuration,
		ledger:   ledger,
	}
}

// Check walks every window anchored at a recorded execution, for each of the
// three time bases. Quadratic in history length; it reads the ledger without
// changing it, so re-running it on an unchanged ledger is free of surprises.
func (c *Checker) Check() error {
	executions := c.ledger.Executions()
	if err := c.checkWindows(executions, "capture", func(e model.Execution) uint64 {
		return e.CaptureTime
	}); err != nil {
		return err
	}
	if err := c.checkWindows(executions, "request", func(e model.Execution) uint64 {
		return e.RequestTime
	}); err != nil {
		return err
	}
	return c.checkWindows(executions, "execution", func(e model.Execution) uint64 {
		return e.ExecTime
	})
}

func (c *Checker) checkWindows(executions []model.Execution, base string, timeOf func(model.Execution) uint64) error {
	sum := new(uint256.Int)
	for i := range executions {
		anchor := timeOf(executions[i])
		sum.Clear()
		for j := range executions {
			t := timeOf(executions[j])
			if t >= anchor && t-anchor <= c.window {
				sum.Add(sum, executions[j].Amount)
			}
		}
		if sum.Gt(c.capacity) {
			return &ViolationError{
				Action:   "invariant",
				Cause:    fmt.Sprintf("%s-time window [%d, %d] slash sum", base, anchor, anchor+c.window),
				Expected: "at most " + decString(c.capacity),
				Actual:   decString(sum),
			}
		}
	}
	return nil
}
