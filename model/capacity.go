// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import "github.com/holiman/uint256"

// Calculator derives slashable stake from a ledger's checkpoint history. It
// is the independent answer the system under test is checked against.
type Calculator struct {
	params Params
	ledger *Ledger
}

func NewCalculator(params Params, ledger *Ledger) *Calculator {
	return &Calculator{
		params: params,
		ledger: ledger,
	}
}

// SlashableStake returns how much of the stake captured at [captureTime] can
// still be slashed at [now]:
//
//	capacity + cumulativeAt(captureTime) - cumulativeNow
//
// clamped at zero, with three rules zeroing the answer outright: the capture
// is not yet observable, the capture expired, or a newer capture has already
// been slashed.
func (c *Calculator) SlashableStake(captureTime, now uint64) (*uint256.Int, error) {
	// The remaining budget is computed unconditionally so the checkpoint
	// bracket is verified even when a zeroing rule applies, and so the zero
	// clamp lives in the arithmetic rather than in any rule ordering.
	remaining, err := c.remainingAt(captureTime)
	if err != nil {
		return nil, err
	}
	switch {
	case captureTime >= now:
		return new(uint256.Int), nil
	case now-captureTime > c.params.EpochDuration:
		return new(uint256.Int), nil
	case captureTime < c.ledger.LatestSlashedCapture():
		return new(uint256.Int), nil
	default:
		return remaining, nil
	}
}

// ExpectedExecution returns the amount executing [req] at [now] must move:
// the requested amount, capped by the capture's remaining slashable stake.
func (c *Calculator) ExpectedExecution(req Request, now uint64) (*uint256.Int, error) {
	slashable, err := c.SlashableStake(req.CaptureTime, now)
	if err != nil {
		return nil, err
	}
	if req.Amount.Lt(slashable) {
		return req.Amount.Clone(), nil
	}
	return slashable, nil
}

// remainingAt is the slashing budget left for captures at [captureTime].
// Slashes executed after the capture consume it; the checkpoint at the
// capture hands back everything executed before it.
func (c *Calculator) remainingAt(captureTime uint64) (*uint256.Int, error) {
	cumulativeAt, err := c.ledger.CumulativeSlashAt(captureTime)
	if err != nil {
		return nil, err
	}
	budget := new(uint256.Int).Add(c.params.NetworkCapacity, cumulativeAt)
	cumulativeNow := c.ledger.CumulativeSlash()
	if budget.Lt(cumulativeNow) {
		return new(uint256.Int), nil
	}
	return budget.Sub(budget, cumulativeNow), nil
}
