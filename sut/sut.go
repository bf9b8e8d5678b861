// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sut defines the capability a slashing implementation must expose to
// be driven by the fuzz harness.
package sut

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrRejected tags every rejection a correct implementation may answer with.
// Anything a System returns that does not unwrap to ErrRejected is treated as
// a failure of the run, not a behavior of the protocol.
var (
	ErrRejected = errors.New("rejected")

	ErrInsufficientSlash       = fmt.Errorf("%w: nothing to slash", ErrRejected)
	ErrInvalidCaptureTimestamp = fmt.Errorf("%w: invalid capture timestamp", ErrRejected)
	ErrOutOfBounds             = fmt.Errorf("%w: no request at slash index", ErrRejected)
	ErrAlreadyCompleted        = fmt.Errorf("%w: request already completed", ErrRejected)
	ErrVetoPeriodNotEnded      = fmt.Errorf("%w: veto period not ended", ErrRejected)
	ErrSlashPeriodEnded        = fmt.Errorf("%w: slash period ended", ErrRejected)
)

// System is a deployment of the veto-slashing protocol under test. All
// amounts are in base units; all times are chain time in seconds.
//
// Queries must not change state. RequestSlash and ExecuteSlash either take
// effect and return nil, or reject with an ErrRejected sentinel and leave
// state untouched.
type System interface {
	// Time returns the current chain time.
	Time() uint64

	// AdvanceTime moves chain time forward by [seconds].
	AdvanceTime(seconds uint64)

	// CumulativeSlash returns the total amount slashed so far.
	CumulativeSlash() *uint256.Int

	// CumulativeSlashAt returns the total amount that had been slashed as of
	// [t].
	CumulativeSlashAt(t uint64) *uint256.Int

	// SlashableStake returns how much of the stake captured at [captureTime]
	// can be slashed right now.
	SlashableStake(captureTime uint64) *uint256.Int

	// RequestSlash queues a slash of [amount] against the stake captured at
	// [captureTime] and returns the request's slash index.
	RequestSlash(amount *uint256.Int, captureTime uint64) (uint64, error)

	// ExecuteSlash settles the request at [slashIndex] once its veto period
	// has passed, returning the amount actually slashed. The settled amount
	// can be lower than the requested one.
	ExecuteSlash(slashIndex uint64) (*uint256.Int, error)
}

// Factory builds a fresh System for every sequence, so sequences never share
// protocol state.
type Factory interface {
	New() (System, error)
}
