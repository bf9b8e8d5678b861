// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"errors"

	"github.com/holiman/uint256"
)

const (
	day = 24 * 60 * 60

	// DefaultVetoDuration is the delay between requesting a slash and the
	// earliest moment it can be executed. It is also the width of the sliding
	// windows the invariant checks sum over.
	DefaultVetoDuration uint64 = 3 * day

	// DefaultEpochDuration bounds the lifetime of a capture timestamp: a
	// request whose capture is older than this can no longer be executed.
	DefaultEpochDuration uint64 = 14 * day

	// DefaultGenesisTime keeps early capture-window math far away from zero.
	DefaultGenesisTime uint64 = 1_600_000_000

	// DefaultCapacityTokens is the default network-wide slashable stake in
	// whole tokens.
	DefaultCapacityTokens uint64 = 100_000

	// TokenWei is the number of base units in one token.
	TokenWei uint64 = 1e18
)

var (
	errZeroCapacity    = errors.New("network capacity is zero")
	errZeroVeto        = errors.New("veto duration is zero")
	errVetoTooShort    = errors.New("veto duration must be at least 2 seconds")
	errEpochTooShort   = errors.New("epoch duration must exceed veto duration by at least 2 seconds")
	errGenesisTooEarly = errors.New("genesis time must exceed epoch duration")
)

// Params fixes the protocol constants a fuzzed deployment runs under.
type Params struct {
	// NetworkCapacity is the total slashable stake, in base units.
	NetworkCapacity *uint256.Int

	// VetoDuration is the request-to-execution delay, in seconds.
	VetoDuration uint64

	// EpochDuration is the capture-timestamp lifetime, in seconds. The
	// difference EpochDuration - VetoDuration is the window of past capture
	// timestamps a new request may reference.
	EpochDuration uint64

	// GenesisTime is the chain time at the start of a sequence, in seconds.
	GenesisTime uint64
}

// DefaultParams returns the production constants of the reference deployment.
func DefaultParams() Params {
	return Params{
		NetworkCapacity: Tokens(DefaultCapacityTokens),
		VetoDuration:    DefaultVetoDuration,
		EpochDuration:   DefaultEpochDuration,
		GenesisTime:     DefaultGenesisTime,
	}
}

// Tokens returns [amount] whole tokens in base units.
func Tokens(amount uint64) *uint256.Int {
	wei := new(uint256.Int).SetUint64(amount)
	return wei.Mul(wei, new(uint256.Int).SetUint64(TokenWei))
}

// CaptureWindow is how far behind current time a new request's capture
// timestamp may reach.
func (p Params) CaptureWindow() uint64 {
	return p.EpochDuration - p.VetoDuration
}

func (p Params) Verify() error {
	switch {
	case p.NetworkCapacity == nil || p.NetworkCapacity.IsZero():
		return errZeroCapacity
	case p.VetoDuration == 0:
		return errZeroVeto
	case p.VetoDuration < 2:
		// An execution pins the newest slashed capture to at most
		// now-VetoDuration; the next request needs a capture strictly newer
		// and still strictly in the past.
		return errVetoTooShort
	case p.EpochDuration < p.VetoDuration+2:
		// The look-back window [now-CaptureWindow+1, now-1] is empty unless
		// CaptureWindow is at least 2.
		return errEpochTooShort
	case p.GenesisTime <= p.EpochDuration:
		return errGenesisTooEarly
	default:
		return nil
	}
}
