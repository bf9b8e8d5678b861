// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package eventlog records every step a fuzz run takes, so a failing run can
// be read back action by action.
package eventlog

import "github.com/holiman/uint256"

// Record is one submitted action and how it went.
type Record struct {
	// Sequence and Step locate the action within the run.
	Sequence uint64
	Step     uint64

	// Action is the flow that ran, e.g. "requestSlash".
	Action string

	// Accepted is whether the system took the action, as opposed to
	// rejecting it. Both outcomes can be the expected one.
	Accepted bool

	// Time is the chain time when the action was submitted.
	Time uint64

	// SlashIndex is the request index the action touched. For a rejected
	// request nothing was assigned and the value is meaningless.
	SlashIndex uint64

	// CaptureTime is the capture timestamp the action referenced.
	CaptureTime uint64

	// Amount is the submitted amount for a request, or the settled amount
	// for an execution. Nil when the action moved nothing.
	Amount *uint256.Int
}

// Sink consumes records in the order they are appended. Implementations must
// be safe for concurrent appends; sequences running in parallel share one
// sink.
type Sink interface {
	Append(Record) error

	// Flush forces buffered records out, so a crash loses nothing earlier.
	Flush() error

	Close() error
}

var _ Sink = NoopSink{}

// NoopSink drops every record.
type NoopSink struct{}

func (NoopSink) Append(Record) error {
	return nil
}

func (NoopSink) Flush() error {
	return nil
}

func (NoopSink) Close() error {
	return nil
}
