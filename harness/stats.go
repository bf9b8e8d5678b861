// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

// Stats counts what a run did. The zero value is ready to use; sequences
// accumulate their own copy and the driver merges them.
type Stats struct {
	Sequences          uint64
	Steps              uint64
	RequestsAccepted   uint64
	RequestsRejected   uint64
	ExecutionsAccepted uint64
	ExecutionsRejected uint64
	InvariantChecks    uint64
}

// Merge folds [other] into s.
func (s *Stats) Merge(other Stats) {
	s.Sequences += other.Sequences
	s.Steps += other.Steps
	s.RequestsAccepted += other.RequestsAccepted
	s.RequestsRejected += other.RequestsRejected
	s.ExecutionsAccepted += other.ExecutionsAccepted
	s.ExecutionsRejected += other.ExecutionsRejected
	s.InvariantChecks += other.InvariantChecks
}
