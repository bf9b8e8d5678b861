// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"fmt"

	"github.com/holiman/uint256"
)

// ViolationError reports the system and the shadow model disagreeing. It is
// always fatal to the run and carries everything needed to replay the failing
// step: rerun with [Seed] on the sequence's system and the same parameters,
// and step [Step] fails again.
type ViolationError struct {
	Seed     uint64
	Sequence uint64
	Step     uint64
	Action   string

	// Cause names the disagreeing quantity or outcome.
	Cause    string
	Expected string
	Actual   string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf(
		"violation in %s at sequence %d step %d (seed %d): %s: expected %s, got %s",
		e.Action, e.Sequence, e.Step, e.Seed, e.Cause, e.Expected, e.Actual,
	)
}

// decString renders amounts for violation reports and logs. A nil amount is
// itself a reportable answer, not a crash.
func decString(x *uint256.Int) string {
	if x == nil {
		return "<nil>"
	}
	return x.ToBig().String()
}
