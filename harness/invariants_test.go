// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/slashfuzz/model"
)

func checkerParams() model.Params {
	return model.Params{
		NetworkCapacity: uint256.NewInt(1000),
		VetoDuration:    100,
		EpochDuration:   1000,
		GenesisTime:     10_000,
	}
}

// recordSettled puts one fully settled slash into the ledger.
func recordSettled(t *testing.T, ledger *model.Ledger, captureTime, requestTime, execTime, amount uint64) {
	t.Helper()

	index := ledger.RecordRequest(captureTime, requestTime, uint256.NewInt(amount))
	require.NoError(t, ledger.RecordExecution(index, execTime, uint256.NewInt(amount)))
}

func TestCheckerEmptyHistory(t *testing.T) {
	ledger := model.NewLedger()
	require.NoError(t, NewChecker(checkerParams(), ledger).Check())
}

func TestCheckerAtCapacity(t *testing.T) {
	require := require.New(t)

	// Two settlements summing to exactly the capacity in the same second, on
	// all three bases at once. The bound is inclusive.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 5_000, 5_010, 5_100, 500)
	recordSettled(t, ledger, 5_000, 5_010, 5_100, 500)

	checker := NewChecker(checkerParams(), ledger)
	require.NoError(checker.Check())

	// Checking reads the ledger without changing it.
	require.NoError(checker.Check())
}

func TestCheckerCaptureWindowViolation(t *testing.T) {
	require := require.New(t)

	// Captures exactly one window apart, requests and settlements spread out.
	// The closed window anchored at the older capture holds both amounts.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 5_000, 5_010, 5_150, 600)
	recordSettled(t, ledger, 5_100, 5_310, 5_450, 600)

	err := NewChecker(checkerParams(), ledger).Check()
	var violation *ViolationError
	require.ErrorAs(err, &violation)
	require.Equal("invariant", violation.Action)
	require.Equal("capture-time window [5000, 5100] slash sum", violation.Cause)
	require.Equal("at most 1000", violation.Expected)
	require.Equal("1200", violation.Actual)
}

func TestCheckerWindowBoundary(t *testing.T) {
	require := require.New(t)

	// One second wider than the window on every base; no window holds both.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 5_000, 5_010, 5_150, 600)
	recordSettled(t, ledger, 5_101, 5_310, 5_450, 600)

	require.NoError(NewChecker(checkerParams(), ledger).Check())
}

func TestCheckerRequestWindowViolation(t *testing.T) {
	require := require.New(t)

	// Only the request times land inside one window.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 4_800, 5_010, 5_150, 600)
	recordSettled(t, ledger, 5_000, 5_060, 5_450, 600)

	err := NewChecker(checkerParams(), ledger).Check()
	var violation *ViolationError
	require.ErrorAs(err, &violation)
	require.Equal("request-time window [5010, 5110] slash sum", violation.Cause)
}

func TestCheckerExecutionWindowViolation(t *testing.T) {
	require := require.New(t)

	// Only the settlement times land inside one window.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 4_800, 5_010, 5_400, 600)
	recordSettled(t, ledger, 5_000, 5_310, 5_450, 600)

	err := NewChecker(checkerParams(), ledger).Check()
	var violation *ViolationError
	require.ErrorAs(err, &violation)
	require.Equal("execution-time window [5400, 5500] slash sum", violation.Cause)
}

func TestCheckerSingleOvershoot(t *testing.T) {
	require := require.New(t)

	// A single settlement above capacity trips the first base checked.
	ledger := model.NewLedger()
	recordSettled(t, ledger, 5_000, 5_010, 5_150, 1_001)

	err := NewChecker(checkerParams(), ledger).Check()
	var violation *ViolationError
	require.ErrorAs(err, &violation)
	require.Equal("capture-time window [5000, 5100] slash sum", violation.Cause)
	require.Equal("1001", violation.Actual)
}
