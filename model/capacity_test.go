// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		NetworkCapacity: uint256.NewInt(1000),
		VetoDuration:    100,
		EpochDuration:   1000,
		GenesisTime:     10_000,
	}
}

func TestSlashableStakeFreshLedger(t *testing.T) {
	params := testParams()
	calc := NewCalculator(params, NewLedger())

	tests := []struct {
		name        string
		captureTime uint64
		now         uint64
		expected    uint64
	}{
		{
			name:        "one second old",
			captureTime: 10_099,
			now:         10_100,
			expected:    1000,
		},
		{
			name:        "capture at now",
			captureTime: 10_100,
			now:         10_100,
			expected:    0,
		},
		{
			name:        "capture in the future",
			captureTime: 10_101,
			now:         10_100,
			expected:    0,
		},
		{
			name:        "exactly one epoch old",
			captureTime: 10_100,
			now:         11_100,
			expected:    1000,
		},
		{
			name:        "one second past the epoch",
			captureTime: 10_100,
			now:         11_101,
			expected:    0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			got, err := calc.SlashableStake(test.captureTime, test.now)
			require.NoError(err)
			require.Equal(test.expected, got.Uint64())
		})
	}
}

func TestSlashableStakeAfterExecution(t *testing.T) {
	require := require.New(t)

	params := testParams()
	ledger := NewLedger()
	calc := NewCalculator(params, ledger)

	// 400 units slashed at 10_500 against the capture at 10_000.
	ledger.RecordRequest(10_000, 10_400, uint256.NewInt(400))
	require.NoError(ledger.RecordExecution(0, 10_500, uint256.NewInt(400)))

	// A capture before the execution has had 400 slashed since it.
	got, err := calc.SlashableStake(10_400, 10_600)
	require.NoError(err)
	require.Equal(uint64(600), got.Uint64())

	// The slashed capture itself is still usable; only strictly older captures
	// go stale.
	got, err = calc.SlashableStake(10_000, 10_600)
	require.NoError(err)
	require.Equal(uint64(600), got.Uint64())

	got, err = calc.SlashableStake(9_999, 10_600)
	require.NoError(err)
	require.True(got.IsZero())

	// A capture after the execution sees nothing slashed since it.
	got, err = calc.SlashableStake(10_900, 11_000)
	require.NoError(err)
	require.Equal(uint64(1000), got.Uint64())
}

func TestSlashableStakeOvercommitClamp(t *testing.T) {
	require := require.New(t)

	params := testParams()
	ledger := NewLedger()
	calc := NewCalculator(params, ledger)

	// Two requests against the same capture together slash more than the
	// budget the capture's checkpoint hands back. The arithmetic must clamp at
	// zero instead of wrapping.
	ledger.RecordRequest(10_000, 10_400, uint256.NewInt(800))
	ledger.RecordRequest(10_000, 10_400, uint256.NewInt(800))
	require.NoError(ledger.RecordExecution(0, 10_500, uint256.NewInt(800)))
	require.NoError(ledger.RecordExecution(1, 10_700, uint256.NewInt(800)))

	got, err := calc.SlashableStake(10_000, 10_800)
	require.NoError(err)
	require.True(got.IsZero())
}

func TestSlashableStakeBracketViolation(t *testing.T) {
	require := require.New(t)

	params := testParams()
	ledger := NewLedger()
	calc := NewCalculator(params, ledger)

	ledger.RecordRequest(10_000, 10_400, uint256.NewInt(10))
	ledger.RecordRequest(10_001, 10_400, uint256.NewInt(10))
	require.NoError(ledger.RecordExecution(0, 10_500, uint256.NewInt(10)))
	require.NoError(ledger.RecordExecution(1, 10_600, uint256.NewInt(10)))
	ledger.executions[0], ledger.executions[1] = ledger.executions[1], ledger.executions[0]

	// A corrupted history must surface, even for lookups a zeroing rule would
	// otherwise answer.
	_, err := calc.SlashableStake(10_550, 20_000)
	require.ErrorIs(err, ErrCheckpointOrder)
}

func TestExpectedExecution(t *testing.T) {
	require := require.New(t)

	params := testParams()
	ledger := NewLedger()
	calc := NewCalculator(params, ledger)

	ledger.RecordRequest(10_000, 10_400, uint256.NewInt(400))
	require.NoError(ledger.RecordExecution(0, 10_500, uint256.NewInt(400)))

	// Remaining slashable for the capture at 10_000 is 600.
	req := Request{
		CaptureTime: 10_000,
		RequestTime: 10_400,
		Amount:      uint256.NewInt(100),
	}
	got, err := calc.ExpectedExecution(req, 10_600)
	require.NoError(err)
	require.Equal(uint64(100), got.Uint64())

	req.Amount = uint256.NewInt(600)
	got, err = calc.ExpectedExecution(req, 10_600)
	require.NoError(err)
	require.Equal(uint64(600), got.Uint64())

	req.Amount = uint256.NewInt(9_999)
	got, err = calc.ExpectedExecution(req, 10_600)
	require.NoError(err)
	require.Equal(uint64(600), got.Uint64())

	// An expired capture executes nothing.
	got, err = calc.ExpectedExecution(req, 12_000)
	require.NoError(err)
	require.True(got.IsZero())
}
