// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "events.csv")
	sink, err := NewCSV(path)
	require.NoError(err)

	amount := new(uint256.Int).Mul(
		uint256.NewInt(123),
		new(uint256.Int).Lsh(uint256.NewInt(1), 64),
	)
	require.NoError(sink.Append(Record{
		Sequence:    3,
		Step:        17,
		Action:      "requestSlash",
		Accepted:    true,
		Time:        1_600_000_000,
		SlashIndex:  2,
		CaptureTime: 1_599_999_000,
		Amount:      amount,
	}))
	require.NoError(sink.Append(Record{
		Sequence: 3,
		Step:     18,
		Action:   "executeSlash",
	}))
	require.NoError(sink.Close())

	f, err := os.Open(path)
	require.NoError(err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(err)
	require.Len(rows, 3)

	require.Equal(csvHeader, rows[0])
	require.Equal([]string{
		"3", "17", "requestSlash", "true",
		"1600000000", "2", "1599999000",
		amount.ToBig().String(),
	}, rows[1])

	// A nil amount renders as zero.
	require.Equal([]string{
		"3", "18", "executeSlash", "false", "0", "0", "0", "0",
	}, rows[2])
}

func TestCSVConcurrentAppends(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "events.csv")
	sink, err := NewCSV(path)
	require.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(sequence uint64) {
			defer wg.Done()
			for step := uint64(0); step < 50; step++ {
				_ = sink.Append(Record{
					Sequence: sequence,
					Step:     step,
					Action:   "requestSlash",
					Amount:   uint256.NewInt(step),
				})
			}
		}(uint64(i))
	}
	wg.Wait()
	require.NoError(sink.Close())

	f, err := os.Open(path)
	require.NoError(err)
	defer f.Close()

	// Every row must parse whole; interleaving across sequences is fine.
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(err)
	require.Len(rows, 1+8*50)
	for _, row := range rows {
		require.Len(row, len(csvHeader))
	}
}

func TestCSVCreateFailure(t *testing.T) {
	_, err := NewCSV(filepath.Join(t.TempDir(), "missing", "events.csv"))
	require.Error(t, err)
}

func TestNoopSink(t *testing.T) {
	require := require.New(t)

	var sink Sink = NoopSink{}
	require.NoError(sink.Append(Record{}))
	require.NoError(sink.Flush())
	require.NoError(sink.Close())
}
