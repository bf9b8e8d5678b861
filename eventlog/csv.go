// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eventlog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"
)

var (
	_ Sink = (*csvSink)(nil)

	csvHeader = []string{
		"sequence",
		"step",
		"action",
		"accepted",
		"time",
		"slash_index",
		"capture_time",
		"amount",
	}
)

// csvSink writes one row per record. Appends from concurrent sequences are
// serialized; rows from different sequences interleave but stay whole.
type csvSink struct {
	lock   sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSV creates [path], truncating any existing file, and writes the header
// row.
func NewCSV(path string) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &csvSink{
		closer: f,
		writer: w,
	}, nil
}

func (s *csvSink) Append(r Record) error {
	amount := "0"
	if r.Amount != nil {
		amount = r.Amount.ToBig().String()
	}
	row := []string{
		strconv.FormatUint(r.Sequence, 10),
		strconv.FormatUint(r.Step, 10),
		r.Action,
		strconv.FormatBool(r.Accepted),
		strconv.FormatUint(r.Time, 10),
		strconv.FormatUint(r.SlashIndex, 10),
		strconv.FormatUint(r.CaptureTime, 10),
		amount,
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	return s.writer.Write(row)
}

func (s *csvSink) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.writer.Flush()
	return s.writer.Error()
}

func (s *csvSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		_ = s.closer.Close()
		return err
	}
	return s.closer.Close()
}
