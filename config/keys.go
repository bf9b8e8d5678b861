// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey      = "config-file"
	SequencesKey       = "sequences"
	StepsKey           = "steps"
	SeedKey            = "seed"
	ParallelismKey     = "parallelism"
	RequestWeightKey   = "request-weight"
	ExecuteWeightKey   = "execute-weight"
	CaptureEdgeBiasKey = "capture-edge-bias"
	AmountEdgeBiasKey  = "amount-edge-bias"
	CapacityTokensKey  = "capacity-tokens"
	VetoDurationKey    = "veto-duration"
	EpochDurationKey   = "epoch-duration"
	GenesisTimeKey     = "genesis-time"
	EventLogKey        = "event-log"
	LogLevelKey        = "log-level"
	LogDirKey          = "log-dir"
	MetricsAddrKey     = "metrics-addr"
)
