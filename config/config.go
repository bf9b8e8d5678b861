// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/ava-labs/slashfuzz/harness"
	"github.com/ava-labs/slashfuzz/model"
)

const appName = "slashfuzz"

// Config is everything main needs to run.
type Config struct {
	Harness harness.Config

	// EventLogPath receives one CSV row per action; empty disables it.
	EventLogPath string

	LogLevel zapcore.Level

	// LogDir receives a rotated log file next to console output; empty
	// keeps console only.
	LogDir string

	// MetricsAddr serves prometheus metrics while the run is going; empty
	// disables the server.
	MetricsAddr string
}

// slashfuzzFlagSet returns the complete set of flags for slashfuzz
func slashfuzzFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)

	// config
	fs.String(ConfigFileKey, "", "Specifies a config file")

	// Run shape
	fs.Uint64(SequencesKey, 10, "Independent action sequences to run")
	fs.Uint64(StepsKey, 1000, "Actions per sequence")
	fs.Uint64(SeedKey, 0, "Master seed; sequence i draws from seed+i. 0 picks one from the current time")
	fs.Int(ParallelismKey, 1, "Sequences running at once")
	fs.Uint64(RequestWeightKey, 1, "Relative weight of the request-slash action")
	fs.Uint64(ExecuteWeightKey, 1, "Relative weight of the execute-slash action")
	fs.Float64(CaptureEdgeBiasKey, 0.05, "Probability a drawn capture time sits exactly on a range bound")
	fs.Float64(AmountEdgeBiasKey, 0.15, "Probability a drawn amount sits exactly on a range bound")

	// Protocol constants
	fs.Uint64(CapacityTokensKey, model.DefaultCapacityTokens, "Network-wide slashable stake, in whole tokens")
	fs.Duration(VetoDurationKey, time.Duration(model.DefaultVetoDuration)*time.Second, "Request-to-execution delay; also the invariant window")
	fs.Duration(EpochDurationKey, time.Duration(model.DefaultEpochDuration)*time.Second, "Capture-timestamp lifetime")
	fs.Uint64(GenesisTimeKey, model.DefaultGenesisTime, "Chain time at the start of every sequence, in seconds")

	// Outputs
	fs.String(EventLogKey, "", "CSV file receiving one row per action. Empty disables the event log")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {debug, info, warn, error, dpanic, panic, fatal}")
	fs.String(LogDirKey, "", "Directory for the rotated log file. Empty logs to console only")
	fs.String(MetricsAddrKey, "", "Address serving prometheus metrics, e.g. 127.0.0.1:9100. Empty disables the server")

	return fs
}

// getViper returns the viper environment from parsing [args] and any config
// file they reference
func getViper(args []string) (*viper.Viper, error) {
	v := viper.New()
	fs := slashfuzzFlagSet()
	pf := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	pf.AddGoFlagSet(fs)
	if err := pf.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(pf); err != nil {
		return nil, err
	}
	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// getConfigFromViper sets attributes on a Config based on the values defined
// in the [viper] environment
func getConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Harness: harness.Config{
			Params: model.Params{
				NetworkCapacity: model.Tokens(v.GetUint64(CapacityTokensKey)),
				VetoDuration:    uint64(v.GetDuration(VetoDurationKey) / time.Second),
				EpochDuration:   uint64(v.GetDuration(EpochDurationKey) / time.Second),
				GenesisTime:     v.GetUint64(GenesisTimeKey),
			},
			Sequences:       v.GetUint64(SequencesKey),
			Steps:           v.GetUint64(StepsKey),
			Seed:            v.GetUint64(SeedKey),
			Parallelism:     v.GetInt(ParallelismKey),
			RequestWeight:   v.GetUint64(RequestWeightKey),
			ExecuteWeight:   v.GetUint64(ExecuteWeightKey),
			CaptureEdgeBias: v.GetFloat64(CaptureEdgeBiasKey),
			AmountEdgeBias:  v.GetFloat64(AmountEdgeBiasKey),
		},
		EventLogPath: os.ExpandEnv(v.GetString(EventLogKey)),
		LogDir:       os.ExpandEnv(v.GetString(LogDirKey)),
		MetricsAddr:  v.GetString(MetricsAddrKey),
	}
	if cfg.Harness.Seed == 0 {
		cfg.Harness.Seed = uint64(time.Now().UnixNano())
	}

	level, err := zapcore.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", LogLevelKey, err)
	}
	cfg.LogLevel = level

	return cfg, cfg.Harness.Verify()
}

// GetConfig parses [args] and any referenced config file into the app's
// configuration
func GetConfig(args []string) (Config, error) {
	v, err := getViper(args)
	if err != nil {
		return Config{}, err
	}
	return getConfigFromViper(v)
}
