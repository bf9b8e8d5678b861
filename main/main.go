// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/slashfuzz/config"
	"github.com/ava-labs/slashfuzz/eventlog"
	"github.com/ava-labs/slashfuzz/harness"
	"github.com/ava-labs/slashfuzz/sut/memslasher"
)

// main is the primary entry point to slashfuzz.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		return 1
	}

	log, closeLog := newLogger(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, log, registry, cfg.MetricsAddr)
	}

	var sink eventlog.Sink = eventlog.NoopSink{}
	if cfg.EventLogPath != "" {
		csvSink, err := eventlog.NewCSV(cfg.EventLogPath)
		if err != nil {
			log.Error("couldn't open event log",
				zap.String("path", cfg.EventLogPath),
				zap.Error(err),
			)
			return 1
		}
		sink = csvSink
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("couldn't close event log",
				zap.Error(err),
			)
		}
	}()

	driver, err := harness.New(
		cfg.Harness,
		log,
		memslasher.Factory{Params: cfg.Harness.Params},
		sink,
		registry,
	)
	if err != nil {
		log.Error("couldn't construct driver",
			zap.Error(err),
		)
		return 1
	}

	if _, err := driver.Run(ctx); err != nil {
		// Run already logged the failure with its replay coordinates.
		return 1
	}
	return 0
}

// newLogger builds the console logger, teeing into a rotated file when a log
// directory is configured.
func newLogger(cfg config.Config) (*zap.Logger, func()) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		cfg.LogLevel,
	)
	core := consoleCore
	if cfg.LogDir != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "slashfuzz.log"),
			MaxSize:    8, // MB
			MaxBackups: 7,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(fileWriter),
			cfg.LogLevel,
		)
		core = zapcore.NewTee(consoleCore, fileCore)
	}

	log := zap.New(core)
	return log, func() {
		_ = log.Sync()
	}
}

// serveMetrics exposes [registry] over HTTP until [ctx] is cancelled.
func serveMetrics(
	ctx context.Context,
	log *zap.Logger,
	registry *prometheus.Registry,
	addr string,
) {
	mux := http.NewServeMux()
	mux.Handle("/ext/metrics", promhttp.HandlerFor(
		registry,
		promhttp.HandlerOpts{Registry: registry},
	))
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			log.Error("metrics server shutdown",
				zap.Error(err),
			)
		}
	}()
	go func() {
		log.Info("serving metrics",
			zap.String("addr", addr),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server closed unexpectedly",
				zap.Error(err),
			)
		}
	}()
}
