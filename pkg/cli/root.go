/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/logging"
)

const (
	name           = "cardiag"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// ErrValidationFailed is returned when a vehicle fails a diagnostic stage.
// The reason has already been printed, so Execute only sets the exit status.
var ErrValidationFailed = errors.New("vehicle failed validation")

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		if !errors.Is(err, ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Vehicle diagnostics",
		Description: `cardiag checks a vehicle document in three stages:

  1. Identifying fields: year, make and model must be present.
  2. Parts: at least one ENGINE, ELECTRICAL, FUEL_FILTER and OIL_FILTER
     and four TIREs must be listed.
  3. Condition: any part not in NEW, GOOD or WORN condition is reported.

A missing field or part fails the run with exit status 1. Damaged parts are
reported but never fail the run.

With no command, cardiag runs diagnose on ` + DefaultInput + ` in the current
directory.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Shorthand for --log-level=debug",
			},
		}, diagnoseFlags()...),
		Before: initLogger,
		Action: runDiagnose,
		Commands: []*cli.Command{
			diagnoseCmd(),
		},
	}
}

// initLogger configures slog once flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	if cmd.Bool("debug") {
		logLevel = "debug"
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)

	return ctx, nil
}
