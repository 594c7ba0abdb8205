/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/serializer"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/validator"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

// DefaultInput is read when --input is not set.
const DefaultInput = "SampleCar.xml"

func diagnoseCmd() *cli.Command {
	return &cli.Command{
		Name:                  "diagnose",
		EnableShellCompletion: true,
		Usage:                 "Run diagnostics on a vehicle document",
		Description: `Load a vehicle document and run the field, parts and condition checks.

Diagnostic lines are printed to stdout as each stage runs. The command exits
with status 1 when a field or part is missing, and 0 otherwise.

The input format is detected from the file extension (.xml, .json, .yaml).

# Examples

Diagnose the sample vehicle in the current directory:
  cardiag diagnose

Running cardiag with no command does the same.

Diagnose a vehicle stored in a ConfigMap:
  cardiag diagnose --input cm://garage/civic

Write the structured result to a file:
  cardiag diagnose -i car.yaml -o result.json -t json`,
		Flags:  diagnoseFlags(),
		Action: runDiagnose,
	}
}

// runDiagnose backs both "cardiag diagnose" and a bare "cardiag".
func runDiagnose(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")

	var outFormat serializer.Format
	if output != "" {
		f, err := parseOutputFormat(cmd)
		if err != nil {
			return err
		}
		outFormat = f
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CLIDiagnoseTimeout)
	defer cancel()

	input := cmd.String("input")
	kubeconfig := cmd.String("kubeconfig")

	slog.Info("loading vehicle", "uri", input)

	car, err := serializer.FromFileWithKubeconfig[vehicle.Vehicle](input, kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load vehicle from %q: %w", input, err)
	}

	v := validator.New(
		validator.WithVersion(version),
		validator.WithOutput(cmd.Root().Writer),
	)

	result, err := v.Run(ctx, car)
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}
	result.Source = input

	if output != "" {
		if err := writeResult(ctx, result, outFormat, output, kubeconfig); err != nil {
			return err
		}
	}

	if result.ExitCode() != 0 {
		return ErrValidationFailed
	}
	return nil
}

func writeResult(ctx context.Context, result *validator.DiagnosticResult, format serializer.Format, output, kubeconfig string) error {
	ser := serializer.NewFileWriterOrStdout(format, output,
		serializer.WithConfigMapKubeconfig(kubeconfig))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, result); err != nil {
		return fmt.Errorf("failed to serialize diagnostic result: %w", err)
	}

	slog.Info("diagnostic result written", "output", output, "format", format)
	return nil
}
