/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/serializer"
)

// diagnoseFlags returns fresh flag instances. The root command and the
// diagnose subcommand each need their own, since a flag holds its parsed value.
func diagnoseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Value:   DefaultInput,
			Usage: `Path/URI to the vehicle document.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage: `Destination for the structured diagnostic result.
	Supports: file paths or ConfigMap URIs (cm://namespace/name). Omit to skip.`,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Value:   string(serializer.FormatYAML),
			Usage: fmt.Sprintf("Format of the structured result (supported values: %s)",
				strings.Join(serializer.SupportedFormats(), ", ")),
		},
		&cli.StringFlag{
			Name:    "kubeconfig",
			Aliases: []string{"k"},
			Usage:   "Path to kubeconfig used for ConfigMap URIs (defaults to KUBECONFIG or in-cluster config)",
			Sources: cli.EnvVars("KUBECONFIG"),
		},
	}
}

// parseOutputFormat returns the writable format named by --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() || !f.CanWrite() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}
