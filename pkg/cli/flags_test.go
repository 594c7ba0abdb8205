/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{format: "yaml", want: serializer.FormatYAML},
		{format: "JSON", want: serializer.FormatJSON},
		{format: " table ", want: serializer.FormatTable},
		// vehicle documents can be read as XML but results are never written as XML
		{format: "xml", wantErr: true},
		{format: "csv", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: diagnoseFlags(),
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Fatalf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
					}
					if tt.wantErr && !strings.Contains(err.Error(), "supported values") {
						t.Errorf("error should list supported values: %v", err)
					}
					if got != tt.want {
						t.Errorf("parseOutputFormat() = %q, want %q", got, tt.want)
					}
					return nil
				},
			}
			if err := cmd.Run(context.Background(), []string{name, "--format", tt.format}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestDiagnoseFlags(t *testing.T) {
	a, b := diagnoseFlags(), diagnoseFlags()
	if len(a) != len(b) {
		t.Fatalf("flag sets differ in length: %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] == b[i] {
			t.Errorf("flag %v is shared between commands", a[i].Names())
		}
	}

	input, ok := a[0].(*cli.StringFlag)
	if !ok || input.Name != "input" {
		t.Fatalf("first flag = %v, want --input", a[0].Names())
	}
	if input.Value != DefaultInput {
		t.Errorf("--input default = %q, want %q", input.Value, DefaultInput)
	}
}
