/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

// Console line templates.
const (
	missingFieldFormat = "Missing field Detected: %s"
	missingPartFormat  = "Missing Part(s) Detected: %s - Count: %d"
	damagedPartFormat  = "Damaged Part Detected: %s - Condition: %s"
	failedForFormat    = "Validation on car failed for: %s"
)

// Reporter prints diagnostic lines. Each method prints exactly one line and
// returns it, or returns a CONTRACT_VIOLATION error and prints nothing.
//
// A Reporter is not safe for concurrent use.
type Reporter struct {
	out   io.Writer
	title cases.Caser
}

// NewReporter returns a Reporter writing to out, or to stdout when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:   out,
		title: cases.Title(language.English),
	}
}

// FieldLabel converts a field name such as "year" into its display label.
func (r *Reporter) FieldLabel(name string) string {
	return r.title.String(strings.TrimSpace(name))
}

// MissingField reports an absent identifying field.
func (r *Reporter) MissingField(field string) (string, error) {
	if strings.TrimSpace(field) == "" {
		return "", errors.New(errors.ErrCodeContractViolation, "missing field label must not be empty")
	}
	return r.println(fmt.Sprintf(missingFieldFormat, field))
}

// MissingPart reports a shortfall of count parts of category t.
func (r *Reporter) MissingPart(t vehicle.PartType, count int) (string, error) {
	if !t.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeContractViolation,
			"missing part category must be a known part type",
			map[string]any{"type": t.String()})
	}
	if count <= 0 {
		return "", errors.NewWithContext(errors.ErrCodeContractViolation,
			"missing part count must be positive",
			map[string]any{"type": t.String(), "count": count})
	}
	return r.println(fmt.Sprintf(missingPartFormat, t, count))
}

// DamagedPart reports a part whose condition is not acceptable.
// An unset condition is printed as "null".
func (r *Reporter) DamagedPart(t vehicle.PartType, condition vehicle.ConditionType) (string, error) {
	if !t.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeContractViolation,
			"damaged part category must be a known part type",
			map[string]any{"type": t.String()})
	}
	return r.println(fmt.Sprintf(damagedPartFormat, t, condition))
}

// FailedFor reports that the run failed for label.
func (r *Reporter) FailedFor(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", errors.New(errors.ErrCodeContractViolation, "failure label must not be empty")
	}
	return r.println(fmt.Sprintf(failedForFormat, label))
}

func (r *Reporter) println(line string) (string, error) {
	if _, err := fmt.Fprintln(r.out, line); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write diagnostic output", err)
	}
	return line, nil
}
