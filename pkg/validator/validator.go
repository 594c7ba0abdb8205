/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/header"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

const (
	// APIVersion is the API version for diagnostic results.
	APIVersion = "diagnostics.nvidia.com/v1alpha1"
)

// identifyingFields are checked in this order.
var identifyingFields = [...]string{"year", "make", "model"}

// Validator runs the diagnostic stages against a vehicle.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	output io.Writer
	runID  string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithOutput sets where console lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(v *Validator) {
		v.output = w
	}
}

// WithRunID fixes the run ID instead of generating a UUID per run.
func WithRunID(id string) Option {
	return func(v *Validator) {
		v.runID = id
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// run holds the state of a single diagnostic run.
type run struct {
	car      *vehicle.Vehicle
	result   *DiagnosticResult
	reporter *Reporter
}

// Run checks car in three stages: identifying fields, required part counts,
// then part conditions. A failing stage prints its failure line and stops
// the run. The condition stage only reports and never fails.
//
// The returned error is reserved for problems with the run itself: a nil
// vehicle, a canceled context, a broken output writer, or a part with an
// unknown category. Diagnostic failures are reported in the result.
func (v *Validator) Run(ctx context.Context, car *vehicle.Vehicle) (*DiagnosticResult, error) {
	start := time.Now()

	if err := car.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.DiagnosticRunTimeout)
	defer cancel()

	runID := v.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	result := NewDiagnosticResult(runID, car)
	result.Init(header.KindDiagnosticResult, APIVersion, v.Version)

	r := &run{
		car:      car,
		result:   result,
		reporter: NewReporter(v.output),
	}

	stages := []struct {
		stage Stage
		check func() error
	}{
		{StageFields, r.checkFields},
		{StageParts, r.checkParts},
		{StageConditions, r.checkConditions},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			code := errors.ErrCodeUnavailable
			if stderrors.Is(err, context.DeadlineExceeded) {
				code = errors.ErrCodeTimeout
			}
			return nil, errors.WrapWithContext(code, "diagnostic run interrupted", err,
				map[string]any{"stage": s.stage, "runId": runID})
		}

		slog.Debug("running diagnostic stage", "stage", s.stage, "runId", runID)
		result.Summary.StagesRun = append(result.Summary.StagesRun, s.stage)

		if err := s.check(); err != nil {
			return nil, err
		}
		if !result.Passed() {
			break
		}
	}

	result.Summary.Duration = time.Since(start)
	recordRun(result)

	slog.Debug("diagnostics completed",
		"runId", runID,
		"status", result.Status,
		"failedFor", result.FailedFor,
		"missingFields", result.Summary.MissingFields,
		"missingParts", result.Summary.MissingParts,
		"damagedParts", result.Summary.DamagedParts,
		"duration", result.Summary.Duration)

	return result, nil
}

// checkFields reports every absent identifying field, then fails with
// "Data Field" if any were absent.
func (r *run) checkFields() error {
	values := map[string]string{
		"year":  r.car.Year,
		"make":  r.car.Make,
		"model": r.car.Model,
	}

	missing := false
	for _, name := range identifyingFields {
		if values[name] != "" {
			continue
		}
		missing = true
		label := r.reporter.FieldLabel(name)
		line, err := r.reporter.MissingField(label)
		if err != nil {
			return err
		}
		r.record(StageFields, FindingMissingField, label, "", line)
	}

	return r.exitIfNotValid(missing, FailedForDataField)
}

// checkParts reports every under-supplied category, then fails with
// "Parts" if any were short.
func (r *run) checkParts() error {
	missing := r.car.MissingParts()
	for _, m := range missing {
		line, err := r.reporter.MissingPart(m.Type, m.Count)
		if err != nil {
			return err
		}
		r.record(StageParts, FindingMissingPart, m.Type.String(), strconv.Itoa(m.Count), line)
	}

	return r.exitIfNotValid(len(missing) > 0, FailedForParts)
}

// checkConditions reports parts that are not in acceptable condition.
// It never fails the run.
func (r *run) checkConditions() error {
	for _, p := range r.car.Parts {
		if p.Condition.IsAcceptable() {
			continue
		}
		line, err := r.reporter.DamagedPart(p.Type, p.Condition)
		if err != nil {
			return err
		}
		r.record(StageConditions, FindingDamagedPart, p.Type.String(), p.Condition.String(), line)
	}
	return nil
}

// exitIfNotValid prints the failure line and fails the run when invalid is set.
func (r *run) exitIfNotValid(invalid bool, label string) error {
	if !invalid {
		return nil
	}
	line, err := r.reporter.FailedFor(label)
	if err != nil {
		return err
	}
	r.result.Output = append(r.result.Output, line)
	r.result.fail(label)
	return nil
}

func (r *run) record(stage Stage, kind FindingKind, subject, detail, line string) {
	r.result.add(stage, kind, subject, detail, line)
	r.result.Output = append(r.result.Output, line)
}
