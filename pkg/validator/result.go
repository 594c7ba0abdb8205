// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validator

import (
	"time"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/header"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

// Status represents the overall diagnostic outcome.
type Status string

const (
	// StatusPass indicates every failing rule was satisfied. Damaged parts
	// may still have been reported.
	StatusPass Status = "pass"

	// StatusFail indicates a missing field or missing part stopped the run.
	StatusFail Status = "fail"
)

// Stage identifies one of the diagnostic stages.
type Stage string

const (
	// StageFields checks that year, make and model are present.
	StageFields Stage = "fields"

	// StageParts checks required part quantities.
	StageParts Stage = "parts"

	// StageConditions reports parts that are not in acceptable condition.
	StageConditions Stage = "conditions"
)

// FindingKind classifies a single diagnostic finding.
type FindingKind string

const (
	// FindingMissingField is an absent year, make or model. Subject is the
	// field label.
	FindingMissingField FindingKind = "missing-field"
	// FindingMissingPart is a required category below its minimum count.
	// Subject is the part type and Detail the shortfall.
	FindingMissingPart FindingKind = "missing-part"
	// FindingDamagedPart is a part whose condition is not acceptable.
	// Subject is the part type and Detail the condition, or "null" when unset.
	FindingDamagedPart FindingKind = "damaged-part"
)

// Failure labels printed after a failing stage.
const (
	FailedForDataField = "Data Field"
	FailedForParts     = "Parts"
)

// DiagnosticResult is the structured outcome of one diagnostic run.
type DiagnosticResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"runId"`

	// Source is the path or URI the vehicle was loaded from, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Vehicle identifies the vehicle that was diagnosed.
	Vehicle VehicleRef `json:"vehicle" yaml:"vehicle"`

	// Status is pass or fail.
	Status Status `json:"status" yaml:"status"`

	// FailedFor is the failure label, empty on pass.
	FailedFor string `json:"failedFor,omitempty" yaml:"failedFor,omitempty"`

	// Findings lists every reported problem in the order it was printed.
	Findings []Finding `json:"findings" yaml:"findings"`

	// Summary contains aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// Output is the console transcript, one entry per printed line.
	Output []string `json:"output,omitempty" yaml:"output,omitempty"`
}

// VehicleRef carries the identifying fields of a vehicle.
type VehicleRef struct {
	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
	Make  string `json:"make,omitempty" yaml:"make,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	Parts int    `json:"parts" yaml:"parts"`
}

// Finding is a single reported problem.
type Finding struct {
	Stage Stage       `json:"stage" yaml:"stage"`
	Kind  FindingKind `json:"kind" yaml:"kind"`

	// Subject is the field label or part category.
	Subject string `json:"subject" yaml:"subject"`

	// Detail is the missing count or the reported condition.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// Message is the exact console line.
	Message string `json:"message" yaml:"message"`
}

// Summary contains aggregate statistics about the run.
type Summary struct {
	MissingFields int `json:"missingFields" yaml:"missingFields"`
	MissingParts  int `json:"missingParts" yaml:"missingParts"`
	DamagedParts  int `json:"damagedParts" yaml:"damagedParts"`

	// StagesRun lists the stages that executed, in order.
	StagesRun []Stage `json:"stagesRun" yaml:"stagesRun"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewDiagnosticResult creates a passing result for v with initialized slices.
func NewDiagnosticResult(runID string, v *vehicle.Vehicle) *DiagnosticResult {
	r := &DiagnosticResult{
		RunID:    runID,
		Status:   StatusPass,
		Findings: make([]Finding, 0),
		Summary: Summary{
			StagesRun: make([]Stage, 0, 3),
		},
	}
	if v != nil {
		r.Vehicle = VehicleRef{Year: v.Year, Make: v.Make, Model: v.Model, Parts: len(v.Parts)}
	}
	return r
}

// Passed reports whether the run passed.
func (r *DiagnosticResult) Passed() bool {
	return r != nil && r.Status == StatusPass
}

// ExitCode maps the outcome to a process exit status: 0 for pass, 1 otherwise.
func (r *DiagnosticResult) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 1
}

func (r *DiagnosticResult) add(stage Stage, kind FindingKind, subject, detail, message string) {
	r.Findings = append(r.Findings, Finding{
		Stage:   stage,
		Kind:    kind,
		Subject: subject,
		Detail:  detail,
		Message: message,
	})
	switch kind {
	case FindingMissingField:
		r.Summary.MissingFields++
	case FindingMissingPart:
		r.Summary.MissingParts++
	case FindingDamagedPart:
		r.Summary.DamagedParts++
	}
}

// fail marks the result failed for label. The first label wins.
func (r *DiagnosticResult) fail(label string) {
	if r.Status == StatusFail {
		return
	}
	r.Status = StatusFail
	r.FailedFor = label
}
