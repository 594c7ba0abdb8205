/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cderrors "github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/header"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

func parts(specs ...string) []vehicle.Part {
	out := make([]vehicle.Part, 0, len(specs))
	for _, s := range specs {
		typ, cond, _ := strings.Cut(s, ":")
		out = append(out, vehicle.Part{Type: vehicle.PartType(typ), Condition: vehicle.ConditionType(cond)})
	}
	return out
}

func completeCar() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		Year:  "1990",
		Make:  "Honda",
		Model: "Civic",
		Parts: parts(
			"ENGINE:NEW",
			"ELECTRICAL:GOOD",
			"FUEL_FILTER:WORN",
			"OIL_FILTER:GOOD",
			"TIRE:NEW", "TIRE:NEW", "TIRE:NEW", "TIRE:NEW",
		),
	}
}

func runCar(t *testing.T, car *vehicle.Vehicle) (*DiagnosticResult, string) {
	t.Helper()
	var out bytes.Buffer
	v := New(WithVersion("test"), WithOutput(&out), WithRunID("run-1"))
	result, err := v.Run(context.Background(), car)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result, out.String()
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestValidator_Run(t *testing.T) {
	tests := []struct {
		name       string
		car        func() *vehicle.Vehicle
		wantStatus Status
		wantFailed string
		wantExit   int
		wantLines  []string
		wantStages []Stage
	}{
		{
			name:       "complete vehicle passes silently",
			car:        completeCar,
			wantStatus: StatusPass,
			wantExit:   0,
			wantStages: []Stage{StageFields, StageParts, StageConditions},
		},
		{
			name: "missing make and model",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Make = ""
				c.Model = ""
				return c
			},
			wantStatus: StatusFail,
			wantFailed: FailedForDataField,
			wantExit:   1,
			wantLines: []string{
				"Missing field Detected: Make",
				"Missing field Detected: Model",
				"Validation on car failed for: Data Field",
			},
			wantStages: []Stage{StageFields},
		},
		{
			name: "all fields missing are each named once",
			car: func() *vehicle.Vehicle {
				return &vehicle.Vehicle{Parts: completeCar().Parts}
			},
			wantStatus: StatusFail,
			wantFailed: FailedForDataField,
			wantExit:   1,
			wantLines: []string{
				"Missing field Detected: Year",
				"Missing field Detected: Make",
				"Missing field Detected: Model",
				"Validation on car failed for: Data Field",
			},
			wantStages: []Stage{StageFields},
		},
		{
			name: "two tires and one engine missing",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Parts = parts("ELECTRICAL:GOOD", "FUEL_FILTER:GOOD", "OIL_FILTER:GOOD", "TIRE:NEW", "TIRE:BROKEN")
				return c
			},
			wantStatus: StatusFail,
			wantFailed: FailedForParts,
			wantExit:   1,
			wantLines: []string{
				"Missing Part(s) Detected: ENGINE - Count: 1",
				"Missing Part(s) Detected: TIRE - Count: 2",
				"Validation on car failed for: Parts",
			},
			wantStages: []Stage{StageFields, StageParts},
		},
		{
			name: "no parts at all",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Parts = nil
				return c
			},
			wantStatus: StatusFail,
			wantFailed: FailedForParts,
			wantExit:   1,
			wantLines: []string{
				"Missing Part(s) Detected: ENGINE - Count: 1",
				"Missing Part(s) Detected: ELECTRICAL - Count: 1",
				"Missing Part(s) Detected: FUEL_FILTER - Count: 1",
				"Missing Part(s) Detected: OIL_FILTER - Count: 1",
				"Missing Part(s) Detected: TIRE - Count: 4",
				"Validation on car failed for: Parts",
			},
			wantStages: []Stage{StageFields, StageParts},
		},
		{
			name: "missing field stops before parts are checked",
			car: func() *vehicle.Vehicle {
				return &vehicle.Vehicle{Make: "Honda", Model: "Civic"}
			},
			wantStatus: StatusFail,
			wantFailed: FailedForDataField,
			wantExit:   1,
			wantLines: []string{
				"Missing field Detected: Year",
				"Validation on car failed for: Data Field",
			},
			wantStages: []Stage{StageFields},
		},
		{
			name: "broken and absent conditions are reported but pass",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Parts[0].Condition = vehicle.ConditionBroken
				c.Parts[4].Condition = ""
				return c
			},
			wantStatus: StatusPass,
			wantExit:   0,
			wantLines: []string{
				"Damaged Part Detected: ENGINE - Condition: BROKEN",
				"Damaged Part Detected: TIRE - Condition: null",
			},
			wantStages: []Stage{StageFields, StageParts, StageConditions},
		},
		{
			name: "unrecognized condition is reported as read",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Parts[3].Condition = "FLAT"
				return c
			},
			wantStatus: StatusPass,
			wantExit:   0,
			wantLines: []string{
				"Damaged Part Detected: OIL_FILTER - Condition: FLAT",
			},
			wantStages: []Stage{StageFields, StageParts, StageConditions},
		},
		{
			name: "surplus parts do not cover a missing category",
			car: func() *vehicle.Vehicle {
				c := completeCar()
				c.Parts = append(c.Parts[1:], parts("TIRE:NEW", "TIRE:NEW")...)
				return c
			},
			wantStatus: StatusFail,
			wantFailed: FailedForParts,
			wantExit:   1,
			wantLines: []string{
				"Missing Part(s) Detected: ENGINE - Count: 1",
				"Validation on car failed for: Parts",
			},
			wantStages: []Stage{StageFields, StageParts},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, out := runCar(t, tt.car())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantFailed, result.FailedFor)
			assert.Equal(t, tt.wantExit, result.ExitCode())
			assert.Equal(t, tt.wantLines, lines(out))
			assert.Equal(t, tt.wantStages, result.Summary.StagesRun)

			if tt.wantLines == nil {
				assert.Empty(t, result.Output)
			} else {
				assert.Equal(t, tt.wantLines, result.Output)
			}
		})
	}
}

// Damaged parts are reported without failing, unlike the field and part
// stages. Changing this changes the exit status seen by callers.
func TestValidator_DamagedPartsNeverFailTheRun(t *testing.T) {
	car := completeCar()
	for i := range car.Parts {
		car.Parts[i].Condition = vehicle.ConditionDamaged
	}

	result, out := runCar(t, car)

	assert.Equal(t, StatusPass, result.Status)
	assert.Zero(t, result.ExitCode())
	assert.Empty(t, result.FailedFor)
	assert.Equal(t, len(car.Parts), result.Summary.DamagedParts)
	assert.NotContains(t, out, "Validation on car failed")
}

func TestValidator_RunResult(t *testing.T) {
	car := completeCar()
	car.Parts[1].Condition = vehicle.ConditionBroken

	result, _ := runCar(t, car)

	assert.Equal(t, header.KindDiagnosticResult, result.Kind)
	assert.Equal(t, APIVersion, result.APIVersion)
	assert.Equal(t, "test", result.Metadata[header.MetadataKeyVersion])
	assert.NotEmpty(t, result.Metadata[header.MetadataKeyTimestamp])
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, VehicleRef{Year: "1990", Make: "Honda", Model: "Civic", Parts: 8}, result.Vehicle)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, Finding{
		Stage:   StageConditions,
		Kind:    FindingDamagedPart,
		Subject: "ELECTRICAL",
		Detail:  "BROKEN",
		Message: "Damaged Part Detected: ELECTRICAL - Condition: BROKEN",
	}, result.Findings[0])
}

func TestValidator_RunFindingsForParts(t *testing.T) {
	car := completeCar()
	car.Parts = car.Parts[:6]

	result, _ := runCar(t, car)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingMissingPart, result.Findings[0].Kind)
	assert.Equal(t, "TIRE", result.Findings[0].Subject)
	assert.Equal(t, "2", result.Findings[0].Detail)
	assert.Equal(t, 1, result.Summary.MissingParts)
}

func TestValidator_RunFindingsForFieldsAndUnsetCondition(t *testing.T) {
	car := completeCar()
	car.Make = ""

	result, _ := runCar(t, car)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingMissingField, result.Findings[0].Kind)
	assert.Equal(t, "Make", result.Findings[0].Subject)
	assert.Empty(t, result.Findings[0].Detail)

	car = completeCar()
	car.Parts[3].Condition = ""

	result, _ = runCar(t, car)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, FindingDamagedPart, result.Findings[0].Kind)
	assert.Equal(t, "OIL_FILTER", result.Findings[0].Subject)
	assert.Equal(t, "null", result.Findings[0].Detail)
}

func TestValidator_RunGeneratesRunID(t *testing.T) {
	v := New(WithOutput(&bytes.Buffer{}))

	first, err := v.Run(context.Background(), completeCar())
	require.NoError(t, err)
	second, err := v.Run(context.Background(), completeCar())
	require.NoError(t, err)

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestValidator_RunNilVehicle(t *testing.T) {
	var out bytes.Buffer
	result, err := New(WithOutput(&out)).Run(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, cderrors.IsCode(err, cderrors.ErrCodeInvalidRequest))
	assert.Zero(t, out.Len())
}

func TestValidator_RunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	result, err := New(WithOutput(&out)).Run(ctx, completeCar())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestValidator_RunRejectsPartWithoutType(t *testing.T) {
	car := completeCar()
	car.Parts = append(car.Parts, vehicle.Part{Type: "", Condition: vehicle.ConditionBroken})

	var out bytes.Buffer
	result, err := New(WithOutput(&out)).Run(context.Background(), car)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, cderrors.IsCode(err, cderrors.ErrCodeInvalidRequest))
	assert.Empty(t, out.String(), "nothing is printed before the vehicle is accepted")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestValidator_RunOutputError(t *testing.T) {
	car := completeCar()
	car.Year = ""

	_, err := New(WithOutput(failingWriter{})).Run(context.Background(), car)

	require.Error(t, err)
	assert.True(t, cderrors.IsCode(err, cderrors.ErrCodeInternal))
}

func TestDiagnosticResult_ExitCode(t *testing.T) {
	var nilResult *DiagnosticResult
	assert.Equal(t, 1, nilResult.ExitCode())
	assert.Equal(t, 0, (&DiagnosticResult{Status: StatusPass}).ExitCode())
	assert.Equal(t, 1, (&DiagnosticResult{Status: StatusFail}).ExitCode())
}

func TestDiagnosticResult_FirstFailureLabelWins(t *testing.T) {
	r := NewDiagnosticResult("id", nil)
	r.fail(FailedForDataField)
	r.fail(FailedForParts)

	assert.Equal(t, FailedForDataField, r.FailedFor)
}
