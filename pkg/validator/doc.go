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

// Package validator runs vehicle diagnostics.
//
// # Overview
//
// A Validator checks a vehicle.Vehicle in three fixed stages and prints one
// console line per finding:
//
//	Missing field Detected: {Field}
//	Missing Part(s) Detected: {TYPE} - Count: {n}
//	Damaged Part Detected: {TYPE} - Condition: {COND}
//	Validation on car failed for: {label}
//
// Stage 1 reports each absent identifying field (Year, Make, Model) and then
// fails with "Data Field". Stage 2 reports each under-supplied category in
// required-parts order and then fails with "Parts". Stage 3 reports every
// part whose condition is not NEW, GOOD or WORN; an unset condition prints
// as "null". Stage 3 never fails the run.
//
// A failing stage stops the run, so later stages do not print.
//
// # Usage
//
//	v := validator.New(validator.WithVersion(version))
//	result, err := v.Run(ctx, car)
//	if err != nil {
//	    return err
//	}
//	os.Exit(result.ExitCode())
//
// Run never terminates the process. The DiagnosticResult records the status,
// the failure label, each finding and the console transcript; ExitCode maps
// it to 0 or 1.
//
// # Error Handling
//
// Diagnostic failures are results, not errors. Run returns an error only for
// a nil vehicle (INVALID_REQUEST), an interrupted context (TIMEOUT or
// SERVICE_UNAVAILABLE), an output write failure (INTERNAL), or a part with
// an unknown category reaching the Reporter (CONTRACT_VIOLATION).
//
// # HTTP
//
// HandleDiagnostics serves POST /v1/diagnostics. The vehicle document may be
// JSON, YAML or XML per Content-Type and the response is always the JSON
// DiagnosticResult.
package validator
