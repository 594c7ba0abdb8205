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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	diagnosticRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicle_diagnostics_runs_total",
			Help: "Total number of diagnostic runs by outcome",
		},
		[]string{"status"},
	)

	diagnosticFindingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicle_diagnostics_findings_total",
			Help: "Total number of diagnostic findings by kind",
		},
		[]string{"kind"},
	)

	diagnosticRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vehicle_diagnostics_run_duration_seconds",
			Help:    "Duration of diagnostic runs in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
)

func recordRun(result *DiagnosticResult) {
	diagnosticRunsTotal.WithLabelValues(string(result.Status)).Inc()
	for _, f := range result.Findings {
		diagnosticFindingsTotal.WithLabelValues(string(f.Kind)).Inc()
	}
	diagnosticRunDuration.Observe(result.Summary.Duration.Seconds())
}
