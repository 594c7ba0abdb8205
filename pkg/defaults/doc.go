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

// Package defaults provides centralized configuration constants for the
// vehicle diagnostics tools.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Diagnostics timeouts: For validator runs and the diagnostics handler
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For downloading vehicle documents
//   - ConfigMap timeouts: For Kubernetes ConfigMap input and output
//   - CLI timeouts: For the diagnose command
//
// # Usage
//
//	import "github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DiagnosticRunTimeout)
//	defer cancel()
package defaults
