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

// Package server provides the HTTP server that hosts the vehicle
// diagnostics API.
//
// The server itself knows nothing about vehicles. Callers register API
// handlers by route and the server wraps each one with a middleware chain
// for metrics, API version negotiation, request IDs, panic recovery,
// rate limiting and request logging.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("cardiagd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/diagnostics": v.HandleDiagnostics,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests
// within Config.ShutdownTimeout.
//
// # System Endpoints
//
//	GET /         server name, version, readiness and routes
//	GET /health   liveness probe, always 200
//	GET /ready    readiness probe, 503 while starting or shutting down
//	GET /metrics  Prometheus metrics
//
// System endpoints bypass rate limiting.
//
// # Request Headers
//
// Requests may carry an X-Request-Id (UUID). A missing or malformed ID is
// replaced and echoed back in the response. The API version is negotiated
// from an Accept header such as application/vnd.nvidia.cardiag.v1+json and
// returned in X-API-Version.
//
// When the token bucket is empty the server answers 429 with Retry-After.
//
// # Errors
//
// Every error response has the same JSON shape:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "Invalid vehicle document",
//	  "details": {"error": "..."},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-10T12:00:00Z",
//	  "retryable": false
//	}
//
// Use WriteErrorFromErr to map a structured error from pkg/errors onto the
// matching HTTP status.
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
package server
