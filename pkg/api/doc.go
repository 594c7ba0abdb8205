// Package api provides the HTTP API layer for the vehicle diagnostics service.
//
// This package is a thin wrapper around pkg/server. It configures structured
// logging, registers the diagnostics handler from pkg/validator and hands
// lifecycle management to the server.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - POST /v1/diagnostics - Run the field, parts and condition checks on a vehicle
//
// System endpoints (no rate limiting):
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe
//   - GET /metrics - Prometheus metrics
//
// # Request Body
//
// The vehicle may be sent as JSON, YAML or XML, selected by Content-Type:
//
//	curl -X POST http://localhost:8080/v1/diagnostics \
//	  -H "Content-Type: application/xml" \
//	  --data-binary @SampleCar.xml
//
// The response is a DiagnosticResult with status 200 whether the vehicle
// passed or failed. Its status, failedFor and output fields carry the verdict
// and the console lines the CLI would have printed.
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown window (default: 30)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/vehicle-diagnostics/pkg/api.version=1.0.0'"
package api
