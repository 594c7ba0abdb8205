package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/logging"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/server"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/validator"
)

const (
	name           = "cardiagd"
	versionDefault = "dev"

	// DiagnosticsPath is the route for posting a vehicle for diagnosis.
	DiagnosticsPath = "/v1/diagnostics"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/vehicle-diagnostics/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// routes returns the application handlers served behind the middleware chain.
func routes(v *validator.Validator) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		DiagnosticsPath: v.HandleDiagnostics,
	}
}

// newServer puts the diagnostics routes behind the server middleware.
// opts are applied first, so a WithConfig among them does not drop the routes.
func newServer(v *validator.Validator, opts ...server.Option) *server.Server {
	return server.New(append(opts,
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(v)),
	)...)
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := newServer(validator.New(validator.WithVersion(version)))

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
