// Package logging provides structured logging utilities for the vehicle diagnostics tools.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cardiag", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("loading vehicle", "uri", "SampleCar.xml")
//	    slog.Debug("parsed vehicle", "parts", len(v.Parts))
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("cardiagd", "v2.0.0", "debug")
//	logger.Info("server starting", "port", 8080)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cardiag", "v1.0.0", "warn")
//
// Routing http.Server errors into the structured log:
//
//	srv := &http.Server{ErrorLog: logging.NewLogLogger(slog.LevelWarn)}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug cardiag diagnose --input SampleCar.xml
//	LOG_LEVEL=error cardiagd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "cardiagd",
//	    "version": "v1.0.0",
//	    "port": 8080
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "validator.(*Validator).Run",
//	        "file": "validator.go",
//	        "line": 45
//	    },
//	    "msg": "stage completed",
//	    "module": "cardiagd",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("myapp", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("diagnostics completed",
//	    "status", result.Status,
//	    "findings", len(result.Findings),
//	    "duration", result.Summary.Duration,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("stage started", "stage", stage)   // Development/troubleshooting
//	slog.Info("server started")                  // Normal operations
//	slog.Warn("unknown file extension")          // Potential issues
//	slog.Error("failed to load vehicle")         // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to load vehicle",
//	    "error", err,
//	    "uri", uri,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/api - API server logging
//   - pkg/cli - CLI command logging
//   - pkg/serializer - Document loading logging
//   - pkg/validator - Diagnostic stage logging
//
// All components share consistent logging format and configuration.
package logging
