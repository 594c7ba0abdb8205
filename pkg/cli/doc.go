// Package cli implements the command-line interface for the cardiag tool.
//
// # Overview
//
// cardiag loads a vehicle document and runs three diagnostic stages on it:
// identifying fields, required parts and part condition. Diagnostic lines are
// printed to stdout while the stages run and the process exit status carries
// the verdict.
//
// # Commands
//
// diagnose - Run diagnostics on a vehicle:
//
//	cardiag diagnose [--input PATH|URL|cm://ns/name] [--output PATH|cm://ns/name] [--format yaml|json|table]
//
// Without --input the command reads SampleCar.xml from the current directory.
// The input format is picked from the file extension. When --output is set the
// structured DiagnosticResult is also written there.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env: LOG_LEVEL)
//	--debug        Same as --log-level=debug
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Exit Status
//
//	0  the vehicle passed, possibly with damaged parts reported
//	1  a field or part is missing, or the input could not be loaded
//
// Structured logs go to stderr as JSON so they never mix with the diagnostic
// lines on stdout.
//
// # Version Information
//
// Build variables are injected with ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/vehicle-diagnostics/pkg/cli.version=1.0.0'"
package cli
