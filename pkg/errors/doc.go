// Package errors provides structured error types shared by the vehicle
// diagnostics packages.
//
// Every error carries an ErrorCode so callers can branch on the failure class
// without string matching. The HTTP server maps codes to status codes, and the
// CLI logs the code alongside the message.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "failed to load vehicle document",
//	    cause,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    // input could not be located
//	}
package errors
