package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cderrors "github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/serializer"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cderrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err onto an ErrorResponse. Structured errors keep
// their code, message and context; anything else is reported as INTERNAL
// with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *cderrors.StructuredError
	if stderrors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	WriteError(w, r, http.StatusInternalServerError, cderrors.ErrCodeInternal, fallbackMessage, true, details)
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code cderrors.ErrorCode) int {
	switch code {
	case cderrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cderrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cderrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cderrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cderrors.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case cderrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cderrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cderrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cderrors.ErrCodeInternal, cderrors.ErrCodeContractViolation:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cderrors.ErrorCode) bool {
	switch code {
	case cderrors.ErrCodeTimeout, cderrors.ErrCodeUnavailable, cderrors.ErrCodeRateLimitExceeded, cderrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
