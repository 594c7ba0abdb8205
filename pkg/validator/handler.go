package validator

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	cderrors "github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/serializer"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/server"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/vehicle"
)

// RequestSource is recorded as the result source for API runs.
const RequestSource = "request"

// HandleDiagnostics runs diagnostics on a vehicle posted as JSON, YAML or
// XML, chosen by Content-Type. The response is the DiagnosticResult with
// status 200 whether the vehicle passed or failed. Console lines are kept
// in the result instead of being printed.
func (v *Validator) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	// Add request-scoped timeout
	ctx, cancel := context.WithTimeout(r.Context(), defaults.DiagnosticHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cderrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	if r.Body != nil {
		defer r.Body.Close()
	}

	car, err := decodeVehicle(r)
	if cderrors.IsCode(err, cderrors.ErrCodePayloadTooLarge) {
		server.WriteError(w, r, http.StatusRequestEntityTooLarge, cderrors.ErrCodePayloadTooLarge,
			"Vehicle document too large", false, map[string]any{
				"limit": defaults.MaxVehicleDocumentBytes,
			})
		return
	}
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cderrors.ErrCodeInvalidRequest,
			"Invalid vehicle document", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	slog.Debug("vehicle",
		"requestID", server.RequestID(r.Context()),
		"year", car.Year,
		"make", car.Make,
		"model", car.Model,
		"parts", len(car.Parts),
	)

	rv := &Validator{
		Version: v.Version,
		output:  io.Discard,
		runID:   v.runID,
	}

	result, err := rv.Run(ctx, car)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to run diagnostics", nil)
		return
	}
	result.Source = RequestSource

	serializer.RespondJSON(w, http.StatusOK, result)
}

// decodeVehicle reads at most defaults.MaxVehicleDocumentBytes of the body.
func decodeVehicle(r *http.Request) (*vehicle.Vehicle, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, cderrors.New(cderrors.ErrCodeInvalidRequest, "request body is empty")
	}

	format := serializer.FormatFromContentType(r.Header.Get("Content-Type"))

	reader, err := serializer.NewReader(format, r.Body)
	if err != nil {
		return nil, err
	}

	var car vehicle.Vehicle
	if err := reader.Deserialize(&car); err != nil {
		return nil, err
	}
	return &car, nil
}
