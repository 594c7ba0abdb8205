package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/server"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/validator"
)

const passingCarJSON = `{"year":"1990","make":"Honda","model":"Civic","parts":[
	{"type":"ENGINE","condition":"NEW"},{"type":"ELECTRICAL","condition":"GOOD"},
	{"type":"FUEL_FILTER","condition":"NEW"},{"type":"OIL_FILTER","condition":"GOOD"},
	{"type":"TIRE","condition":"NEW"},{"type":"TIRE","condition":"NEW"},
	{"type":"TIRE","condition":"NEW"},{"type":"TIRE","condition":"NEW"}]}`

// TestConstants verifies package constants are properly defined
func TestConstants(t *testing.T) {
	if name != "cardiagd" {
		t.Errorf("name = %q, want %q", name, "cardiagd")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

// TestRouteConfiguration verifies that the correct routes are set up
func TestRouteConfiguration(t *testing.T) {
	r := routes(validator.New(validator.WithVersion("test-version")))

	if handler, exists := r[DiagnosticsPath]; !exists {
		t.Errorf("expected %s route to exist", DiagnosticsPath)
	} else if handler == nil {
		t.Errorf("expected %s handler to be non-nil", DiagnosticsPath)
	}

	if len(r) != 1 {
		t.Errorf("expected exactly 1 route, got %d", len(r))
	}
}

// TestDiagnosticsEndpoint posts vehicles through the registered route.
func TestDiagnosticsEndpoint(t *testing.T) {
	handler := routes(validator.New(validator.WithVersion("test")))[DiagnosticsPath]

	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
		wantResult  validator.Status
	}{
		{
			name:        "passing vehicle",
			body:        passingCarJSON,
			contentType: "application/json",
			wantStatus:  http.StatusOK,
			wantResult:  validator.StatusPass,
		},
		{
			name:        "vehicle with no parts",
			body:        "year: \"1990\"\nmake: Honda\nmodel: Civic\n",
			contentType: "application/x-yaml",
			wantStatus:  http.StatusOK,
			wantResult:  validator.StatusFail,
		},
		{
			name:        "empty body",
			body:        "",
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid}`,
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, DiagnosticsPath, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d; body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantResult == "" {
				return
			}

			var result validator.DiagnosticResult
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to unmarshal result: %v", err)
			}
			if result.Status != tt.wantResult {
				t.Errorf("expected result status %s, got %s", tt.wantResult, result.Status)
			}
		})
	}
}

// TestDiagnosticsEndpointMethods verifies only POST is allowed
func TestDiagnosticsEndpointMethods(t *testing.T) {
	handler := routes(validator.New())[DiagnosticsPath]

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method+"_not_allowed", func(t *testing.T) {
			req := httptest.NewRequest(method, DiagnosticsPath, nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected status %d for method %s, got %d",
					http.StatusMethodNotAllowed, method, w.Code)
			}
			if w.Header().Get("Allow") == "" {
				t.Error("expected Allow header to be set")
			}
		})
	}
}

// TestDiagnosticsEndpointConcurrency tests that the handler is safe for concurrent use
func TestDiagnosticsEndpointConcurrency(t *testing.T) {
	handler := routes(validator.New())[DiagnosticsPath]

	const numRequests = 10
	done := make(chan int, numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodPost, DiagnosticsPath, strings.NewReader(passingCarJSON))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler(w, req)
			done <- w.Code
		}()
	}

	timeout := time.After(5 * time.Second)
	for i := 0; i < numRequests; i++ {
		select {
		case code := <-done:
			if code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, code)
			}
		case <-timeout:
			t.Fatal("timeout waiting for concurrent requests to complete")
		}
	}
}

// TestDiagnosticsEndpointContextHandling verifies a canceled request is reported
func TestDiagnosticsEndpointContextHandling(t *testing.T) {
	handler := routes(validator.New())[DiagnosticsPath]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, DiagnosticsPath, strings.NewReader(passingCarJSON))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d for canceled request, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func postThroughServer(h http.Handler, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, DiagnosticsPath, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestServerDiagnosticsRoute drives the real handler through the server
// middleware chain.
func TestServerDiagnosticsRoute(t *testing.T) {
	h := newServer(validator.New(validator.WithVersion("test"))).Handler()
	requestID := uuid.NewString()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"passing vehicle", "application/json", passingCarJSON, http.StatusOK, ""},
		{"failing vehicle", "application/yaml", "make: Honda\n", http.StatusOK, ""},
		{"part without type", "application/xml",
			`<car><year>1990</year><make>Honda</make><model>Civic</model><parts condition="BROKEN"/></car>`,
			http.StatusBadRequest, "INVALID_REQUEST"},
		{"document too large", "application/json",
			`{"make":"` + strings.Repeat("a", defaults.MaxVehicleDocumentBytes) + `"}`,
			http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postThroughServer(h, tt.contentType, tt.body, map[string]string{"X-Request-Id": requestID})

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d; body: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if got := w.Header().Get("X-Request-Id"); got != requestID {
				t.Errorf("expected X-Request-Id %s, got %s", requestID, got)
			}
			if got := w.Header().Get("X-API-Version"); got != server.DefaultAPIVersion {
				t.Errorf("expected X-API-Version %s, got %s", server.DefaultAPIVersion, got)
			}
			if tt.wantCode == "" {
				return
			}

			var resp server.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal error: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
			if resp.RequestID != requestID {
				t.Errorf("expected error for request %s, got %s", requestID, resp.RequestID)
			}
		})
	}
}

func TestServerDiagnosticsRouteRateLimited(t *testing.T) {
	cfg := server.NewConfig()
	cfg.RateLimit = 0.01
	cfg.RateLimitBurst = 1
	h := newServer(validator.New(), server.WithConfig(cfg)).Handler()

	if w := postThroughServer(h, "application/json", passingCarJSON, nil); w.Code != http.StatusOK {
		t.Fatalf("first request: expected status %d, got %d", http.StatusOK, w.Code)
	}

	w := postThroughServer(h, "application/json", passingCarJSON, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After on a rate limited diagnostics request")
	}
}
