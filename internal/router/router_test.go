// Package router tests verify the routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"memorybook/internal/catalog"
	"memorybook/internal/handlers"
)

// testRouter builds a router around an API with only the catalog
// wired. Enough for routing-level assertions.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	api := handlers.New(nil, nil, nil, catalog.New(), nil, nil, nil, nil)
	r, limiter := New(api)
	t.Cleanup(limiter.Stop)
	return r
}

func TestHealthRoute(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q", body["status"])
	}
}

func TestTemplatesRoute(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/templates", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := testRouter(t)

	// Templates is GET-only.
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/templates", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}

func TestUploadsRouteIsRateLimited(t *testing.T) {
	r := testRouter(t)

	// Without configured storage every allowed request answers 503;
	// once the window fills, the limiter answers 429 instead.
	var got429 bool
	for i := 0; i < uploadRateLimit+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/uploads", nil)
		req.RemoteAddr = "10.1.2.3:4444"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		switch rr.Code {
		case http.StatusServiceUnavailable:
		case http.StatusTooManyRequests:
			got429 = true
		default:
			t.Fatalf("request %d: unexpected status %d", i, rr.Code)
		}
	}
	if !got429 {
		t.Error("limiter never engaged after exceeding the window")
	}
}

func TestMalformedProjectID(t *testing.T) {
	r := testRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(method, "/api/projects/not-a-uuid", nil))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s status: got %d, want 400", method, rr.Code)
		}
	}
}
