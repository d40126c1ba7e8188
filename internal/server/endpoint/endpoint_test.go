package endpoint_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/server/endpoint"
)

func serve(t *testing.T, handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(path, handler)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", path, http.NoBody))
	return rr
}

func TestHealth_NoChecker(t *testing.T) {
	rr := serve(t, endpoint.Health("userauth", nil), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHealth_CheckerHealthy(t *testing.T) {
	checker := func(_ context.Context) error { return nil }
	rr := serve(t, endpoint.Health("userauth", checker), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body["status"])
	}
}

func TestHealth_CheckerUnhealthy(t *testing.T) {
	checker := func(_ context.Context) error { return errors.New("connection refused") }
	rr := serve(t, endpoint.Health("userauth", checker), "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestInfo(t *testing.T) {
	rr := serve(t, endpoint.Info("userauth"), "/info")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["service"] != "userauth" {
		t.Errorf("expected service name, got %v", body["service"])
	}
	if body["version"] == "" {
		t.Error("expected a version value")
	}
}
