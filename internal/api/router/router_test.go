package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tripuva/booking-relay/internal/http/handlers"
	"github.com/tripuva/booking-relay/pkg/logging"
)

func TestHealthRoute(t *testing.T) {
	r := New(&Config{
		Logger: logging.Default(),
		Health: handlers.NewHealthHandler(nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestUnconfiguredRoutesReturn404(t *testing.T) {
	r := New(&Config{Health: handlers.NewHealthHandler(nil)})

	for _, path := range []string{"/webhook", "/webhooks/razorpay", "/metrics"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			t.Fatalf("route %s should not be mounted without a handler", path)
		}
	}
}
