package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestInteraktSendText(t *testing.T) {
	var captured interaktEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Basic test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("x-interakt-secret"); got != "test-secret" {
			t.Errorf("unexpected secret header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := NewInteraktClient(InteraktConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Secret:  "test-secret",
	})
	if err != nil {
		t.Fatalf("NewInteraktClient: %v", err)
	}

	if err := client.SendText(context.Background(), "+919999999999", "hello"); err != nil {
		t.Fatalf("SendText returned error: %v", err)
	}

	if captured.CountryCode != "+91" {
		t.Errorf("unexpected country code %q", captured.CountryCode)
	}
	if captured.PhoneNumber != "9999999999" {
		t.Errorf("expected local phone form, got %q", captured.PhoneNumber)
	}
	if captured.Type != messageTypeText {
		t.Errorf("unexpected type %q", captured.Type)
	}
}

func TestInteraktSendTextTruncates(t *testing.T) {
	var captured struct {
		Data textData `json:"data"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewInteraktClient(InteraktConfig{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewInteraktClient: %v", err)
	}

	if err := client.SendText(context.Background(), "9999999999", strings.Repeat("x", 3000)); err != nil {
		t.Fatalf("SendText returned error: %v", err)
	}
	if len(captured.Data.Message) != 1024 {
		t.Fatalf("expected capped message, got %d chars", len(captured.Data.Message))
	}
	if !strings.HasSuffix(captured.Data.Message, "...") {
		t.Error("expected ellipsis marker on truncated message")
	}
}

func TestInteraktRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewInteraktClient(InteraktConfig{BaseURL: srv.URL, APIKey: "k", MaxRetries: 2, Backoff: 1})
	if err != nil {
		t.Fatalf("NewInteraktClient: %v", err)
	}

	if err := client.SendText(context.Background(), "9999999999", "hi"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestInteraktDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewInteraktClient(InteraktConfig{BaseURL: srv.URL, APIKey: "k", MaxRetries: 3, Backoff: 1})
	if err != nil {
		t.Fatalf("NewInteraktClient: %v", err)
	}

	if err := client.SendText(context.Background(), "9999999999", "hi"); err == nil {
		t.Fatal("expected error on 400")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestInteraktRequiresAPIKey(t *testing.T) {
	if _, err := NewInteraktClient(InteraktConfig{}); err == nil {
		t.Fatal("expected error when API key missing")
	}
}
