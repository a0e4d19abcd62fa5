package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tripuva/booking-relay/internal/http/handlers"
	httpmiddleware "github.com/tripuva/booking-relay/internal/http/middleware"
	"github.com/tripuva/booking-relay/internal/payments"
	"github.com/tripuva/booking-relay/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	WhatsAppWebhook *handlers.WhatsAppWebhookHandler
	RazorpayWebhook *payments.RazorpayWebhookHandler
	Health          *handlers.HealthHandler
	MetricsHandler  http.Handler
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Check)
	}
	if cfg.WhatsAppWebhook != nil {
		r.Post("/webhook", cfg.WhatsAppWebhook.Handle)
	}
	if cfg.RazorpayWebhook != nil {
		r.Post("/webhooks/razorpay", cfg.RazorpayWebhook.Handle)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
