package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tripuva/booking-relay/internal/api/router"
	"github.com/tripuva/booking-relay/internal/bookings"
	appconfig "github.com/tripuva/booking-relay/internal/config"
	"github.com/tripuva/booking-relay/internal/events"
	"github.com/tripuva/booking-relay/internal/http/handlers"
	"github.com/tripuva/booking-relay/internal/messaging"
	"github.com/tripuva/booking-relay/internal/notify"
	observemetrics "github.com/tripuva/booking-relay/internal/observability/metrics"
	"github.com/tripuva/booking-relay/internal/payments"
	"github.com/tripuva/booking-relay/internal/trips"
	"github.com/tripuva/booking-relay/internal/users"
	"github.com/tripuva/booking-relay/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" || cfg.InteraktAPIKey == "" {
		logger.Error("booking relay requires DATABASE_URL and INTERAKT_API_KEY")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = redisClient.Close() }()

	relayMetrics := observemetrics.NewRelayMetrics(nil)

	interakt, err := messaging.NewInteraktClient(messaging.InteraktConfig{
		BaseURL:     cfg.InteraktBaseURL,
		APIKey:      cfg.InteraktAPIKey,
		Secret:      cfg.InteraktSecret,
		CountryCode: cfg.CountryCode,
		Timeout:     cfg.ProviderTimeout,
		MaxRetries:  2,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to create interakt client", "error", err)
		os.Exit(1)
	}

	razorpay, err := payments.NewRazorpayClient(payments.RazorpayConfig{
		BaseURL:    cfg.RazorpayBaseURL,
		KeyID:      cfg.RazorpayKeyID,
		KeySecret:  cfg.RazorpayKeySecret,
		Timeout:    cfg.ProviderTimeout,
		MaxRetries: 2,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create razorpay client", "error", err)
		os.Exit(1)
	}

	velocity := payments.NewLinkVelocityChecker(redisClient, cfg.PaymentLinkMaxPerPhone, cfg.PaymentLinkWindow, logger)

	email := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	var emailSender notify.EmailSender
	if email != nil {
		emailSender = email
	}
	notifier := notify.NewService(interakt, emailSender, cfg.AdminPhone, cfg.AdminEmail, logger)

	bookingService := bookings.NewService(
		trips.NewPostgresRepository(pool),
		users.NewPostgresRepository(pool),
		bookings.NewPostgresRepository(pool),
		events.NewProcessedStore(pool),
		notifier,
		logger,
	)

	whatsappWebhook := handlers.NewWhatsAppWebhookHandler(handlers.WhatsAppWebhookConfig{
		Bookings:  bookingService,
		Links:     razorpay,
		Velocity:  velocity,
		Messenger: interakt,
		Metrics:   relayMetrics,
		Logger:    logger,
		ImageURL:  cfg.BookingImageURL,
	})
	razorpayWebhook := payments.NewRazorpayWebhookHandler(
		cfg.RazorpayWebhookSecret,
		bookingService,
		interakt,
		cfg.BookingImageURL,
		relayMetrics,
		logger,
	)

	r := router.New(&router.Config{
		Logger:          logger,
		WhatsAppWebhook: whatsappWebhook,
		RazorpayWebhook: razorpayWebhook,
		Health:          handlers.NewHealthHandler(pool),
		MetricsHandler:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
