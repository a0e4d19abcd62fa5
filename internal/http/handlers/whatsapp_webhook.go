package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tripuva/booking-relay/internal/intent"
	"github.com/tripuva/booking-relay/internal/messaging"
	observemetrics "github.com/tripuva/booking-relay/internal/observability/metrics"
	"github.com/tripuva/booking-relay/internal/payments"
	"github.com/tripuva/booking-relay/internal/trips"
	"github.com/tripuva/booking-relay/internal/users"
	"github.com/tripuva/booking-relay/pkg/logging"
)

type bookingService interface {
	ProcessBookingRequest(ctx context.Context, fields intent.BookingFields) (*trips.Package, error)
	BookedTripsMessage(ctx context.Context, phone string) (string, error)
}

type paymentLinker interface {
	CreatePaymentLink(ctx context.Context, req payments.LinkRequest) (*payments.PaymentLink, error)
}

type velocityChecker interface {
	Allow(ctx context.Context, phone string) bool
}

// WhatsAppWebhookHandler receives inbound message callbacks from Interakt
// and drives the conversation: greetings, booking requests, and the
// manage-bookings list.
type WhatsAppWebhookHandler struct {
	bookings  bookingService
	links     paymentLinker
	velocity  velocityChecker
	messenger messaging.Provider
	metrics   *observemetrics.RelayMetrics
	logger    *logging.Logger
	imageURL  string
}

// WhatsAppWebhookConfig wires the handler's collaborators.
type WhatsAppWebhookConfig struct {
	Bookings  bookingService
	Links     paymentLinker
	Velocity  velocityChecker
	Messenger messaging.Provider
	Metrics   *observemetrics.RelayMetrics
	Logger    *logging.Logger
	ImageURL  string
}

func NewWhatsAppWebhookHandler(cfg WhatsAppWebhookConfig) *WhatsAppWebhookHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &WhatsAppWebhookHandler{
		bookings:  cfg.Bookings,
		links:     cfg.Links,
		velocity:  cfg.Velocity,
		messenger: cfg.Messenger,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		imageURL:  cfg.ImageURL,
	}
}

// Interakt inbound callback envelope, reduced to the fields the flow uses.
type inboundEnvelope struct {
	Data struct {
		Customer struct {
			PhoneNumber string `json:"phone_number"`
			Traits      struct {
				Name string `json:"name"`
			} `json:"traits"`
		} `json:"customer"`
		Message struct {
			Message string `json:"message"`
		} `json:"message"`
	} `json:"data"`
}

// Handle processes one inbound message callback.
func (h *WhatsAppWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var envelope inboundEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	phone := strings.TrimSpace(envelope.Data.Customer.PhoneNumber)
	raw := envelope.Data.Message.Message
	if phone == "" || strings.TrimSpace(raw) == "" {
		http.Error(w, "missing customer phone or message", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(envelope.Data.Customer.Traits.Name)
	if name == "" {
		name = "there"
	}

	msg := intent.NewMessage(raw, phone, name)
	in := intent.Classify(msg)
	ctx := r.Context()

	h.logger.Info("inbound whatsapp message", "intent", string(in.Kind), "phone", phone)

	var status int
	switch in.Kind {
	case intent.KindGreeting:
		status = h.handleGreeting(ctx, w, msg)
	case intent.KindManageBookings:
		status = h.handleManageBookings(ctx, w, msg)
	case intent.KindBookingRequest:
		status = h.handleBookingRequest(ctx, w, msg, *in.Booking)
	default:
		status = h.handleUnrecognized(ctx, w, msg)
	}

	h.metrics.ObserveInbound(string(in.Kind), statusLabel(status))
	h.metrics.ObserveWebhookLatency("whatsapp", time.Since(start).Seconds())
}

func (h *WhatsAppWebhookHandler) handleGreeting(ctx context.Context, w http.ResponseWriter, msg intent.Message) int {
	text := messaging.GreetingMessage(msg.SenderName)
	buttons := []messaging.ReplyButton{messaging.ManageBookingsButton}
	if err := h.messenger.SendReplyButtons(ctx, msg.SenderPhone, text, buttons); err != nil {
		return h.sendFailed(ctx, w, msg.SenderPhone, "greeting", err)
	}
	h.metrics.ObserveOutbound("greeting", "ok")
	return respondJSON(w, http.StatusOK, map[string]string{"status": "greeting_sent"})
}

func (h *WhatsAppWebhookHandler) handleManageBookings(ctx context.Context, w http.ResponseWriter, msg intent.Message) int {
	text, err := h.bookings.BookedTripsMessage(ctx, msg.SenderPhone)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			if sendErr := h.messenger.SendText(ctx, msg.SenderPhone, messaging.UserNotFoundMessage); sendErr != nil {
				h.logger.Error("user-not-found reply failed", "error", sendErr)
			}
			return respondJSON(w, http.StatusNotFound, map[string]string{"status": "user_not_found"})
		}
		h.logger.Error("booked trips lookup failed", "error", err, "phone", msg.SenderPhone)
		return h.sendFailed(ctx, w, msg.SenderPhone, "manage_bookings", err)
	}
	if err := h.messenger.SendText(ctx, msg.SenderPhone, text); err != nil {
		return h.sendFailed(ctx, w, msg.SenderPhone, "manage_bookings", err)
	}
	h.metrics.ObserveOutbound("manage_bookings", "ok")
	return respondJSON(w, http.StatusOK, map[string]string{"status": "bookings_sent"})
}

func (h *WhatsAppWebhookHandler) handleBookingRequest(ctx context.Context, w http.ResponseWriter, msg intent.Message, fields intent.BookingFields) int {
	if h.velocity != nil && !h.velocity.Allow(ctx, msg.SenderPhone) {
		if err := h.messenger.SendText(ctx, msg.SenderPhone, messaging.TooManyRequestsMessage); err != nil {
			h.logger.Error("rate-limit reply failed", "error", err)
		}
		return respondJSON(w, http.StatusTooManyRequests, map[string]string{"status": "rate_limited"})
	}

	pkg, err := h.bookings.ProcessBookingRequest(ctx, fields)
	if err != nil {
		if errors.Is(err, trips.ErrTripNotFound) || errors.Is(err, trips.ErrPackageNotFound) {
			if sendErr := h.messenger.SendText(ctx, msg.SenderPhone, messaging.PackageNotFoundMessage); sendErr != nil {
				h.logger.Error("package-not-found reply failed", "error", sendErr)
			}
			return respondJSON(w, http.StatusNotFound, map[string]string{"status": "package_not_found"})
		}
		h.logger.Error("booking request failed", "error", err, "phone", msg.SenderPhone)
		return h.sendFailed(ctx, w, msg.SenderPhone, "booking_request", err)
	}

	linkReq := payments.NewLinkRequest(
		pkg.AdvanceRupees,
		fields.PackageTitle,
		fields.TripDate,
		fields.ExperienceCode,
		msg.SenderName,
		msg.SenderPhone,
	)
	link, err := h.links.CreatePaymentLink(ctx, linkReq)
	if err != nil {
		h.logger.Error("payment link creation failed", "error", err, "phone", msg.SenderPhone)
		return h.sendFailed(ctx, w, msg.SenderPhone, "booking_request", err)
	}

	text := messaging.PaymentRequestMessage(pkg.AdvanceRupees, link.ShortURL)
	if h.imageURL != "" {
		err = h.messenger.SendImage(ctx, msg.SenderPhone, text, h.imageURL)
	} else {
		err = h.messenger.SendText(ctx, msg.SenderPhone, text)
	}
	if err != nil {
		return h.sendFailed(ctx, w, msg.SenderPhone, "booking_request", err)
	}
	h.metrics.ObserveOutbound("payment_request", "ok")
	return respondJSON(w, http.StatusOK, map[string]string{
		"status":          "payment_link_sent",
		"payment_link_id": link.ID,
	})
}

func (h *WhatsAppWebhookHandler) handleUnrecognized(ctx context.Context, w http.ResponseWriter, msg intent.Message) int {
	buttons := []messaging.ReplyButton{messaging.ManageBookingsButton}
	if err := h.messenger.SendReplyButtons(ctx, msg.SenderPhone, messaging.InvalidRequestMessage, buttons); err != nil {
		return h.sendFailed(ctx, w, msg.SenderPhone, "unrecognized", err)
	}
	h.metrics.ObserveOutbound("invalid_request", "ok")
	return respondJSON(w, http.StatusOK, map[string]string{"status": "fallback_sent"})
}

// sendFailed reports a processing failure and makes one best-effort attempt
// to tell the customer something went wrong.
func (h *WhatsAppWebhookHandler) sendFailed(ctx context.Context, w http.ResponseWriter, phone, kind string, cause error) int {
	h.metrics.ObserveOutbound(kind, "error")
	h.logger.Error("whatsapp reply failed", "kind", kind, "error", cause, "phone", phone)
	if err := h.messenger.SendText(ctx, phone, messaging.GenericErrorMessage); err != nil {
		h.logger.Error("error reply failed", "error", err)
	}
	return respondJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
}

func respondJSON(w http.ResponseWriter, status int, body any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
	return status
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "error"
	case status >= 400:
		return "rejected"
	default:
		return "ok"
	}
}
