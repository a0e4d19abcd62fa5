package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/tripuva/booking-relay/internal/messaging"
	"github.com/tripuva/booking-relay/internal/observability/metrics"
	"github.com/tripuva/booking-relay/pkg/logging"
)

// SignatureHeader carries the HMAC hex digest of the raw webhook body.
const SignatureHeader = "X-Razorpay-Signature"

const (
	eventPaymentLinkPaid = "payment_link.paid"
	statusPaid           = "paid"
)

// ErrDuplicateConfirmation is returned by confirmation handlers when the
// payment id was already processed.
var ErrDuplicateConfirmation = errors.New("payment confirmation already processed")

type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID          string `json:"id"`
				Status      string `json:"status"`
				Amount      int64  `json:"amount"`
				Description string `json:"description"`
				Customer    struct {
					Name    string `json:"name"`
					Contact string `json:"contact"`
				} `json:"customer"`
			} `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

// RazorpayWebhookHandler receives payment-link notifications. Deliveries
// are always acknowledged with 200 so the provider stops retrying; only
// verified payment_link.paid events with a paid entity reach the
// confirmation handler, asynchronously.
type RazorpayWebhookHandler struct {
	secret         string
	confirmations  ConfirmationHandler
	messenger      messaging.Provider
	imageURL       string
	metrics        *metrics.RelayMetrics
	logger         *logging.Logger
	processTimeout time.Duration
	runAsync       func(func())
}

// NewRazorpayWebhookHandler creates the webhook handler. imageURL, when
// set, turns the thank-you message into an image send with caption.
func NewRazorpayWebhookHandler(secret string, confirmations ConfirmationHandler, messenger messaging.Provider, imageURL string, m *metrics.RelayMetrics, logger *logging.Logger) *RazorpayWebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &RazorpayWebhookHandler{
		secret:         secret,
		confirmations:  confirmations,
		messenger:      messenger,
		imageURL:       imageURL,
		metrics:        m,
		logger:         logger,
		processTimeout: 30 * time.Second,
		runAsync:       func(fn func()) { go fn() },
	}
}

// Handle processes POST deliveries from Razorpay.
func (h *RazorpayWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if !VerifySignature(body, r.Header.Get(SignatureHeader), h.secret) {
		// Acknowledge so the provider does not retry-storm, but never act
		// on an unverified payload. Only a digest of the body is logged.
		digest := sha256.Sum256(body)
		h.logger.Warn("razorpay webhook signature mismatch", "body_sha256", hex.EncodeToString(digest[:8]))
		h.metrics.ObservePaymentWebhook("unknown", "signature_mismatch")
		w.WriteHeader(http.StatusOK)
		return
	}

	var evt razorpayEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		h.logger.Error("razorpay webhook decode failed", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	entity := evt.Payload.PaymentLink.Entity
	if evt.Event != eventPaymentLinkPaid || entity.Status != statusPaid {
		h.logger.Info("ignoring razorpay event", "event", evt.Event, "status", entity.Status)
		h.metrics.ObservePaymentWebhook(evt.Event, "ignored")
		w.WriteHeader(http.StatusOK)
		return
	}
	if entity.ID == "" {
		h.logger.Error("razorpay event missing payment link id")
		http.Error(w, "missing payment id", http.StatusBadRequest)
		return
	}

	conf := Confirmation{
		PaymentID:     entity.ID,
		Status:        entity.Status,
		CustomerName:  entity.Customer.Name,
		CustomerPhone: entity.Customer.Contact,
		Description:   entity.Description,
		AmountPaise:   entity.Amount,
	}

	// Ack first; confirmation work happens off the request.
	w.WriteHeader(http.StatusOK)
	h.metrics.ObservePaymentWebhook(evt.Event, "accepted")
	h.runAsync(func() { h.process(conf) })
}

func (h *RazorpayWebhookHandler) process(conf Confirmation) {
	ctx, cancel := context.WithTimeout(context.Background(), h.processTimeout)
	defer cancel()

	if err := h.confirmations.HandlePaymentConfirmed(ctx, conf); err != nil {
		if errors.Is(err, ErrDuplicateConfirmation) {
			h.logger.Info("skipping replayed payment confirmation", "payment_id", conf.PaymentID)
			return
		}
		h.logger.Error("payment confirmation failed", "error", err, "payment_id", conf.PaymentID)
		return
	}

	// The booking is committed; the thank-you message is best-effort.
	if h.messenger != nil {
		text := messaging.PaymentReceivedMessage(conf.PaymentID, conf.AmountRupees())
		var err error
		if h.imageURL != "" {
			err = h.messenger.SendImage(ctx, conf.CustomerPhone, text, h.imageURL)
		} else {
			err = h.messenger.SendText(ctx, conf.CustomerPhone, text)
		}
		if err != nil {
			h.logger.Error("payment received notification failed", "error", err, "payment_id", conf.PaymentID)
		}
	}
}
