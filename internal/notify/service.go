package notify

import (
	"context"
	"fmt"

	"github.com/tripuva/booking-relay/internal/messaging"
	"github.com/tripuva/booking-relay/pkg/logging"
)

// Service alerts the operator when bookings are paid. All sends are
// best-effort: a notification failure must never undo a committed booking,
// so errors are logged and swallowed.
type Service struct {
	messenger  messaging.Provider
	email      EmailSender
	adminPhone string
	adminEmail string
	logger     *logging.Logger
}

// NewService creates a notification service. messenger and email may each
// be nil to disable that channel.
func NewService(messenger messaging.Provider, email EmailSender, adminPhone, adminEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		messenger:  messenger,
		email:      email,
		adminPhone: adminPhone,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// BookingPaid notifies the operator that an advance payment came in.
func (s *Service) BookingPaid(ctx context.Context, userName, packageTitle string, amountRupees int64) {
	if s == nil {
		return
	}
	text := messaging.AdminBookingAlertMessage(amountRupees, packageTitle, userName)

	if s.messenger != nil && s.adminPhone != "" {
		if err := s.messenger.SendText(ctx, s.adminPhone, text); err != nil {
			s.logger.Error("admin whatsapp alert failed", "error", err)
		}
	}

	if s.email != nil && s.adminEmail != "" {
		msg := EmailMessage{
			To:      s.adminEmail,
			ToName:  "Tripuva Ops",
			Subject: fmt.Sprintf("Booking payment received: %s", packageTitle),
			Body:    text,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("admin email alert failed", "error", err)
		}
	}
}
