package bookings

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tripuva/booking-relay/internal/intent"
	"github.com/tripuva/booking-relay/internal/messaging"
	"github.com/tripuva/booking-relay/internal/payments"
	"github.com/tripuva/booking-relay/internal/trips"
	"github.com/tripuva/booking-relay/internal/users"
	"github.com/tripuva/booking-relay/pkg/logging"
)

// ProcessedTracker claims provider event ids so redelivered confirmations
// are handled exactly once. Implemented by events.ProcessedStore.
type ProcessedTracker interface {
	MarkProcessed(ctx context.Context, provider, eventID string) (bool, error)
}

// Notifier tells the operator about a confirmed booking. Implemented by
// notify.Service.
type Notifier interface {
	BookingPaid(ctx context.Context, userName, packageTitle string, amountRupees int64)
}

const razorpayProvider = "razorpay"

// Service orchestrates the booking flow: availability checks before a
// payment link goes out, and booking creation when the payment confirms.
type Service struct {
	trips     trips.Repository
	users     users.Repository
	bookings  Repository
	processed ProcessedTracker
	notifier  Notifier
	logger    *logging.Logger
	tracer    trace.Tracer
}

// NewService wires the booking orchestrator.
func NewService(
	tripRepo trips.Repository,
	userRepo users.Repository,
	bookingRepo Repository,
	processed ProcessedTracker,
	notifier Notifier,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		trips:     tripRepo,
		users:     userRepo,
		bookings:  bookingRepo,
		processed: processed,
		notifier:  notifier,
		logger:    logger,
		tracer:    otel.Tracer("tripuva.internal.bookings"),
	}
}

// ProcessBookingRequest validates a booking request against the catalog and
// remaining capacity. It is read-only: the slot is consumed only when the
// payment confirmation arrives, so an unpaid request never holds inventory.
func (s *Service) ProcessBookingRequest(ctx context.Context, fields intent.BookingFields) (*trips.Package, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.process_request")
	defer span.End()
	span.SetAttributes(
		attribute.String("experience_code", fields.ExperienceCode),
		attribute.String("trip_date", fields.TripDate),
	)

	remaining, err := s.trips.RemainingSlots(ctx, fields.ExperienceCode, fields.TripDate)
	if err != nil {
		if errors.Is(err, trips.ErrTripNotFound) {
			return nil, trips.ErrTripNotFound
		}
		return nil, fmt.Errorf("bookings: check availability: %w", err)
	}
	if remaining <= 0 {
		return nil, trips.ErrTripNotFound
	}

	pkg, err := s.trips.GetPackage(ctx, fields.PackageTitle, fields.ExperienceCode)
	if err != nil {
		if errors.Is(err, trips.ErrPackageNotFound) {
			return nil, trips.ErrPackageNotFound
		}
		return nil, fmt.Errorf("bookings: load package: %w", err)
	}
	return pkg, nil
}

// HandlePaymentConfirmed turns a verified payment confirmation into a
// booking. The processed-event claim makes redelivered webhooks no-ops, and
// the conditional slot decrement keeps concurrent confirmations from
// overselling a date.
func (s *Service) HandlePaymentConfirmed(ctx context.Context, conf payments.Confirmation) error {
	ctx, span := s.tracer.Start(ctx, "bookings.payment_confirmed")
	defer span.End()
	span.SetAttributes(attribute.String("payment_id", conf.PaymentID))

	packageTitle, tripDate, experienceCode, err := payments.DecodeDescription(conf.Description)
	if err != nil {
		s.logger.Error("payment confirmation has unusable description",
			"payment_id", conf.PaymentID,
			"error", err,
		)
		return err
	}
	span.SetAttributes(attribute.String("experience_code", experienceCode))

	claimed, err := s.processed.MarkProcessed(ctx, razorpayProvider, conf.PaymentID)
	if err != nil {
		return fmt.Errorf("bookings: claim payment event: %w", err)
	}
	if !claimed {
		s.logger.Info("duplicate payment confirmation skipped", "payment_id", conf.PaymentID)
		return payments.ErrDuplicateConfirmation
	}

	// The slot may have sold out between the availability check and the
	// customer paying. The booking is still recorded; operators resolve
	// the oversubscription manually, the customer keeps their receipt.
	if err := s.trips.DecrementSlot(ctx, experienceCode, tripDate); err != nil {
		if errors.Is(err, trips.ErrSlotUnavailable) {
			s.logger.Warn("paid booking exceeds remaining slots",
				"payment_id", conf.PaymentID,
				"experience_code", experienceCode,
				"trip_date", tripDate,
			)
		} else {
			return fmt.Errorf("bookings: consume slot: %w", err)
		}
	}

	phone := messaging.NormalizeLocal(conf.CustomerPhone)
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			return fmt.Errorf("bookings: look up customer: %w", err)
		}
		first, last := users.SplitName(conf.CustomerName)
		user, err = s.users.Create(ctx, users.CreateUserRequest{
			FirstName: first,
			LastName:  last,
			Phone:     phone,
		})
		if err != nil {
			return fmt.Errorf("bookings: create customer: %w", err)
		}
	}

	booking, err := s.bookings.Create(ctx, CreateBookingRequest{
		UserID:         user.ID,
		UserName:       conf.CustomerName,
		UserPhone:      phone,
		ExperienceCode: experienceCode,
		PackageTitle:   packageTitle,
		StartDate:      tripDate,
	})
	if err != nil {
		return fmt.Errorf("bookings: record booking: %w", err)
	}

	if err := s.users.AppendBookedTitle(ctx, user.ID, packageTitle); err != nil {
		s.logger.Error("append booked title failed",
			"user_id", user.ID,
			"booking_id", booking.ID,
			"error", err,
		)
	}

	s.logger.Info("booking confirmed",
		"booking_id", booking.ID,
		"payment_id", conf.PaymentID,
		"experience_code", experienceCode,
		"trip_date", tripDate,
	)

	if s.notifier != nil {
		s.notifier.BookingPaid(ctx, conf.CustomerName, packageTitle, conf.AmountRupees())
	}
	return nil
}

// BookedTripsMessage renders the manage-bookings reply for a phone number.
func (s *Service) BookedTripsMessage(ctx context.Context, phone string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.booked_trips")
	defer span.End()

	user, err := s.users.FindByPhone(ctx, messaging.NormalizeLocal(phone))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", users.ErrUserNotFound
		}
		return "", fmt.Errorf("bookings: look up customer: %w", err)
	}
	if len(user.BookedTitles) == 0 {
		return messaging.NoBookingsMessage, nil
	}
	return messaging.BookedTripsMessage(user.BookedTitles), nil
}
