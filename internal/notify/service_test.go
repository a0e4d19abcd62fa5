package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tripuva/booking-relay/internal/messaging"
	"github.com/tripuva/booking-relay/pkg/logging"
)

type stubMessenger struct {
	texts []string
	to    []string
	err   error
}

func (s *stubMessenger) SendText(ctx context.Context, to, text string) error {
	s.to = append(s.to, to)
	s.texts = append(s.texts, text)
	return s.err
}

func (s *stubMessenger) SendImage(ctx context.Context, to, caption, mediaURL string) error {
	return s.err
}

func (s *stubMessenger) SendReplyButtons(ctx context.Context, to, text string, buttons []messaging.ReplyButton) error {
	return s.err
}

type stubEmail struct {
	sent []EmailMessage
	err  error
}

func (s *stubEmail) Send(ctx context.Context, msg EmailMessage) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func TestBookingPaidNotifiesBothChannels(t *testing.T) {
	messenger := &stubMessenger{}
	email := &stubEmail{}
	svc := NewService(messenger, email, "7777777777", "ops@tripuva.com", logging.Default())

	svc.BookingPaid(context.Background(), "Vedant Sharma", "Goa Beach Escape", 2000)

	if len(messenger.texts) != 1 {
		t.Fatalf("expected 1 whatsapp alert, got %d", len(messenger.texts))
	}
	if messenger.to[0] != "7777777777" {
		t.Errorf("alert sent to wrong phone %q", messenger.to[0])
	}
	if !strings.Contains(messenger.texts[0], "₹2000") || !strings.Contains(messenger.texts[0], "Goa Beach Escape") {
		t.Errorf("unexpected alert text %q", messenger.texts[0])
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email alert, got %d", len(email.sent))
	}
	if email.sent[0].To != "ops@tripuva.com" {
		t.Errorf("email to wrong address %q", email.sent[0].To)
	}
}

func TestBookingPaidSwallowsSendFailures(t *testing.T) {
	messenger := &stubMessenger{err: errors.New("provider down")}
	email := &stubEmail{err: errors.New("smtp down")}
	svc := NewService(messenger, email, "7777777777", "ops@tripuva.com", logging.Default())

	// Must not panic or propagate.
	svc.BookingPaid(context.Background(), "Vedant Sharma", "Goa Beach Escape", 2000)
}

func TestBookingPaidSkipsUnconfiguredChannels(t *testing.T) {
	messenger := &stubMessenger{}
	email := &stubEmail{}
	svc := NewService(messenger, email, "", "", logging.Default())

	svc.BookingPaid(context.Background(), "Vedant Sharma", "Goa Beach Escape", 2000)

	if len(messenger.texts) != 0 || len(email.sent) != 0 {
		t.Fatal("expected no sends without admin targets")
	}
}
