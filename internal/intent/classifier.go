package intent

import "strings"

// Kind identifies what an inbound message is asking for.
type Kind string

const (
	KindGreeting       Kind = "greeting"
	KindManageBookings Kind = "manage_bookings"
	KindBookingRequest Kind = "booking_request"
	KindUnrecognized   Kind = "unrecognized"
)

// Intent is the classification result. Booking is set only for
// KindBookingRequest.
type Intent struct {
	Kind    Kind
	Booking *BookingFields
}

const manageBookingsText = "manage bookings"

var greetings = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
}

// Classify maps a message onto exactly one intent. Checks run in priority
// order: manage-bookings, greeting, booking extraction, unrecognized. The
// manage-bookings check matches either the button title or the plain text.
func Classify(msg Message) Intent {
	text := msg.EffectiveText()
	normalized := strings.ToLower(strings.TrimSpace(text))
	buttonNormalized := strings.ToLower(strings.TrimSpace(msg.ButtonTitle))

	if buttonNormalized == manageBookingsText || normalized == manageBookingsText {
		return Intent{Kind: KindManageBookings}
	}

	if _, ok := greetings[normalized]; ok {
		return Intent{Kind: KindGreeting}
	}

	if fields, ok := ExtractBookingFields(text); ok {
		return Intent{Kind: KindBookingRequest, Booking: &fields}
	}

	return Intent{Kind: KindUnrecognized}
}
