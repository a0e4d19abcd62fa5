package payments

import "context"

// Confirmation is a verified, filtered payment-link-paid notification,
// reduced to the fields the booking flow needs.
type Confirmation struct {
	PaymentID     string
	Status        string
	CustomerName  string
	CustomerPhone string
	Description   string
	AmountPaise   int64
}

// AmountRupees converts the provider's paise amount for display.
func (c Confirmation) AmountRupees() int64 {
	return c.AmountPaise / 100
}

// ConfirmationHandler reacts to a confirmed payment. Implemented by the
// booking orchestrator.
type ConfirmationHandler interface {
	HandlePaymentConfirmed(ctx context.Context, conf Confirmation) error
}
