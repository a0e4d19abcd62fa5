package messaging

import (
	"fmt"
	"strings"
)

// Canned reply texts. Wording is part of the product surface; change with care.
const (
	InvalidRequestMessage = "Hey there! 😊 I couldn't understand your message.\n\nYou can explore all our amazing trips at ⛰️ Tripuva.com\n\nOr just reply with \"Hi\" to get started! 🚀"

	PackageNotFoundMessage = "No matching trip found 😔\n\nPlease check the trip details\n\nYou can explore more trips at Tripuva.com 🚀"

	NoBookingsMessage = "🧳 You haven't booked any trips yet.\n\nExplore exciting trips at Tripuva.com 🌍 or reply with \"Hi\" to get started."

	UserNotFoundMessage = "😕 Couldn't find your account. Please try booking again or reply with \"Hi\" to restart."

	TooManyRequestsMessage = "You're requesting payment links a little too fast 😅\n\nPlease wait a bit and try again."

	GenericErrorMessage = "Sorry, we encountered an error processing your request. Please try again or contact support."
)

// ManageBookingsButton is the quick-reply button attached to greeting and
// invalid-request replies.
var ManageBookingsButton = ReplyButton{ID: "manage_bookings", Title: "Manage Bookings"}

// GreetingMessage renders the personalized welcome text.
func GreetingMessage(name string) string {
	return fmt.Sprintf("Hey %s ! 👋\n\nWelcome to Tripuva! 🌍✨\n\nWe help you find amazing group travel experiences across India. Check out our latest trips. 🚀\n\nExplore Group Trips: Tripuva.com", name)
}

// PaymentRequestMessage renders the pay-the-advance prompt with the link.
func PaymentRequestMessage(advanceRupees int64, paymentLink string) string {
	return fmt.Sprintf("Thank you for choosing us! ⭐\n\nTo proceed with your booking, please pay the advance amount of ₹%d using the link:\n\n%s\n\nLooking forward to hosting you! ✨🌍", advanceRupees, paymentLink)
}

// PaymentReceivedMessage renders the post-payment confirmation caption.
func PaymentReceivedMessage(paymentID string, amountRupees int64) string {
	return fmt.Sprintf("✨ Thank you for your Payment! ✨\n\nPayment Details:\n📝 ID: %s\n💰 Amount: ₹%d\n\nThank you for your payment! We're processing your booking request and will confirm your slot shortly.\n\nWe'll keep you updated on the next steps. 😊", paymentID, amountRupees)
}

// AdminBookingAlertMessage renders the operator notification text.
func AdminBookingAlertMessage(amountRupees int64, packageTitle, userName string) string {
	return fmt.Sprintf("A booking payment has been received of ₹%d for %s from %s", amountRupees, packageTitle, userName)
}

// BookedTripsMessage renders the numbered manage-bookings list.
func BookedTripsMessage(titles []string) string {
	lines := make([]string, 0, len(titles))
	for i, title := range titles {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, title))
	}
	return fmt.Sprintf("🗺️ Here are your booked trips:\n\n%s\n\nNeed help managing any of these? Just reply with \"Hi\" or visit Tripuva.com", strings.Join(lines, "\n"))
}
