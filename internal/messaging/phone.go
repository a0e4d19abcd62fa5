package messaging

import "strings"

const defaultCountryPrefix = "91"

// NormalizeLocal reduces a phone number to its local digits: formatting and
// the +91 country prefix are stripped. Users and bookings are keyed on this
// form so the messaging and payment webhooks agree on identity.
func NormalizeLocal(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 && strings.HasPrefix(digits, defaultCountryPrefix) {
		digits = digits[len(defaultCountryPrefix):]
	}
	return digits
}

// TruncateMessage caps outbound message bodies at the provider's 1024
// character limit, marking the cut with a trailing ellipsis.
func TruncateMessage(text string) string {
	const limit = 1024
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}
