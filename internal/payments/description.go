package payments

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// The payment-link description doubles as the booking correlation record:
// the confirmation webhook carries it back and the decoder below must
// recover exactly what the encoder wrote. Change both together or not at all.
const descriptionTemplate = "Payment for %s and date: %s and Exp code: %s"

var descriptionPattern = regexp.MustCompile(`(?i)^Payment for (.+?) and date: (.+?) and Exp code: (.+)$`)

// ErrMalformedDescription is returned when a confirmation's description
// does not match the encoding template.
var ErrMalformedDescription = errors.New("payment description does not match booking template")

// EncodeDescription packs the booking tuple into the description string
// sent to the payment provider.
func EncodeDescription(packageTitle, tripDate, experienceCode string) string {
	return fmt.Sprintf(descriptionTemplate, packageTitle, tripDate, experienceCode)
}

// DecodeDescription is the exact inverse of EncodeDescription.
func DecodeDescription(description string) (packageTitle, tripDate, experienceCode string, err error) {
	match := descriptionPattern.FindStringSubmatch(description)
	if match == nil {
		return "", "", "", ErrMalformedDescription
	}
	return strings.TrimSpace(match[1]), strings.TrimSpace(match[2]), strings.TrimSpace(match[3]), nil
}
