package intent

import (
	"regexp"
	"strings"
)

// BookingFields are the structured fields pulled out of a free-text
// booking request. All three are required together.
type BookingFields struct {
	PackageTitle   string
	ExperienceCode string
	TripDate       string
}

// Patterns for the three booking markers. The date is matched on lexical
// shape only (DD-MMM-YY); calendar validity is the catalog's problem.
var (
	packageTitlePattern   = regexp.MustCompile(`(?i)Trip:\s*(.+)`)
	experienceCodePattern = regexp.MustCompile(`(?i)\(?\s*Experience\s*code[:\s]*([A-Z0-9]+)\s*\)?`)
	tripDatePattern       = regexp.MustCompile(`(?i)Trip\s*Date[:\s]*([0-9]{2}-[A-Za-z]{3}-[0-9]{2})`)
)

// ExtractBookingFields parses a booking request out of free text. If any of
// the three markers is missing it reports no match; a partial booking is
// never returned.
func ExtractBookingFields(text string) (BookingFields, bool) {
	titleMatch := packageTitlePattern.FindStringSubmatch(text)
	codeMatch := experienceCodePattern.FindStringSubmatch(text)
	dateMatch := tripDatePattern.FindStringSubmatch(text)

	if titleMatch == nil || codeMatch == nil || dateMatch == nil {
		return BookingFields{}, false
	}

	return BookingFields{
		PackageTitle:   strings.TrimSpace(titleMatch[1]),
		ExperienceCode: strings.ToUpper(codeMatch[1]),
		TripDate:       dateMatch[1],
	}, true
}
