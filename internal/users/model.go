package users

import "strings"

// User is a WhatsApp customer. Phone is stored in local form, without the
// country-code prefix, so webhook lookups from either provider agree.
type User struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Phone        string   `json:"phone_number"`
	BookedTitles []string `json:"booked_packages"`
}

// SplitName breaks a display name into first and last parts. Everything
// after the first word becomes the last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
