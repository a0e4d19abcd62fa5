package bookings

import "time"

// Payment states for the advance and the remaining balance.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

// Booking is one confirmed trip reservation. The advance is paid when the
// row is created; the remaining balance is settled offline later.
type Booking struct {
	ID              string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserPhone       string    `json:"user_phone"`
	ExperienceCode  string    `json:"experience_code"`
	PackageTitle    string    `json:"package_title"`
	CreatedAt       time.Time `json:"created_at"`
	AdvanceStatus   string    `json:"advance_status"`
	StartDate       string    `json:"start_date"`
	RemainingStatus string    `json:"remaining_status"`
}
