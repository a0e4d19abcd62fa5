package trips

// Package is one bookable trip package. AdvanceRupees is the upfront
// amount that holds a slot, in whole rupees.
type Package struct {
	ExperienceCode string `json:"experience_code"`
	Title          string `json:"title"`
	AdvanceRupees  int64  `json:"advance"`
}
