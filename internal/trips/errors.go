package trips

import "errors"

var (
	// ErrTripNotFound is returned when no departure exists for the
	// requested package and date, or its slots are exhausted.
	ErrTripNotFound = errors.New("no matching trip found")

	// ErrPackageNotFound is returned when no package matches both title
	// and experience code.
	ErrPackageNotFound = errors.New("package not found")

	// ErrSlotUnavailable is returned by DecrementSlot when there is no
	// remaining capacity to consume.
	ErrSlotUnavailable = errors.New("no remaining slots")
)
