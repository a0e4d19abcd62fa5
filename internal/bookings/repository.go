package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest carries the fields for inserting a booking on a
// confirmed payment.
type CreateBookingRequest struct {
	UserID         string
	UserName       string
	UserPhone      string
	ExperienceCode string
	PackageTitle   string
	StartDate      string
}

// Repository defines the interface for booking storage.
type Repository interface {
	Create(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]Booking, error)
}

// InMemoryRepository is a Repository backed by process memory, used in
// tests and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings []Booking
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Create stores a new booking with advance Paid and remaining Pending.
func (r *InMemoryRepository) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	booking := Booking{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserPhone:       req.UserPhone,
		ExperienceCode:  req.ExperienceCode,
		PackageTitle:    req.PackageTitle,
		CreatedAt:       time.Now().UTC(),
		AdvanceStatus:   StatusPaid,
		StartDate:       req.StartDate,
		RemainingStatus: StatusPending,
	}

	r.mu.Lock()
	r.bookings = append(r.bookings, booking)
	r.mu.Unlock()

	return &booking, nil
}

// ListByPhone returns the user's bookings, newest first.
func (r *InMemoryRepository) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Booking
	for _, b := range r.bookings {
		if b.UserPhone == phone {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
