package trips

import (
	"context"
	"strings"
	"sync"
)

// Repository defines the interface for package catalog and slot storage.
type Repository interface {
	// RemainingSlots reports the remaining capacity for a package+date.
	// Returns ErrTripNotFound when no departure entry exists.
	RemainingSlots(ctx context.Context, experienceCode, tripDate string) (int, error)

	// GetPackage looks a package up by title AND experience code; both
	// must match.
	GetPackage(ctx context.Context, title, experienceCode string) (*Package, error)

	// DecrementSlot consumes one slot for a package+date. Returns
	// ErrSlotUnavailable when the entry is missing or already at zero.
	DecrementSlot(ctx context.Context, experienceCode, tripDate string) error
}

type slotKey struct {
	code string
	date string
}

// InMemoryRepository is a Repository backed by process memory, used in
// tests and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	packages map[string]Package
	slots    map[slotKey]int
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		packages: make(map[string]Package),
		slots:    make(map[slotKey]int),
	}
}

// AddPackage registers a package in the catalog.
func (r *InMemoryRepository) AddPackage(pkg Package) {
	r.mu.Lock()
	r.packages[strings.ToUpper(pkg.ExperienceCode)] = pkg
	r.mu.Unlock()
}

// SetSlots sets the remaining capacity for a package+date.
func (r *InMemoryRepository) SetSlots(experienceCode, tripDate string, remaining int) {
	r.mu.Lock()
	r.slots[slotKey{strings.ToUpper(experienceCode), tripDate}] = remaining
	r.mu.Unlock()
}

// RemainingSlots reports remaining capacity for a package+date.
func (r *InMemoryRepository) RemainingSlots(ctx context.Context, experienceCode, tripDate string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	remaining, ok := r.slots[slotKey{strings.ToUpper(experienceCode), tripDate}]
	if !ok {
		return 0, ErrTripNotFound
	}
	return remaining, nil
}

// GetPackage looks up a package by title and experience code.
func (r *InMemoryRepository) GetPackage(ctx context.Context, title, experienceCode string) (*Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pkg, ok := r.packages[strings.ToUpper(experienceCode)]
	if !ok || pkg.Title != title {
		return nil, ErrPackageNotFound
	}
	return &pkg, nil
}

// DecrementSlot consumes one slot if capacity remains.
func (r *InMemoryRepository) DecrementSlot(ctx context.Context, experienceCode, tripDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{strings.ToUpper(experienceCode), tripDate}
	remaining, ok := r.slots[key]
	if !ok || remaining <= 0 {
		return ErrSlotUnavailable
	}
	r.slots[key] = remaining - 1
	return nil
}
