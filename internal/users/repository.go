package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CreateUserRequest carries the fields for lazily creating a user on the
// first confirmed payment.
type CreateUserRequest struct {
	FirstName string
	LastName  string
	Phone     string
}

// Repository defines the interface for user storage. Phone arguments are
// expected in normalized local form (see messaging.NormalizeLocal).
type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)

	// AppendBookedTitle adds a package title to the user's booked list,
	// preserving insertion order.
	AppendBookedTitle(ctx context.Context, userID, title string) error
}

// InMemoryRepository is a Repository backed by process memory, used in
// tests and local development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]*User
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byPhone: make(map[string]*User)}
}

// FindByPhone looks a user up by normalized phone number.
func (r *InMemoryRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byPhone[phone]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	copied.BookedTitles = append([]string(nil), user.BookedTitles...)
	return &copied, nil
}

// Create stores a new user.
func (r *InMemoryRepository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	user := &User{
		ID:        uuid.New().String(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	r.mu.Lock()
	r.byPhone[req.Phone] = user
	r.mu.Unlock()

	copied := *user
	return &copied, nil
}

// AppendBookedTitle adds a booked package title to the user's list.
func (r *InMemoryRepository) AppendBookedTitle(ctx context.Context, userID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.byPhone {
		if user.ID == userID {
			user.BookedTitles = append(user.BookedTitles, title)
			return nil
		}
	}
	return ErrUserNotFound
}
