package bookings

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestInMemoryListByPhoneNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	first, err := repo.Create(ctx, CreateBookingRequest{
		UserID:         "u1",
		UserName:       "Asha Rao",
		UserPhone:      "9000000001",
		ExperienceCode: "GOA123",
		PackageTitle:   "Goa Beach Escape",
		StartDate:      "15-Jan-25",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.AdvanceStatus != StatusPaid || first.RemainingStatus != StatusPending {
		t.Fatalf("new booking statuses = %q/%q", first.AdvanceStatus, first.RemainingStatus)
	}

	// Force a later timestamp for ordering.
	time.Sleep(2 * time.Millisecond)
	if _, err := repo.Create(ctx, CreateBookingRequest{
		UserID:         "u1",
		UserName:       "Asha Rao",
		UserPhone:      "9000000001",
		ExperienceCode: "MAN999",
		PackageTitle:   "Manali Winter Trek",
		StartDate:      "20-Feb-25",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := repo.ListByPhone(ctx, "9000000001")
	if err != nil {
		t.Fatalf("ListByPhone returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list))
	}
	if list[0].PackageTitle != "Manali Winter Trek" {
		t.Fatalf("expected newest booking first, got %q", list[0].PackageTitle)
	}

	other, err := repo.ListByPhone(ctx, "9000000002")
	if err != nil {
		t.Fatalf("ListByPhone returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no bookings for unknown phone, got %d", len(other))
	}
}

func TestPostgresCreateBooking(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	created := time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs("u1", "Asha Rao", "9000000001", "GOA123", "Goa Beach Escape", StatusPaid, "15-Jan-25", StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("b1", created))

	repo := newPostgresRepositoryWithQuerier(mock)
	booking, err := repo.Create(context.Background(), CreateBookingRequest{
		UserID:         "u1",
		UserName:       "Asha Rao",
		UserPhone:      "9000000001",
		ExperienceCode: "GOA123",
		PackageTitle:   "Goa Beach Escape",
		StartDate:      "15-Jan-25",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.ID != "b1" || !booking.CreatedAt.Equal(created) {
		t.Fatalf("unexpected booking %+v", booking)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
