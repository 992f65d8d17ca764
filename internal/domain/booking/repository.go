package booking

import (
	"context"

	"github.com/google/uuid"
)

// AcceptFunc decides whether a candidate may be stored given the room's current bookings.
type AcceptFunc func(existing []*Booking) error

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindAll retrieves every booking ordered by check-in date.
	FindAll(ctx context.Context) ([]*Booking, error)

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByConfirmationCode retrieves a booking by the code handed to the guest.
	FindByConfirmationCode(ctx context.Context, code string) (*Booking, error)

	// FindByRoomID retrieves the bookings of one room ordered by check-in date.
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*Booking, error)

	// Save persists a new booking. accept runs inside the write transaction while the
	// owning room is locked; a non-nil error aborts the insert and is returned as is.
	Save(ctx context.Context, booking *Booking, accept AcceptFunc) error

	// Delete removes a booking, failing with a not-found error when it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
