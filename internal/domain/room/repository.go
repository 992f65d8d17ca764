package room

import (
	"context"

	"github.com/google/uuid"
)

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	// FindByID returns the room with its bookings loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindAll returns every room with its bookings loaded.
	FindAll(ctx context.Context) ([]*Room, error)

	// FindByType returns rooms of the given type with their bookings loaded.
	FindByType(ctx context.Context, roomType string) ([]*Room, error)

	// FindDistinctTypes returns the distinct room types in ascending order.
	FindDistinctTypes(ctx context.Context) ([]string, error)

	// Exists reports whether a room with the given ID is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	Save(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error

	// Delete removes the room and its bookings. It reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
