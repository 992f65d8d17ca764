package room

import (
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakeside-hotel/service-booking/internal/domain"
	"github.com/lakeside-hotel/service-booking/internal/domain/booking"
)

// MaxRoomPrice is the largest price the decimal(12,2) column holds.
var MaxRoomPrice = decimal.RequireFromString("9999999999.99")

// allowedPhotoTypes are the raster formats served back inline.
var allowedPhotoTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Room is the aggregate root for a bookable hotel room.
type Room struct {
	id        uuid.UUID
	roomType  string
	roomPrice decimal.Decimal
	photo     []byte
	isBooked  bool
	bookings  []*booking.Booking
	createdAt time.Time
	updatedAt time.Time
}

// UpdateParams carries a partial update. Nil (or empty, for Photo) fields are left unchanged.
type UpdateParams struct {
	RoomType  *string
	RoomPrice *decimal.Decimal
	Photo     []byte
	IsBooked  *bool
}

// NewRoom creates a room. An empty photo means no photo was uploaded.
func NewRoom(roomType string, roomPrice decimal.Decimal, photo []byte) (*Room, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return nil, domain.NewInvalidRequestError("room type is required")
	}
	if err := validatePrice(roomPrice); err != nil {
		return nil, err
	}
	if err := ValidatePhoto(photo); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Room{
		id:        uuid.New(),
		roomType:  roomType,
		roomPrice: roomPrice,
		photo:     nilIfEmpty(photo),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	roomType string,
	roomPrice decimal.Decimal,
	photo []byte,
	isBooked bool,
	bookings []*booking.Booking,
	createdAt, updatedAt time.Time,
) *Room {
	sorted := make([]*booking.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckInDate().Before(sorted[j].CheckInDate())
	})
	return &Room{
		id:        id,
		roomType:  roomType,
		roomPrice: roomPrice,
		photo:     nilIfEmpty(photo),
		isBooked:  isBooked,
		bookings:  sorted,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) RoomType() string           { return r.roomType }
func (r *Room) RoomPrice() decimal.Decimal { return r.roomPrice }
func (r *Room) Photo() []byte              { return r.photo }
func (r *Room) IsBooked() bool             { return r.isBooked }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }

// Bookings returns the room's bookings ordered by check-in date.
func (r *Room) Bookings() []*booking.Booking { return r.bookings }

// HasPhoto reports whether a photo has been uploaded.
func (r *Room) HasPhoto() bool { return len(r.photo) > 0 }

// PhotoContentType sniffs the MIME type of the stored photo.
func (r *Room) PhotoContentType() string {
	if !r.HasPhoto() {
		return ""
	}
	return mimetype.Detect(r.photo).String()
}

// --- Behavior ---

// Update applies a partial update to the room.
func (r *Room) Update(params UpdateParams) error {
	if params.RoomType != nil {
		roomType := strings.TrimSpace(*params.RoomType)
		if roomType == "" {
			return domain.NewInvalidRequestError("room type cannot be blank")
		}
		r.roomType = roomType
	}
	if params.RoomPrice != nil {
		if err := validatePrice(*params.RoomPrice); err != nil {
			return err
		}
		r.roomPrice = *params.RoomPrice
	}
	if len(params.Photo) > 0 {
		if err := ValidatePhoto(params.Photo); err != nil {
			return err
		}
		r.photo = params.Photo
	}
	if params.IsBooked != nil {
		r.isBooked = *params.IsBooked
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// IsAvailableBetween reports whether no booking of this room overlaps [checkIn, checkOut).
func (r *Room) IsAvailableBetween(checkIn, checkOut time.Time) bool {
	return booking.IsRangeAvailable(checkIn, checkOut, r.bookings)
}

// ValidatePhoto accepts an empty upload or any image format.
func ValidatePhoto(photo []byte) error {
	if len(photo) == 0 {
		return nil
	}
	if mt := mimetype.Detect(photo); !mimetype.EqualsAny(mt.String(), allowedPhotoTypes...) {
		return domain.NewInvalidRequestError("photo must be a PNG, JPEG, GIF or WebP image, got " + mt.String())
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewInvalidRequestError("room price cannot be negative")
	}
	if price.Round(2).GreaterThan(MaxRoomPrice) {
		return domain.NewInvalidRequestError("room price cannot exceed " + MaxRoomPrice.StringFixed(2))
	}
	return nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
