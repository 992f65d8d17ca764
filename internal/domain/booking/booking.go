package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lakeside-hotel/service-booking/internal/domain"
)

const (
	confirmationCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	confirmationCodeLength = 10
)

// Booking is the aggregate root for a guest's stay in a room.
type Booking struct {
	id               uuid.UUID
	roomID           uuid.UUID
	checkInDate      time.Time
	checkOutDate     time.Time
	guestFullName    string
	guestEmail       string
	numOfAdults      int
	numOfChildren    int
	confirmationCode string
	createdAt        time.Time
}

// generateConfirmationCode creates a random code from an alphabet without look-alike characters.
func generateConfirmationCode() (string, error) {
	result := make([]byte, confirmationCodeLength)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(confirmationCodeChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		result[i] = confirmationCodeChars[n.Int64()]
	}
	return string(result), nil
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewBooking creates a booking for the given room with a freshly generated confirmation code.
func NewBooking(
	roomID uuid.UUID,
	checkInDate time.Time,
	checkOutDate time.Time,
	guestFullName string,
	guestEmail string,
	numOfAdults int,
	numOfChildren int,
) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewInvalidRequestError("room ID is required")
	}
	checkIn, checkOut := DateOf(checkInDate), DateOf(checkOutDate)
	if !IsCheckInBeforeCheckOut(checkIn, checkOut) {
		return nil, domain.NewInvalidRequestError(ErrMsgDateOrder)
	}
	guestFullName = strings.TrimSpace(guestFullName)
	if guestFullName == "" {
		return nil, domain.NewInvalidRequestError("guest full name is required")
	}
	if numOfAdults < 1 {
		return nil, domain.NewInvalidRequestError("at least one adult is required")
	}
	if numOfChildren < 0 {
		return nil, domain.NewInvalidRequestError("number of children cannot be negative")
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, domain.NewInternalError("failed to create booking", err)
	}

	return &Booking{
		id:               uuid.New(),
		roomID:           roomID,
		checkInDate:      checkIn,
		checkOutDate:     checkOut,
		guestFullName:    guestFullName,
		guestEmail:       strings.TrimSpace(guestEmail),
		numOfAdults:      numOfAdults,
		numOfChildren:    numOfChildren,
		confirmationCode: code,
		createdAt:        time.Now().UTC(),
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	roomID uuid.UUID,
	checkInDate time.Time,
	checkOutDate time.Time,
	guestFullName string,
	guestEmail string,
	numOfAdults int,
	numOfChildren int,
	confirmationCode string,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		roomID:           roomID,
		checkInDate:      DateOf(checkInDate),
		checkOutDate:     DateOf(checkOutDate),
		guestFullName:    guestFullName,
		guestEmail:       guestEmail,
		numOfAdults:      numOfAdults,
		numOfChildren:    numOfChildren,
		confirmationCode: confirmationCode,
		createdAt:        createdAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomID returns the identifier of the room this booking belongs to.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// CheckInDate returns the arrival date.
func (b *Booking) CheckInDate() time.Time { return b.checkInDate }

// CheckOutDate returns the departure date.
func (b *Booking) CheckOutDate() time.Time { return b.checkOutDate }

func (b *Booking) GuestFullName() string { return b.guestFullName }
func (b *Booking) GuestEmail() string    { return b.guestEmail }
func (b *Booking) NumOfAdults() int      { return b.numOfAdults }
func (b *Booking) NumOfChildren() int    { return b.numOfChildren }

// TotalNumOfGuests returns adults plus children.
func (b *Booking) TotalNumOfGuests() int { return b.numOfAdults + b.numOfChildren }

// ConfirmationCode returns the code handed to the guest.
func (b *Booking) ConfirmationCode() string { return b.confirmationCode }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// Nights returns the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.checkOutDate.Sub(b.checkInDate).Hours() / 24)
}
