package application

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookingDomain "github.com/lakeside-hotel/service-booking/internal/domain/booking"
	roomDomain "github.com/lakeside-hotel/service-booking/internal/domain/room"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// BookingRequest is the request DTO for reserving a room.
type BookingRequest struct {
	CheckInDate   string `json:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate  string `json:"check_out_date" binding:"required,datetime=2006-01-02"`
	GuestFullName string `json:"guest_full_name" binding:"required"`
	GuestEmail    string `json:"guest_email" binding:"required,email"`
	NumOfAdults   int    `json:"num_of_adults" binding:"min=1"`
	NumOfChildren int    `json:"num_of_children" binding:"min=0"`
}

// BookingDTO is the API representation of a booking.
type BookingDTO struct {
	ID                      uuid.UUID      `json:"id"`
	CheckInDate             string         `json:"check_in_date"`
	CheckOutDate            string         `json:"check_out_date"`
	GuestFullName           string         `json:"guest_full_name"`
	GuestEmail              string         `json:"guest_email"`
	NumOfAdults             int            `json:"num_of_adults"`
	NumOfChildren           int            `json:"num_of_children"`
	TotalNumOfGuests        int            `json:"total_num_of_guests"`
	Nights                  int            `json:"nights"`
	BookingConfirmationCode string         `json:"booking_confirmation_code"`
	Room                    *BookedRoomDTO `json:"room,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
}

// BookedRoomDTO is the room summary embedded in a booking.
type BookedRoomDTO struct {
	ID        uuid.UUID `json:"id"`
	RoomType  string    `json:"room_type"`
	RoomPrice string    `json:"room_price"`
}

// BookingSavedDTO is returned after a booking is stored.
type BookingSavedDTO struct {
	BookingConfirmationCode string `json:"booking_confirmation_code"`
}

// UpdateRoomRequest carries a partial room update. Nil fields and an empty photo are left unchanged.
type UpdateRoomRequest struct {
	RoomType  *string
	RoomPrice *decimal.Decimal
	Photo     []byte
	IsBooked  *bool
}

// RoomDTO is the API representation of a room.
type RoomDTO struct {
	ID        uuid.UUID        `json:"id"`
	RoomType  string           `json:"room_type"`
	RoomPrice string           `json:"room_price"`
	IsBooked  bool             `json:"is_booked"`
	Photo     string           `json:"photo,omitempty"`
	Bookings  []RoomBookingDTO `json:"bookings"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// RoomBookingDTO is the booking summary embedded in a room.
type RoomBookingDTO struct {
	ID                      uuid.UUID `json:"id"`
	CheckInDate             string    `json:"check_in_date"`
	CheckOutDate            string    `json:"check_out_date"`
	BookingConfirmationCode string    `json:"booking_confirmation_code"`
}

func formatPrice(p decimal.Decimal) string { return p.StringFixed(2) }

func toBookedRoomDTO(r *roomDomain.Room) *BookedRoomDTO {
	if r == nil {
		return nil
	}
	return &BookedRoomDTO{
		ID:        r.ID(),
		RoomType:  r.RoomType(),
		RoomPrice: formatPrice(r.RoomPrice()),
	}
}

func toBookingDTO(bk *bookingDomain.Booking, r *roomDomain.Room) BookingDTO {
	return BookingDTO{
		ID:                      bk.ID(),
		CheckInDate:             bk.CheckInDate().Format(DateLayout),
		CheckOutDate:            bk.CheckOutDate().Format(DateLayout),
		GuestFullName:           bk.GuestFullName(),
		GuestEmail:              bk.GuestEmail(),
		NumOfAdults:             bk.NumOfAdults(),
		NumOfChildren:           bk.NumOfChildren(),
		TotalNumOfGuests:        bk.TotalNumOfGuests(),
		Nights:                  bk.Nights(),
		BookingConfirmationCode: bk.ConfirmationCode(),
		Room:                    toBookedRoomDTO(r),
		CreatedAt:               bk.CreatedAt(),
	}
}

func toRoomDTO(r *roomDomain.Room) RoomDTO {
	bookings := make([]RoomBookingDTO, 0, len(r.Bookings()))
	for _, bk := range r.Bookings() {
		bookings = append(bookings, RoomBookingDTO{
			ID:                      bk.ID(),
			CheckInDate:             bk.CheckInDate().Format(DateLayout),
			CheckOutDate:            bk.CheckOutDate().Format(DateLayout),
			BookingConfirmationCode: bk.ConfirmationCode(),
		})
	}

	dto := RoomDTO{
		ID:        r.ID(),
		RoomType:  r.RoomType(),
		RoomPrice: formatPrice(r.RoomPrice()),
		IsBooked:  r.IsBooked(),
		Bookings:  bookings,
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
	if r.HasPhoto() {
		dto.Photo = base64.StdEncoding.EncodeToString(r.Photo())
	}
	return dto
}

func toRoomDTOs(rooms []*roomDomain.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomDTO(r))
	}
	return out
}
