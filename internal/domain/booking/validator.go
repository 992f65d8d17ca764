package booking

import (
	"time"

	"github.com/lakeside-hotel/service-booking/internal/domain"
)

const (
	ErrMsgDateOrder        = "Check-in date must come before check-out date"
	ErrMsgRoomNotAvailable = "Room not available"
)

// IsCheckInBeforeCheckOut returns false only when checkOut is strictly before checkIn.
func IsCheckInBeforeCheckOut(checkIn, checkOut time.Time) bool {
	return !checkOut.Before(checkIn)
}

// rangesOverlap treats both stays as half-open [checkIn, checkOut) ranges, so a
// check-out and a check-in on the same day do not collide.
func rangesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Overlaps reports whether two stays on the same room conflict.
func Overlaps(a, b *Booking) bool {
	return rangesOverlap(a.checkInDate, a.checkOutDate, b.checkInDate, b.checkOutDate)
}

// IsRoomAvailable returns false when candidate overlaps any of the existing bookings.
func IsRoomAvailable(candidate *Booking, existing []*Booking) bool {
	for _, bk := range existing {
		if bk.id == candidate.id {
			continue
		}
		if Overlaps(bk, candidate) {
			return false
		}
	}
	return true
}

// IsRangeAvailable returns false when [checkIn, checkOut) overlaps any existing booking.
func IsRangeAvailable(checkIn, checkOut time.Time, existing []*Booking) bool {
	checkIn, checkOut = DateOf(checkIn), DateOf(checkOut)
	for _, bk := range existing {
		if rangesOverlap(bk.checkInDate, bk.checkOutDate, checkIn, checkOut) {
			return false
		}
	}
	return true
}

// Validate applies every acceptance rule to candidate against the room's current bookings.
func Validate(candidate *Booking, existing []*Booking) error {
	if !IsCheckInBeforeCheckOut(candidate.checkInDate, candidate.checkOutDate) {
		return domain.NewInvalidRequestError(ErrMsgDateOrder)
	}
	if !IsRoomAvailable(candidate, existing) {
		return domain.NewInvalidRequestError(ErrMsgRoomNotAvailable)
	}
	return nil
}
