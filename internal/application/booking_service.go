package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lakeside-hotel/service-booking/internal/domain"
	bookingDomain "github.com/lakeside-hotel/service-booking/internal/domain/booking"
	roomDomain "github.com/lakeside-hotel/service-booking/internal/domain/room"
	"github.com/lakeside-hotel/service-booking/internal/events"
)

// Rejection reasons reported to BookingMetrics.
const (
	reasonInvalidDates     = "invalid_dates"
	reasonRoomNotAvailable = "room_not_available"
	reasonInvalidRequest   = "invalid_request"
)

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	rooms     roomDomain.RoomRepository
	publisher EventPublisher
	metrics   BookingMetrics
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	rooms roomDomain.RoomRepository,
	publisher EventPublisher,
	metrics BookingMetrics,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		rooms:     rooms,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// ListAllBookings returns every booking ordered by check-in date.
func (s *BookingService) ListAllBookings(ctx context.Context) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make(map[uuid.UUID]*roomDomain.Room)
	out := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		r, ok := rooms[bk.RoomID()]
		if !ok {
			r, err = s.lookupRoom(ctx, bk.RoomID())
			if err != nil {
				return nil, err
			}
			rooms[bk.RoomID()] = r
		}
		out = append(out, toBookingDTO(bk, r))
	}
	return out, nil
}

// GetBookingsForRoom returns the bookings of one room.
func (s *BookingService) GetBookingsForRoom(ctx context.Context, roomID uuid.UUID) ([]BookingDTO, error) {
	r, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		out = append(out, toBookingDTO(bk, r))
	}
	return out, nil
}

// FindByConfirmationCode looks a booking up by the code handed to the guest.
func (s *BookingService) FindByConfirmationCode(ctx context.Context, code string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r, err := s.lookupRoom(ctx, bk.RoomID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, r)
	return &result, nil
}

// SaveBooking validates and stores a booking for roomID and returns its confirmation code.
func (s *BookingService) SaveBooking(ctx context.Context, roomID uuid.UUID, req BookingRequest) (string, error) {
	exists, err := s.rooms.Exists(ctx, roomID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.NewNotFoundError("Room", roomID.String())
	}

	checkIn, err := parseDate("check-in", req.CheckInDate)
	if err != nil {
		s.metrics.BookingRejected(reasonInvalidRequest)
		return "", err
	}
	checkOut, err := parseDate("check-out", req.CheckOutDate)
	if err != nil {
		s.metrics.BookingRejected(reasonInvalidRequest)
		return "", err
	}

	bk, err := bookingDomain.NewBooking(roomID, checkIn, checkOut, req.GuestFullName, req.GuestEmail, req.NumOfAdults, req.NumOfChildren)
	if err != nil {
		s.metrics.BookingRejected(rejectionReason(err))
		return "", err
	}

	err = s.bookings.Save(ctx, bk, func(existing []*bookingDomain.Booking) error {
		return bookingDomain.Validate(bk, existing)
	})
	if err != nil {
		if domain.IsInvalidRequest(err) {
			s.metrics.BookingRejected(rejectionReason(err))
		}
		return "", err
	}

	s.metrics.BookingCreated()
	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_id", roomID.String()),
		zap.String("confirmation_code", bk.ConfirmationCode()),
	)

	s.publish(ctx, events.TopicBookingEvents, events.BookingCreated, bk.ID().String(), events.BookingCreatedEvent{
		BookingID:        bk.ID(),
		RoomID:           bk.RoomID(),
		ConfirmationCode: bk.ConfirmationCode(),
		CheckInDate:      bk.CheckInDate().Format(DateLayout),
		CheckOutDate:     bk.CheckOutDate().Format(DateLayout),
		GuestEmail:       bk.GuestEmail(),
		TotalGuests:      bk.TotalNumOfGuests(),
		OccurredAt:       time.Now().UTC(),
	})

	return bk.ConfirmationCode(), nil
}

// CancelBooking deletes a booking.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("confirmation_code", bk.ConfirmationCode()),
	)

	s.publish(ctx, events.TopicBookingEvents, events.BookingCancelled, bookingID.String(), events.BookingCancelledEvent{
		BookingID:        bk.ID(),
		RoomID:           bk.RoomID(),
		ConfirmationCode: bk.ConfirmationCode(),
		OccurredAt:       time.Now().UTC(),
	})
	return nil
}

// lookupRoom loads the owning room for a booking summary. A room deleted concurrently yields nil.
func (s *BookingService) lookupRoom(ctx context.Context, roomID uuid.UUID) (*roomDomain.Room, error) {
	r, err := s.rooms.FindByID(ctx, roomID)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	return r, err
}

func (s *BookingService) publish(ctx context.Context, topic, eventType, key string, data interface{}) {
	if err := s.publisher.Publish(ctx, topic, eventType, key, data); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewInvalidRequestError(fmt.Sprintf("invalid %s date %q, expected YYYY-MM-DD", field, value))
	}
	return t, nil
}

func rejectionReason(err error) string {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return reasonInvalidRequest
	}
	switch appErr.Message {
	case bookingDomain.ErrMsgDateOrder:
		return reasonInvalidDates
	case bookingDomain.ErrMsgRoomNotAvailable:
		return reasonRoomNotAvailable
	default:
		return reasonInvalidRequest
	}
}
