package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lakeside-hotel/service-booking/internal/domain"
	bookingDomain "github.com/lakeside-hotel/service-booking/internal/domain/booking"
	roomDomain "github.com/lakeside-hotel/service-booking/internal/domain/room"
	"github.com/lakeside-hotel/service-booking/internal/events"
)

// RoomService is the application service orchestrating room use cases.
type RoomService struct {
	rooms     roomDomain.RoomRepository
	cache     RoomTypeCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(
	rooms roomDomain.RoomRepository,
	cache RoomTypeCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		rooms:     rooms,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// AddRoom creates a room. An empty photo means none was uploaded.
func (s *RoomService) AddRoom(ctx context.Context, photo []byte, roomType string, roomPrice decimal.Decimal) (*RoomDTO, error) {
	r, err := roomDomain.NewRoom(roomType, roomPrice, photo)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", r.ID().String()),
		zap.String("room_type", r.RoomType()),
	)
	s.roomsChanged(ctx, events.RoomCreated, r)

	result := toRoomDTO(r)
	return &result, nil
}

// ListRoomTypes returns the distinct room types in ascending order.
func (s *RoomService) ListRoomTypes(ctx context.Context) ([]string, error) {
	types, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("room type cache read failed", zap.Error(err))
	}
	if hit {
		return types, nil
	}

	types, err = s.rooms.FindDistinctTypes(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, types); err != nil {
		s.logger.Warn("room type cache write failed", zap.Error(err))
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// GetRoomPhoto returns the room's photo bytes and sniffed content type. Both are empty
// when no photo was uploaded.
func (s *RoomService) GetRoomPhoto(ctx context.Context, roomID uuid.UUID) ([]byte, string, error) {
	r, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, "", err
	}
	return r.Photo(), r.PhotoContentType(), nil
}

// GetRoomByID returns a single room.
func (s *RoomService) GetRoomByID(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	r, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	result := toRoomDTO(r)
	return &result, nil
}

// ListAllRooms returns every room.
func (s *RoomService) ListAllRooms(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toRoomDTOs(rooms), nil
}

// ListRoomsWithPhotos returns the rooms that have a photo.
func (s *RoomService) ListRoomsWithPhotos(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	withPhotos := make([]*roomDomain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.HasPhoto() {
			withPhotos = append(withPhotos, r)
		}
	}
	return toRoomDTOs(withPhotos), nil
}

// ListAvailableRooms returns rooms of roomType (any type when empty) free for the whole range.
func (s *RoomService) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]RoomDTO, error) {
	if !bookingDomain.IsCheckInBeforeCheckOut(checkIn, checkOut) {
		return nil, domain.NewInvalidRequestError(bookingDomain.ErrMsgDateOrder)
	}

	var (
		rooms []*roomDomain.Room
		err   error
	)
	if roomType == "" {
		rooms, err = s.rooms.FindAll(ctx)
	} else {
		rooms, err = s.rooms.FindByType(ctx, roomType)
	}
	if err != nil {
		return nil, err
	}

	checkIn, checkOut = bookingDomain.DateOf(checkIn), bookingDomain.DateOf(checkOut)
	available := make([]*roomDomain.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsAvailableBetween(checkIn, checkOut) {
			available = append(available, r)
		}
	}
	return toRoomDTOs(available), nil
}

// DeleteRoom removes a room and its bookings. Deleting a missing room is a no-op.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	deleted, err := s.rooms.Delete(ctx, roomID)
	if err != nil {
		return err
	}
	if !deleted {
		s.logger.Debug("delete of unknown room ignored", zap.String("room_id", roomID.String()))
		return nil
	}

	s.logger.Info("room deleted", zap.String("room_id", roomID.String()))
	s.invalidateRoomTypes(ctx)
	s.publish(ctx, events.RoomDeleted, roomID.String(), events.RoomChangedEvent{
		RoomID:     roomID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// UpdateRoom applies a partial update to a room.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	r, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err := r.Update(roomDomain.UpdateParams{
		RoomType:  req.RoomType,
		RoomPrice: req.RoomPrice,
		Photo:     req.Photo,
		IsBooked:  req.IsBooked,
	}); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("room updated", zap.String("room_id", roomID.String()))
	s.roomsChanged(ctx, events.RoomUpdated, r)

	result := toRoomDTO(r)
	return &result, nil
}

func (s *RoomService) roomsChanged(ctx context.Context, eventType string, r *roomDomain.Room) {
	s.invalidateRoomTypes(ctx)
	s.publish(ctx, eventType, r.ID().String(), events.RoomChangedEvent{
		RoomID:     r.ID(),
		RoomType:   r.RoomType(),
		RoomPrice:  formatPrice(r.RoomPrice()),
		IsBooked:   r.IsBooked(),
		OccurredAt: time.Now().UTC(),
	})
}

func (s *RoomService) invalidateRoomTypes(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("room type cache invalidation failed", zap.Error(err))
	}
}

func (s *RoomService) publish(ctx context.Context, eventType, key string, data interface{}) {
	if err := s.publisher.Publish(ctx, events.TopicRoomEvents, eventType, key, data); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
