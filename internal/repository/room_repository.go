package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lakeside-hotel/service-booking/internal/domain"
	bookingDomain "github.com/lakeside-hotel/service-booking/internal/domain/booking"
	roomDomain "github.com/lakeside-hotel/service-booking/internal/domain/room"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey"`
	RoomType  string          `gorm:"size:100;not null;index"`
	RoomPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Photo     []byte
	IsBooked  bool           `gorm:"not null"`
	Bookings  []BookingModel `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName sets the table name.
func (RoomModel) TableName() string { return "rooms" }

// GormRoomRepository implements RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) withBookings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Bookings", func(db *gorm.DB) *gorm.DB {
		return db.Order("check_in_date ASC")
	})
}

// FindByID returns a single room with its bookings.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.withBookings(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toRoomDomain(&model), nil
}

// FindAll returns every room ordered by creation time.
func (r *GormRoomRepository) FindAll(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.withBookings(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return toRoomDomains(models), nil
}

// FindByType returns the rooms of one type ordered by creation time.
func (r *GormRoomRepository) FindByType(ctx context.Context, roomType string) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.withBookings(ctx).
		Where("room_type = ?", roomType).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms by type: %w", err)
	}
	return toRoomDomains(models), nil
}

// FindDistinctTypes returns every distinct room type in ascending order.
func (r *GormRoomRepository) FindDistinctTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Distinct("room_type").
		Order("room_type ASC").
		Pluck("room_type", &types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

// Exists reports whether a room with the given ID is stored.
func (r *GormRoomRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}
	return count > 0, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, room *roomDomain.Room) error {
	model := toRoomModel(room)
	if err := r.db.WithContext(ctx).Omit("Bookings").Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists the mutable columns of an existing room.
func (r *GormRoomRepository) Update(ctx context.Context, room *roomDomain.Room) error {
	model := toRoomModel(room)
	// RowsAffected is not checked: MySQL reports zero for an update that changes nothing.
	if err := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"room_type":  model.RoomType,
			"room_price": model.RoomPrice,
			"photo":      model.Photo,
			"is_booked":  model.IsBooked,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

// Delete removes the room and its bookings in one transaction.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&BookingModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room bookings: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&RoomModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete room: %w", result.Error)
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func toRoomModel(room *roomDomain.Room) RoomModel {
	return RoomModel{
		ID:        room.ID(),
		RoomType:  room.RoomType(),
		RoomPrice: room.RoomPrice(),
		Photo:     room.Photo(),
		IsBooked:  room.IsBooked(),
		CreatedAt: room.CreatedAt(),
		UpdatedAt: room.UpdatedAt(),
	}
}

func toRoomDomain(m *RoomModel) *roomDomain.Room {
	var bookings []*bookingDomain.Booking
	if len(m.Bookings) > 0 {
		bookings = toDomainBookings(m.Bookings)
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.RoomType,
		m.RoomPrice,
		m.Photo,
		m.IsBooked,
		bookings,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toRoomDomains(models []RoomModel) []*roomDomain.Room {
	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		rooms[i] = toRoomDomain(&models[i])
	}
	return rooms
}
