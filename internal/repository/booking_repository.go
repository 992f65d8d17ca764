package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lakeside-hotel/service-booking/internal/domain"
	bookingDomain "github.com/lakeside-hotel/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID               uuid.UUID      `gorm:"type:char(36);primaryKey"`
	RoomID           uuid.UUID      `gorm:"type:char(36);not null;index"`
	CheckInDate      datatypes.Date `gorm:"not null;index"`
	CheckOutDate     datatypes.Date `gorm:"not null"`
	GuestFullName    string         `gorm:"size:200;not null"`
	GuestEmail       string         `gorm:"size:200"`
	NumOfAdults      int            `gorm:"not null"`
	NumOfChildren    int            `gorm:"not null"`
	ConfirmationCode string         `gorm:"size:20;uniqueIndex;not null"`
	CreatedAt        time.Time      `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindAll retrieves every booking ordered by check-in date.
func (r *GormBookingRepository) FindAll(ctx context.Context) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).Order("check_in_date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByConfirmationCode retrieves a booking by its confirmation code.
func (r *GormBookingRepository) FindByConfirmationCode(ctx context.Context, code string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", code)
		}
		return nil, fmt.Errorf("failed to find booking by confirmation code: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByRoomID retrieves the bookings of one room ordered by check-in date.
func (r *GormBookingRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("check_in_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// Save persists a new booking. The owning room row is locked for the duration of the
// transaction so concurrent saves on the same room see each other's inserts.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking, accept bookingDomain.AcceptFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room RoomModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", bk.RoomID()).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Room", bk.RoomID().String())
			}
			return fmt.Errorf("failed to lock room: %w", err)
		}

		var models []BookingModel
		if err := tx.Where("room_id = ?", bk.RoomID()).Order("check_in_date ASC").Find(&models).Error; err != nil {
			return fmt.Errorf("failed to load room bookings: %w", err)
		}

		if accept != nil {
			if err := accept(toDomainBookings(models)); err != nil {
				return err
			}
		}

		model := toBookingModel(bk)
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("booking confirmation code already in use")
			}
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
}

// Delete removes a booking by ID.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) BookingModel {
	return BookingModel{
		ID:               bk.ID(),
		RoomID:           bk.RoomID(),
		CheckInDate:      datatypes.Date(bk.CheckInDate()),
		CheckOutDate:     datatypes.Date(bk.CheckOutDate()),
		GuestFullName:    bk.GuestFullName(),
		GuestEmail:       bk.GuestEmail(),
		NumOfAdults:      bk.NumOfAdults(),
		NumOfChildren:    bk.NumOfChildren(),
		ConfirmationCode: bk.ConfirmationCode(),
		CreatedAt:        bk.CreatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.RoomID,
		time.Time(m.CheckInDate),
		time.Time(m.CheckOutDate),
		m.GuestFullName,
		m.GuestEmail,
		m.NumOfAdults,
		m.NumOfChildren,
		m.ConfirmationCode,
		m.CreatedAt,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
