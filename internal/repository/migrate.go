package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every model owned by this package.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RoomModel{}, &BookingModel{})
}
