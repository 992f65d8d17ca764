package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "hotel.booking.events"
	TopicRoomEvents    = "hotel.room.events"
)

// Event types.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	RoomCreated      = "room.created"
	RoomUpdated      = "room.updated"
	RoomDeleted      = "room.deleted"
)

// CloudEvent is the JSON envelope written to every topic.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
}

// NewCloudEvent wraps data in an envelope with a fresh ID.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            raw,
	}, nil
}

// ParseCloudEvent decodes an envelope from a message value.
func ParseCloudEvent(value []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := json.Unmarshal(value, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to parse cloud event: %w", err)
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingCreatedEvent is published after a booking is stored.
type BookingCreatedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	RoomID           uuid.UUID `json:"room_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CheckInDate      string    `json:"check_in_date"`
	CheckOutDate     string    `json:"check_out_date"`
	GuestEmail       string    `json:"guest_email"`
	TotalGuests      int       `json:"total_guests"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published after a booking is deleted.
type BookingCancelledEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	RoomID           uuid.UUID `json:"room_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// RoomChangedEvent is published for room creation, update and deletion.
type RoomChangedEvent struct {
	RoomID     uuid.UUID `json:"room_id"`
	RoomType   string    `json:"room_type,omitempty"`
	RoomPrice  string    `json:"room_price,omitempty"`
	IsBooked   bool      `json:"is_booked"`
	OccurredAt time.Time `json:"occurred_at"`
}
