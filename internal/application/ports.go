package application

import "context"

// EventPublisher publishes domain events. Implemented by events.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, key string, data interface{}) error
}

// BookingMetrics records booking outcomes. Implemented by metrics.Metrics.
type BookingMetrics interface {
	BookingCreated()
	BookingRejected(reason string)
}

// RoomTypeCache caches the distinct room type list.
type RoomTypeCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, types []string) error
	Invalidate(ctx context.Context) error
}

// NoopRoomTypeCache never hits. It is used when Redis is not configured.
type NoopRoomTypeCache struct{}

func (NoopRoomTypeCache) Get(context.Context) ([]string, bool, error) { return nil, false, nil }
func (NoopRoomTypeCache) Set(context.Context, []string) error         { return nil }
func (NoopRoomTypeCache) Invalidate(context.Context) error            { return nil }
