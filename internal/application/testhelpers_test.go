package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakeside-hotel/service-booking/internal/platform/database/databasetest"
	"github.com/lakeside-hotel/service-booking/internal/repository"
)

var pngPhoto = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type publishedEvent struct {
	Topic string
	Type  string
	Key   string
	Data  interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, eventType, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Type: eventType, Key: key, Data: data})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingMetrics struct {
	created  int
	rejected map[string]int
}

func (m *recordingMetrics) BookingCreated() { m.created++ }

func (m *recordingMetrics) BookingRejected(reason string) {
	if m.rejected == nil {
		m.rejected = make(map[string]int)
	}
	m.rejected[reason]++
}

type fixture struct {
	bookings  *BookingService
	rooms     *RoomService
	publisher *recordingPublisher
	metrics   *recordingMetrics
}

func newFixture(t *testing.T, cache RoomTypeCache) *fixture {
	t.Helper()
	db := databasetest.NewSQLite(t, repository.AutoMigrate)
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	if cache == nil {
		cache = NoopRoomTypeCache{}
	}
	f := &fixture{publisher: &recordingPublisher{}, metrics: &recordingMetrics{}}
	f.bookings = NewBookingService(bookingRepo, roomRepo, f.publisher, f.metrics, zap.NewNop())
	f.rooms = NewRoomService(roomRepo, cache, f.publisher, zap.NewNop())
	return f
}

func (f *fixture) addRoom(t *testing.T, roomType, price string, photo []byte) *RoomDTO {
	t.Helper()
	r, err := f.rooms.AddRoom(context.Background(), photo, roomType, decimal.RequireFromString(price))
	require.NoError(t, err)
	return r
}

func bookingRequest(in, out string) BookingRequest {
	return BookingRequest{
		CheckInDate:   in,
		CheckOutDate:  out,
		GuestFullName: "Jane Doe",
		GuestEmail:    "jane@example.com",
		NumOfAdults:   2,
		NumOfChildren: 1,
	}
}
