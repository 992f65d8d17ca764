package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakeside-hotel/service-booking/internal/application"
	"github.com/lakeside-hotel/service-booking/internal/events"
	"github.com/lakeside-hotel/service-booking/internal/platform/database/databasetest"
	"github.com/lakeside-hotel/service-booking/internal/repository"
)

var pngPhoto = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type nopMetrics struct{}

func (nopMetrics) BookingCreated()        {}
func (nopMetrics) BookingRejected(string) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := databasetest.NewSQLite(t, repository.AutoMigrate)
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	log := zap.NewNop()

	bookingService := application.NewBookingService(bookingRepo, roomRepo, events.NoopPublisher{}, nopMetrics{}, log)
	roomService := application.NewRoomService(roomRepo, application.NoopRoomTypeCache{}, events.NoopPublisher{}, log)

	router := gin.New()
	NewHealthHandler(db, "service-booking").RegisterRoutes(router)
	NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	NewRoomHandler(roomService, 1024).RegisterRoutes(&router.RouterGroup)
	return router
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, photo []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		part, err := w.CreateFormFile("photo", "room.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func addRoom(t *testing.T, router *gin.Engine, roomType, price string, photo []byte) application.RoomDTO {
	t.Helper()
	w := serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": roomType, "roomPrice": price}, photo))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var room application.RoomDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	return room
}

func postBooking(router *gin.Engine, roomID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookings/room/"+roomID.String()+"/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

const validBooking = `{"check_in_date":"2024-06-01","check_out_date":"2024-06-03",
	"guest_full_name":"Jane Doe","guest_email":"jane@example.com","num_of_adults":2,"num_of_children":0}`

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealth_DependencyDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := databasetest.NewSQLite(t, nil)
	router := gin.New()
	NewHealthHandler(db, "service-booking", DependencyCheck{
		Name: "redis",
		Ping: func(context.Context) error { return assert.AnError },
	}).RegisterRoutes(router)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}

func TestRoomLifecycle(t *testing.T) {
	router := newTestRouter(t)
	room := addRoom(t, router, "Deluxe", "100.00", pngPhoto)
	assert.Equal(t, "100.00", room.RoomPrice)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+room.ID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+room.ID.String()+"/photo", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngPhoto, w.Body.Bytes())
	assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/types", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Deluxe"]`, w.Body.String())

	w = serve(router, multipartRequest(t, http.MethodPut, "/rooms/update/"+room.ID.String(),
		map[string]string{"roomPrice": "150", "isBooked": "true"}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated application.RoomDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "150.00", updated.RoomPrice)
	assert.Equal(t, "Deluxe", updated.RoomType)
	assert.True(t, updated.IsBooked)
	assert.Equal(t, room.Photo, updated.Photo)

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/rooms/delete/room/"+room.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+room.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/rooms/delete/room/"+room.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAddRoom_BadInput(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": "Deluxe", "roomPrice": "abc"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomPrice": "10"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": "Deluxe", "roomPrice": "-5"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": "Deluxe", "roomPrice": "10"}, bytes.Repeat([]byte("a"), 2048)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "photo exceeds 1024 bytes")
}

func TestAddRoom_RejectsScriptablePhotoAndHugePrice(t *testing.T) {
	router := newTestRouter(t)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	w := serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": "Deluxe", "roomPrice": "100"}, svg))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image/svg+xml")

	w = serve(router, multipartRequest(t, http.MethodPost, "/rooms/add/new-room",
		map[string]string{"roomType": "Deluxe", "roomPrice": "1e20"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	room := addRoom(t, router, "Deluxe", "100", pngPhoto)
	w = serve(router, multipartRequest(t, http.MethodPut, "/rooms/update/"+room.ID.String(), nil, svg))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+room.ID.String()+"/photo", nil))
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngPhoto, w.Body.Bytes())
}

func TestRoomPhoto_NoneAndMissing(t *testing.T) {
	router := newTestRouter(t)
	room := addRoom(t, router, "Single", "40", nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+room.ID.String()+"/photo", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/"+uuid.NewString()+"/photo", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/room/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRooms_OnlyWithPhotos(t *testing.T) {
	router := newTestRouter(t)
	withPhoto := addRoom(t, router, "Deluxe", "100", pngPhoto)
	addRoom(t, router, "Single", "40", nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/rooms/all-rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []application.RoomDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, withPhoto.ID, rooms[0].ID)
}

func TestBookingLifecycle(t *testing.T) {
	router := newTestRouter(t)
	room := addRoom(t, router, "Deluxe", "100.00", nil)

	w := postBooking(router, room.ID, validBooking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved application.BookingSavedDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved.BookingConfirmationCode, 10)

	w = postBooking(router, room.ID, validBooking)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Room not available", w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/bookings/confirmation/"+saved.BookingConfirmationCode, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var booking application.BookingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "2024-06-01", booking.CheckInDate)
	assert.Equal(t, 2, booking.TotalNumOfGuests)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/bookings/room/"+room.ID.String()+"/bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var forRoom []application.BookingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forRoom))
	assert.Len(t, forRoom, 1)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/bookings/all-bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/bookings/booking/"+booking.ID.String()+"/delete", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/bookings/confirmation/"+saved.BookingConfirmationCode, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodDelete, "/bookings/booking/"+booking.ID.String()+"/delete", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveBooking_Errors(t *testing.T) {
	router := newTestRouter(t)
	room := addRoom(t, router, "Deluxe", "100.00", nil)

	w := postBooking(router, uuid.New(), validBooking)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postBooking(router, room.ID, `{"check_in_date":"2024-06-02","check_out_date":"2024-06-01",
		"guest_full_name":"Jane Doe","guest_email":"jane@example.com","num_of_adults":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Check-in date must come before check-out date", w.Body.String())

	w = postBooking(router, room.ID, `{"check_in_date":"2024-06-01","check_out_date":"2024-06-03",
		"guest_full_name":"Jane Doe","guest_email":"not-an-email","num_of_adults":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "GuestEmail")

	w = postBooking(router, room.ID, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/bookings/room/nope/booking", strings.NewReader(validBooking))
	req.Header.Set("Content-Type", "application/json")
	w = serve(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/bookings/room/"+uuid.NewString()+"/bookings", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAvailableRooms(t *testing.T) {
	router := newTestRouter(t)
	booked := addRoom(t, router, "Deluxe", "100.00", nil)
	free := addRoom(t, router, "Deluxe", "100.00", nil)
	require.Equal(t, http.StatusCreated, postBooking(router, booked.ID, validBooking).Code)

	w := serve(router, httptest.NewRequest(http.MethodGet,
		"/rooms/available-rooms?checkInDate=2024-06-02&checkOutDate=2024-06-04&roomType=Deluxe", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []application.RoomDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, free.ID, rooms[0].ID)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/rooms/available-rooms?checkInDate=junk&checkOutDate=2024-06-04", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet,
		"/rooms/available-rooms?checkInDate=2024-06-04&checkOutDate=2024-06-02", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
