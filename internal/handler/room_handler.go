package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakeside-hotel/service-booking/internal/application"
	"github.com/lakeside-hotel/service-booking/internal/platform/response"
)

// Multipart and query field names.
const (
	fieldPhoto        = "photo"
	fieldRoomType     = "roomType"
	fieldRoomPrice    = "roomPrice"
	fieldIsBooked     = "isBooked"
	queryCheckInDate  = "checkInDate"
	queryCheckOutDate = "checkOutDate"
	queryRoomType     = "roomType"
)

// RoomHandler handles HTTP requests for room operations.
type RoomHandler struct {
	service       *application.RoomService
	maxPhotoBytes int64
}

// NewRoomHandler creates a new RoomHandler. Uploaded photos larger than maxPhotoBytes are rejected.
func NewRoomHandler(service *application.RoomService, maxPhotoBytes int64) *RoomHandler {
	return &RoomHandler{service: service, maxPhotoBytes: maxPhotoBytes}
}

// RegisterRoutes registers all room routes on the given router group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/rooms")
	{
		rooms.POST("/add/new-room", h.AddRoom)
		rooms.GET("/room/types", h.ListRoomTypes)
		rooms.GET("/room/:id", h.GetRoom)
		rooms.GET("/room/:id/photo", h.GetRoomPhoto)
		rooms.GET("/all-rooms", h.ListRooms)
		rooms.GET("/available-rooms", h.ListAvailableRooms)
		rooms.DELETE("/delete/room/:id", h.DeleteRoom)
		rooms.PUT("/update/:id", h.UpdateRoom)
	}
}

// AddRoom handles POST /rooms/add/new-room (multipart: photo, roomType, roomPrice).
func (h *RoomHandler) AddRoom(c *gin.Context) {
	photo, err := h.readPhoto(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	roomType, ok := c.GetPostForm(fieldRoomType)
	if !ok {
		response.BadRequest(c, "roomType is required")
		return
	}
	rawPrice, ok := c.GetPostForm(fieldRoomPrice)
	if !ok {
		response.BadRequest(c, "roomPrice is required")
		return
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid roomPrice %q", rawPrice))
		return
	}

	result, err := h.service.AddRoom(c.Request.Context(), photo, roomType, price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListRoomTypes handles GET /rooms/room/types.
func (h *RoomHandler) ListRoomTypes(c *gin.Context) {
	result, err := h.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRoom handles GET /rooms/room/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	result, err := h.service.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRoomPhoto handles GET /rooms/room/:id/photo. A room without a photo yields 204.
func (h *RoomHandler) GetRoomPhoto(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	photo, contentType, err := h.service.GetRoomPhoto(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(photo) == 0 {
		response.NoContent(c)
		return
	}
	c.Header("Content-Security-Policy", "default-src 'none'")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, contentType, photo)
}

// ListRooms handles GET /rooms/all-rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	result, err := h.service.ListRoomsWithPhotos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListAvailableRooms handles GET /rooms/available-rooms.
func (h *RoomHandler) ListAvailableRooms(c *gin.Context) {
	checkIn, err := time.Parse(application.DateLayout, c.Query(queryCheckInDate))
	if err != nil {
		response.BadRequest(c, "checkInDate must be a date in YYYY-MM-DD format")
		return
	}
	checkOut, err := time.Parse(application.DateLayout, c.Query(queryCheckOutDate))
	if err != nil {
		response.BadRequest(c, "checkOutDate must be a date in YYYY-MM-DD format")
		return
	}

	result, err := h.service.ListAvailableRooms(c.Request.Context(), checkIn, checkOut, c.Query(queryRoomType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteRoom handles DELETE /rooms/delete/room/:id.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), roomID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateRoom handles PUT /rooms/update/:id. Every multipart field is optional.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	photo, err := h.readPhoto(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req := application.UpdateRoomRequest{Photo: photo}

	if v, ok := c.GetPostForm(fieldRoomType); ok {
		req.RoomType = &v
	}
	if v, ok := c.GetPostForm(fieldRoomPrice); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("invalid roomPrice %q", v))
			return
		}
		req.RoomPrice = &price
	}
	if v, ok := c.GetPostForm(fieldIsBooked); ok {
		booked, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("invalid isBooked %q", v))
			return
		}
		req.IsBooked = &booked
	}

	result, err := h.service.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// readPhoto returns the uploaded photo, or nil when the request carries none.
func (h *RoomHandler) readPhoto(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(fieldPhoto)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	if fh.Size > h.maxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", h.maxPhotoBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if int64(len(data)) > h.maxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", h.maxPhotoBytes)
	}
	return data, nil
}

func parseRoomID(c *gin.Context) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return uuid.Nil, false
	}
	return roomID, true
}
