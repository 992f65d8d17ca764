package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lakeside-hotel/service-booking/internal/application"
	"github.com/lakeside-hotel/service-booking/internal/platform/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("/all-bookings", h.ListAllBookings)
		bookings.GET("/confirmation/:code", h.GetByConfirmationCode)
		bookings.GET("/room/:roomId/bookings", h.GetBookingsForRoom)
		bookings.POST("/room/:roomId/booking", h.SaveBooking)
		bookings.DELETE("/booking/:bookingId/delete", h.CancelBooking)
	}
}

// ListAllBookings handles GET /bookings/all-bookings.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	result, err := h.service.ListAllBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetByConfirmationCode handles GET /bookings/confirmation/:code.
func (h *BookingHandler) GetByConfirmationCode(c *gin.Context) {
	result, err := h.service.FindByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBookingsForRoom handles GET /bookings/room/:roomId/bookings.
func (h *BookingHandler) GetBookingsForRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	result, err := h.service.GetBookingsForRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SaveBooking handles POST /bookings/room/:roomId/booking.
func (h *BookingHandler) SaveBooking(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	var req application.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	code, err := h.service.SaveBooking(c.Request.Context(), roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, application.BookingSavedDTO{BookingConfirmationCode: code})
}

// CancelBooking handles DELETE /bookings/booking/:bookingId/delete.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
