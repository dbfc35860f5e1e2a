package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func parseBookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/bookings
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	filter := services.BookingFilter{
		Status:    models.BookingStatus(c.Query("status")),
		RoomType:  models.RoomType(c.Query("roomType")),
		GuestName: c.Query("guestName"),
	}

	bookings, err := ctrl.BookingSvc.GetAll(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload services.CreateBookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields.", "details": err.Error()})
		return
	}

	booking, err := ctrl.BookingSvc.Create(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// PUT /api/bookings/:id
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var payload services.UpdateBookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := ctrl.BookingSvc.Update(id, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/bookings/:id — soft cancel, frees the date range.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "data": booking})
}

type paymentStatusPayload struct {
	PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	PaymentRef    *string              `json:"paymentRef"`
}

// PUT /api/bookings/:id/payment
func (ctrl *BookingController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var payload paymentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment status is required."})
		return
	}

	booking, err := ctrl.BookingSvc.SetPaymentStatus(id, payload.PaymentStatus, payload.PaymentRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /api/rooms/:roomNumber/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *BookingController) GetRoomAvailability(c *gin.Context) {
	roomNumber := c.Param("roomNumber")
	from := c.DefaultQuery("from", "0001-01-01")
	to := c.DefaultQuery("to", "9999-12-31")

	ranges, err := ctrl.BookingSvc.BookedRanges(roomNumber, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ranges == nil {
		ranges = []services.Interval{}
	}
	c.JSON(http.StatusOK, gin.H{"roomNumber": roomNumber, "bookedRanges": ranges})
}
