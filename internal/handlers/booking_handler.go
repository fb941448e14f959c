package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/middleware"
	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stayserve/marketplace-backend/internal/services"
	"github.com/stayserve/marketplace-backend/internal/utils"
	"github.com/stayserve/marketplace-backend/pkg/validator"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	phoneValidator *validator.PhoneValidator
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	bookingService *services.BookingService,
	phoneValidator *validator.PhoneValidator,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		phoneValidator: phoneValidator,
		logger:         logger,
	}
}

// ============================================================================
// CREATE BOOKING - POST /api/v1/bookings
// ============================================================================

// CreateBooking creates a new booking with settlement pricing
// @Summary Create a booking
// @Description Books a service, settling the price and markup at booking time
// @Tags Bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body models.CreateBookingRequest true "Booking request"
// @Success 201 {object} models.BookingResponse
// @Failure 400 {object} map[string]interface{} "Validation error or service unavailable"
// @Failure 404 {object} map[string]interface{} "Service not found"
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	// Sanitize the contact phone before the pipeline sees it
	phone, err := h.phoneValidator.Validate(req.GuestPhone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest_phone: " + err.Error()})
		return
	}
	req.GuestPhone = phone

	device := utils.ParseUserAgent(c.Request.UserAgent()).Summary()

	response, err := h.bookingService.CreateBooking(userCtx.UserID, &req, c.ClientIP(), device)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ============================================================================
// READ - GET /api/v1/bookings, GET /api/v1/bookings/:booking_id
// ============================================================================

// ListMyBookings lists the authenticated guest's bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.bookingService.GetGuestBookings(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetBooking retrieves one of the guest's bookings
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Param("booking_id"), userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ============================================================================
// LIFECYCLE - cancel / confirm payment / complete / review
// ============================================================================

// CancelBooking cancels a booking inside the cancellation window
// @Summary Cancel a booking
// @Tags Bookings
// @Param Authorization header string true "Bearer token"
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 400 {object} map[string]interface{} "Window elapsed or not cancellable"
// @Router /bookings/{booking_id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Param("booking_id"), userCtx.UserID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ConfirmPayment applies an online payment confirmation to a booking
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	booking, err := h.bookingService.ConfirmPayment(c.Param("booking_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CompleteBooking marks a provider's booking as completed
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	booking, err := h.bookingService.CompleteBooking(c.Param("booking_id"), userCtx.ProviderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// AddReview attaches the single guest review to a completed booking
// @Summary Review a completed booking
// @Tags Bookings
// @Param Authorization header string true "Bearer token"
// @Param booking_id path string true "Booking ID"
// @Param request body models.AddReviewRequest true "Review"
// @Success 200 {object} models.Booking
// @Failure 409 {object} map[string]interface{} "Already reviewed or not completed"
// @Router /bookings/{booking_id}/review [post]
func (h *BookingHandler) AddReview(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	booking, err := h.bookingService.AddReview(c.Param("booking_id"), userCtx.UserID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ============================================================================
// STAFF VIEWS
// ============================================================================

// ListHotelBookings lists bookings at the admin's hotel
func (h *BookingHandler) ListHotelBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.bookingService.GetHotelBookings(userCtx.HotelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// ListProviderBookings lists bookings assigned to the provider
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.bookingService.GetProviderBookings(userCtx.ProviderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}
