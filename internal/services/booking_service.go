package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/database"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// BookingConfig holds booking behaviour configuration
type BookingConfig struct {
	DefaultCurrency   string
	CancelWindowHours int
	PlatformFeePct    float64
	PlatformMarkupPct float64
	FallbackTime      string
	Location          *time.Location
}

// DefaultBookingConfig returns default configuration
func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		DefaultCurrency:   "USD",
		CancelWindowHours: 24,
		PlatformFeePct:    5,
		PlatformMarkupPct: models.PlatformDefaultMarkupPct,
		FallbackTime:      "10:00",
		Location:          time.Local,
	}
}

// BookingService owns the booking lifecycle: creation with settlement
// pricing, cancellation, payment confirmation, completion and reviews
type BookingService struct {
	bookingRepo  *database.BookingRepository
	serviceRepo  *database.ServiceRepository
	providerRepo *database.ProviderRepository
	hotelRepo    *database.HotelRepository
	policyRepo   *database.MarkupPolicyRepository

	markupResolver *MarkupResolver
	calculator     *PriceCalculator
	gate           *AvailabilityGate
	normalizer     *TimeNormalizer
	cancelPolicy   *CancellationPolicy

	ratings       *RatingService
	notifications *NotificationService

	config BookingConfig
	clock  Clock
	logger *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	serviceRepo *database.ServiceRepository,
	providerRepo *database.ProviderRepository,
	hotelRepo *database.HotelRepository,
	policyRepo *database.MarkupPolicyRepository,
	ratings *RatingService,
	notifications *NotificationService,
	config BookingConfig,
	clock Clock,
	logger *logrus.Logger,
) *BookingService {
	if config.Location == nil {
		config.Location = time.Local
	}

	return &BookingService{
		bookingRepo:    bookingRepo,
		serviceRepo:    serviceRepo,
		providerRepo:   providerRepo,
		hotelRepo:      hotelRepo,
		policyRepo:     policyRepo,
		markupResolver: NewMarkupResolver(config.PlatformMarkupPct),
		calculator:     NewPriceCalculator(config.PlatformFeePct),
		gate:           NewAvailabilityGate(),
		normalizer:     NewTimeNormalizer(config.FallbackTime, clock),
		cancelPolicy:   NewCancellationPolicy(config.CancelWindowHours),
		ratings:        ratings,
		notifications:  notifications,
		config:         config,
		clock:          clock,
		logger:         logger,
	}
}

// ============================================================================
// CREATE BOOKING
// ============================================================================

// CreateBooking runs the full booking pipeline and persists the result
func (s *BookingService) CreateBooking(
	guestID string,
	req *models.CreateBookingRequest,
	clientIP, clientDevice string,
) (*models.BookingResponse, error) {
	// 1. Validate request shape
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	// 2. Load the service and its surroundings
	service, err := s.serviceRepo.GetByID(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if service == nil || !service.IsActive {
		return nil, NewNotFoundError("service", req.ServiceID)
	}

	hotel, err := s.hotelRepo.GetByID(service.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}
	if hotel == nil {
		return nil, NewNotFoundError("hotel", service.HotelID)
	}
	if !hotel.IsActive() {
		return nil, NewValidationError("hotel is not accepting bookings")
	}

	provider, err := s.providerRepo.GetByID(service.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if provider == nil {
		return nil, NewNotFoundError("provider", service.ProviderID)
	}
	if !provider.IsActive() {
		return nil, NewValidationError("provider is not accepting bookings")
	}

	// 3. Category-specific detail checks
	if service.Category == models.CategoryTransportation && req.Transport == nil {
		return nil, NewValidationError("transport bookings require transport details")
	}
	if service.Category == models.CategoryLaundry && req.Laundry == nil {
		return nil, NewValidationError("laundry bookings require an item list")
	}

	// 4. Resolve the requested instant and gate it
	scheduledAt, err := s.normalizer.Normalize(req.PreferredDate, req.PreferredTime, s.config.Location)
	if err != nil {
		return nil, NewValidationError("invalid preferred date: %s", req.PreferredDate)
	}

	now := s.clock.Now().In(s.config.Location)
	if scheduledAt.Before(now) {
		return nil, NewValidationError("requested time is in the past")
	}

	if !s.gate.IsOpen(service.Schedule, scheduledAt) {
		return nil, NewValidationError("service is not available at the requested time")
	}

	// 5. Settle the price
	markup := s.markupResolver.Resolve(provider, s.loadPolicy(hotel.ID), service.Category)
	pricing, err := s.calculator.Compute(service, req.Quantity, req.Express, markup)
	if err != nil {
		return nil, err
	}
	if pricing.Currency == "" {
		pricing.Currency = s.config.DefaultCurrency
	}

	// 6. Build and persist the booking
	number, err := models.GenerateBookingNumber(service.Category, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	status, paymentStatus := models.InitialBookingState(models.PaymentMethod(req.PaymentMethod))

	booking := &models.Booking{
		BookingNumber:    number,
		ServiceID:        service.ID,
		ProviderID:       provider.ID,
		HotelID:          hotel.ID,
		GuestID:          guestID,
		Category:         service.Category,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		GuestEmail:       req.GuestEmail,
		RoomNumber:       req.RoomNumber,
		ScheduledAt:      scheduledAt,
		PreferredTimeRaw: req.PreferredTime,
		Quantity:         req.Quantity,
		ExpressRequested: req.Express,
		Pricing:          pricing,
		PaymentMethod:    models.PaymentMethod(req.PaymentMethod),
		PaymentStatus:    paymentStatus,
		Status:           status,
		LaundryDetails:   req.Laundry,
		TransportDetails: req.Transport,
	}
	if clientIP != "" {
		booking.CreatedIP = &clientIP
	}
	if clientDevice != "" {
		booking.CreatedDevice = &clientDevice
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// 7. Bump counters; failures are logged, never surfaced, because
	// the booking itself is already committed
	if err := s.serviceRepo.IncrementTotalBookings(service.ID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service_id": service.ID,
			"error":      err.Error(),
		}).Warn("Failed to increment service booking counter")
	}
	if err := s.providerRepo.IncrementTotalBookings(provider.ID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"provider_id": provider.ID,
			"error":       err.Error(),
		}).Warn("Failed to increment provider booking counter")
	}

	// 8. Notify the guest
	event := models.NotificationBookingCreated
	if booking.Status == models.BookingStatusConfirmed {
		event = models.NotificationBookingConfirmed
	}
	s.enqueueNotification(booking, provider, service.Name, event)

	s.logger.WithFields(logrus.Fields{
		"booking_number": booking.BookingNumber,
		"category":       booking.Category,
		"total_amount":   pricing.TotalAmount,
		"markup_source":  pricing.MarkupSource,
	}).Info("Booking created")

	return s.buildResponse(booking), nil
}

// loadPolicy fetches the hotel's markup policy; a load failure is
// treated as no policy so the platform default applies
func (s *BookingService) loadPolicy(hotelID string) *models.MarkupPolicy {
	policy, err := s.policyRepo.GetByHotelID(hotelID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"hotel_id": hotelID,
			"error":    err.Error(),
		}).Warn("Failed to load markup policy, falling back to platform default")
		return nil
	}
	return policy
}

// ============================================================================
// LIFECYCLE OPERATIONS
// ============================================================================

// GetBooking retrieves a booking visible to the given guest
func (s *BookingService) GetBooking(bookingID, guestID string) (*models.Booking, error) {
	booking, err := s.loadGuestBooking(bookingID, guestID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetGuestBookings lists a guest's bookings, newest first
func (s *BookingService) GetGuestBookings(guestID string) ([]models.Booking, error) {
	return s.bookingRepo.GetByGuestID(guestID)
}

// GetHotelBookings lists a hotel's bookings, newest first
func (s *BookingService) GetHotelBookings(hotelID string) ([]models.Booking, error) {
	return s.bookingRepo.GetByHotelID(hotelID)
}

// GetProviderBookings lists a provider's bookings, newest first
func (s *BookingService) GetProviderBookings(providerID string) ([]models.Booking, error) {
	return s.bookingRepo.GetByProviderID(providerID)
}

// CancelBooking cancels a guest's booking if the cancellation window
// still allows it
func (s *BookingService) CancelBooking(bookingID, guestID string, req *models.CancelBookingRequest) (*models.Booking, error) {
	booking, err := s.loadGuestBooking(bookingID, guestID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(s.config.Location)
	if !booking.CanBeCancelled() {
		return nil, models.ErrInvalidTransition
	}
	if !s.cancelPolicy.Allows(booking, now) {
		return nil, fmt.Errorf(
			"bookings must be cancelled at least %d hours before the scheduled time: %w",
			s.config.CancelWindowHours, models.ErrInvalidTransition,
		)
	}

	if err := booking.Cancel(req.Reason, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.enqueueNotification(booking, nil, "", models.NotificationBookingCancelled)

	s.logger.WithField("booking_number", booking.BookingNumber).Info("Booking cancelled")

	return booking, nil
}

// ConfirmPayment applies an external gateway confirmation to an online
// booking
func (s *BookingService) ConfirmPayment(bookingID string, req *models.ConfirmPaymentRequest) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.PaymentMethod != models.PaymentMethodOnline {
		return nil, NewValidationError("booking does not use online payment")
	}

	now := s.clock.Now().In(s.config.Location)
	if err := booking.ConfirmPayment(req.PaymentReference, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(booking); err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	s.enqueueNotification(booking, nil, "", models.NotificationBookingConfirmed)

	s.logger.WithField("booking_number", booking.BookingNumber).Info("Payment confirmed")

	return booking, nil
}

// CompleteBooking marks a provider's confirmed booking as completed
func (s *BookingService) CompleteBooking(bookingID, providerID string) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID != providerID {
		return nil, NewNotFoundError("booking", bookingID)
	}

	now := s.clock.Now().In(s.config.Location)
	if err := booking.Complete(now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(booking); err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	s.enqueueNotification(booking, nil, "", models.NotificationBookingCompleted)

	s.logger.WithField("booking_number", booking.BookingNumber).Info("Booking completed")

	return booking, nil
}

// AddReview attaches the single guest review to a completed booking
// and triggers a provider rating recompute
func (s *BookingService) AddReview(bookingID, guestID string, req *models.AddReviewRequest) (*models.Booking, error) {
	booking, err := s.loadGuestBooking(bookingID, guestID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(s.config.Location)
	if err := booking.AddReview(req.Rating, req.Comment, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SetReview(booking.ID, booking.Review); err != nil {
		return nil, err
	}

	if err := s.ratings.Recompute(booking.ProviderID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"provider_id": booking.ProviderID,
			"error":       err.Error(),
		}).Warn("Failed to recompute provider rating")
	}

	s.logger.WithFields(logrus.Fields{
		"booking_number": booking.BookingNumber,
		"rating":         req.Rating,
	}).Info("Review added")

	return booking, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *BookingService) loadBooking(bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, NewNotFoundError("booking", bookingID)
	}
	return booking, nil
}

// loadGuestBooking loads a booking and hides it from guests who do not
// own it
func (s *BookingService) loadGuestBooking(bookingID, guestID string) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, NewNotFoundError("booking", bookingID)
	}
	return booking, nil
}

// enqueueNotification queues a booking notification. The provider may
// be passed when the caller already holds it; otherwise it is loaded
// so the provider channels can be addressed.
func (s *BookingService) enqueueNotification(booking *models.Booking, provider *models.Provider, serviceName string, event models.NotificationEvent) {
	if s.notifications == nil {
		return
	}

	notification := models.Notification{
		Event:         event,
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		Category:      booking.Category,
		ServiceName:   serviceName,
		GuestName:     booking.GuestName,
		GuestPhone:    booking.GuestPhone,
		GuestEmail:    booking.GuestEmail,
		ScheduledAt:   booking.ScheduledAt,
		TotalAmount:   booking.Pricing.TotalAmount,
		Currency:      booking.Pricing.Currency,
	}

	// The provider hears about new and cancelled work, not about
	// transitions they performed themselves
	if event != models.NotificationBookingCompleted {
		if provider == nil {
			loaded, err := s.providerRepo.GetByID(booking.ProviderID)
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"provider_id": booking.ProviderID,
					"error":       err.Error(),
				}).Warn("Failed to load provider contact for notification")
			}
			provider = loaded
		}
		if provider != nil {
			notification.ProviderName = provider.BusinessName
			notification.ProviderPhone = provider.ContactPhone
			notification.ProviderEmail = provider.ContactEmail
		}
	}

	s.notifications.Enqueue(notification)
}

func (s *BookingService) buildResponse(booking *models.Booking) *models.BookingResponse {
	return &models.BookingResponse{
		BookingID:       booking.ID,
		BookingNumber:   booking.BookingNumber,
		Status:          booking.Status,
		PaymentMethod:   booking.PaymentMethod,
		PaymentStatus:   booking.PaymentStatus,
		ScheduledAt:     booking.ScheduledAt,
		Pricing:         booking.Pricing,
		RequiresPayment: booking.RequiresPaymentAction(),
	}
}
