package services

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stayserve/marketplace-backend/pkg/notify"
)

// NotificationService dispatches guest notifications in the background
// over the configured channels. The queue is bounded; when it is full
// new notifications are dropped with a warning rather than blocking
// the booking path. Channel failures are logged and never propagate.
type NotificationService struct {
	email   notify.EmailGateway
	message notify.MessageGateway
	mode    string // "dev" logs instead of sending
	logger  *logrus.Logger

	queue  chan models.Notification
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewNotificationService creates a new NotificationService with a
// bounded queue of the given size
func NewNotificationService(
	email notify.EmailGateway,
	message notify.MessageGateway,
	mode string,
	queueSize int,
	logger *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		email:   email,
		message: message,
		mode:    mode,
		logger:  logger,
		queue:   make(chan models.Notification, queueSize),
		stopCh:  make(chan struct{}),
	}
}

// Start launches the dispatch workers
func (s *NotificationService) Start(workers int) {
	s.logger.WithField("workers", workers).Info("Starting notification dispatcher")

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Stop signals the workers and waits for in-flight dispatches to
// finish. Queued but undispatched notifications are dropped.
func (s *NotificationService) Stop() {
	s.logger.Info("Stopping notification dispatcher")
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("Notification dispatcher stopped")
}

// Enqueue queues a notification for background dispatch. Never blocks;
// when the queue is full the notification is dropped with a warning.
func (s *NotificationService) Enqueue(notification models.Notification) {
	select {
	case s.queue <- notification:
	default:
		s.logger.WithFields(logrus.Fields{
			"event":          notification.Event,
			"booking_number": notification.BookingNumber,
		}).Warn("Notification queue full, dropping notification")
	}
}

func (s *NotificationService) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case notification := <-s.queue:
			s.dispatch(notification)
		}
	}
}

// dispatch sends one notification over every applicable channel. Each
// channel succeeds or fails on its own.
func (s *NotificationService) dispatch(notification models.Notification) {
	subject, body := renderTemplate(notification)

	if s.mode != "production" {
		s.logger.WithFields(logrus.Fields{
			"event":          notification.Event,
			"booking_number": notification.BookingNumber,
			"subject":        subject,
		}).Info("Dev mode, notification logged instead of sent")
		return
	}

	if notification.GuestEmail != nil && *notification.GuestEmail != "" {
		s.sendEmail("guest", *notification.GuestEmail, subject, body, notification.BookingNumber)
	}
	if notification.ProviderEmail != "" {
		providerSubject, providerBody := renderProviderTemplate(notification)
		s.sendEmail("provider", notification.ProviderEmail, providerSubject, providerBody, notification.BookingNumber)
	}
	if notification.GuestPhone != "" {
		s.sendMessage("guest", notification.GuestPhone, body, notification.BookingNumber)
	}
	if notification.ProviderPhone != "" {
		_, providerBody := renderProviderTemplate(notification)
		s.sendMessage("provider", notification.ProviderPhone, providerBody, notification.BookingNumber)
	}
}

func (s *NotificationService) sendEmail(recipient, to, subject, body, bookingNumber string) {
	if err := s.email.SendEmail(to, subject, body); err != nil {
		s.logger.WithFields(logrus.Fields{
			"gateway":        s.email.GetName(),
			"recipient":      recipient,
			"booking_number": bookingNumber,
			"error":          err.Error(),
		}).Error("Failed to send email notification")
	}
}

func (s *NotificationService) sendMessage(recipient, phone, body, bookingNumber string) {
	if err := s.message.SendMessage(phone, body); err != nil {
		s.logger.WithFields(logrus.Fields{
			"gateway":        s.message.GetName(),
			"recipient":      recipient,
			"booking_number": bookingNumber,
			"error":          err.Error(),
		}).Error("Failed to send message notification")
	}
}

// categoryLabels are the guest-facing names used in notification text
var categoryLabels = map[models.ServiceCategory]string{
	models.CategoryLaundry:        "laundry",
	models.CategoryTransportation: "transport",
	models.CategoryDining:         "dining",
	models.CategoryHousekeeping:   "housekeeping",
	models.CategoryWellness:       "wellness",
}

func renderTemplate(n models.Notification) (subject, body string) {
	label, ok := categoryLabels[n.Category]
	if !ok {
		label = "service"
	}
	when := n.ScheduledAt.Format("Mon, 2 Jan 2006 at 15:04")

	switch n.Event {
	case models.NotificationBookingCreated:
		subject = fmt.Sprintf("Booking received: %s", n.BookingNumber)
		body = fmt.Sprintf(
			"Hi %s, we received your %s booking (%s) for %s. Total: %.2f %s.",
			n.GuestName, label, n.BookingNumber, when, n.TotalAmount, n.Currency,
		)
	case models.NotificationBookingConfirmed:
		subject = fmt.Sprintf("Booking confirmed: %s", n.BookingNumber)
		body = fmt.Sprintf(
			"Hi %s, your %s booking %s is confirmed for %s.",
			n.GuestName, label, n.BookingNumber, when,
		)
	case models.NotificationBookingCancelled:
		subject = fmt.Sprintf("Booking cancelled: %s", n.BookingNumber)
		body = fmt.Sprintf(
			"Hi %s, your %s booking %s has been cancelled.",
			n.GuestName, label, n.BookingNumber,
		)
	case models.NotificationBookingCompleted:
		subject = fmt.Sprintf("How was your %s?", label)
		body = fmt.Sprintf(
			"Hi %s, your booking %s is complete. We would love to hear your feedback.",
			n.GuestName, n.BookingNumber,
		)
	default:
		subject = fmt.Sprintf("Booking update: %s", n.BookingNumber)
		body = fmt.Sprintf("Hi %s, there is an update on booking %s.", n.GuestName, n.BookingNumber)
	}

	return subject, body
}

// renderProviderTemplate renders the provider-facing counterpart of a
// notification
func renderProviderTemplate(n models.Notification) (subject, body string) {
	label, ok := categoryLabels[n.Category]
	if !ok {
		label = "service"
	}
	when := n.ScheduledAt.Format("Mon, 2 Jan 2006 at 15:04")

	switch n.Event {
	case models.NotificationBookingCreated, models.NotificationBookingConfirmed:
		subject = fmt.Sprintf("New %s booking: %s", label, n.BookingNumber)
		body = fmt.Sprintf(
			"Booking %s for %s, scheduled %s. Guest: %s (%s).",
			n.BookingNumber, label, when, n.GuestName, n.GuestPhone,
		)
	case models.NotificationBookingCancelled:
		subject = fmt.Sprintf("Booking cancelled: %s", n.BookingNumber)
		body = fmt.Sprintf("Booking %s scheduled %s has been cancelled by the guest.", n.BookingNumber, when)
	default:
		subject = fmt.Sprintf("Booking update: %s", n.BookingNumber)
		body = fmt.Sprintf("There is an update on booking %s.", n.BookingNumber)
	}

	return subject, body
}
