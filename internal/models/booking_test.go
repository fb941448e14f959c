package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func TestInitialBookingState(t *testing.T) {
	status, payment := InitialBookingState(PaymentMethodCash)
	assert.Equal(t, BookingStatusConfirmed, status)
	assert.Equal(t, PaymentStatusPaid, payment)

	status, payment = InitialBookingState(PaymentMethodOnline)
	assert.Equal(t, BookingStatusPending, status)
	assert.Equal(t, PaymentStatusPending, payment)
}

func TestCancel(t *testing.T) {
	reason := "change of plans"

	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed} {
		booking := &Booking{Status: status}
		require.NoError(t, booking.Cancel(&reason, testNow))
		assert.Equal(t, BookingStatusCancelled, booking.Status)
		require.NotNil(t, booking.CancelledAt)
		assert.Equal(t, testNow, *booking.CancelledAt)
		assert.Equal(t, &reason, booking.CancellationReason)
	}

	for _, status := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled} {
		booking := &Booking{Status: status}
		assert.ErrorIs(t, booking.Cancel(nil, testNow), ErrInvalidTransition)
	}
}

func TestConfirmPayment(t *testing.T) {
	booking := &Booking{
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
		PaymentMethod: PaymentMethodOnline,
	}

	require.NoError(t, booking.ConfirmPayment("pay_123", testNow))
	assert.Equal(t, BookingStatusConfirmed, booking.Status)
	assert.Equal(t, PaymentStatusPaid, booking.PaymentStatus)
	require.NotNil(t, booking.PaymentReference)
	assert.Equal(t, "pay_123", *booking.PaymentReference)
	require.NotNil(t, booking.PaidAt)

	// Confirming twice is rejected
	assert.ErrorIs(t, booking.ConfirmPayment("pay_456", testNow), ErrInvalidTransition)
}

func TestComplete(t *testing.T) {
	booking := &Booking{Status: BookingStatusConfirmed}
	require.NoError(t, booking.Complete(testNow))
	assert.Equal(t, BookingStatusCompleted, booking.Status)
	require.NotNil(t, booking.CompletedAt)

	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusCancelled, BookingStatusCompleted} {
		b := &Booking{Status: status}
		assert.ErrorIs(t, b.Complete(testNow), ErrInvalidTransition)
	}
}

func TestAddReview(t *testing.T) {
	booking := &Booking{Status: BookingStatusCompleted}

	require.NoError(t, booking.AddReview(4, "great service", testNow))
	require.NotNil(t, booking.Review)
	assert.Equal(t, 4, booking.Review.Rating)
	assert.Equal(t, "great service", booking.Review.Comment)

	// A second review is rejected
	assert.ErrorIs(t, booking.AddReview(5, "", testNow), ErrDuplicateReview)
}

func TestAddReview_RequiresCompletedState(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled} {
		booking := &Booking{Status: status}
		assert.ErrorIs(t, booking.AddReview(5, "", testNow), ErrInvalidTransition)
	}
}

func TestAddReview_RatingRange(t *testing.T) {
	booking := &Booking{Status: BookingStatusCompleted}

	assert.Error(t, booking.AddReview(0, "", testNow))
	assert.Error(t, booking.AddReview(6, "", testNow))
	assert.Nil(t, booking.Review)

	assert.NoError(t, booking.AddReview(1, "", testNow))
}

func TestRequiresPaymentAction(t *testing.T) {
	booking := &Booking{PaymentMethod: PaymentMethodOnline, PaymentStatus: PaymentStatusPending}
	assert.True(t, booking.RequiresPaymentAction())

	booking.PaymentStatus = PaymentStatusPaid
	assert.False(t, booking.RequiresPaymentAction())

	cash := &Booking{PaymentMethod: PaymentMethodCash, PaymentStatus: PaymentStatusPaid}
	assert.False(t, cash.RequiresPaymentAction())
}

func TestGenerateBookingNumber(t *testing.T) {
	now := time.Date(2026, 9, 7, 15, 45, 12, 0, time.UTC)

	number, err := GenerateBookingNumber(CategoryLaundry, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "LND-20260907-154512-"), "got %s", number)
	assert.Len(t, number, len("LND-20260907-154512-")+4)

	number, err = GenerateBookingNumber(CategoryTransportation, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "TRN-"))

	// Unknown category falls back to the generic prefix
	number, err = GenerateBookingNumber(ServiceCategory("spa"), now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "SVC-"))
}

func TestGenerateBookingNumber_SuffixVaries(t *testing.T) {
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number, err := GenerateBookingNumber(CategoryDining, now)
		require.NoError(t, err)
		seen[number] = true
	}

	// 2 random bytes give 65536 suffixes; 50 draws colliding entirely
	// would mean the suffix is not random at all
	assert.Greater(t, len(seen), 1)
}

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := func() *CreateBookingRequest {
		return &CreateBookingRequest{
			ServiceID:     "svc-1",
			Quantity:      2,
			PreferredDate: "2026-09-07",
			PaymentMethod: "cash",
			GuestName:     "Alex Chen",
			GuestPhone:    "+14155552671",
		}
	}

	assert.NoError(t, valid().Validate())

	r := valid()
	r.Quantity = 0
	assert.Error(t, r.Validate())

	r = valid()
	r.Quantity = 51
	assert.Error(t, r.Validate())

	r = valid()
	r.PaymentMethod = "crypto"
	assert.Error(t, r.Validate())

	r = valid()
	r.PreferredDate = "07/09/2026"
	assert.Error(t, r.Validate())

	r = valid()
	r.GuestName = ""
	assert.Error(t, r.Validate())

	r = valid()
	r.Transport = &TransportDetails{PickupLocation: "Lobby"}
	assert.Error(t, r.Validate(), "missing dropoff and passengers")

	r = valid()
	r.Transport = &TransportDetails{PickupLocation: "Lobby", DropoffLocation: "Airport", PassengerCount: 2}
	assert.NoError(t, r.Validate())

	r = valid()
	r.Laundry = &LaundryDetails{}
	assert.Error(t, r.Validate(), "empty item list")

	r = valid()
	r.Laundry = &LaundryDetails{Items: []LaundryItem{{ItemType: "shirt", Quantity: 3}}}
	assert.NoError(t, r.Validate())
}
