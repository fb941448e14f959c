package models

import (
	"errors"
	"strings"
	"time"
)

// HotelStatus represents the status of a hotel on the platform
type HotelStatus string

const (
	HotelStatusActive    HotelStatus = "active"
	HotelStatusSuspended HotelStatus = "suspended"
)

// Hotel represents a tenant hotel on the marketplace
type Hotel struct {
	ID           string      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	City         string      `json:"city" db:"city"`
	Address      string      `json:"address" db:"address"`
	ContactEmail string      `json:"contact_email" db:"contact_email"`
	ContactPhone string      `json:"contact_phone" db:"contact_phone"`
	Status       HotelStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// IsActive checks if the hotel can accept bookings
func (h *Hotel) IsActive() bool {
	return h.Status == HotelStatusActive
}

// HotelAdmin represents a staff account that manages a hotel's
// marketplace configuration
type HotelAdmin struct {
	ID           string    `json:"id" db:"id"`
	HotelID      string    `json:"hotel_id" db:"hotel_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// AdminLoginRequest represents a hotel admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the login request
func (r *AdminLoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}

	return nil
}
