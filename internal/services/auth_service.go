package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/database"
	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stayserve/marketplace-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginResponse is returned on a successful hotel admin login
type AdminLoginResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	ExpiresIn    int64              `json:"expires_in"`
	Admin        *models.HotelAdmin `json:"admin"`
}

// AuthService handles hotel admin authentication
type AuthService struct {
	hotelRepo         *database.HotelRepository
	jwtService        *jwt.Service
	accessTokenExpiry time.Duration
	logger            *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	hotelRepo *database.HotelRepository,
	jwtService *jwt.Service,
	accessTokenExpiry time.Duration,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		hotelRepo:         hotelRepo,
		jwtService:        jwtService,
		accessTokenExpiry: accessTokenExpiry,
		logger:            logger,
	}
}

// Login authenticates a hotel admin and returns tokens. Invalid email
// and invalid password produce the same error.
func (s *AuthService) Login(req *models.AdminLoginRequest) (*AdminLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	admin, err := s.hotelRepo.GetAdminByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin account: %w", err)
	}
	if admin == nil {
		return nil, NewValidationError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewValidationError("invalid email or password")
	}

	hotel, err := s.hotelRepo.GetByID(admin.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}
	if hotel == nil || !hotel.IsActive() {
		return nil, NewValidationError("hotel account is not active")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(
		admin.ID, admin.Email, []string{"hotel_admin"}, admin.HotelID, "",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"admin_id": admin.ID,
		"hotel_id": admin.HotelID,
	}).Info("Hotel admin logged in")

	return &AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenExpiry.Seconds()),
		Admin:        admin,
	}, nil
}

// Refresh exchanges a refresh token for a new access token
func (s *AuthService) Refresh(refreshToken string) (*AdminLoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, NewValidationError("invalid refresh token")
	}

	admin, err := s.hotelRepo.GetAdminByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin account: %w", err)
	}
	if admin == nil {
		return nil, NewValidationError("account no longer exists")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(
		admin.ID, admin.Email, []string{"hotel_admin"}, admin.HotelID, "",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenExpiry.Seconds()),
		Admin:        admin,
	}, nil
}
