package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/database"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// MarketplaceService handles hotel-side marketplace configuration:
// markup policies, provider overrides and the service catalog
type MarketplaceService struct {
	hotelRepo    *database.HotelRepository
	providerRepo *database.ProviderRepository
	serviceRepo  *database.ServiceRepository
	policyRepo   *database.MarkupPolicyRepository
	gate         *AvailabilityGate
	clock        Clock
	logger       *logrus.Logger
}

// NewMarketplaceService creates a new MarketplaceService
func NewMarketplaceService(
	hotelRepo *database.HotelRepository,
	providerRepo *database.ProviderRepository,
	serviceRepo *database.ServiceRepository,
	policyRepo *database.MarkupPolicyRepository,
	clock Clock,
	logger *logrus.Logger,
) *MarketplaceService {
	return &MarketplaceService{
		hotelRepo:    hotelRepo,
		providerRepo: providerRepo,
		serviceRepo:  serviceRepo,
		policyRepo:   policyRepo,
		gate:         NewAvailabilityGate(),
		clock:        clock,
		logger:       logger,
	}
}

// ============================================================================
// MARKUP CONFIGURATION
// ============================================================================

// GetMarkupPolicy returns the hotel's markup policy, or nil if none is
// configured
func (s *MarketplaceService) GetMarkupPolicy(hotelID string) (*models.MarkupPolicy, error) {
	return s.policyRepo.GetByHotelID(hotelID)
}

// UpsertMarkupPolicy sets or replaces the hotel's markup policy
func (s *MarketplaceService) UpsertMarkupPolicy(hotelID string, req *models.UpsertMarkupPolicyRequest) (*models.MarkupPolicy, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	hotel, err := s.hotelRepo.GetByID(hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}
	if hotel == nil {
		return nil, NewNotFoundError("hotel", hotelID)
	}

	policy := &models.MarkupPolicy{
		HotelID:         hotelID,
		DefaultPct:      req.DefaultPct,
		CategoryMarkups: req.CategoryMarkups,
	}

	if err := s.policyRepo.Upsert(policy); err != nil {
		return nil, fmt.Errorf("failed to store markup policy: %w", err)
	}

	s.logger.WithField("hotel_id", hotelID).Info("Markup policy updated")

	return policy, nil
}

// SetProviderMarkup sets or clears a provider's markup override. The
// provider must belong to the hotel.
func (s *MarketplaceService) SetProviderMarkup(hotelID, providerID string, req *models.SetProviderMarkupRequest) error {
	if err := req.Validate(); err != nil {
		return NewValidationError("%s", err.Error())
	}

	provider, err := s.providerRepo.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("failed to load provider: %w", err)
	}
	if provider == nil || provider.HotelID != hotelID {
		return NewNotFoundError("provider", providerID)
	}

	if err := s.providerRepo.SetMarkupOverride(providerID, req.Pct); err != nil {
		return fmt.Errorf("failed to set provider markup: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"hotel_id":    hotelID,
		"provider_id": providerID,
		"cleared":     req.Pct == nil,
	}).Info("Provider markup override updated")

	return nil
}

// ============================================================================
// PROVIDERS
// ============================================================================

// RegisterProvider attaches a new provider to a hotel
func (s *MarketplaceService) RegisterProvider(hotelID string, req *models.CreateProviderRequest) (*models.Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	hotel, err := s.hotelRepo.GetByID(hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}
	if hotel == nil {
		return nil, NewNotFoundError("hotel", hotelID)
	}

	provider := &models.Provider{
		HotelID:      hotelID,
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       models.ProviderStatusActive,
	}

	if err := s.providerRepo.Create(provider); err != nil {
		return nil, fmt.Errorf("failed to register provider: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"hotel_id":    hotelID,
		"provider_id": provider.ID,
	}).Info("Provider registered")

	return provider, nil
}

// GetHotelProviders lists the providers attached to a hotel
func (s *MarketplaceService) GetHotelProviders(hotelID string) ([]models.Provider, error) {
	return s.providerRepo.GetByHotelID(hotelID)
}

// ============================================================================
// SERVICE CATALOG
// ============================================================================

// ListService creates a new bookable service for a provider
func (s *MarketplaceService) ListService(providerID string, req *models.CreateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	provider, err := s.providerRepo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if provider == nil {
		return nil, NewNotFoundError("provider", providerID)
	}
	if !provider.IsActive() {
		return nil, NewValidationError("provider is not active")
	}

	service := &models.Service{
		HotelID:          provider.HotelID,
		ProviderID:       provider.ID,
		Name:             req.Name,
		Description:      req.Description,
		Category:         models.ServiceCategory(req.Category),
		BasePrice:        req.BasePrice,
		Currency:         req.Currency,
		DurationMinutes:  req.DurationMinutes,
		ExpressSurcharge: req.ExpressSurcharge,
		Schedule:         req.Schedule,
		IsActive:         true,
	}

	if err := s.serviceRepo.Create(service); err != nil {
		return nil, fmt.Errorf("failed to list service: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"provider_id": providerID,
		"service_id":  service.ID,
		"category":    service.Category,
	}).Info("Service listed")

	return service, nil
}

// UpdateService updates a provider's service listing
func (s *MarketplaceService) UpdateService(providerID, serviceID string, req *models.UpdateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError("%s", err.Error())
	}

	service, err := s.loadProviderService(providerID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.ExpressSurcharge != nil {
		service.ExpressSurcharge = *req.ExpressSurcharge
	}
	if req.Schedule != nil {
		service.Schedule = req.Schedule
	}

	if err := s.serviceRepo.Update(service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return service, nil
}

// DeactivateService takes a service off the catalog without deleting it
func (s *MarketplaceService) DeactivateService(providerID, serviceID string) error {
	if _, err := s.loadProviderService(providerID, serviceID); err != nil {
		return err
	}

	if err := s.serviceRepo.Deactivate(serviceID); err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}

	s.logger.WithField("service_id", serviceID).Info("Service deactivated")

	return nil
}

// GetHotelCatalog lists the active services bookable at a hotel. Each
// entry carries whether the service's schedule is open right now, so
// guests can tell at a glance which services are currently taking work.
func (s *MarketplaceService) GetHotelCatalog(hotelID string) ([]models.CatalogEntry, error) {
	services, err := s.serviceRepo.GetActiveByHotelID(hotelID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	catalog := make([]models.CatalogEntry, 0, len(services))
	for _, svc := range services {
		catalog = append(catalog, models.CatalogEntry{
			Service:   svc,
			IsOpenNow: s.gate.IsOpen(svc.Schedule, now),
		})
	}

	return catalog, nil
}

// GetProviderServices lists all of a provider's services, active or not
func (s *MarketplaceService) GetProviderServices(providerID string) ([]models.Service, error) {
	return s.serviceRepo.GetByProviderID(providerID)
}

// loadProviderService loads a service and hides it from providers who
// do not own it
func (s *MarketplaceService) loadProviderService(providerID, serviceID string) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if service == nil || service.ProviderID != providerID {
		return nil, NewNotFoundError("service", serviceID)
	}
	return service, nil
}
