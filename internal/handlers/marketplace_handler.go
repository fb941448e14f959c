package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/middleware"
	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stayserve/marketplace-backend/internal/services"
)

// MarketplaceHandler handles hotel-side configuration and the service
// catalog endpoints
type MarketplaceHandler struct {
	marketplaceService *services.MarketplaceService
	logger             *logrus.Logger
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(marketplaceService *services.MarketplaceService, logger *logrus.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
		logger:             logger,
	}
}

// ============================================================================
// MARKUP CONFIGURATION (hotel admin)
// ============================================================================

// GetMarkupPolicy returns the admin's hotel markup policy
func (h *MarketplaceHandler) GetMarkupPolicy(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	policy, err := h.marketplaceService.GetMarkupPolicy(userCtx.HotelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if policy == nil {
		c.JSON(http.StatusOK, gin.H{"policy": nil, "note": "platform default markup applies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// UpsertMarkupPolicy sets or replaces the hotel's markup policy
// @Summary Set markup policy
// @Tags Marketplace
// @Param Authorization header string true "Bearer token"
// @Param request body models.UpsertMarkupPolicyRequest true "Markup policy"
// @Success 200 {object} models.MarkupPolicy
// @Router /hotel/markup-policy [put]
func (h *MarketplaceHandler) UpsertMarkupPolicy(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.UpsertMarkupPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	policy, err := h.marketplaceService.UpsertMarkupPolicy(userCtx.HotelID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, policy)
}

// SetProviderMarkup sets or clears a provider markup override
func (h *MarketplaceHandler) SetProviderMarkup(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.SetProviderMarkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if err := h.marketplaceService.SetProviderMarkup(userCtx.HotelID, c.Param("provider_id"), &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "provider markup updated"})
}

// ============================================================================
// PROVIDERS (hotel admin)
// ============================================================================

// RegisterProvider attaches a new provider to the admin's hotel
func (h *MarketplaceHandler) RegisterProvider(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	provider, err := h.marketplaceService.RegisterProvider(userCtx.HotelID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// ListProviders lists the providers attached to the admin's hotel
func (h *MarketplaceHandler) ListProviders(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	providers, err := h.marketplaceService.GetHotelProviders(userCtx.HotelID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers, "count": len(providers)})
}

// ============================================================================
// SERVICE CATALOG
// ============================================================================

// ListService creates a new service listing for the provider
func (h *MarketplaceHandler) ListService(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	service, err := h.marketplaceService.ListService(userCtx.ProviderID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService updates the provider's service listing
func (h *MarketplaceHandler) UpdateService(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	service, err := h.marketplaceService.UpdateService(userCtx.ProviderID, c.Param("service_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeactivateService takes the provider's service off the catalog
func (h *MarketplaceHandler) DeactivateService(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.marketplaceService.DeactivateService(userCtx.ProviderID, c.Param("service_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service deactivated"})
}

// ListMyServices lists the provider's own services
func (h *MarketplaceHandler) ListMyServices(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	services, err := h.marketplaceService.GetProviderServices(userCtx.ProviderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services, "count": len(services)})
}

// GetHotelCatalog lists the active services bookable at a hotel.
// Guests browse this before creating a booking.
func (h *MarketplaceHandler) GetHotelCatalog(c *gin.Context) {
	catalog, err := h.marketplaceService.GetHotelCatalog(c.Param("hotel_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": catalog, "count": len(catalog)})
}
