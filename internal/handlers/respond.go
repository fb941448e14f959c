package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stayserve/marketplace-backend/internal/services"
)

// respondError maps service errors onto HTTP statuses. Business rule
// violations are 400, missing resources 404, state conflicts 409,
// anything else is a logged 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}

	if errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, models.ErrDuplicateReview) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	logger.WithError(err).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
