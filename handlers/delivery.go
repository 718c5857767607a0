package handlers

import (
	"net/http"

	"bistro-backend/models"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DeliveryHandler struct {
	DB *gorm.DB
}

func (h *DeliveryHandler) GetDeliverySettings(c *gin.Context) {
	var settings models.DeliverySettings
	if err := h.DB.First(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *DeliveryHandler) UpdateDeliverySettings(c *gin.Context) {
	var settings models.DeliverySettings
	if err := h.DB.First(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery settings"})
		return
	}

	var req struct {
		MinDeliveryMinutes *int     `json:"min_delivery_minutes"`
		MaxDeliveryMinutes *int     `json:"max_delivery_minutes"`
		DeliveryFee        *float64 `json:"delivery_fee"`
		FreeDeliveryMin    *float64 `json:"free_delivery_min"`
		DeliveryRadiusKm   *float64 `json:"delivery_radius_km"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.MinDeliveryMinutes != nil {
		settings.MinDeliveryMinutes = *req.MinDeliveryMinutes
	}
	if req.MaxDeliveryMinutes != nil {
		settings.MaxDeliveryMinutes = *req.MaxDeliveryMinutes
	}
	if req.DeliveryFee != nil {
		settings.DeliveryFee = *req.DeliveryFee
	}
	if req.FreeDeliveryMin != nil {
		settings.FreeDeliveryMin = *req.FreeDeliveryMin
	}
	if req.DeliveryRadiusKm != nil {
		settings.DeliveryRadiusKm = *req.DeliveryRadiusKm
	}

	if settings.MinDeliveryMinutes < 0 || settings.MaxDeliveryMinutes <= settings.MinDeliveryMinutes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum delivery time must be greater than the minimum"})
		return
	}
	if settings.DeliveryFee < 0 || settings.FreeDeliveryMin < 0 || settings.DeliveryRadiusKm < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery values cannot be negative"})
		return
	}

	if err := h.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
