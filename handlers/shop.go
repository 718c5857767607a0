package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"bistro-backend/cache"
	"bistro-backend/models"
	"bistro-backend/schedule"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShopHandler struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// GetShop is the public storefront profile.
func (h *ShopHandler) GetShop(c *gin.Context) {
	var profile models.ShopProfile
	if err := h.DB.First(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shop profile"})
		return
	}

	var settings models.DeliverySettings
	if err := h.DB.First(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        profile.Name,
		"tagline":     profile.Tagline,
		"description": profile.Description,
		"address":     profile.Address,
		"phone":       profile.Phone,
		"email":       profile.Email,
		"logoUrl":     profile.LogoURL,
		"delivery": gin.H{
			"minMinutes":      settings.MinDeliveryMinutes,
			"maxMinutes":      settings.MaxDeliveryMinutes,
			"fee":             settings.DeliveryFee,
			"freeDeliveryMin": settings.FreeDeliveryMin,
		},
	})
}

// GetShopStatus reports whether the shop is open right now. The payload is
// cached briefly since the storefront polls it; because isOpen and the
// clock embedded in it can only change on a minute boundary, the cache
// entry expires at the next minute rather than living a full default TTL,
// so the answer never straddles an opening or closing time.
func (h *ShopHandler) GetShopStatus(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.Cache.GetStatus(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
		return
	}

	week, err := loadWeek(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load opening hours"})
		return
	}

	now := time.Now()
	status := gin.H{
		"isOpen":  week.EffectiveOpenAt(now),
		"day":     int(now.Weekday()),
		"dayName": now.Weekday().String(),
		"time":    schedule.Clock(now.Hour()*60 + now.Minute()),
	}
	if !week.Override.Open && week.Override.ClosedMessage != "" {
		status["closedMessage"] = week.Override.ClosedMessage
	}

	if raw, err := json.Marshal(status); err == nil {
		h.Cache.SetStatus(ctx, string(raw), statusTTL(now))
	}
	c.JSON(http.StatusOK, status)
}

// statusTTL returns how long a status payload computed at now stays
// valid: until the next minute boundary, where isOpen may flip.
func statusTTL(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}

// UpdateShop edits the public profile fields.
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var profile models.ShopProfile
	if err := h.DB.First(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shop profile"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Tagline     *string `json:"tagline"`
		Description *string `json:"description"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		Email       *string `json:"email"`
		LogoURL     *string `json:"logoUrl"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shop name cannot be empty"})
			return
		}
		profile.Name = *req.Name
	}
	if req.Tagline != nil {
		profile.Tagline = *req.Tagline
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.LogoURL != nil {
		profile.LogoURL = *req.LogoURL
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shop profile"})
		return
	}

	h.Cache.InvalidateStatus(c.Request.Context())
	c.JSON(http.StatusOK, profile)
}

// UpdateOverride flips the global open switch. When isOpen is false the
// whole schedule is suppressed and the storefront shows closedMessage.
func (h *ShopHandler) UpdateOverride(c *gin.Context) {
	var profile models.ShopProfile
	if err := h.DB.First(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shop profile"})
		return
	}

	var req struct {
		IsOpen        *bool   `json:"isOpen" binding:"required"`
		ClosedMessage *string `json:"closedMessage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	profile.IsOpen = *req.IsOpen
	if req.ClosedMessage != nil {
		profile.ClosedMessage = *req.ClosedMessage
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update override"})
		return
	}

	h.Cache.InvalidateStatus(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"isOpen":        profile.IsOpen,
		"closedMessage": profile.ClosedMessage,
	})
}
