package handlers

import (
	"net/http"

	"bistro-backend/models"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RiderHandler struct {
	DB *gorm.DB
}

func (h *RiderHandler) GetRiders(c *gin.Context) {
	var riders []models.Rider
	query := h.DB.Order("name ASC")

	if c.Query("active_only") == "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&riders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch riders"})
		return
	}
	c.JSON(http.StatusOK, riders)
}

func (h *RiderHandler) GetRider(c *gin.Context) {
	id := c.Param("id")
	var rider models.Rider

	if err := h.DB.Where("id = ?", id).First(&rider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		return
	}
	c.JSON(http.StatusOK, rider)
}

func (h *RiderHandler) CreateRider(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Vehicle string `json:"vehicle"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	rider := models.Rider{
		Name:     req.Name,
		Phone:    req.Phone,
		Vehicle:  req.Vehicle,
		IsActive: true,
	}

	if err := h.DB.Create(&rider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rider"})
		return
	}

	c.JSON(http.StatusCreated, rider)
}

func (h *RiderHandler) UpdateRider(c *gin.Context) {
	id := c.Param("id")
	var rider models.Rider

	if err := h.DB.Where("id = ?", id).First(&rider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Vehicle  *string `json:"vehicle"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		rider.Name = *req.Name
	}
	if req.Phone != nil {
		rider.Phone = *req.Phone
	}
	if req.Vehicle != nil {
		rider.Vehicle = *req.Vehicle
	}
	if req.IsActive != nil {
		rider.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&rider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rider"})
		return
	}

	c.JSON(http.StatusOK, rider)
}

func (h *RiderHandler) DeleteRider(c *gin.Context) {
	id := c.Param("id")

	// A rider with undelivered assigned orders cannot be removed
	var activeCount int64
	if err := h.DB.Model(&models.Order{}).
		Where("rider_id = ? AND status NOT IN ?", id,
			[]models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&activeCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check rider dependencies"})
		return
	}
	if activeCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "Cannot delete a rider with active orders",
			"message":     "Reassign or complete the rider's orders first",
			"order_count": activeCount,
		})
		return
	}

	if err := h.DB.Delete(&models.Rider{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rider deleted successfully"})
}
