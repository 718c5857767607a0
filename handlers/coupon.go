package handlers

import (
	"net/http"
	"strings"
	"time"

	"bistro-backend/models"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CouponHandler struct {
	DB *gorm.DB
}

func (h *CouponHandler) GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := h.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")
	var coupon models.Coupon

	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req struct {
		Code          string     `json:"code" binding:"required"`
		Type          string     `json:"type" binding:"required"`
		Value         float64    `json:"value" binding:"required"`
		MinOrderTotal float64    `json:"min_order_total"`
		ExpiresAt     *time.Time `json:"expires_at"`
		MaxUses       int        `json:"max_uses"`
		IsActive      *bool      `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	couponType := models.CouponType(req.Type)
	if couponType != models.CouponTypePercent && couponType != models.CouponTypeFixed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon type must be 'percent' or 'fixed'"})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon value must be positive"})
		return
	}
	if couponType == models.CouponTypePercent && req.Value > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percent coupons cannot exceed 100"})
		return
	}

	coupon := models.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:          couponType,
		Value:         req.Value,
		MinOrderTotal: req.MinOrderTotal,
		ExpiresAt:     req.ExpiresAt,
		MaxUses:       req.MaxUses,
		IsActive:      true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")
	var coupon models.Coupon

	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	var req struct {
		Value         *float64   `json:"value"`
		MinOrderTotal *float64   `json:"min_order_total"`
		ExpiresAt     *time.Time `json:"expires_at"`
		MaxUses       *int       `json:"max_uses"`
		IsActive      *bool      `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Value != nil {
		if *req.Value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon value must be positive"})
			return
		}
		if coupon.Type == models.CouponTypePercent && *req.Value > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percent coupons cannot exceed 100"})
			return
		}
		coupon.Value = *req.Value
	}
	if req.MinOrderTotal != nil {
		coupon.MinOrderTotal = *req.MinOrderTotal
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}
	if req.MaxUses != nil {
		coupon.MaxUses = *req.MaxUses
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	var orderCount int64
	if err := h.DB.Model(&models.Order{}).Where("coupon_id = ?", id).Count(&orderCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check coupon dependencies"})
		return
	}
	if orderCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "Cannot delete a coupon referenced by orders",
			"message":     "Deactivate the coupon instead",
			"order_count": orderCount,
		})
		return
	}

	if err := h.DB.Delete(&models.Coupon{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// ValidateCoupon is the public endpoint the storefront calls before
// checkout. It never reveals why an unknown code failed.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var coupon models.Coupon
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := h.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": "Invalid coupon code"})
		return
	}

	ok, reason := coupon.CanApply(time.Now(), req.Subtotal)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"code":     coupon.Code,
		"discount": coupon.DiscountFor(req.Subtotal),
	})
}
