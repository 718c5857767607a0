package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"bistro-backend/models"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName    string `json:"customer_name" binding:"required"`
		CustomerPhone   string `json:"customer_phone" binding:"required"`
		DeliveryAddress string `json:"delivery_address" binding:"required"`
		Notes           string `json:"notes"`
		CouponCode      string `json:"coupon_code"`
		Items           []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required,min=1"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// The storefront cannot place orders while the shop is closed
	week, err := loadWeek(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load opening hours"})
		return
	}
	if !week.EffectiveOpenAt(time.Now()) {
		msg := week.Override.ClosedMessage
		if msg == "" {
			msg = "The shop is currently closed"
		}
		c.JSON(http.StatusConflict, gin.H{"error": msg})
		return
	}

	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var product models.Product
		if err := h.DB.Where("id = ? AND is_available = ?", item.ProductID, true).First(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order references an unavailable product"})
			return
		}

		price := product.EffectivePrice()
		subtotal += price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       price,
		})
	}

	var discount float64
	var couponID *uuid.UUID
	if req.CouponCode != "" {
		var coupon models.Coupon
		code := strings.ToUpper(strings.TrimSpace(req.CouponCode))
		if err := h.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon code"})
			return
		}
		ok, reason := coupon.CanApply(time.Now(), subtotal)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": reason})
			return
		}
		discount = coupon.DiscountFor(subtotal)
		couponID = &coupon.ID
	}

	var settings models.DeliverySettings
	if err := h.DB.First(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery settings"})
		return
	}
	deliveryFee := settings.FeeFor(subtotal - discount)

	order := models.Order{
		Status:          models.OrderStatusPending,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Subtotal:        subtotal,
		DiscountTotal:   discount,
		DeliveryFee:     deliveryFee,
		Total:           subtotal - discount + deliveryFee,
		CouponID:        couponID,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}
		if couponID != nil {
			if err := tx.Model(&models.Coupon{}).Where("id = ?", couponID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	h.DB.Preload("Items").Preload("Coupon").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"delivery_estimate": gin.H{
			"min_minutes": settings.MinDeliveryMinutes,
			"max_minutes": settings.MaxDeliveryMinutes,
		},
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?) OR order_number LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Items").Preload("Rider").Preload("Coupon").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	var order models.Order

	if err := h.DB.Preload("Items").Preload("Items.Product").Preload("Rider").Preload("Coupon").
		Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var order models.Order

	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.IsValidTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status transition",
			"from":    order.Status,
			"to":      req.Status,
			"allowed": models.AllowedTransitions[order.Status],
		})
		return
	}

	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	order.Status = req.Status
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AssignRider(c *gin.Context) {
	id := c.Param("id")
	var order models.Order

	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot assign a rider to a finished order"})
		return
	}

	var req struct {
		RiderID *uuid.UUID `json:"rider_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.RiderID != nil {
		var rider models.Rider
		if err := h.DB.Where("id = ? AND is_active = ?", req.RiderID, true).First(&rider).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rider not found or inactive"})
			return
		}
	}

	if err := h.DB.Model(&order).Update("rider_id", req.RiderID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign rider"})
		return
	}

	h.DB.Preload("Rider").First(&order, order.ID)
	c.JSON(http.StatusOK, order)
}
