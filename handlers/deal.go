package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bistro-backend/models"
	"bistro-backend/storage"
	"bistro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

type dealItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// validateDealItems resolves the referenced products and checks the deal
// price against the sum of the items' regular prices.
func (h *DealHandler) validateDealItems(items []dealItemRequest, dealPrice float64) ([]models.DealItem, string) {
	if len(items) == 0 {
		return nil, "A deal needs at least one item"
	}

	var sum float64
	dealItems := make([]models.DealItem, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		var product models.Product
		if err := h.DB.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
			return nil, "Deal references an unknown product"
		}

		sum += product.Price * float64(qty)
		dealItems = append(dealItems, models.DealItem{
			ProductID: item.ProductID,
			Quantity:  qty,
		})
	}

	if dealPrice > sum {
		return nil, "Deal price cannot exceed the combined price of its items"
	}
	return dealItems, ""
}

func (h *DealHandler) GetDeals(c *gin.Context) {
	var deals []models.Deal
	query := h.DB.Preload("Items").Preload("Items.Product")

	if c.Query("show_all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("created_at DESC").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
		return
	}

	c.JSON(http.StatusOK, deals)
}

func (h *DealHandler) GetDeal(c *gin.Context) {
	id := c.Param("id")
	var deal models.Deal

	if err := h.DB.Preload("Items").Preload("Items.Product").Where("id = ?", id).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) CreateDeal(c *gin.Context) {
	var deal models.Deal

	deal.Title = c.PostForm("title")
	if deal.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	deal.Description = c.PostForm("description")

	dealPrice, err := strconv.ParseFloat(c.PostForm("deal_price"), 64)
	if err != nil || dealPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal price"})
		return
	}
	deal.DealPrice = dealPrice

	if discount := c.PostForm("discount_percent"); discount != "" {
		pct, err := strconv.ParseFloat(discount, 64)
		if err != nil || pct < 0 || pct > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Discount percent must be between 0 and 100"})
			return
		}
		deal.DiscountPercent = &pct
	}

	deal.IsActive = c.PostForm("is_active") != "false"

	var items []dealItemRequest
	if itemsJSON := c.PostForm("items"); itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid items payload"})
			return
		}
	}

	dealItems, errMsg := h.validateDealItems(items, deal.DealPrice)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	deal.ID = uuid.New()

	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
			return
		}
		imageURL, err := h.Storage.UploadDealImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		deal.Image = imageURL
	}

	if err := h.DB.Create(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
		return
	}

	for i := range dealItems {
		dealItems[i].DealID = deal.ID
	}
	if err := h.DB.Create(&dealItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save deal items"})
		return
	}

	h.DB.Preload("Items").Preload("Items.Product").First(&deal, deal.ID)
	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) UpdateDeal(c *gin.Context) {
	id := c.Param("id")
	var deal models.Deal

	if err := h.DB.Preload("Items").Where("id = ?", id).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		deal.Title = title
	}
	if desc, ok := c.GetPostForm("description"); ok {
		deal.Description = desc
	}
	if price := c.PostForm("deal_price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal price"})
			return
		}
		deal.DealPrice = parsed
	}
	if discount, ok := c.GetPostForm("discount_percent"); ok {
		if discount == "" {
			deal.DiscountPercent = nil
		} else {
			pct, err := strconv.ParseFloat(discount, 64)
			if err != nil || pct < 0 || pct > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Discount percent must be between 0 and 100"})
				return
			}
			deal.DiscountPercent = &pct
		}
	}
	if v, ok := c.GetPostForm("is_active"); ok {
		deal.IsActive = v == "true"
	}

	// When items are provided the whole set is replaced
	if itemsJSON, ok := c.GetPostForm("items"); ok && itemsJSON != "" {
		var items []dealItemRequest
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid items payload"})
			return
		}

		dealItems, errMsg := h.validateDealItems(items, deal.DealPrice)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		if err := h.DB.Where("deal_id = ?", deal.ID).Delete(&models.DealItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace deal items"})
			return
		}
		for i := range dealItems {
			dealItems[i].DealID = deal.ID
		}
		if err := h.DB.Create(&dealItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save deal items"})
			return
		}
	} else {
		// Re-validate the kept items against a possibly lowered price
		var sum float64
		for _, item := range deal.Items {
			var product models.Product
			if err := h.DB.Where("id = ?", item.ProductID).First(&product).Error; err == nil {
				sum += product.Price * float64(item.Quantity)
			}
		}
		if len(deal.Items) > 0 && deal.DealPrice > sum {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deal price cannot exceed the combined price of its items"})
			return
		}
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
			return
		}
		imageURL, err := h.Storage.UploadDealImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}

		if deal.Image != "" {
			objectPath, err := utils.ExtractObjectPath(deal.Image)
			if err == nil && objectPath != "" {
				if err := h.Storage.DeleteFile(objectPath); err != nil {
					log.Println("Failed to delete old deal image:", err)
				}
			}
		}
		deal.Image = imageURL
	}

	if err := h.DB.Save(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
		return
	}

	h.DB.Preload("Items").Preload("Items.Product").First(&deal, deal.ID)
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) DeleteDeal(c *gin.Context) {
	id := c.Param("id")
	var deal models.Deal

	if err := h.DB.Where("id = ?", id).First(&deal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		return
	}

	if deal.Image != "" {
		objectPath, err := utils.ExtractObjectPath(deal.Image)
		if err == nil && objectPath != "" {
			if err := h.Storage.DeleteFile(objectPath); err != nil {
				log.Println("Failed to delete deal image from storage:", err)
			}
		}
	}

	if err := h.DB.Where("deal_id = ?", deal.ID).Delete(&models.DealItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal items"})
		return
	}

	if err := h.DB.Delete(&models.Deal{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted successfully"})
}
