package handlers

import (
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

type ProductHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product
	query := h.DB.Preload("Category").Preload("Images")

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	// The storefront only sees available products; the back office passes
	// show_all=true.
	if c.Query("show_all") != "true" {
		query = query.Where("is_available = ?", true)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Category").Preload("Images").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product

	product.Name = c.PostForm("name")
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	product.Description = c.PostForm("description")

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	product.Price = price

	if offer := c.PostForm("offer_price"); offer != "" {
		offerPrice, err := strconv.ParseFloat(offer, 64)
		if err != nil || offerPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer price"})
			return
		}
		if offerPrice > product.Price {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Offer price cannot exceed the regular price"})
			return
		}
		product.OfferPrice = &offerPrice
	}

	product.IsVegan = c.PostForm("is_vegan") == "true"
	product.IsSpicy = c.PostForm("is_spicy") == "true"
	product.IsAvailable = c.PostForm("is_available") != "false"

	categoryID, err := uuid.Parse(c.PostForm("category_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}
	product.CategoryID = categoryID

	if err := h.DB.First(&models.Category{}, "id = ?", product.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	product.ID = uuid.New()

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	// Image uploads are optional on create
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["images"]
		var productImages []models.ProductImage
		for i, fileHeader := range files {
			if err := utils.ValidateFileUpload(fileHeader); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
				return
			}

			imageURL, err := h.Storage.UploadProductImage(
				file,
				fileHeader.Filename,
				fileHeader.Header.Get("Content-Type"),
			)
			file.Close()

			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
				return
			}

			// First image is marked as primary
			productImages = append(productImages, models.ProductImage{
				ProductID: product.ID,
				ImageURL:  imageURL,
				IsPrimary: i == 0,
			})
		}
		if len(productImages) > 0 {
			if err := h.DB.Create(&productImages).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
				return
			}
		}
	}

	h.DB.Preload("Category").Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if desc, ok := c.GetPostForm("description"); ok {
		product.Description = desc
	}

	if price := c.PostForm("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		product.Price = parsed
	}

	if offer, ok := c.GetPostForm("offer_price"); ok {
		if offer == "" {
			product.OfferPrice = nil
		} else {
			offerPrice, err := strconv.ParseFloat(offer, 64)
			if err != nil || offerPrice < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer price"})
				return
			}
			if offerPrice > product.Price {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Offer price cannot exceed the regular price"})
				return
			}
			product.OfferPrice = &offerPrice
		}
	}

	if v, ok := c.GetPostForm("is_vegan"); ok {
		product.IsVegan = v == "true"
	}
	if v, ok := c.GetPostForm("is_spicy"); ok {
		product.IsSpicy = v == "true"
	}
	if v, ok := c.GetPostForm("is_available"); ok {
		product.IsAvailable = v == "true"
	}

	if categoryID := c.PostForm("category_id"); categoryID != "" {
		newCategoryID, err := uuid.Parse(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		if err := h.DB.First(&models.Category{}, "id = ?", newCategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		product.CategoryID = newCategoryID
	}

	// Image changes
	if form, err := c.MultipartForm(); err == nil {
		for _, imageID := range form.Value["delete_images"] {
			var productImage models.ProductImage
			if err := h.DB.Where("id = ? AND product_id = ?", imageID, product.ID).First(&productImage).Error; err == nil {
				objectPath, err := utils.ExtractObjectPath(productImage.ImageURL)
				if err == nil && objectPath != "" {
					if err := h.Storage.DeleteFile(objectPath); err != nil {
						log.Println("Failed to delete image from storage:", err)
					}
				}
				h.DB.Delete(&productImage)
			}
		}

		files := form.File["images"]
		if len(files) > 0 {
			var newImages []models.ProductImage
			for i, fileHeader := range files {
				if err := utils.ValidateFileUpload(fileHeader); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}

				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
					return
				}

				imageURL, err := h.Storage.UploadProductImage(
					file,
					fileHeader.Filename,
					fileHeader.Header.Get("Content-Type"),
				)
				file.Close()

				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
					return
				}

				newImages = append(newImages, models.ProductImage{
					ProductID: product.ID,
					ImageURL:  imageURL,
					IsPrimary: len(product.Images) == 0 && i == 0,
				})
			}
			if err := h.DB.Create(&newImages).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
				return
			}
		}
	}

	if primaryImageID := c.PostForm("primary_image_id"); primaryImageID != "" {
		h.DB.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Update("is_primary", false)
		h.DB.Model(&models.ProductImage{}).
			Where("id = ? AND product_id = ?", primaryImageID, product.ID).
			Update("is_primary", true)
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.DB.Preload("Category").Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Products referenced by a deal cannot be removed
	var dealCount int64
	if err := h.DB.Model(&models.DealItem{}).Where("product_id = ?", id).Count(&dealCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product dependencies"})
		return
	}
	if dealCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Cannot delete a product that is part of a deal",
			"message":    "Remove the product from its deals first",
			"deal_count": dealCount,
		})
		return
	}

	for _, productImage := range product.Images {
		// Images referenced by past orders keep their storage object
		var orderImageCount int64
		h.DB.Model(&models.OrderItem{}).
			Where("product_id = ?", product.ID).
			Count(&orderImageCount)

		if orderImageCount == 0 {
			objectPath, err := utils.ExtractObjectPath(productImage.ImageURL)
			if err == nil && objectPath != "" {
				if err := h.Storage.DeleteFile(objectPath); err != nil {
					log.Printf("Failed to delete image %s from storage: %v", productImage.ImageURL, err)
				}
			}
		}

		if err := h.DB.Delete(&productImage).Error; err != nil {
			log.Printf("Failed to delete product image record %s: %v", productImage.ID, err)
		}
	}

	if err := h.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
