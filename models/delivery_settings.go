package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliverySettings is a singleton row holding the shop's delivery
// parameters. MaxDeliveryMinutes must be greater than MinDeliveryMinutes;
// handlers enforce this before accepting a write.
type DeliverySettings struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MinDeliveryMinutes int       `gorm:"default:30" json:"min_delivery_minutes"`
	MaxDeliveryMinutes int       `gorm:"default:60" json:"max_delivery_minutes"`
	DeliveryFee        float64   `gorm:"default:0" json:"delivery_fee"`
	FreeDeliveryMin    float64   `gorm:"default:0" json:"free_delivery_min"` // 0 = no free threshold
	DeliveryRadiusKm   float64   `gorm:"default:0" json:"delivery_radius_km"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (d *DeliverySettings) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// FeeFor returns the delivery fee for an order subtotal, honoring the
// free-delivery threshold when one is configured.
func (d DeliverySettings) FeeFor(subtotal float64) float64 {
	if d.FreeDeliveryMin > 0 && subtotal >= d.FreeDeliveryMin {
		return 0
	}
	return d.DeliveryFee
}
