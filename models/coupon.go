package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Type          CouponType     `gorm:"not null" json:"type"`
	Value         float64        `gorm:"not null" json:"value"`
	MinOrderTotal float64        `gorm:"default:0" json:"min_order_total"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	MaxUses       int            `gorm:"default:0" json:"max_uses"` // 0 = unlimited
	UsedCount     int            `gorm:"default:0" json:"used_count"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CanApply checks whether the coupon is usable against the given subtotal
// right now. Returns a human-readable reason when it is not.
func (c Coupon) CanApply(now time.Time, subtotal float64) (bool, string) {
	if !c.IsActive {
		return false, "Coupon is not active"
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false, "Coupon has expired"
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false, "Coupon usage limit reached"
	}
	if subtotal < c.MinOrderTotal {
		return false, "Order total is below the coupon minimum"
	}
	return true, ""
}

// DiscountFor computes the discount amount for a subtotal, clamped so the
// discount never exceeds the subtotal itself.
func (c Coupon) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch c.Type {
	case CouponTypePercent:
		discount = subtotal * c.Value / 100
	case CouponTypeFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
