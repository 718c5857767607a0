package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopProfile is a singleton row with the shop's public identity and the
// global open/closed override. When IsOpen is false the storefront reports
// closed regardless of the weekly schedule, showing ClosedMessage.
type ShopProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Tagline       string    `json:"tagline"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LogoURL       string    `json:"logo_url"`
	IsOpen        bool      `gorm:"default:true" json:"is_open"`
	ClosedMessage string    `json:"closed_message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *ShopProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
