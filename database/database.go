package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"bistro-backend/models"
	"bistro-backend/schedule"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=bistro port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Deal{},
		&models.DealItem{},
		&models.Coupon{},
		&models.Rider{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliverySettings{},
		&models.ShopProfile{},
		&models.DaySchedule{},
		&models.TimeBlock{},
	)
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@bistro.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// SeedDefaults creates the singleton shop profile, delivery settings and a
// seven-day schedule if none exist yet. Safe to run on every start.
func SeedDefaults(db *gorm.DB) error {
	var profileCount int64
	if err := db.Model(&models.ShopProfile{}).Count(&profileCount).Error; err != nil {
		return err
	}
	if profileCount == 0 {
		profile := models.ShopProfile{
			Name:   "Bistro",
			IsOpen: true,
		}
		if err := db.Create(&profile).Error; err != nil {
			return err
		}
		log.Println("Default shop profile created")
	}

	var settings models.DeliverySettings
	if err := db.First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		settings = models.DeliverySettings{
			MinDeliveryMinutes: 30,
			MaxDeliveryMinutes: 60,
		}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
		log.Println("Default delivery settings created")
	}

	var dayCount int64
	if err := db.Model(&models.DaySchedule{}).Count(&dayCount).Error; err != nil {
		return err
	}
	if dayCount == 0 {
		for day := 0; day < 7; day++ {
			row := models.DaySchedule{
				Day: day,
				Blocks: []models.TimeBlock{{
					StartTime: schedule.Clock(schedule.DefaultOpen),
					EndTime:   schedule.Clock(schedule.DefaultClose),
				}},
			}
			if err := db.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed schedule for day %s: %w", time.Weekday(day), err)
			}
		}
		log.Println("Default weekly schedule created")
	}

	return nil
}
