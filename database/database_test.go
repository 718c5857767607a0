package database

import (
	"os"
	"testing"

	"bistro-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"name" TEXT,
			"role" TEXT DEFAULT 'admin',
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "shop_profiles" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"tagline" TEXT,
			"description" TEXT,
			"address" TEXT,
			"phone" TEXT,
			"email" TEXT,
			"logo_url" TEXT,
			"is_open" INTEGER DEFAULT 1,
			"closed_message" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "delivery_settings" (
			"id" TEXT PRIMARY KEY,
			"min_delivery_minutes" INTEGER DEFAULT 30,
			"max_delivery_minutes" INTEGER DEFAULT 60,
			"delivery_fee" REAL DEFAULT 0,
			"free_delivery_min" REAL DEFAULT 0,
			"delivery_radius_km" REAL DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "day_schedules" (
			"id" TEXT PRIMARY KEY,
			"day" INTEGER NOT NULL UNIQUE,
			"is_closed" INTEGER DEFAULT 0,
			"is_24h" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "time_blocks" (
			"id" TEXT PRIMARY KEY,
			"day_schedule_id" TEXT NOT NULL,
			"start_time" TEXT NOT NULL,
			"end_time" TEXT NOT NULL,
			"position" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_time_blocks_day FOREIGN KEY ("day_schedule_id") REFERENCES "day_schedules"("id")
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func TestCreateDefaultAdminNew(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "testadmin@test.com")
	os.Setenv("ADMIN_PASSWORD", "testpassword123")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer os.Unsetenv("ADMIN_PASSWORD")

	err := CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	var user models.User
	if err := db.Where("email = ?", "testadmin@test.com").First(&user).Error; err != nil {
		t.Fatal("admin user not created")
	}
	if user.Role != "admin" {
		t.Errorf("expected role 'admin', got '%s'", user.Role)
	}
}

func TestCreateDefaultAdminAlreadyExists(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "existing@test.com")
	os.Setenv("ADMIN_PASSWORD", "password123")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer os.Unsetenv("ADMIN_PASSWORD")

	// Create admin first time
	err := CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	// Second call should skip (no error)
	err = CreateDefaultAdmin(db)
	if err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "existing@test.com").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 admin, got %d", count)
	}
}

func TestSeedDefaultsNew(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedDefaults(db); err != nil {
		t.Fatal(err)
	}

	var profile models.ShopProfile
	if err := db.First(&profile).Error; err != nil {
		t.Fatal("shop profile not created")
	}
	if !profile.IsOpen {
		t.Error("expected seeded shop profile to be open")
	}

	var settings models.DeliverySettings
	if err := db.First(&settings).Error; err != nil {
		t.Fatal("delivery settings not created")
	}
	if settings.MinDeliveryMinutes != 30 || settings.MaxDeliveryMinutes != 60 {
		t.Errorf("unexpected delivery window: %d-%d",
			settings.MinDeliveryMinutes, settings.MaxDeliveryMinutes)
	}

	var dayCount int64
	db.Model(&models.DaySchedule{}).Count(&dayCount)
	if dayCount != 7 {
		t.Errorf("expected 7 day schedules, got %d", dayCount)
	}

	var block models.TimeBlock
	if err := db.First(&block).Error; err != nil {
		t.Fatal("no time blocks seeded")
	}
	if block.StartTime != "09:00" || block.EndTime != "21:00" {
		t.Errorf("expected default block 09:00-21:00, got %s-%s", block.StartTime, block.EndTime)
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := SeedDefaults(db); err != nil {
		t.Fatal(err)
	}
	if err := SeedDefaults(db); err != nil {
		t.Fatal(err)
	}

	var profileCount, dayCount int64
	db.Model(&models.ShopProfile{}).Count(&profileCount)
	db.Model(&models.DaySchedule{}).Count(&dayCount)
	if profileCount != 1 {
		t.Errorf("expected 1 shop profile, got %d", profileCount)
	}
	if dayCount != 7 {
		t.Errorf("expected 7 day schedules, got %d", dayCount)
	}
}
