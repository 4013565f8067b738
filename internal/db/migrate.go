package db

import (
	"errors"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/util"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Admin{},
		&model.Customer{},
		&model.DeliveryMan{},
		&model.Restaurant{},
		&model.Address{},
		&model.OTP{},
		&model.Category{},
		&model.Product{},
		&model.Addon{},
		&model.AddonPerProduct{},
		&model.Combo{},
		&model.ComboItem{},
		&model.Offer{},
		&model.Favorite{},
		&model.Rate{},
		&model.HomeAd{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdmin creates the bootstrap admin account when none exists yet.
// Admins cannot self-register, so this is the only way the first one appears.
func SeedAdmin(cfg *config.AdminSeedConfig) error {
	return seedAdmin(DB, cfg)
}

func seedAdmin(database *gorm.DB, cfg *config.AdminSeedConfig) error {
	if cfg.Phone == "" || cfg.Password == "" {
		logger.Info("Admin seed credentials not configured, skipping...")
		return nil
	}

	var existing model.Admin
	err := database.Where("phone = ?", cfg.Phone).First(&existing).Error
	if err == nil {
		logger.Info("Admin already seeded, skipping...", map[string]interface{}{
			"admin_id": existing.ID,
		})
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &model.Admin{
		Account: model.Account{
			Name:         cfg.Name,
			Phone:        cfg.Phone,
			PasswordHash: hash,
		},
	}
	admin.SetStatus(model.StatusActive)

	if err := database.Create(admin).Error; err != nil {
		logger.Error("Failed to seed admin", err, map[string]interface{}{
			"phone": cfg.Phone,
		})
		return err
	}

	logger.Info("Admin seeded successfully", map[string]interface{}{
		"admin_id": admin.ID,
	})
	return nil
}
