package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/sangkips/optica-api/internal/config"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/utils"
	"gorm.io/gorm"
)

// SeedDefaultData creates the first store with its owner when SEED_OWNER_EMAIL
// and SEED_OWNER_PASSWORD are configured. Running it again is a no-op.
func SeedDefaultData(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.OwnerEmail == "" || cfg.OwnerPassword == "" {
		log.Println("Seed skipped: SEED_OWNER_EMAIL and SEED_OWNER_PASSWORD are not set")
		return nil
	}

	var existing entity.User
	err := db.Where("email = ?", cfg.OwnerEmail).First(&existing).Error
	if err == nil {
		log.Printf("Owner user already exists: %s", cfg.OwnerEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	password, err := utils.HashPassword(cfg.OwnerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		tenant := entity.Tenant{Name: cfg.TenantName, Slug: utils.Slugify(cfg.TenantName)}
		if cfg.ManagerPIN != "" {
			pin, err := utils.HashPassword(cfg.ManagerPIN)
			if err != nil {
				return fmt.Errorf("failed to hash manager PIN: %w", err)
			}
			tenant.ManagerPINHash = pin
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		owner := entity.User{
			TenantID: tenant.ID,
			Name:     cfg.OwnerName,
			Email:    cfg.OwnerEmail,
			Password: password,
			Role:     enum.UserRoleOwner,
			Active:   true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to create owner: %w", err)
		}

		log.Printf("Seeded store %q with owner %s", tenant.Name, owner.Email)
		return nil
	})
}
