package database

import (
	"fmt"

	"github.com/heartpages/lovepage-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func New(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the tables idempotently and seeds the package
// catalog. Seeding is keyed on the tier code so restarts never duplicate.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Submission{},
		&models.PackageTier{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	tiers := []models.PackageTier{
		{
			Code:        "basic",
			Name:        "Letter + Memories",
			Description: "A heartfelt letter and memories page without pictures.",
			Price:       30,
			IsActive:    true,
		},
		{
			Code:              "premium",
			Name:              "Premium Memories",
			Description:       "Photos included with a richer premium layout.",
			Price:             50,
			IncludesPhotos:    true,
			IncludesColor:     true,
			IncludesLoveStory: true,
			IsActive:          true,
		},
		{
			Code:              "ultimate",
			Name:              "Ultimate Love Story",
			Description:       "Videos, pictures, love stories, premium extras, and music.",
			Price:             80,
			IncludesPhotos:    true,
			IncludesVideos:    true,
			IncludesColor:     true,
			IncludesLoveStory: true,
			IncludesMusic:     true,
			IsActive:          true,
		},
	}

	for _, tier := range tiers {
		var count int64
		if err := db.Model(&models.PackageTier{}).Where("code = ?", tier.Code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&tier).Error; err != nil {
				return fmt.Errorf("failed to seed package tier %s: %w", tier.Code, err)
			}
		}
	}

	return nil
}
