package repository

import (
	"github.com/heartpages/lovepage-backend/internal/models"
	"gorm.io/gorm"
)

type PackageTierRepository struct {
	db *gorm.DB
}

func NewPackageTierRepository(db *gorm.DB) *PackageTierRepository {
	return &PackageTierRepository{db: db}
}

func (r *PackageTierRepository) GetByCode(code string) (*models.PackageTier, error) {
	var tier models.PackageTier
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *PackageTierRepository) GetAll() ([]models.PackageTier, error) {
	var tiers []models.PackageTier
	err := r.db.Where("is_active = ?", true).Order("price asc").Find(&tiers).Error
	return tiers, err
}
