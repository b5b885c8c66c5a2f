package service

import (
	"github.com/heartpages/lovepage-backend/internal/models"
	"github.com/heartpages/lovepage-backend/internal/repository"
)

type PackageService struct {
	tierRepo *repository.PackageTierRepository
}

func NewPackageService(tierRepo *repository.PackageTierRepository) *PackageService {
	return &PackageService{tierRepo: tierRepo}
}

func (s *PackageService) GetAllPackages() ([]models.PackageTier, error) {
	return s.tierRepo.GetAll()
}

func (s *PackageService) GetPackageByCode(code string) (*models.PackageTier, error) {
	return s.tierRepo.GetByCode(code)
}
