package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/heartpages/lovepage-backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PackageHandler struct {
	packageService *service.PackageService
	logger         *zap.Logger
}

func NewPackageHandler(packageService *service.PackageService, logger *zap.Logger) *PackageHandler {
	return &PackageHandler{packageService: packageService, logger: logger}
}

func (h *PackageHandler) GetPackages(c *fiber.Ctx) error {
	tiers, err := h.packageService.GetAllPackages()
	if err != nil {
		h.logger.Error("failed to list packages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load packages."})
	}
	return c.JSON(tiers)
}

func (h *PackageHandler) GetPackageByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	tier, err := h.packageService.GetPackageByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Package not found."})
		}
		h.logger.Error("failed to fetch package", zap.String("code", code), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load packages."})
	}
	return c.JSON(tier)
}
