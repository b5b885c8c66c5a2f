package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/heartpages/lovepage-backend/internal/models"
	"github.com/heartpages/lovepage-backend/internal/service"
	"github.com/heartpages/lovepage-backend/pkg/payment"
	"github.com/heartpages/lovepage-backend/pkg/qrcode"
	"github.com/heartpages/lovepage-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Per-request caps on the multipart file fields.
const (
	maxImages = 20
	maxVideos = 10
	maxMusic  = 1
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	qrService         *qrcode.QRService
	validator         *utils.Validator
	baseURL           string
	logger            *zap.Logger
}

func NewSubmissionHandler(
	submissionService *service.SubmissionService,
	qrService *qrcode.QRService,
	validator *utils.Validator,
	baseURL string,
	logger *zap.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		qrService:         qrService,
		validator:         validator,
		baseURL:           baseURL,
		logger:            logger,
	}
}

func (h *SubmissionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *SubmissionHandler) GetLovePage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	submission, err := h.submissionService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Love page not found."})
		}
		h.logger.Error("failed to fetch love page", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load love page."})
	}

	return c.JSON(submission)
}

func (h *SubmissionHandler) CreateLovePage(c *fiber.Ctx) error {
	var req models.CreateLovePageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid form data."})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var images, videos, music []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
		videos = form.File["videos"]
		music = form.File["music"]
	}

	if len(images) > maxImages || len(videos) > maxVideos || len(music) > maxMusic {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Too many files uploaded."})
	}

	var media service.MediaFiles
	for _, file := range images {
		url, err := h.submissionService.StoreMedia(c.Context(), file)
		if err != nil {
			h.logger.Error("failed to store image", zap.String("file", file.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create love page."})
		}
		media.Images = append(media.Images, url)
	}
	for _, file := range videos {
		url, err := h.submissionService.StoreMedia(c.Context(), file)
		if err != nil {
			h.logger.Error("failed to store video", zap.String("file", file.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create love page."})
		}
		media.Videos = append(media.Videos, url)
	}
	if len(music) > 0 {
		url, err := h.submissionService.StoreMedia(c.Context(), music[0])
		if err != nil {
			h.logger.Error("failed to store music", zap.String("file", music[0].Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create love page."})
		}
		media.Music = url
	}

	baseURL := h.baseURL
	if baseURL == "" {
		baseURL = c.BaseURL()
	}

	resp, err := h.submissionService.CreateLovePage(c.Context(), req, media, baseURL)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotVerified), errors.Is(err, payment.ErrMissingReference):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "Payment could not be verified."})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unknown package."})
		default:
			h.logger.Error("failed to create love page", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create love page."})
		}
	}

	return c.JSON(resp)
}

func (h *SubmissionHandler) GetLovePageQR(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if _, err := h.submissionService.GetBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Love page not found."})
		}
		h.logger.Error("failed to fetch love page for QR", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load love page."})
	}

	png, err := h.qrService.GenerateForSlug(slug, 256)
	if err != nil {
		h.logger.Error("failed to generate QR code", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load love page."})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
