package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/heartpages/lovepage-backend/internal/config"
	"github.com/heartpages/lovepage-backend/internal/handler"
	"github.com/heartpages/lovepage-backend/internal/repository"
	"github.com/heartpages/lovepage-backend/internal/service"
	"github.com/heartpages/lovepage-backend/pkg/database"
	"github.com/heartpages/lovepage-backend/pkg/email"
	"github.com/heartpages/lovepage-backend/pkg/logger"
	"github.com/heartpages/lovepage-backend/pkg/payment"
	"github.com/heartpages/lovepage-backend/pkg/qrcode"
	"github.com/heartpages/lovepage-backend/pkg/storage"
	"github.com/heartpages/lovepage-backend/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer zlog.Sync()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.PagesDir, 0o755); err != nil {
		zlog.Fatal("failed to create pages directory", zap.Error(err))
	}

	// Storage
	var blobs storage.BlobStorage
	switch cfg.StorageDriver {
	case "r2":
		blobs, err = storage.NewR2Storage(cfg.R2)
		if err != nil {
			zlog.Fatal("failed to initialize R2 storage", zap.Error(err))
		}
	default:
		blobs, err = storage.NewLocalStorage(cfg.UploadDir, "/uploads")
		if err != nil {
			zlog.Fatal("failed to initialize local storage", zap.Error(err))
		}
	}

	// Payment verification
	var verifier payment.Verifier
	if cfg.Paystack.SecretKey != "" {
		verifier = payment.NewPaystackClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, zlog)
	} else {
		zlog.Warn("PAYSTACK_SECRET_KEY not set, payment verification disabled")
		verifier = payment.NoopVerifier{Logger: zlog}
	}

	// Outgoing email is optional.
	var mailer service.LinkMailer
	if cfg.Email.ResendAPIKey != "" {
		mailer = email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zlog)
	}

	// Repositories
	submissionRepo := repository.NewSubmissionRepository(db)
	tierRepo := repository.NewPackageTierRepository(db)

	// Services
	submissionService := service.NewSubmissionService(
		submissionRepo,
		tierRepo,
		verifier,
		mailer,
		blobs,
		cfg.PagesDir,
		zlog,
	)
	packageService := service.NewPackageService(tierRepo)

	qrService := qrcode.NewQRService(cfg.BaseURL)
	validator := utils.NewValidator()

	// Handlers
	submissionHandler := handler.NewSubmissionHandler(submissionService, qrService, validator, cfg.BaseURL, zlog)
	packageHandler := handler.NewPackageHandler(packageService, zlog)

	app := fiber.New(fiber.Config{
		// 20 videos plus images in one create request.
		BodyLimit: 512 * 1024 * 1024,
	})

	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Static("/uploads", cfg.UploadDir)
	app.Static("/pages", cfg.PagesDir)

	handler.RegisterRoutes(app, submissionHandler, packageHandler)

	// SPA fallback: serve the built frontend when it exists.
	if indexFile := filepath.Join(cfg.DistDir, "index.html"); fileExists(indexFile) {
		app.Static("/", cfg.DistDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(indexFile)
		})
	}

	zlog.Info("API server running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
