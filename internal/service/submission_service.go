package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartpages/lovepage-backend/internal/models"
	"github.com/heartpages/lovepage-backend/internal/page"
	"github.com/heartpages/lovepage-backend/internal/repository"
	"github.com/heartpages/lovepage-backend/pkg/payment"
	"github.com/heartpages/lovepage-backend/pkg/storage"
	"github.com/heartpages/lovepage-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LinkMailer delivers the shareable link after a successful purchase.
type LinkMailer interface {
	SendPageLink(to, partnerName, link string) error
}

// MediaFiles carries the public URLs of the stored uploads for one request.
type MediaFiles struct {
	Images []string
	Videos []string
	Music  string
}

const slugInsertAttempts = 3

type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	tierRepo       *repository.PackageTierRepository
	verifier       payment.Verifier
	mailer         LinkMailer
	blobs          storage.BlobStorage
	pagesDir       string
	logger         *zap.Logger
}

// NewSubmissionService wires the create/fetch flow. mailer may be nil when
// outgoing email is not configured.
func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	tierRepo *repository.PackageTierRepository,
	verifier payment.Verifier,
	mailer LinkMailer,
	blobs storage.BlobStorage,
	pagesDir string,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		tierRepo:       tierRepo,
		verifier:       verifier,
		mailer:         mailer,
		blobs:          blobs,
		pagesDir:       pagesDir,
		logger:         logger,
	}
}

// StoreMedia persists one uploaded file and returns its public URL.
func (s *SubmissionService) StoreMedia(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", file.Filename, err)
	}
	defer src.Close()

	return s.blobs.Save(ctx, utils.MakeUploadKey(file.Filename), src)
}

// CreateLovePage verifies payment, renders the static page, and persists the
// submission. The slug insert is retried on a duplicate key; everything else
// fails the request as a whole with no partial-success reporting.
func (s *SubmissionService) CreateLovePage(ctx context.Context, req models.CreateLovePageRequest, media MediaFiles, baseURL string) (*models.CreateLovePageResponse, error) {
	tier, err := s.tierRepo.GetByCode(req.PackageID)
	if err != nil {
		return nil, fmt.Errorf("unknown package %q: %w", req.PackageID, err)
	}

	if err := s.verifier.Verify(ctx, req.PaymentReference, tier.Price); err != nil {
		return nil, err
	}

	html, err := page.Render(page.PageData{
		SenderName:           req.SenderName,
		PartnerName:          req.PartnerName,
		Relationship:         req.Relationship,
		RelationshipDuration: req.RelationshipDuration,
		FirstEncounter:       req.FirstEncounter,
		LoveMessage:          req.LoveMessage,
		SurpriseTime:         req.SurpriseTime,
		LoveStoryNotes:       req.LoveStoryNotes,
		PageColor:            req.PageColor,
		PackageID:            req.PackageID,
		Images:               media.Images,
		Videos:               media.Videos,
		Music:                media.Music,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	dataJSON, err := json.Marshal(req.FormValues())
	if err != nil {
		return nil, err
	}
	imagesJSON, err := json.Marshal(media.Images)
	if err != nil {
		return nil, err
	}
	videosJSON, err := json.Marshal(media.Videos)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		SenderName:       req.SenderName,
		PartnerName:      req.PartnerName,
		Whatsapp:         req.Whatsapp,
		PackageID:        req.PackageID,
		PackageName:      req.PackageName,
		PackagePrice:     req.PackagePrice,
		PaymentReference: req.PaymentReference,
		DataJSON:         string(dataJSON),
		ImagesJSON:       string(imagesJSON),
		VideosJSON:       string(videosJSON),
		MusicPath:        media.Music,
	}

	for attempt := 1; ; attempt++ {
		submission.Slug = utils.GenerateSlug()
		err = s.submissionRepo.Create(submission)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= slugInsertAttempts {
			return nil, fmt.Errorf("failed to store submission: %w", err)
		}
		s.logger.Warn("slug collision, regenerating",
			zap.String("slug", submission.Slug), zap.Int("attempt", attempt))
	}

	if err := s.writePageFile(submission.Slug, html); err != nil {
		return nil, err
	}

	link := strings.TrimRight(baseURL, "/") + "/love/" + submission.Slug

	if s.mailer != nil && req.Email != "" {
		if err := s.mailer.SendPageLink(req.Email, req.PartnerName, link); err != nil {
			s.logger.Warn("page link email not delivered",
				zap.String("slug", submission.Slug), zap.Error(err))
		}
	}

	s.logger.Info("love page created",
		zap.String("slug", submission.Slug),
		zap.String("package", submission.PackageID),
		zap.Int("images", len(media.Images)),
		zap.Int("videos", len(media.Videos)))

	return &models.CreateLovePageResponse{
		Message: "Love page created.",
		Slug:    submission.Slug,
		Link:    link,
	}, nil
}

func (s *SubmissionService) writePageFile(slug, html string) error {
	dir := filepath.Join(s.pagesDir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create page directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write page file: %w", err)
	}
	return nil
}

// GetBySlug shapes the viewer response. JSON columns are safe-parsed: a
// malformed row reads as empty lists, not an error.
func (s *SubmissionService) GetBySlug(slug string) (*models.SubmissionResponse, error) {
	submission, err := s.submissionRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	images := submission.Images()
	videos := submission.Videos()
	data := submission.Data()

	return &models.SubmissionResponse{
		Slug:         submission.Slug,
		SenderName:   submission.SenderName,
		PartnerName:  submission.PartnerName,
		PackageID:    submission.PackageID,
		PackageName:  submission.PackageName,
		PackagePrice: submission.PackagePrice,
		Music:        submission.MusicPath,
		Images:       images,
		Videos:       videos,
		Data:         data,
		Sections: page.Visibility(
			submission.PackageID,
			len(images),
			len(videos),
			submission.MusicPath != "",
			data["loveStoryNotes"] != "",
		),
		CreatedAt: submission.CreatedAt,
	}, nil
}
