package repository

import (
	"github.com/heartpages/lovepage-backend/internal/models"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

func (r *SubmissionRepository) GetBySlug(slug string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Where("slug = ?", slug).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
