package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/civicreport/models"
)

// SubmissionRepository is the record store for citizen submissions.
type SubmissionRepository interface {
	// Create inserts s and returns the stored row, including generated id and created_at.
	Create(ctx context.Context, s *models.Submission) (*models.Submission, error)
	// List returns rows whose status equals status, or all rows when status is empty,
	// newest first.
	List(ctx context.Context, status string) ([]models.Submission, error)
}

type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepositoryImpl {
	return &SubmissionRepositoryImpl{db: db}
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, s *models.Submission) (*models.Submission, error) {
	db := r.db.WithContext(ctx)
	if err := db.Create(s).Error; err != nil {
		return nil, err
	}
	var stored models.Submission
	if err := db.First(&stored, "id = ?", s.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *SubmissionRepositoryImpl) List(ctx context.Context, status string) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var items []models.Submission
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
