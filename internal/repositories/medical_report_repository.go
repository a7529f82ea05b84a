package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type MedicalReportRepository interface {
	Create(ctx context.Context, report *db_models.UserMedicalReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserMedicalReport, error)
	FindForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.UserMedicalReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicalReportRepository struct {
	db *gorm.DB
}

func NewMedicalReportRepository(db *gorm.DB) MedicalReportRepository {
	return &medicalReportRepository{db: db}
}

func (r *medicalReportRepository) Create(ctx context.Context, report *db_models.UserMedicalReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *medicalReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserMedicalReport, error) {
	var out []db_models.UserMedicalReport
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *medicalReportRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.UserMedicalReport, error) {
	var rep db_models.UserMedicalReport
	err := r.db.WithContext(ctx).First(&rep, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

func (r *medicalReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.UserMedicalReport{}, "id = ?", id).Error
}
