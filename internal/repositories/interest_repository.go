package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type InterestRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserInterest, error)
	Create(ctx context.Context, interest *db_models.UserInterest) error
	FindForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.UserInterest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListExcludingUser returns every interest held by other users.
	ListExcludingUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserInterest, error)
}

type interestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserInterest, error) {
	var out []db_models.UserInterest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *interestRepository) Create(ctx context.Context, interest *db_models.UserInterest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

func (r *interestRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.UserInterest, error) {
	var in db_models.UserInterest
	err := r.db.WithContext(ctx).First(&in, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &in, nil
}

func (r *interestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.UserInterest{}, "id = ?", id).Error
}

func (r *interestRepository) ListExcludingUser(ctx context.Context, userID uuid.UUID) ([]db_models.UserInterest, error) {
	var out []db_models.UserInterest
	err := r.db.WithContext(ctx).Where("user_id <> ?", userID).Find(&out).Error
	return out, err
}
