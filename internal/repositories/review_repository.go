package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type ReviewRepository interface {
	// CreateAndRecompute inserts the review and refreshes the location's
	// average rating in the same transaction.
	CreateAndRecompute(ctx context.Context, review *db_models.Review) error
	ListByLocation(ctx context.Context, locationID uuid.UUID, page, pageSize int) ([]db_models.Review, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error)
	ExistsForUser(ctx context.Context, userID, locationID uuid.UUID) (bool, error)
	DeleteAndRecompute(ctx context.Context, review *db_models.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func recomputeAverage(tx *gorm.DB, locationID uuid.UUID) error {
	var avg struct {
		Avg *float64
	}
	if err := tx.Model(&db_models.Review{}).
		Select("AVG(rating) AS avg").
		Where("location_id = ?", locationID).
		Scan(&avg).Error; err != nil {
		return err
	}

	value := 0.0
	if avg.Avg != nil {
		value = *avg.Avg
	}
	return tx.Model(&db_models.AdventureLocation{}).
		Where("id = ?", locationID).
		Update("average_rating", value).Error
}

func (r *reviewRepository) CreateAndRecompute(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Location").Create(review).Error; err != nil {
			return err
		}
		return recomputeAverage(tx, review.LocationID)
	})
}

func (r *reviewRepository) ListByLocation(ctx context.Context, locationID uuid.UUID, page, pageSize int) ([]db_models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Review{}).Where("location_id = ?", locationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []db_models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("location_id = ?", locationID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, total, err
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error) {
	var rv db_models.Review
	err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ExistsForUser(ctx context.Context, userID, locationID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Count(&n).Error
	return n > 0, err
}

func (r *reviewRepository) DeleteAndRecompute(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&db_models.Review{}, "id = ?", review.ID).Error; err != nil {
			return err
		}
		return recomputeAverage(tx, review.LocationID)
	})
}
