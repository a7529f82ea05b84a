package repositories

import (
	"context"

	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type SpotRepository interface {
	Create(ctx context.Context, spot *db_models.UserSubmittedSpot) error
	List(ctx context.Context, page, pageSize int) ([]db_models.UserSubmittedSpot, int64, error)
}

type spotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

func (r *spotRepository) Create(ctx context.Context, spot *db_models.UserSubmittedSpot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

func (r *spotRepository) List(ctx context.Context, page, pageSize int) ([]db_models.UserSubmittedSpot, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.UserSubmittedSpot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var spots []db_models.UserSubmittedSpot
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&spots).Error
	return spots, total, err
}
