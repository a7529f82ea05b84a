package repositories

import (
	"context"

	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type PackingRepository interface {
	// ListDefaults returns default items, all types when adventureType is empty.
	ListDefaults(ctx context.Context, adventureType string) ([]db_models.PackingItem, error)
}

type packingRepository struct {
	db *gorm.DB
}

func NewPackingRepository(db *gorm.DB) PackingRepository {
	return &packingRepository{db: db}
}

func (r *packingRepository) ListDefaults(ctx context.Context, adventureType string) ([]db_models.PackingItem, error) {
	q := r.db.WithContext(ctx).Where("is_default = ?", true)
	if adventureType != "" {
		q = q.Where("adventure_type = ?", adventureType)
	}
	var items []db_models.PackingItem
	err := q.Order("adventure_type ASC, sort_order ASC, name ASC").Find(&items).Error
	return items, err
}
