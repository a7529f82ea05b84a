package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type BudgetRepository interface {
	Create(ctx context.Context, b *db_models.Budget) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Budget, int64, error)
	LatestByUser(ctx context.Context, userID uuid.UUID) (*db_models.Budget, error)
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, b *db_models.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Budget, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Budget{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []db_models.Budget
	err := q.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, total, err
}

func (r *budgetRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (*db_models.Budget, error) {
	var b db_models.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
