package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
)

type LocationRepository interface {
	List(ctx context.Context, filter request_models.LocationFilter) ([]db_models.AdventureLocation, int64, error)
	ListAll(ctx context.Context) ([]db_models.AdventureLocation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.AdventureLocation, error)
	Create(ctx context.Context, loc *db_models.AdventureLocation) error
	Update(ctx context.Context, loc *db_models.AdventureLocation) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateWeather(ctx context.Context, id uuid.UUID, info string) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) List(ctx context.Context, f request_models.LocationFilter) ([]db_models.AdventureLocation, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.AdventureLocation{})
	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.MaxDifficulty > 0 {
		q = q.Where("difficulty <= ?", f.MaxDifficulty)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []db_models.AdventureLocation
	err := q.Order("name ASC, id ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&out).Error
	return out, total, err
}

func (r *locationRepository) ListAll(ctx context.Context) ([]db_models.AdventureLocation, error) {
	var out []db_models.AdventureLocation
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.AdventureLocation, error) {
	var loc db_models.AdventureLocation
	err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) Create(ctx context.Context, loc *db_models.AdventureLocation) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

// Update writes the editable columns only; average_rating and weather_info
// are owned by review recomputation and the weather refresh.
func (r *locationRepository) Update(ctx context.Context, loc *db_models.AdventureLocation) error {
	return r.db.WithContext(ctx).
		Model(&db_models.AdventureLocation{}).
		Where("id = ?", loc.ID).
		Updates(map[string]interface{}{
			"name":        loc.Name,
			"description": loc.Description,
			"category":    loc.Category,
			"difficulty":  loc.Difficulty,
			"latitude":    loc.Latitude,
			"longitude":   loc.Longitude,
		}).Error
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.AdventureLocation{}, "id = ?", id).Error
}

func (r *locationRepository) UpdateWeather(ctx context.Context, id uuid.UUID, info string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.AdventureLocation{}).
		Where("id = ?", id).
		Update("weather_info", info).Error
}
