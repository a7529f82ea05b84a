package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type EventRepository interface {
	Create(ctx context.Context, event *db_models.SuggestedEvent) error
	List(ctx context.Context) ([]db_models.SuggestedEvent, error)
	// Filter matches category as a case-insensitive substring and date exactly.
	Filter(ctx context.Context, category string, date *time.Time) ([]db_models.SuggestedEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *db_models.SuggestedEvent) error {
	return r.db.WithContext(ctx).Omit("Suggester").Create(event).Error
}

func (r *eventRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Suggester").
		Order("event_date ASC").
		Order("event_time ASC")
}

func (r *eventRepository) List(ctx context.Context) ([]db_models.SuggestedEvent, error) {
	var out []db_models.SuggestedEvent
	err := r.ordered(ctx).Find(&out).Error
	return out, err
}

func (r *eventRepository) Filter(ctx context.Context, category string, date *time.Time) ([]db_models.SuggestedEvent, error) {
	q := r.ordered(ctx)
	if category != "" {
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	if date != nil {
		q = q.Where("event_date = ?", *date)
	}
	var out []db_models.SuggestedEvent
	err := q.Find(&out).Error
	return out, err
}
