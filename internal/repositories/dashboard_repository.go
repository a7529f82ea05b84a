package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "trailhub/internal/models/db_models"
)

type DashboardRepository interface {
	CountTotalUsers(ctx context.Context) (int64, error)
	CountNewUsers(ctx context.Context, start, end time.Time) (int64, error)
	CountTotalTrips(ctx context.Context) (int64, error)
	CountItineraryItems(ctx context.Context) (int64, error)
	CountSharedTrips(ctx context.Context) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
	AverageBudgetTotal(ctx context.Context) (float64, error)

	// UserSignupTimes returns created_at (unix seconds) of users created in range.
	UserSignupTimes(ctx context.Context, start, end time.Time) ([]int64, error)
	TopLocations(ctx context.Context, start, end time.Time, limit int) ([]LocationRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

type LocationRow struct {
	LocationID string `gorm:"column:location_id"`
	Name       string `gorm:"column:name"`
	Count      int64  `gorm:"column:count"`
}

func (r *dashboardRepository) count(ctx context.Context, model interface{}, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Scopes(scopes...).Count(&n).Error
	return n, err
}

func createdBetween(start, end time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix())
	}
}

func (r *dashboardRepository) CountTotalUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.User{})
}

func (r *dashboardRepository) CountNewUsers(ctx context.Context, start, end time.Time) (int64, error) {
	return r.count(ctx, &dbm.User{}, createdBetween(start, end))
}

func (r *dashboardRepository) CountTotalTrips(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Trip{})
}

func (r *dashboardRepository) CountItineraryItems(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.ItineraryItem{})
}

func (r *dashboardRepository) CountSharedTrips(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Trip{}, func(db *gorm.DB) *gorm.DB {
		return db.Where("shared_publicly = ?", true)
	})
}

func (r *dashboardRepository) CountReviews(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Review{})
}

func (r *dashboardRepository) AverageBudgetTotal(ctx context.Context) (float64, error) {
	var out struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).Model(&dbm.Budget{}).Select("AVG(total) AS avg").Scan(&out).Error
	if err != nil || out.Avg == nil {
		return 0, err
	}
	return *out.Avg, nil
}

func (r *dashboardRepository) UserSignupTimes(ctx context.Context, start, end time.Time) ([]int64, error) {
	var out []int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Scopes(createdBetween(start, end)).
		Order("created_at ASC, id ASC").
		Pluck("created_at", &out).Error
	return out, err
}

func (r *dashboardRepository) TopLocations(ctx context.Context, start, end time.Time, limit int) ([]LocationRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []LocationRow
	err := r.db.WithContext(ctx).
		Table("trips AS t").
		Select("t.location_id AS location_id, l.name AS name, COUNT(*) AS count").
		Joins("JOIN adventure_locations l ON l.id = t.location_id").
		Where("t.created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("t.location_id, l.name").
		Order("count DESC, name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
