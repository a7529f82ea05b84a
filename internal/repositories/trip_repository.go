package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type TripRepository interface {
	// CreateWithNotification stores the trip and the planning notification
	// in one transaction.
	CreateWithNotification(ctx context.Context, trip *db_models.Trip, n *db_models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Trip, int64, error)
	ListShared(ctx context.Context, page, pageSize int) ([]db_models.Trip, int64, error)
	Update(ctx context.Context, trip *db_models.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByLocation returns how many trips the user has per location.
	CountByLocation(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int, error)

	ListItinerary(ctx context.Context, tripID uuid.UUID) ([]db_models.ItineraryItem, error)
	FindItineraryItem(ctx context.Context, tripID, itemID uuid.UUID) (*db_models.ItineraryItem, error)
	CreateItineraryItem(ctx context.Context, item *db_models.ItineraryItem) error
	UpdateItineraryItem(ctx context.Context, item *db_models.ItineraryItem) error
	DeleteItineraryItem(ctx context.Context, itemID uuid.UUID) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateWithNotification(ctx context.Context, trip *db_models.Trip, n *db_models.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Location", "Itinerary").Create(trip).Error; err != nil {
			return err
		}
		if n != nil {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) paged(ctx context.Context, scope func(*gorm.DB) *gorm.DB, page, pageSize int) ([]db_models.Trip, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Trip{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Location").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	return trips, total, err
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Trip, int64, error) {
	return r.paged(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, page, pageSize)
}

func (r *tripRepository) ListShared(ctx context.Context, page, pageSize int) ([]db_models.Trip, int64, error) {
	return r.paged(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("shared_publicly = ?", true)
	}, page, pageSize)
}

func (r *tripRepository) Update(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("id = ?", trip.ID).
		Updates(map[string]interface{}{
			"start_date":      trip.StartDate,
			"end_date":        trip.EndDate,
			"budget_estimate": trip.BudgetEstimate,
			"shared_publicly": trip.SharedPublicly,
		}).Error
}

func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&db_models.ItineraryItem{}, "trip_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&db_models.FirstAidKit{}).Where("trip_id = ?", id).Update("trip_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Trip{}, "id = ?", id).Error
	})
}

func (r *tripRepository) CountByLocation(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		LocationID uuid.UUID
		N          int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Select("location_id, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("location_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]int, len(rows))
	for _, rw := range rows {
		out[rw.LocationID] = rw.N
	}
	return out, nil
}

func (r *tripRepository) ListItinerary(ctx context.Context, tripID uuid.UUID) ([]db_models.ItineraryItem, error) {
	var items []db_models.ItineraryItem
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("start_time ASC").
		Find(&items).Error
	return items, err
}

func (r *tripRepository) FindItineraryItem(ctx context.Context, tripID, itemID uuid.UUID) (*db_models.ItineraryItem, error) {
	var item db_models.ItineraryItem
	err := r.db.WithContext(ctx).First(&item, "id = ? AND trip_id = ?", itemID, tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *tripRepository) CreateItineraryItem(ctx context.Context, item *db_models.ItineraryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *tripRepository) UpdateItineraryItem(ctx context.Context, item *db_models.ItineraryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *tripRepository) DeleteItineraryItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.ItineraryItem{}, "id = ?", itemID).Error
}
