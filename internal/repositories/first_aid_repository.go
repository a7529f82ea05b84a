package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type FirstAidRepository interface {
	CreateKit(ctx context.Context, kit *db_models.FirstAidKit) error
	ListKits(ctx context.Context, userID uuid.UUID) ([]db_models.FirstAidKit, error)
	FindKit(ctx context.Context, id, userID uuid.UUID) (*db_models.FirstAidKit, error)
	DeleteKit(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, item *db_models.FirstAidItem) error
	// FindItem returns the item only when its kit belongs to userID.
	FindItem(ctx context.Context, id, userID uuid.UUID) (*db_models.FirstAidItem, error)
	SetPacked(ctx context.Context, id uuid.UUID, packed bool) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// ListExpiring returns items of the user's kits expiring on or before cutoff.
	ListExpiring(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]ExpiringItemRow, error)
}

type ExpiringItemRow struct {
	db_models.FirstAidItem
	KitName string `gorm:"column:kit_name"`
}

type firstAidRepository struct {
	db *gorm.DB
}

func NewFirstAidRepository(db *gorm.DB) FirstAidRepository {
	return &firstAidRepository{db: db}
}

func (r *firstAidRepository) CreateKit(ctx context.Context, kit *db_models.FirstAidKit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := kit.Items
		kit.Items = nil
		if err := tx.Create(kit).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].KitID = kit.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		kit.Items = items
		return nil
	})
}

func withOrderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, name ASC, id ASC")
}

func (r *firstAidRepository) ListKits(ctx context.Context, userID uuid.UUID) ([]db_models.FirstAidKit, error) {
	var kits []db_models.FirstAidKit
	err := r.db.WithContext(ctx).
		Preload("Items", withOrderedItems).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&kits).Error
	return kits, err
}

func (r *firstAidRepository) FindKit(ctx context.Context, id, userID uuid.UUID) (*db_models.FirstAidKit, error) {
	var kit db_models.FirstAidKit
	err := r.db.WithContext(ctx).
		Preload("Items", withOrderedItems).
		First(&kit, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kit, nil
}

func (r *firstAidRepository) DeleteKit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&db_models.FirstAidItem{}, "kit_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.FirstAidKit{}, "id = ?", id).Error
	})
}

func (r *firstAidRepository) AddItem(ctx context.Context, item *db_models.FirstAidItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *firstAidRepository) FindItem(ctx context.Context, id, userID uuid.UUID) (*db_models.FirstAidItem, error) {
	var item db_models.FirstAidItem
	err := r.db.WithContext(ctx).
		Joins("JOIN first_aid_kits ON first_aid_kits.id = first_aid_items.kit_id").
		Where("first_aid_items.id = ? AND first_aid_kits.user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *firstAidRepository) SetPacked(ctx context.Context, id uuid.UUID, packed bool) error {
	return r.db.WithContext(ctx).
		Model(&db_models.FirstAidItem{}).
		Where("id = ?", id).
		Update("packed", packed).Error
}

func (r *firstAidRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.FirstAidItem{}, "id = ?", id).Error
}

func (r *firstAidRepository) ListExpiring(ctx context.Context, userID uuid.UUID, cutoff time.Time) ([]ExpiringItemRow, error) {
	var rows []ExpiringItemRow
	err := r.db.WithContext(ctx).
		Model(&db_models.FirstAidItem{}).
		Select("first_aid_items.*, first_aid_kits.name AS kit_name").
		Joins("JOIN first_aid_kits ON first_aid_kits.id = first_aid_items.kit_id").
		Where("first_aid_kits.user_id = ?", userID).
		Where("first_aid_items.expiry_date IS NOT NULL AND first_aid_items.expiry_date <= ?", cutoff).
		Order("first_aid_items.expiry_date ASC").
		Scan(&rows).Error
	return rows, err
}
