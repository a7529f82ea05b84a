package infra

import (
	"context"

	"gorm.io/gorm"

	dbm "trailhub/internal/models/db_models"
)

// DefaultActivityItems are the activity specific packing items per
// adventure type.
var DefaultActivityItems = map[string][]string{
	"camping":       {"Tent", "Sleeping Bag", "Camping Stove", "Cooler"},
	"hiking":        {"Hiking Boots", "Backpack", "Trekking Poles", "Trail Map"},
	"rock_climbing": {"Climbing Shoes", "Harness", "Ropes", "Chalk Bag"},
	"kayaking":      {"Life Jacket", "Dry Bags", "Paddle", "Spray Skirt"},
}

// AdventureTypes lists DefaultActivityItems keys in display order.
var AdventureTypes = []string{"camping", "hiking", "rock_climbing", "kayaking"}

// Seed inserts default packing items when the table is empty.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&dbm.PackingItem{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		items := make([]dbm.PackingItem, 0, 16)
		for _, kind := range AdventureTypes {
			for i, name := range DefaultActivityItems[kind] {
				items = append(items, dbm.PackingItem{
					AdventureType: kind,
					Name:          name,
					Category:      "Activity Specific",
					IsDefault:     true,
					SortOrder:     i,
				})
			}
		}
		return tx.Create(&items).Error
	})
}
