package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
)

type EmergencyRepository interface {
	ListDirectory(ctx context.Context, country string) ([]db_models.EmergencyContact, error)
	CreateDirectoryEntry(ctx context.Context, entry *db_models.EmergencyContact) error
	DeleteDirectoryEntry(ctx context.Context, id uuid.UUID) (bool, error)

	ListPersonal(ctx context.Context, userID uuid.UUID) ([]db_models.UserEmergencyContact, error)
	FindPersonal(ctx context.Context, id, userID uuid.UUID) (*db_models.UserEmergencyContact, error)
	// SavePersonal creates or updates a contact. A primary contact demotes
	// every other contact of the same user in the same transaction.
	SavePersonal(ctx context.Context, contact *db_models.UserEmergencyContact) error
	DeletePersonal(ctx context.Context, id uuid.UUID) error
}

type emergencyRepository struct {
	db *gorm.DB
}

func NewEmergencyRepository(db *gorm.DB) EmergencyRepository {
	return &emergencyRepository{db: db}
}

func (r *emergencyRepository) ListDirectory(ctx context.Context, country string) ([]db_models.EmergencyContact, error) {
	q := r.db.WithContext(ctx)
	if country != "" {
		q = q.Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country)))
	}
	var out []db_models.EmergencyContact
	err := q.Order("country ASC, service_type ASC, name ASC").Find(&out).Error
	return out, err
}

func (r *emergencyRepository) CreateDirectoryEntry(ctx context.Context, entry *db_models.EmergencyContact) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *emergencyRepository) DeleteDirectoryEntry(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.EmergencyContact{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *emergencyRepository) ListPersonal(ctx context.Context, userID uuid.UUID) ([]db_models.UserEmergencyContact, error) {
	var out []db_models.UserEmergencyContact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, name ASC").
		Find(&out).Error
	return out, err
}

func (r *emergencyRepository) FindPersonal(ctx context.Context, id, userID uuid.UUID) (*db_models.UserEmergencyContact, error) {
	var c db_models.UserEmergencyContact
	err := r.db.WithContext(ctx).First(&c, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *emergencyRepository) SavePersonal(ctx context.Context, contact *db_models.UserEmergencyContact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contact.IsPrimary {
			q := tx.Model(&db_models.UserEmergencyContact{}).Where("user_id = ? AND is_primary = ?", contact.UserID, true)
			if contact.ID != uuid.Nil {
				q = q.Where("id <> ?", contact.ID)
			}
			if err := q.Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		if contact.ID == uuid.Nil {
			return tx.Create(contact).Error
		}
		return tx.Model(&db_models.UserEmergencyContact{}).
			Where("id = ?", contact.ID).
			Updates(map[string]interface{}{
				"name":         contact.Name,
				"relationship": contact.Relationship,
				"phone":        contact.Phone,
				"email":        contact.Email,
				"is_primary":   contact.IsPrimary,
			}).Error
	})
}

func (r *emergencyRepository) DeletePersonal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.UserEmergencyContact{}, "id = ?", id).Error
}
