package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trailhub/internal/models/db_models"
)

type UserRepository interface {
	Create(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByUsername(ctx context.Context, username string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.User, error)
	UpdateBio(ctx context.Context, id uuid.UUID, bio string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	GetPreference(ctx context.Context, userID uuid.UUID) (*db_models.UserPreference, error)
	UpsertPreference(ctx context.Context, pref *db_models.UserPreference) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	return r.first(ctx, "username = ?", username)
}

// FindByEmail matches case-insensitively; addresses are stored lower-cased.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.User, error) {
	if len(ids) == 0 {
		return []db_models.User{}, nil
	}
	var users []db_models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateBio(ctx context.Context, id uuid.UUID, bio string) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ?", id).Update("bio", bio).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&db_models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}

func (r *userRepository) GetPreference(ctx context.Context, userID uuid.UUID) (*db_models.UserPreference, error) {
	var pref db_models.UserPreference
	err := r.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *userRepository) UpsertPreference(ctx context.Context, pref *db_models.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preferred_categories", "difficulty_level", "budget_range", "last_updated"}),
	}).Create(pref).Error
}
