package db_models

import "github.com/google/uuid"

type User struct {
	BaseModel
	Username     string `gorm:"size:80;uniqueIndex;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:200;not null"`
	Role         string `gorm:"size:20;not null;default:user"`
	Bio          string `gorm:"type:text"`

	Preference *UserPreference `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Interests  []UserInterest  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserPreference is keyed by its user; PreferredCategories is stored as
// comma-separated text.
type UserPreference struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PreferredCategories string    `gorm:"size:200"`
	DifficultyLevel     int       `gorm:"not null;default:0"`
	BudgetRange         string    `gorm:"size:50"`
	LastUpdated         int64
}

type UserInterest struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_activity"`
	ActivityType    string    `gorm:"size:50;not null;uniqueIndex:idx_user_activity"`
	ExperienceLevel string    `gorm:"size:20;not null"`
}
