package db_models

import "github.com/google/uuid"

type AdventureLocation struct {
	BaseModel
	Name          string  `gorm:"size:100;not null"`
	Description   string  `gorm:"type:text"`
	Category      string  `gorm:"size:50;not null;index"`
	Difficulty    int     `gorm:"not null"`
	Latitude      float64 `gorm:"not null"`
	Longitude     float64 `gorm:"not null"`
	WeatherInfo   string  `gorm:"type:text"`
	AverageRating float64 `gorm:"not null;default:0"`
}

type Review struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_location"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_location;index"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`

	User     User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Location AdventureLocation `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

type UserSubmittedSpot struct {
	BaseModel
	SpotName        string     `gorm:"size:100;not null"`
	Location        string     `gorm:"size:200;not null"`
	Description     string     `gorm:"type:text"`
	ContributorID   *uuid.UUID `gorm:"type:uuid;index"`
	ContributorName string     `gorm:"size:80"`
}
