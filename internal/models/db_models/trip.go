package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	BudgetEstimate float64
	SharedPublicly bool `gorm:"not null;default:false;index"`

	User      User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Location  AdventureLocation `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
	Itinerary []ItineraryItem   `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

type ItineraryItem struct {
	BaseModel
	TripID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ActivityName string    `gorm:"size:100;not null"`
	StartTime    time.Time `gorm:"not null"`
	EndTime      time.Time `gorm:"not null"`
	Notes        string    `gorm:"type:text"`
}

type Budget struct {
	BaseModel
	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	AdventureType string     `gorm:"size:50;not null"`
	Location      string     `gorm:"size:100"`
	Duration      int        `gorm:"not null"`
	People        int        `gorm:"not null"`
	Transport     float64
	Accommodation float64
	Food          float64
	Gear          float64
	Total         float64
}

type PackingItem struct {
	BaseModel
	AdventureType string `gorm:"size:50;not null;index"`
	Name          string `gorm:"size:100;not null"`
	Category      string `gorm:"size:50"`
	IsDefault     bool   `gorm:"not null;default:true"`
	SortOrder     int    `gorm:"not null;default:0"`
}
