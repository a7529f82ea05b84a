package db_models

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is an admin-curated directory entry (rescue services,
// park rangers, hospitals).
type EmergencyContact struct {
	BaseModel
	Name        string `gorm:"size:120;not null"`
	ServiceType string `gorm:"size:50;not null"`
	Phone       string `gorm:"size:40;not null"`
	Country     string `gorm:"size:80;index"`
	Region      string `gorm:"size:120"`
	Notes       string `gorm:"type:text"`
}

type UserEmergencyContact struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"size:120;not null"`
	Relationship string    `gorm:"size:50"`
	Phone        string    `gorm:"size:40;not null"`
	Email        string    `gorm:"size:120"`
	IsPrimary    bool      `gorm:"not null;default:false"`
}

type FirstAidKit struct {
	BaseModel
	UserID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name   string         `gorm:"size:100;not null"`
	TripID *uuid.UUID     `gorm:"type:uuid;index"`
	Items  []FirstAidItem `gorm:"foreignKey:KitID;constraint:OnDelete:CASCADE"`
}

type FirstAidItem struct {
	BaseModel
	KitID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name       string     `gorm:"size:100;not null"`
	Quantity   int        `gorm:"not null;default:1"`
	ExpiryDate *time.Time `gorm:"type:date"`
	Packed     bool       `gorm:"not null;default:false"`
}

type UserMedicalReport struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:120;not null"`
	Notes       string    `gorm:"type:text"`
	FileKey     string    `gorm:"size:255;not null"`
	FileName    string    `gorm:"size:255"`
	ContentType string    `gorm:"size:100"`
	SizeBytes   int64
	Storage     string `gorm:"size:10;not null"`
}
