package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SuggestedEvent struct {
	BaseModel
	Name         string                      `gorm:"size:150;not null"`
	Description  string                      `gorm:"type:text"`
	LocationText string                      `gorm:"size:200;not null"`
	EventDate    time.Time                   `gorm:"type:date;not null;index"`
	EventTime    *string                     `gorm:"size:5"`
	Category     string                      `gorm:"size:50;index"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:json"`
	UserID       *uuid.UUID                  `gorm:"type:uuid;index"`

	Suggester *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
