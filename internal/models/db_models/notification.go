package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Message string            `gorm:"size:255;not null"`
	Read    bool              `gorm:"column:is_read;not null;default:false"`
	Payload datatypes.JSONMap `gorm:"type:json"`
}
