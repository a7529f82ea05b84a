package request_models

import "github.com/google/uuid"

type DirectoryEntryRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	ServiceType string `json:"service_type" binding:"required,max=50"`
	Phone       string `json:"phone"`
	Country     string `json:"country" binding:"max=80"`
	Region      string `json:"region" binding:"max=120"`
	Notes       string `json:"notes"`
}

type PersonalContactRequest struct {
	Name         string `json:"name" binding:"required,max=120"`
	Relationship string `json:"relationship" binding:"max=50"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	IsPrimary    bool   `json:"is_primary"`
}

type CreateKitRequest struct {
	Name         string     `json:"name" binding:"required,max=100"`
	TripID       *uuid.UUID `json:"trip_id"`
	WithDefaults bool       `json:"with_defaults"`
}

type AddKitItemRequest struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Quantity   int     `json:"quantity"`
	ExpiryDate *string `json:"expiry_date"`
}

type MarkPackedRequest struct {
	Packed bool `json:"packed"`
}

type MedicalReportUpload struct {
	Title       string
	Notes       string
	FileName    string
	ContentType string
	Size        int64
}
