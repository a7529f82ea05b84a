package request_models

import "github.com/google/uuid"

type CreateTripRequest struct {
	LocationID     uuid.UUID `json:"location_id" binding:"required"`
	StartDate      string    `json:"start_date" binding:"required"`
	EndDate        string    `json:"end_date" binding:"required"`
	BudgetEstimate float64   `json:"budget_estimate" binding:"gte=0"`
	SharedPublicly bool      `json:"shared_publicly"`
}

type UpdateTripRequest struct {
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	BudgetEstimate *float64 `json:"budget_estimate" binding:"omitempty,gte=0"`
	SharedPublicly *bool    `json:"shared_publicly"`
}

// ItineraryItemRequest times are RFC3339.
type ItineraryItemRequest struct {
	ActivityName string `json:"activity_name" binding:"required,max=100"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Notes        string `json:"notes"`
}

type BudgetRequest struct {
	AdventureType string `json:"adventure_type" binding:"required"`
	Location      string `json:"location" binding:"max=100"`
	Duration      int    `json:"duration"`
	People        int    `json:"people"`
}

type PackingRequest struct {
	AdventureType string `json:"adventure_type" binding:"required"`
	Duration      int    `json:"duration"`
	Season        string `json:"season"`
}
