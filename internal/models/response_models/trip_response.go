package response_models

type LocationSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type TripResponse struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"user_id"`
	Location       LocationSummary         `json:"location"`
	StartDate      string                  `json:"start_date"`
	EndDate        string                  `json:"end_date"`
	BudgetEstimate float64                 `json:"budget_estimate"`
	SharedPublicly bool                    `json:"shared_publicly"`
	CreatedAt      int64                   `json:"created_at"`
	Itinerary      []ItineraryItemResponse `json:"itinerary,omitempty"`
}

type ItineraryItemResponse struct {
	ID           string `json:"id"`
	TripID       string `json:"trip_id"`
	ActivityName string `json:"activity_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Notes        string `json:"notes"`
}

type BudgetBreakdown struct {
	Transportation float64 `json:"transportation"`
	Accommodation  float64 `json:"accommodation"`
	Equipment      float64 `json:"equipment"`
	Food           float64 `json:"food"`
	Total          float64 `json:"total"`
}

type BudgetResponse struct {
	ID            string          `json:"id"`
	AdventureType string          `json:"adventure_type"`
	Location      string          `json:"location"`
	Duration      int             `json:"duration"`
	People        int             `json:"people"`
	Breakdown     BudgetBreakdown `json:"breakdown"`
	CreatedAt     int64           `json:"created_at"`
}

type PackingSection struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type PackingList struct {
	AdventureType string           `json:"adventure_type"`
	Duration      int              `json:"duration"`
	Season        string           `json:"season"`
	Sections      []PackingSection `json:"sections"`
}

type PackingItemResponse struct {
	ID            string `json:"id"`
	AdventureType string `json:"adventure_type"`
	Name          string `json:"name"`
	Category      string `json:"category"`
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt int64                  `json:"created_at"`
}
