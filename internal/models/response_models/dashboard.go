package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type KPIBlock struct {
	TotalUsers          int64   `json:"total_users"`
	NewUsers            int64   `json:"new_users"`
	TotalTrips          int64   `json:"total_trips"`
	TotalItineraryItems int64   `json:"total_itinerary_items"`
	SharedTrips         int64   `json:"shared_trips"`
	TotalReviews        int64   `json:"total_reviews"`
	AverageBudgetTotal  float64 `json:"average_budget_total"`
}

type SeriesPoint struct {
	Bucket string `json:"bucket"`
	Value  int64  `json:"value"`
}

type TopLocation struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Trips      int64  `json:"trips"`
}

type DashboardReport struct {
	Range          TimeRange     `json:"range"`
	KPIs           KPIBlock      `json:"kpis"`
	NewUsersSeries []SeriesPoint `json:"new_users_series"`
	TopLocations   []TopLocation `json:"top_locations"`
	GeneratedAt    time.Time     `json:"generated_at"`
}
