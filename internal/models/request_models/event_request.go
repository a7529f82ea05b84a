package request_models

type CreateEventRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	LocationText string   `json:"location_text"`
	EventDate    string   `json:"event_date"`
	EventTime    string   `json:"event_time"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}
