package response_models

type EventResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	LocationText      string   `json:"location_text"`
	EventDate         string   `json:"event_date"`
	EventTime         string   `json:"event_time,omitempty"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags,omitempty"`
	SuggesterUsername string   `json:"suggester_username"`
}

// NearbyEvent is an entry of the built-in placeholder list.
type NearbyEvent struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
