package response_models

type LocationResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Difficulty      int      `json:"difficulty"`
	DifficultyLabel string   `json:"difficulty_label"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	WeatherInfo     string   `json:"weather_info"`
	AverageRating   float64  `json:"average_rating"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

type Suggestion struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Difficulty    int     `json:"difficulty"`
	AverageRating float64 `json:"average_rating"`
	Score         float64 `json:"score"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	WeatherInfo   string  `json:"weather_info"`
}

type InterestSummary struct {
	Activity string `json:"activity"`
	Level    string `json:"level"`
}

type SuggestionsResponse struct {
	Suggestions   []Suggestion      `json:"suggestions"`
	UserInterests []InterestSummary `json:"user_interests"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  int64  `json:"created_at"`
}

type SpotResponse struct {
	ID              string `json:"id"`
	SpotName        string `json:"spot_name"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	ContributorName string `json:"contributor_name"`
	CreatedAt       int64  `json:"created_at"`
}

type WeatherResponse struct {
	LocationID  string `json:"location_id"`
	WeatherInfo string `json:"weather_info"`
}
