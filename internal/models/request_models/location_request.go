package request_models

type LocationFilter struct {
	Category      string
	MaxDifficulty int
	Query         string
	Page          int
	PageSize      int
}

type UpsertLocationRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Difficulty  int     `json:"difficulty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	WeatherInfo string  `json:"weather_info"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

type CreateSpotRequest struct {
	SpotName    string `json:"spot_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
