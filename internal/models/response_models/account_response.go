package response_models

import "time"

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	CreatedAt int64  `json:"created_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type PreferenceResponse struct {
	PreferredCategories []string `json:"preferred_categories"`
	DifficultyLevel     int      `json:"difficulty_level"`
	BudgetRange         string   `json:"budget_range"`
	LastUpdated         int64    `json:"last_updated"`
}

type InterestResponse struct {
	ID              string `json:"id"`
	ActivityType    string `json:"activity_type"`
	ExperienceLevel string `json:"experience_level"`
	CreatedAt       int64  `json:"created_at"`
}

type InterestOptions struct {
	ActivityTypes    []string `json:"activity_types"`
	ExperienceLevels []string `json:"experience_levels"`
}

type BuddyMatch struct {
	UserID           string   `json:"user_id"`
	Username         string   `json:"username"`
	Bio              string   `json:"bio"`
	SharedActivities []string `json:"shared_activities"`
}

// PagedResult wraps one page of a listing.
type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
