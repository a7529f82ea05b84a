package request_models

// Register and login fields are validated by the account service so that
// missing values produce the documented messages instead of binding errors.
type SignUpRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RequestForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Bio string `json:"bio" binding:"max=1000"`
}

type UpdatePreferenceRequest struct {
	PreferredCategories []string `json:"preferred_categories"`
	DifficultyLevel     int      `json:"difficulty_level"`
	BudgetRange         string   `json:"budget_range" binding:"max=50"`
}

type AddInterestRequest struct {
	ActivityType    string `json:"activity_type" binding:"required"`
	ExperienceLevel string `json:"experience_level" binding:"required"`
}
