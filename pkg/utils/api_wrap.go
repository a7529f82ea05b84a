package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorMapping struct {
	err     error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrNotLoggedIn, http.StatusUnauthorized, "Not logged in"},
	{ErrForbidden, http.StatusForbidden, "Forbidden: insufficient permissions"},

	{ErrMissingFields, http.StatusBadRequest, "All fields are required"},
	{ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match"},
	{ErrUsernameTaken, http.StatusConflict, "Username already exists"},
	{ErrEmailAlreadyExists, http.StatusConflict, "Email already registered"},
	{ErrMissingCredentials, http.StatusBadRequest, "Please provide both username and password"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{ErrInvalidResetToken, http.StatusBadRequest, "Reset token is invalid or has expired"},
	{ErrWeakPassword, http.StatusBadRequest, "Password must be at least 6 characters"},
	{ErrInvalidUsername, http.StatusBadRequest, "Username must be between 3 and 80 characters"},
	{ErrInvalidDifficultyPref, http.StatusBadRequest, "Difficulty level must be between 0 and 5"},

	{ErrUnknownActivity, http.StatusBadRequest, "Unknown activity type"},
	{ErrUnknownExperience, http.StatusBadRequest, "Unknown experience level"},
	{ErrInterestExists, http.StatusConflict, "Interest already added"},
	{ErrInterestNotFound, http.StatusNotFound, "Interest not found"},

	{ErrLocationNotFound, http.StatusNotFound, "Location not found"},
	{ErrInvalidDifficulty, http.StatusBadRequest, "Difficulty must be between 1 and 5"},
	{ErrCategoryRequired, http.StatusBadRequest, "Category is required"},
	{ErrInvalidCoordinates, http.StatusBadRequest, "Latitude must be within [-90, 90] and longitude within [-180, 180]"},
	{ErrWeatherUnavailable, http.StatusBadGateway, "Weather service unavailable"},
	{ErrInvalidRating, http.StatusBadRequest, "Rating must be between 1 and 5"},
	{ErrReviewExists, http.StatusConflict, "You have already reviewed this location"},
	{ErrReviewNotFound, http.StatusNotFound, "Review not found"},

	{ErrTripNotFound, http.StatusNotFound, "Trip not found"},
	{ErrInvalidDate, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD."},
	{ErrInvalidDateRange, http.StatusBadRequest, "End date cannot be before start date"},
	{ErrItineraryItemNotFound, http.StatusNotFound, "Itinerary item not found"},
	{ErrInvalidTimeRange, http.StatusBadRequest, "End time must be after start time"},

	{ErrUnknownAdventureType, http.StatusBadRequest, "Unknown adventure type"},
	{ErrInvalidDuration, http.StatusBadRequest, "Duration and people must be at least 1"},
	{ErrBudgetNotFound, http.StatusNotFound, "No budget data found"},

	{ErrSpotFieldsRequired, http.StatusBadRequest, "Spot name and location are required"},
	{ErrNotificationNotFound, http.StatusNotFound, "Notification not found"},

	{ErrContactNotFound, http.StatusNotFound, "Contact not found"},
	{ErrPhoneRequired, http.StatusBadRequest, "Phone number is required"},
	{ErrKitNotFound, http.StatusNotFound, "First aid kit not found"},
	{ErrKitItemNotFound, http.StatusNotFound, "First aid item not found"},
	{ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be at least 1"},
	{ErrReportNotFound, http.StatusNotFound, "Medical report not found"},
	{ErrUnsupportedFileType, http.StatusBadRequest, "Only PDF, PNG and JPEG files are accepted"},
	{ErrFileTooLarge, http.StatusBadRequest, "File exceeds the upload size limit"},

	{ErrEventFieldsRequired, http.StatusBadRequest, "Event Name, Location, and Date are required."},
	{ErrInvalidEventDate, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD."},
	{ErrEventInPast, http.StatusBadRequest, "Event date cannot be in the past."},
	{ErrInvalidEventTime, http.StatusBadRequest, "Invalid time format. Please use HH:MM."},
	{ErrInvalidFilterDate, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD."},
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusCreated, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// RespondValidationError reports binding failures with per-field details.
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: "Invalid request payload",
		TraceID: traceID(c),
		Data:    ValidationDetails(err),
	})
}

// StatusFor returns the HTTP status and client message for a service error.
func StatusFor(err error) (int, string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.code, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusFor(err)
	if code == http.StatusInternalServerError {
		if log, ok := c.Get("logger"); ok {
			if zl, ok := log.(*zap.Logger); ok {
				zl.Error("request failed", zap.Error(err), zap.String("trace_id", traceID(c)))
			}
		}
	}
	RespondError(c, code, message)
}
