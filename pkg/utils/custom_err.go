package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrForbidden       = errors.New("forbidden")

	// accounts
	ErrMissingFields         = errors.New("all fields are required")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrMissingCredentials    = errors.New("missing credentials")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")
	ErrWeakPassword          = errors.New("password too short")
	ErrInvalidUsername       = errors.New("username length out of range")
	ErrInvalidDifficultyPref = errors.New("difficulty level out of range")

	// interests
	ErrUnknownActivity   = errors.New("unknown activity type")
	ErrUnknownExperience = errors.New("unknown experience level")
	ErrInterestExists    = errors.New("interest already exists")
	ErrInterestNotFound  = errors.New("interest not found")

	// locations, reviews
	ErrLocationNotFound   = errors.New("location not found")
	ErrInvalidDifficulty  = errors.New("difficulty must be between 1 and 5")
	ErrCategoryRequired   = errors.New("category required")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrWeatherUnavailable = errors.New("weather provider unavailable")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrReviewExists       = errors.New("review already exists")
	ErrReviewNotFound     = errors.New("review not found")

	// trips
	ErrTripNotFound          = errors.New("trip not found")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidDateRange      = errors.New("end date before start date")
	ErrItineraryItemNotFound = errors.New("itinerary item not found")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")

	// budget, packing
	ErrUnknownAdventureType = errors.New("unknown adventure type")
	ErrInvalidDuration      = errors.New("duration and people must be at least 1")
	ErrBudgetNotFound       = errors.New("no budget data found")

	// spots, notifications
	ErrSpotFieldsRequired   = errors.New("spot name and location are required")
	ErrNotificationNotFound = errors.New("notification not found")

	// emergency, first aid, medical
	ErrContactNotFound     = errors.New("contact not found")
	ErrPhoneRequired       = errors.New("phone required")
	ErrKitNotFound         = errors.New("first aid kit not found")
	ErrKitItemNotFound     = errors.New("first aid item not found")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrReportNotFound      = errors.New("medical report not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrStorageError        = errors.New("storage error")

	// events
	ErrEventFieldsRequired = errors.New("event name, location and date are required")
	ErrInvalidEventDate    = errors.New("invalid event date")
	ErrEventInPast         = errors.New("event date in the past")
	ErrInvalidEventTime    = errors.New("invalid event time")
	ErrInvalidFilterDate   = errors.New("invalid filter date")
)
