package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

type LocationController struct {
	locationService   services.LocationService
	suggestionService services.SuggestionService
	reviewService     services.ReviewService
}

func NewLocationController(
	locationService services.LocationService,
	suggestionService services.SuggestionService,
	reviewService services.ReviewService,
) *LocationController {
	return &LocationController{
		locationService:   locationService,
		suggestionService: suggestionService,
		reviewService:     reviewService,
	}
}

// ListLocations godoc
// @Summary List adventure locations
// @Tags Locations
// @Produce json
// @Param category query string false "Exact category"
// @Param max_difficulty query int false "Highest difficulty (1-5)"
// @Param q query string false "Name search"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /locations [get]
func (l *LocationController) ListLocations(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}

	filter := request_models.LocationFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("max_difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "max_difficulty must be an integer")
			return
		}
		filter.MaxDifficulty = d
	}

	out, err := l.locationService.List(c.Request.Context(), filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// GetLocation godoc
// @Summary Location detail
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /locations/{id} [get]
func (l *LocationController) GetLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := l.locationService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// NearbyLocations godoc
// @Summary Locations within a radius
// @Description Great-circle distance from lat/lng, nearest first. radius_km defaults to 50.
// @Tags Locations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius_km query number false "Radius in km"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /locations/nearby [get]
func (l *LocationController) NearbyLocations(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng are required numbers")
		return
	}
	radius := 0.0
	if raw := c.Query("radius_km"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "radius_km must be a positive number")
			return
		}
		radius = r
	}

	out, err := l.locationService.Nearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// CreateLocation godoc
// @Summary Create a location (admin)
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body request_models.UpsertLocationRequest true "Location"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /locations [post]
func (l *LocationController) CreateLocation(c *gin.Context) {
	var req request_models.UpsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := l.locationService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Location created")
}

// UpdateLocation godoc
// @Summary Update a location (admin)
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body request_models.UpsertLocationRequest true "Location"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /locations/{id} [put]
func (l *LocationController) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := l.locationService.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Location updated")
}

// DeleteLocation godoc
// @Summary Delete a location (admin)
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (l *LocationController) DeleteLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := l.locationService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Location deleted")
}

// RefreshWeather godoc
// @Summary Refresh current weather from Open-Meteo (admin)
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /locations/{id}/weather [post]
func (l *LocationController) RefreshWeather(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := l.locationService.RefreshWeather(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Weather updated")
}

// Suggestions godoc
// @Summary Personalised location suggestions
// @Description Top 10 locations scored against the caller's interests, preferences, trip history and ratings
// @Tags Locations
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /adventure/suggestions [get]
func (l *LocationController) Suggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := l.suggestionService.Suggest(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// ListReviews godoc
// @Summary Reviews of a location
// @Tags Reviews
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} utils.APIResponse
// @Router /locations/{id}/reviews [get]
func (l *LocationController) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	out, err := l.reviewService.ListForLocation(c.Request.Context(), id, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// CreateReview godoc
// @Summary Review a location
// @Description One review per user and location. The location's average rating is recomputed.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body request_models.CreateReviewRequest true "Review"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /locations/{id}/reviews [post]
func (l *LocationController) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := l.reviewService.Create(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Review added")
}

// DeleteReview godoc
// @Summary Delete own review
// @Tags Reviews
// @Param id path string true "Review ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (l *LocationController) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := l.reviewService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Review deleted")
}
