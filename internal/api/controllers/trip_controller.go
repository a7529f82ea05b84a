package controllers

import (
	"github.com/gin-gonic/gin"

	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/middleware"
	"trailhub/pkg/utils"
)

type TripController struct {
	tripService services.TripService
}

func NewTripController(tripService services.TripService) *TripController {
	return &TripController{tripService: tripService}
}

// CreateTrip godoc
// @Summary Plan a trip
// @Description Creates the trip and a "trip planned" notification in one transaction
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := t.tripService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Trip planned successfully")
}

// ListMyTrips godoc
// @Summary Trips of the current user, newest first
// @Tags Trips
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListMyTrips(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	out, err := t.tripService.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// ListPublicTrips godoc
// @Summary Publicly shared trips
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /trips/public [get]
func (t *TripController) ListPublicTrips(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	out, err := t.tripService.ListPublic(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// GetTrip godoc
// @Summary Trip detail
// @Description Visible to the owner, or to anyone when shared publicly
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUserID(c)
	out, err := t.tripService.Get(c.Request.Context(), viewer, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [put]
func (t *TripController) UpdateTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := t.tripService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Trip updated")
}

// DeleteTrip godoc
// @Summary Delete a trip and its itinerary
// @Tags Trips
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := t.tripService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Trip deleted")
}

// ListItinerary godoc
// @Summary Itinerary of a trip, ordered by start time
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Router /trips/{id}/itinerary [get]
func (t *TripController) ListItinerary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUserID(c)
	out, err := t.tripService.ListItinerary(c.Request.Context(), viewer, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// AddItineraryItem godoc
// @Summary Add an itinerary item
// @Description start_time and end_time are RFC3339; end must be after start
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.ItineraryItemRequest true "Item"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/itinerary [post]
func (t *TripController) AddItineraryItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := t.tripService.AddItineraryItem(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Itinerary item added")
}

// UpdateItineraryItem godoc
// @Summary Update an itinerary item
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param itemId path string true "Item ID"
// @Param request body request_models.ItineraryItemRequest true "Item"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/itinerary/{itemId} [put]
func (t *TripController) UpdateItineraryItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req request_models.ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := t.tripService.UpdateItineraryItem(c.Request.Context(), userID, id, itemID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Itinerary item updated")
}

// DeleteItineraryItem godoc
// @Summary Delete an itinerary item
// @Tags Trips
// @Param id path string true "Trip ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/itinerary/{itemId} [delete]
func (t *TripController) DeleteItineraryItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := t.tripService.DeleteItineraryItem(c.Request.Context(), userID, id, itemID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Itinerary item deleted")
}
