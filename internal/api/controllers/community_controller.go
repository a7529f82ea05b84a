package controllers

import (
	"github.com/gin-gonic/gin"

	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

// CommunityController covers user-submitted spots, community events and
// in-app notifications.
type CommunityController struct {
	spotService         services.SpotService
	eventService        services.EventService
	notificationService services.NotificationService
}

func NewCommunityController(
	spotService services.SpotService,
	eventService services.EventService,
	notificationService services.NotificationService,
) *CommunityController {
	return &CommunityController{
		spotService:         spotService,
		eventService:        eventService,
		notificationService: notificationService,
	}
}

// SubmitSpot godoc
// @Summary Submit a spot
// @Tags Spots
// @Accept json
// @Produce json
// @Param request body request_models.CreateSpotRequest true "Spot"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /spots [post]
func (m *CommunityController) SubmitSpot(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := m.spotService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Spot submitted")
}

// ListSpots godoc
// @Summary Submitted spots, newest first
// @Tags Spots
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /spots [get]
func (m *CommunityController) ListSpots(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	out, err := m.spotService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// ListEvents godoc
// @Summary Community events ordered by date and time
// @Tags Events
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /events [get]
func (m *CommunityController) ListEvents(c *gin.Context) {
	out, err := m.eventService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// SuggestEvent godoc
// @Summary Suggest a community event
// @Description event_date is YYYY-MM-DD and cannot be in the past; event_time is optional HH:MM
// @Tags Events
// @Accept json
// @Produce json
// @Param request body request_models.CreateEventRequest true "Event"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /events [post]
func (m *CommunityController) SuggestEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := m.eventService.Suggest(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Event suggested successfully!")
}

// FilterEvents godoc
// @Summary Filter community events
// @Tags Events
// @Produce json
// @Param category query string false "Partial, case-insensitive category"
// @Param date query string false "Exact date YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse
// @Router /events/filter [get]
func (m *CommunityController) FilterEvents(c *gin.Context) {
	out, err := m.eventService.Filter(c.Request.Context(), c.Query("category"), c.Query("date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// NearbyEvents godoc
// @Summary Local events feed
// @Tags Events
// @Produce json
// @Param category query string false "Category"
// @Param date query string false "Date YYYY-MM-DD"
// @Success 200 {object} utils.APIResponse
// @Router /events/nearby [get]
func (m *CommunityController) NearbyEvents(c *gin.Context) {
	utils.RespondSuccess(c, m.eventService.Nearby(c.Query("category"), c.Query("date")), "")
}

// ListNotifications godoc
// @Summary Notifications of the current user, newest first
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications [get]
func (m *CommunityController) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := m.notificationService.List(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// UnreadCount godoc
// @Summary Number of unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (m *CommunityController) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := m.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"unread": n}, "")
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (m *CommunityController) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := m.notificationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Notification marked as read")
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags Notifications
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (m *CommunityController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := m.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"updated": n}, "")
}
