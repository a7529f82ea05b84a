package controllers

import (
	"github.com/gin-gonic/gin"

	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

type InterestController struct {
	interestService services.InterestService
	buddyService    services.BuddyService
}

func NewInterestController(interestService services.InterestService, buddyService services.BuddyService) *InterestController {
	return &InterestController{interestService: interestService, buddyService: buddyService}
}

// Options godoc
// @Summary Selectable activity types and experience levels
// @Tags Interests
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /interests/options [get]
func (i *InterestController) Options(c *gin.Context) {
	utils.RespondSuccess(c, i.interestService.Options(), "")
}

// List godoc
// @Summary Interests of the current user
// @Tags Interests
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/interests [get]
func (i *InterestController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := i.interestService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// Add godoc
// @Summary Add an interest
// @Tags Interests
// @Accept json
// @Produce json
// @Param request body request_models.AddInterestRequest true "Interest"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/interests [post]
func (i *InterestController) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.AddInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := i.interestService.Add(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Interest added")
}

// Remove godoc
// @Summary Remove an interest
// @Tags Interests
// @Param id path string true "Interest ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/interests/{id} [delete]
func (i *InterestController) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := i.interestService.Remove(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Interest removed")
}

// Buddies godoc
// @Summary Users sharing at least one activity with the caller
// @Tags Interests
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /buddies [get]
func (i *InterestController) Buddies(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := i.buddyService.FindBuddies(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}
