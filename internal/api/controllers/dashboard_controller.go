package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trailhub/internal/models/response_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Fetch KPI blocks, a daily new-users series and the most planned locations
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param start    query string false "RFC3339 or YYYY-MM-DD start"
// @Param end      query string false "RFC3339 or YYYY-MM-DD end"
// @Param last_days query int   false "Relative lookback in days (mutually exclusive with start/end). Default 30"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	var (
		start, end time.Time
		err        error
	)

	startStr := c.Query("start")
	endStr := c.Query("end")
	lastDaysStr := c.Query("last_days")

	if lastDaysStr != "" && (startStr != "" || endStr != "") {
		utils.RespondError(c, http.StatusBadRequest, "provide either last_days or start/end (not both)")
		return
	}

	switch {
	case lastDaysStr != "":
		d, convErr := strconv.Atoi(lastDaysStr)
		if convErr != nil || d <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "last_days must be a positive integer")
			return
		}
		end = time.Now().UTC()
		start = end.AddDate(0, 0, -d)

	default:
		if startStr != "" {
			if start, err = parseInstant(startStr); err != nil {
				utils.RespondError(c, http.StatusBadRequest, "start must be RFC3339 or YYYY-MM-DD")
				return
			}
		}
		if endStr != "" {
			if end, err = parseInstant(endStr); err != nil {
				utils.RespondError(c, http.StatusBadRequest, "end must be RFC3339 or YYYY-MM-DD")
				return
			}
		}
	}

	report, svcErr := p.dashboardService.BuildDashboard(c.Request.Context(), response_models.TimeRange{Start: start, End: end})
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return utils.ParseDate(s)
}
