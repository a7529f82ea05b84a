package controllers

import (
	"github.com/gin-gonic/gin"

	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PlanningController serves budget estimates, packing lists and their exports.
type PlanningController struct {
	budgetService  services.BudgetService
	packingService services.PackingService
	exportService  services.ExportService
}

func NewPlanningController(
	budgetService services.BudgetService,
	packingService services.PackingService,
	exportService services.ExportService,
) *PlanningController {
	return &PlanningController{
		budgetService:  budgetService,
		packingService: packingService,
		exportService:  exportService,
	}
}

// EstimateBudget godoc
// @Summary Estimate and store a trip budget
// @Description Adventure types: camping, hiking, rock_climbing, kayaking. Duration and people must be at least 1.
// @Tags Budget
// @Accept json
// @Produce json
// @Param request body request_models.BudgetRequest true "Budget input"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /budget [post]
func (p *PlanningController) EstimateBudget(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := p.budgetService.Estimate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Budget calculated")
}

// ListBudgets godoc
// @Summary Budgets of the current user, newest first
// @Tags Budget
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /budget [get]
func (p *PlanningController) ListBudgets(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	out, err := p.budgetService.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// LatestBudget godoc
// @Summary Most recent budget
// @Tags Budget
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /budget/latest [get]
func (p *PlanningController) LatestBudget(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := p.budgetService.Latest(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// ExportBudgetPDF godoc
// @Summary Download the latest budget as PDF
// @Tags Budget
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /budget/latest/pdf [get]
func (p *PlanningController) ExportBudgetPDF(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := p.budgetService.Latest(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	doc, err := p.exportService.BudgetPDF(*b)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	attachment(c, mimePDF, "budget_estimation.pdf", doc)
}

// ExportBudgetXLSX godoc
// @Summary Download the latest budget as a spreadsheet
// @Tags Budget
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /budget/latest/xlsx [get]
func (p *PlanningController) ExportBudgetXLSX(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := p.budgetService.Latest(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	doc, err := p.exportService.BudgetXLSX(*b)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	attachment(c, mimeXLSX, "budget_estimation.xlsx", doc)
}

// GeneratePackingList godoc
// @Summary Build a packing list
// @Description Sections: Essentials, Clothing, Personal Items, Activity Specific. Winter and fall add cold-weather gear.
// @Tags Packing
// @Accept json
// @Produce json
// @Param request body request_models.PackingRequest true "Packing input"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /packing [post]
func (p *PlanningController) GeneratePackingList(c *gin.Context) {
	var req request_models.PackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := p.packingService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// PackingItems godoc
// @Summary Stored default packing items
// @Tags Packing
// @Produce json
// @Param adventure_type query string false "Adventure type filter"
// @Success 200 {object} utils.APIResponse
// @Router /packing/items [get]
func (p *PlanningController) PackingItems(c *gin.Context) {
	out, err := p.packingService.ListDefaults(c.Request.Context(), c.Query("adventure_type"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// ChecklistPDF godoc
// @Summary Download a packing checklist as PDF
// @Tags Packing
// @Produce application/pdf
// @Param adventure_type query string false "Adventure type (default camping)"
// @Success 200 {file} file
// @Router /packing/checklist/pdf [get]
func (p *PlanningController) ChecklistPDF(c *gin.Context) {
	adventureType := services.NormalizeAdventureType(c.DefaultQuery("adventure_type", "camping"))
	items, err := p.packingService.ChecklistItems(c.Request.Context(), adventureType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	doc, err := p.exportService.ChecklistPDF(adventureType, items)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	attachment(c, mimePDF, "packing_checklist_"+adventureType+".pdf", doc)
}
