package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trailhub/internal/config"
	"trailhub/internal/models/request_models"
	"trailhub/internal/services"
	"trailhub/pkg/utils"
)

// SafetyController serves the emergency directory, personal contacts, first
// aid kits and medical reports.
type SafetyController struct {
	emergencyService services.EmergencyService
	firstAidService  services.FirstAidService
	reportService    services.MedicalReportService
	// maxUploadBytes caps the whole multipart body; zero means no cap.
	maxUploadBytes int64
}

// multipartOverhead leaves room for the form fields and part headers around
// the file itself.
const multipartOverhead = 1 << 20

func NewSafetyController(
	emergencyService services.EmergencyService,
	firstAidService services.FirstAidService,
	reportService services.MedicalReportService,
	cfg *config.Config,
) *SafetyController {
	ctrl := &SafetyController{
		emergencyService: emergencyService,
		firstAidService:  firstAidService,
		reportService:    reportService,
	}
	if cfg.Storage.MaxUploadMB > 0 {
		ctrl.maxUploadBytes = cfg.Storage.MaxUploadMB<<20 + multipartOverhead
	}
	return ctrl
}

// Directory godoc
// @Summary Emergency services directory
// @Tags Emergency
// @Produce json
// @Param country query string false "Country filter"
// @Success 200 {object} utils.APIResponse
// @Router /emergency/directory [get]
func (s *SafetyController) Directory(c *gin.Context) {
	out, err := s.emergencyService.Directory(c.Request.Context(), c.Query("country"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// AddDirectoryEntry godoc
// @Summary Add a directory entry (admin)
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body request_models.DirectoryEntryRequest true "Entry"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /emergency/directory [post]
func (s *SafetyController) AddDirectoryEntry(c *gin.Context) {
	var req request_models.DirectoryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.emergencyService.AddDirectoryEntry(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Directory entry added")
}

// RemoveDirectoryEntry godoc
// @Summary Remove a directory entry (admin)
// @Tags Emergency
// @Param id path string true "Entry ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /emergency/directory/{id} [delete]
func (s *SafetyController) RemoveDirectoryEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.emergencyService.RemoveDirectoryEntry(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Directory entry removed")
}

// ListContacts godoc
// @Summary Personal emergency contacts, primary first
// @Tags Emergency
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/emergency-contacts [get]
func (s *SafetyController) ListContacts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := s.emergencyService.ListContacts(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// AddContact godoc
// @Summary Add a personal emergency contact
// @Description Marking a contact primary demotes the previous primary contact
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body request_models.PersonalContactRequest true "Contact"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/emergency-contacts [post]
func (s *SafetyController) AddContact(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.PersonalContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.emergencyService.AddContact(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Contact added")
}

// UpdateContact godoc
// @Summary Update a personal emergency contact
// @Tags Emergency
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body request_models.PersonalContactRequest true "Contact"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/emergency-contacts/{id} [put]
func (s *SafetyController) UpdateContact(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.PersonalContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.emergencyService.UpdateContact(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Contact updated")
}

// DeleteContact godoc
// @Summary Delete a personal emergency contact
// @Tags Emergency
// @Param id path string true "Contact ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/emergency-contacts/{id} [delete]
func (s *SafetyController) DeleteContact(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.emergencyService.DeleteContact(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Contact deleted")
}

// CreateKit godoc
// @Summary Create a first aid kit
// @Tags FirstAid
// @Accept json
// @Produce json
// @Param request body request_models.CreateKitRequest true "Kit"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/kits [post]
func (s *SafetyController) CreateKit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.firstAidService.CreateKit(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Kit created")
}

// ListKits godoc
// @Summary First aid kits of the current user
// @Tags FirstAid
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/kits [get]
func (s *SafetyController) ListKits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := s.firstAidService.ListKits(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// GetKit godoc
// @Summary First aid kit with items
// @Tags FirstAid
// @Produce json
// @Param id path string true "Kit ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/kits/{id} [get]
func (s *SafetyController) GetKit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := s.firstAidService.GetKit(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// DeleteKit godoc
// @Summary Delete a first aid kit
// @Tags FirstAid
// @Param id path string true "Kit ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/kits/{id} [delete]
func (s *SafetyController) DeleteKit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.firstAidService.DeleteKit(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Kit deleted")
}

// AddKitItem godoc
// @Summary Add an item to a kit
// @Tags FirstAid
// @Accept json
// @Produce json
// @Param id path string true "Kit ID"
// @Param request body request_models.AddKitItemRequest true "Item"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/kits/{id}/items [post]
func (s *SafetyController) AddKitItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.AddKitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.firstAidService.AddItem(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Item added")
}

// SetPacked godoc
// @Summary Mark a kit item packed or unpacked
// @Tags FirstAid
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body request_models.MarkPackedRequest true "Packed flag"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/items/{id}/packed [patch]
func (s *SafetyController) SetPacked(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.MarkPackedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	out, err := s.firstAidService.SetPacked(c.Request.Context(), userID, id, req.Packed)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// DeleteKitItem godoc
// @Summary Delete a kit item
// @Tags FirstAid
// @Param id path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/items/{id} [delete]
func (s *SafetyController) DeleteKitItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.firstAidService.DeleteItem(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Item deleted")
}

// ExpiringItems godoc
// @Summary Kit items expiring soon, expired ones included
// @Tags FirstAid
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /first-aid/expiring [get]
func (s *SafetyController) ExpiringItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 {
			utils.RespondError(c, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = d
	}
	out, err := s.firstAidService.Expiring(c.Request.Context(), userID, days)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// UploadReport godoc
// @Summary Upload a medical report
// @Description Multipart form with file (PDF, PNG or JPEG), title and optional notes
// @Tags MedicalReports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report file"
// @Param title formData string true "Title"
// @Param notes formData string false "Notes"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/medical-reports [post]
func (s *SafetyController) UploadReport(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleServiceError(c, utils.ErrFileTooLarge)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "A file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read the uploaded file")
		return
	}
	defer f.Close()

	meta := request_models.MedicalReportUpload{
		Title:       c.PostForm("title"),
		Notes:       c.PostForm("notes"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	out, err := s.reportService.Upload(c.Request.Context(), userID, meta, f)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Report uploaded")
}

// ListReports godoc
// @Summary Medical reports of the current user
// @Tags MedicalReports
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/medical-reports [get]
func (s *SafetyController) ListReports(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := s.reportService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "")
}

// DownloadReport godoc
// @Summary Download a medical report
// @Description Streams the file for local storage, redirects to a presigned URL for s3
// @Tags MedicalReports
// @Param id path string true "Report ID"
// @Success 200 {file} file
// @Success 307 "Redirect to object storage"
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/medical-reports/{id}/download [get]
func (s *SafetyController) DownloadReport(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dl, err := s.reportService.Download(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if dl.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, dl.RedirectURL)
		return
	}
	c.Header("Content-Type", dl.ContentType)
	c.FileAttachment(dl.LocalPath, dl.FileName)
}

// DeleteReport godoc
// @Summary Delete a medical report and its stored file
// @Tags MedicalReports
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/medical-reports/{id} [delete]
func (s *SafetyController) DeleteReport(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.reportService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Report deleted")
}
