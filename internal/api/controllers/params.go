package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trailhub/pkg/middleware"
	"trailhub/pkg/utils"
)

// pathID parses a uuid path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the caller, answering 401 when the request is anonymous.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
		return uuid.Nil, false
	}
	return id, true
}

func paging(c *gin.Context) (int, int, bool) {
	page, pageSize, err := utils.ParsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return 0, 0, false
	}
	return page, pageSize, true
}

func attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
