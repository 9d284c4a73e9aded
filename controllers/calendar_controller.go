package controllers

import (
	"errors"
	"io"
	"net/http"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	Sync *services.CalendarSyncService
}

func NewCalendarController(sync *services.CalendarSyncService) *CalendarController {
	return &CalendarController{Sync: sync}
}

// Import (POST /api/properties/:id/calendar/import) accepts the raw .ics
// payload as the request body.
func (cc *CalendarController) Import(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Empty calendar payload")
		return
	}

	result, err := cc.Sync.ImportICS(propertyID, string(body))
	if err != nil {
		if errors.Is(err, services.ErrICSParse) {
			utils.JSONError(c, http.StatusBadRequest, "Calendar could not be parsed; nothing was imported")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Calendar import failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, result)
}

// Export (GET /api/properties/:id/calendar.ics)
func (cc *CalendarController) Export(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	text, err := cc.Sync.ExportICS(propertyID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Calendar export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="blocked.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(text))
}
