package controllers

import (
	"errors"
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Ledger *services.AvailabilityService
	Query  *services.AvailabilityQuery
}

func NewAvailabilityController(ledger *services.AvailabilityService, query *services.AvailabilityQuery) *AvailabilityController {
	return &AvailabilityController{Ledger: ledger, Query: query}
}

type blockRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// ListBlocked (GET /api/properties/:id/blocked?from=...&to=...)
func (ac *AvailabilityController) ListBlocked(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	from, err := parseDay(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := ac.Ledger.ListBlocked(propertyID, from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list blocked dates")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, rows)
}

// ManualBlock (POST /api/properties/:id/blocked) blocks a range of days on
// behalf of the owner.
func (ac *AvailabilityController) ManualBlock(c *gin.Context) {
	propertyID, r, ok := ac.bindBlockRange(c)
	if !ok {
		return
	}

	if err := ac.Ledger.Block(propertyID, r, models.ProvenanceManual); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to block dates")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"blocked": formatDays(r.Days())})
}

// ManualUnblock (DELETE /api/properties/:id/blocked) removes manual blocks
// only; days held by bookings or imports stay blocked.
func (ac *AvailabilityController) ManualUnblock(c *gin.Context) {
	propertyID, r, ok := ac.bindBlockRange(c)
	if !ok {
		return
	}

	if err := ac.Ledger.Unblock(propertyID, r, models.ProvenanceManual); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to unblock dates")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"unblocked": formatDays(r.Days())})
}

// Validate (GET /api/properties/:id/availability?check_in=...&check_out=...)
func (ac *AvailabilityController) Validate(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	r, err := rangeFromQuery(c)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRange) {
			utils.JSONError(c, http.StatusBadRequest, "Check-out must be after check-in")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ac.Query.ValidateCandidate(propertyID, r)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to validate range")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"free":            result.Free,
		"conflictingDays": formatDays(result.ConflictingDays),
	})
}

func (ac *AvailabilityController) bindBlockRange(c *gin.Context) (uint, models.DateRange, bool) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return 0, models.DateRange{}, false
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return 0, models.DateRange{}, false
	}

	from, err := parseDay(req.From)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return 0, models.DateRange{}, false
	}
	to, err := parseDay(req.To)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return 0, models.DateRange{}, false
	}

	r, err := models.NewDateRange(from, to)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Range end must not precede its start")
		return 0, models.DateRange{}, false
	}
	return propertyID, r, true
}
