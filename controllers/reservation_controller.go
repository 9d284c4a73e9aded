package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(service *services.ReservationService) *ReservationController {
	return &ReservationController{Service: service}
}

type createReservationRequest struct {
	PropertyID      uint            `json:"propertyId" binding:"required"`
	Kind            string          `json:"kind"`
	CheckIn         string          `json:"checkIn" binding:"required"`
	CheckOut        string          `json:"checkOut" binding:"required"`
	GuestName       string          `json:"guestName" binding:"required"`
	GuestEmail      string          `json:"guestEmail" binding:"required"`
	GuestPhone      string          `json:"guestPhone"`
	OccupantCount   int             `json:"occupantCount" binding:"required,min=1"`
	CompanionGuests json.RawMessage `json:"companionGuests"`
}

type statusNoteRequest struct {
	Note string `json:"note"`
}

// Create (POST /api/reservations)
func (rc *ReservationController) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	checkIn, err := parseDay(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDay(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := rc.Service.Create(services.CreateReservationInput{
		PropertyID:      req.PropertyID,
		Kind:            req.Kind,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		OccupantCount:   req.OccupantCount,
		CompanionGuests: datatypes.JSON(req.CompanionGuests),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			utils.JSONError(c, http.StatusNotFound, "Property not found")
		case errors.Is(err, models.ErrInvalidRange):
			utils.JSONError(c, http.StatusBadRequest, "Check-out must be after check-in")
		case errors.Is(err, services.ErrStayTooShort), errors.Is(err, services.ErrStayTooLong):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrIncompleteRate):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Pricing is not configured for this property")
		default:
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// Get (GET /api/reservations/:id)
func (rc *ReservationController) Get(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := rc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Reservation not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reservation")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ListByProperty (GET /api/properties/:id/reservations)
func (rc *ReservationController) ListByProperty(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservations, err := rc.Service.ListByProperty(propertyID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list reservations")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservations)
}

// Confirm (POST /api/reservations/:id/confirm)
func (rc *ReservationController) Confirm(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := rc.Service.Confirm(id)
	if err != nil {
		var unavailable *services.RangeUnavailableError
		switch {
		case errors.As(err, &unavailable):
			utils.JSONErrorDetail(c, http.StatusConflict,
				"These dates are no longer available", formatDays(unavailable.Days))
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "Only pending reservations can be confirmed")
		case errors.Is(err, services.ErrConfirmationFailed):
			utils.JSONError(c, http.StatusInternalServerError,
				"Confirmation failed and was rolled back; please retry")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// Reject (POST /api/reservations/:id/reject)
func (rc *ReservationController) Reject(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req statusNoteRequest
	_ = c.ShouldBindJSON(&req)

	reservation, err := rc.Service.Reject(id, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "Only pending reservations can be rejected")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// Cancel (POST /api/reservations/:id/cancel)
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req statusNoteRequest
	_ = c.ShouldBindJSON(&req)

	reservation, err := rc.Service.Cancel(id, req.Note)
	if err != nil {
		var partial *services.PartialCancellationError
		switch {
		case errors.As(err, &partial):
			// The cancellation itself went through; tell the operator the
			// calendar still needs a manual unblock.
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    reservation,
				"warning": partial.Error(),
			})
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "Reservation not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "Only confirmed reservations can be cancelled")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}
