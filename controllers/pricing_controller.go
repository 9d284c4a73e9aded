package controllers

import (
	"errors"
	"net/http"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	Pricing    *services.PricingService
	Properties *services.PropertyService
}

func NewPricingController(pricing *services.PricingService, properties *services.PropertyService) *PricingController {
	return &PricingController{Pricing: pricing, Properties: properties}
}

type overrideRequest struct {
	Date  string  `json:"date" binding:"required"`
	Price float64 `json:"price"`
}

// Quote (GET /api/properties/:id/quote?check_in=...&check_out=...)
func (pc *PricingController) Quote(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	r, err := rangeFromQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := pc.Properties.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load property")
		return
	}

	total, err := pc.Pricing.Quote(property, r)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteRate) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Pricing is not configured for this property")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute quote")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total":  total,
		"nights": r.Nights(),
	})
}

// SetOverride (PUT /api/properties/:id/overrides)
func (pc *PricingController) SetOverride(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Price <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Price must be positive")
		return
	}

	day, err := parseDay(req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.Pricing.SetOverride(propertyID, day, req.Price); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save override")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"date": day.Format(dayLayout), "price": req.Price})
}

// RemoveOverride (DELETE /api/properties/:id/overrides?date=...)
func (pc *PricingController) RemoveOverride(c *gin.Context) {
	propertyID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	day, err := parseDay(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.Pricing.RemoveOverride(propertyID, day); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to remove override")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"date": day.Format(dayLayout)})
}
