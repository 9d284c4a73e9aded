package controllers

import (
	"errors"
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	Service *services.PropertyService
}

func NewPropertyController(service *services.PropertyService) *PropertyController {
	return &PropertyController{Service: service}
}

// Create (POST /api/properties)
func (pc *PropertyController) Create(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	created, err := pc.Service.Create(property)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create property")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, created)
}

// Get (GET /api/properties/:id)
func (pc *PropertyController) Get(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	property, err := pc.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load property")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, property)
}

// Update (PATCH /api/properties/:id)
func (pc *PropertyController) Update(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	property, err := pc.Service.Update(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Property not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update property")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, property)
}
