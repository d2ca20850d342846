package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/httpresp"
	"github.com/clinagenda/clinic-api/internal/models"
)

type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

type SpecialtyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	sp := models.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.db.Create(&sp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_specialty", "Could not create specialty.")
		return
	}

	httpresp.Created(c, sp)
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid specialty id.")
		return
	}

	var sp models.Specialty
	if err := h.db.First(&sp, uint(id)).Error; err != nil {
		httperr.NotFound(c, "specialty_not_found", "Specialty not found.")
		return
	}

	var req SpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	sp.Name = req.Name
	sp.Description = req.Description

	if err := h.db.Save(&sp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_specialty", "Could not update specialty.")
		return
	}

	httpresp.OK(c, sp)
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.db.Order("name ASC").Find(&specialties).Error; err != nil {
		httperr.Internal(c, "failed_to_list_specialties", "Could not list specialties.")
		return
	}

	httpresp.List(c, specialties, int64(len(specialties)))
}
