package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/httpresp"
	"github.com/clinagenda/clinic-api/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

type ProfessionalRequest struct {
	Name        string `json:"name" binding:"required"`
	License     string `json:"license" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	SpecialtyID uint   `json:"specialty_id"`
	Active      *bool  `json:"active"`
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.SpecialtyID != 0 {
		var count int64
		h.db.Model(&models.Specialty{}).Where("id = ?", req.SpecialtyID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "specialty_not_found", "Specialty not found.")
			return
		}
	}

	pro := models.Professional{
		Name:        req.Name,
		License:     req.License,
		Phone:       req.Phone,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		SpecialtyID: req.SpecialtyID,
		Active:      true,
	}
	if req.Active != nil {
		pro.Active = *req.Active
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Could not create professional.")
		return
	}

	httpresp.Created(c, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid professional id.")
		return
	}

	var pro models.Professional
	if err := h.db.First(&pro, uint(id)).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return
	}

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	pro.Name = req.Name
	pro.License = req.License
	pro.Phone = req.Phone
	pro.Email = strings.ToLower(strings.TrimSpace(req.Email))
	pro.SpecialtyID = req.SpecialtyID
	if req.Active != nil {
		pro.Active = *req.Active
	}

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Could not update professional.")
		return
	}

	httpresp.OK(c, pro)
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Professional{}).Preload("Specialty")

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR license LIKE ?", like, like)
	}
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if v, ok := parseUintQuery(c, "specialty_id"); ok {
		q = q.Where("specialty_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Could not list professionals.")
		return
	}

	var pros []models.Professional
	if err := q.Order("name ASC").Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Could not list professionals.")
		return
	}

	httpresp.List(c, pros, total)
}
