package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/clinagenda/clinic-api/internal/domain/appointment"
	"github.com/clinagenda/clinic-api/internal/dto"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/httpresp"
	"github.com/clinagenda/clinic-api/internal/middleware"
	ucAppointment "github.com/clinagenda/clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	updateUC       *ucAppointment.UpdateAppointment
	changeStatusUC *ucAppointment.ChangeStatus
	deleteUC       *ucAppointment.DeleteAppointment
	listUC         *ucAppointment.ListAppointments
	agendaUC       *ucAppointment.GetAgenda
	conflictUC     *ucAppointment.CheckConflict
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	changeStatusUC *ucAppointment.ChangeStatus,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	agendaUC *ucAppointment.GetAgenda,
	conflictUC *ucAppointment.CheckConflict,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		changeStatusUC: changeStatusUC,
		deleteUC:       deleteUC,
		listUC:         listUC,
		agendaUC:       agendaUC,
		conflictUC:     conflictUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	PatientID      uint   `json:"patient_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
	Cost           string `json:"cost"`
}

func (r AppointmentRequest) cost() (decimal.Decimal, error) {
	if r.Cost == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(r.Cost)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	cost, err := req.cost()
	if err != nil {
		httperr.BadRequest(c, "invalid_cost", "Cost must be a decimal amount.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Cost:           cost,
		UserID:         userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	cost, err := req.cost()
	if err != nil {
		httperr.BadRequest(c, "invalid_cost", "Cost must be a decimal amount.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		AppointmentID:  uint(id),
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Cost:           cost,
		UserID:         userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) changeStatus(c *gin.Context, target domain.Status) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.changeStatusUC.Execute(c.Request.Context(), userID, uint(id), target)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, domain.StatusConfirmed)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) Attend(c *gin.Context) {
	h.changeStatus(c, domain.StatusAttended)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	deleted, err := h.deleteUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		httperr.NotFound(c, httperr.CodeAppointmentMissing, "Appointment not found.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var f domain.Filters

	if v, ok := parseUintQuery(c, "patient_id"); ok {
		f.PatientID = &v
	}
	if v, ok := parseUintQuery(c, "professional_id"); ok {
		f.ProfessionalID = &v
	}
	if s := c.Query("status"); s != "" {
		st := domain.Status(s)
		if !domain.IsValid(st) {
			httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
			return
		}
		f.Status = &st
	}
	if t, ok := parseTimeQuery(c, "from"); ok {
		f.From = &t
	}
	if t, ok := parseTimeQuery(c, "to"); ok {
		f.To = &t
	}

	apps, total, err := h.listUC.Execute(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.FromAppointment(ap))
	}

	httpresp.List(c, out, total)
}

// ======================================================
// AGENDA / CONFLICT CHECK
// ======================================================

func (h *AppointmentHandler) Agenda(c *gin.Context) {
	proID, ok := parseUintQuery(c, "professional_id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "professional_id is required.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_request", "date is required.")
		return
	}

	slots, err := h.agendaUC.Execute(c.Request.Context(), proID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"booked_slots": slots})
}

func (h *AppointmentHandler) CheckConflict(c *gin.Context) {
	proID, ok := parseUintQuery(c, "professional_id")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "professional_id is required.")
		return
	}

	at, ok := parseTimeQuery(c, "at")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "at must be RFC3339.")
		return
	}

	var excludeID *uint
	if v, ok := parseUintQuery(c, "exclude_id"); ok {
		excludeID = &v
	}

	conflict, err := h.conflictUC.Execute(c.Request.Context(), proID, at, excludeID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"conflict": conflict})
}

// ======================================================
// QUERY HELPERS
// ======================================================

func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
