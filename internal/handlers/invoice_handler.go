package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	dominvoice "github.com/clinagenda/clinic-api/internal/domain/invoice"
	"github.com/clinagenda/clinic-api/internal/httperr"
	"github.com/clinagenda/clinic-api/internal/httpresp"
	"github.com/clinagenda/clinic-api/internal/middleware"
	"github.com/clinagenda/clinic-api/internal/models"
	"github.com/clinagenda/clinic-api/internal/timezone"
	ucInvoice "github.com/clinagenda/clinic-api/internal/usecase/invoice"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	issueUC *ucInvoice.IssueInvoice
	voidUC  *ucInvoice.VoidInvoice
	repo    dominvoice.Repository
	city    string
	tz      string
}

func NewInvoiceHandler(
	issueUC *ucInvoice.IssueInvoice,
	voidUC *ucInvoice.VoidInvoice,
	repo dominvoice.Repository,
	city string,
	tz string,
) *InvoiceHandler {
	return &InvoiceHandler{
		issueUC: issueUC,
		voidUC:  voidUC,
		repo:    repo,
		city:    city,
		tz:      tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type InvoiceLineRequest struct {
	PatientID      uint   `json:"patient_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Reason         string `json:"reason"`
	Cost           string `json:"cost" binding:"required"`
}

type IssueInvoiceRequest struct {
	ClientID      uint                 `json:"client_id" binding:"required"`
	City          string               `json:"city"`
	PaymentMethod string               `json:"payment_method" binding:"required"`
	Discount      string               `json:"discount"`
	Appointments  []InvoiceLineRequest `json:"appointments"`
}

// ======================================================
// ISSUE
// ======================================================

// Issue converts a basket of appointment candidates into one invoice.
// Totals follow the caller-side formula: tax = subtotal * fixed rate,
// total = subtotal + tax - discount. Issuance persists the figures
// as-is without recomputing them.
func (h *InvoiceHandler) Issue(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	discount := decimal.Zero
	if req.Discount != "" {
		var err error
		discount, err = decimal.NewFromString(req.Discount)
		if err != nil || discount.IsNegative() {
			httperr.BadRequest(c, "invalid_discount", "Discount must be a non-negative amount.")
			return
		}
	}

	loc := timezone.Location(h.tz)
	appointments := make([]models.Appointment, 0, len(req.Appointments))
	costs := make([]decimal.Decimal, 0, len(req.Appointments))

	for _, line := range req.Appointments {
		cost, err := decimal.NewFromString(line.Cost)
		if err != nil {
			httperr.BadRequest(c, "invalid_cost", "Cost must be a decimal amount.")
			return
		}

		scheduledAt, err := parseSlotIn(line.Date, line.Time, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
			return
		}

		appointments = append(appointments, models.Appointment{
			PatientID:      line.PatientID,
			ProfessionalID: line.ProfessionalID,
			ScheduledAt:    scheduledAt,
			Reason:         line.Reason,
			Cost:           cost,
		})
		costs = append(costs, cost)
	}

	city := req.City
	if city == "" {
		city = h.city
	}

	subtotal := dominvoice.SumCosts(costs)
	totals := dominvoice.ComputeTotals(subtotal, dominvoice.DefaultTaxRate, discount)

	invoiceID, err := h.issueUC.Execute(c.Request.Context(), ucInvoice.IssueInvoiceInput{
		ClientID:      req.ClientID,
		City:          city,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: dominvoice.PaymentMethod(req.PaymentMethod),
		Appointments:  appointments,
		UserID:        userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"invoice_id": invoiceID,
		"subtotal":   totals.Subtotal,
		"tax":        totals.Tax,
		"discount":   totals.Discount,
		"total":      totals.Total,
	})
}

// ======================================================
// VOID
// ======================================================

func (h *InvoiceHandler) Void(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid invoice id.")
		return
	}

	voided, err := h.voidUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"voided": voided})
}

// ======================================================
// READS
// ======================================================

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid invoice id.")
		return
	}

	inv, err := h.repo.GetInvoiceByID(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, httperr.CodeInvoiceNotFound, "Invoice not found.")
		return
	}

	httpresp.OK(c, inv)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var clientID *uint
	if v, ok := parseUintQuery(c, "client_id"); ok {
		clientID = &v
	}

	var status *dominvoice.Status
	if s := c.Query("status"); s != "" {
		st := dominvoice.Status(s)
		if st != dominvoice.StatusActive && st != dominvoice.StatusVoided {
			httperr.BadRequest(c, "invalid_status", "Unknown invoice status.")
			return
		}
		status = &st
	}

	invoices, err := h.repo.FindInvoices(c.Request.Context(), clientID, status)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, invoices, int64(len(invoices)))
}
