package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinagenda/clinic-api/internal/audit"
	"github.com/clinagenda/clinic-api/internal/cache"
	"github.com/clinagenda/clinic-api/internal/config"
	"github.com/clinagenda/clinic-api/internal/handlers"
	infraRepo "github.com/clinagenda/clinic-api/internal/infra/repository"
	"github.com/clinagenda/clinic-api/internal/middleware"
	ucAppointment "github.com/clinagenda/clinic-api/internal/usecase/appointment"
	ucInvoice "github.com/clinagenda/clinic-api/internal/usecase/invoice"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	agendaCache := cache.NewAgendaCache(rdb, log)

	// ======================================================
	// APPOINTMENT USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo, auditDispatcher, agendaCache, cfg.Timezone,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo, auditDispatcher, agendaCache, cfg.Timezone,
	)
	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo, auditDispatcher, agendaCache, cfg.Timezone,
	)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo, auditDispatcher, agendaCache,
	)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	agendaUC := ucAppointment.NewGetAgenda(appointmentRepo, agendaCache, cfg.Timezone)
	checkConflictUC := ucAppointment.NewCheckConflict(appointmentRepo)

	// ======================================================
	// INVOICE USE CASES
	// ======================================================
	issueInvoiceUC := ucInvoice.NewIssueInvoice(
		invoiceRepo,
		auditDispatcher,
		agendaCache,
		cfg.InvoicePrefix,
		cfg.Timezone,
		cfg.IssuanceTimeout,
	)
	voidInvoiceUC := ucInvoice.NewVoidInvoice(invoiceRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	patientHandler := handlers.NewPatientHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	specialtyHandler := handlers.NewSpecialtyHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		changeStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		agendaUC,
		checkConflictUC,
	)

	invoiceHandler := handlers.NewInvoiceHandler(
		issueInvoiceUC,
		voidInvoiceUC,
		invoiceRepo,
		cfg.City,
		cfg.Timezone,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.GET("/patients/:id", patientHandler.Get)
			secured.PATCH("/patients/:id", patientHandler.Update)

			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.PATCH("/professionals/:id", professionalHandler.Update)

			secured.GET("/specialties", specialtyHandler.List)
			secured.POST("/specialties", specialtyHandler.Create)
			secured.PATCH("/specialties/:id", specialtyHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/attend", appointmentHandler.Attend)

			secured.GET("/schedule/agenda", appointmentHandler.Agenda)
			secured.GET("/schedule/conflict", appointmentHandler.CheckConflict)

			// ------------------------------
			// INVOICES
			// ------------------------------
			secured.POST("/invoices", invoiceHandler.Issue)
			secured.GET("/invoices", invoiceHandler.List)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.PATCH("/invoices/:id/void", invoiceHandler.Void)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
