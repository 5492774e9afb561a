package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	"github.com/BruksfildServices01/advocate-scheduler/internal/config"
	"github.com/BruksfildServices01/advocate-scheduler/internal/handlers"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/advocate-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/advocate-scheduler/internal/middleware"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/advocate-scheduler/internal/usecase/appointment"
	ucBilling "github.com/BruksfildServices01/advocate-scheduler/internal/usecase/billing"
)

// Infra holds the process-wide singletons main owns and shuts down.
type Infra struct {
	Locker lock.Locker
	Audit  *audit.Dispatcher
	Clock  *timezone.Clock
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.SentryMiddleware(),
		middleware.PrometheusMetrics(),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		infra.Locker,
		infra.Audit,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		infra.Locker,
		infra.Audit,
	)

	checkAvailabilityUC := ucAppointment.NewCheckAvailability(
		appointmentRepo,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		infra.Locker,
		infra.Audit,
		infra.Clock,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		infra.Audit,
		infra.Clock,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		infra.Locker,
		infra.Audit,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// USE CASES - BILLING
	// ======================================================
	createInvoiceUC := ucBilling.NewCreateInvoice(billingRepo, infra.Audit, infra.Clock)
	recordPaymentUC := ucBilling.NewRecordPayment(billingRepo, infra.Locker, infra.Audit, infra.Clock)
	getInvoiceUC := ucBilling.NewGetInvoice(billingRepo, infra.Locker, infra.Clock)
	listInvoicesUC := ucBilling.NewListInvoices(billingRepo, infra.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clientHandler := handlers.NewClientHandler(db, infra.Audit)
	caseHandler := handlers.NewCaseHandler(db, infra.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		checkAvailabilityUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	billingHandler := handlers.NewBillingHandler(
		createInvoiceUC,
		recordPaymentUC,
		getInvoiceUC,
		listInvoicesUC,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADVOCATE AREA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(models.RoleAdvocate),
		)
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.GET("/cases", caseHandler.List)
			secured.POST("/cases", caseHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.POST("/appointments/check", appointmentHandler.Check)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PUT("/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// BILLING
			// ------------------------------
			secured.POST("/invoices", billingHandler.CreateInvoice)
			secured.GET("/invoices", billingHandler.ListInvoices)
			secured.GET("/invoices/:id", billingHandler.GetInvoice)
			secured.POST("/invoices/:id/payments", billingHandler.RecordPayment)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
