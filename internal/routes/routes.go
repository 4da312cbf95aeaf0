package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	"github.com/BruksfildServices01/braids-scheduler/internal/config"
	"github.com/BruksfildServices01/braids-scheduler/internal/handlers"
	"github.com/BruksfildServices01/braids-scheduler/internal/messaging"
	"github.com/BruksfildServices01/braids-scheduler/internal/middleware"
	"github.com/BruksfildServices01/braids-scheduler/internal/retention"
	"github.com/BruksfildServices01/braids-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/braids-scheduler/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	Config    *config.Config
	Store     *state.Store
	Clock     timezone.Clock
	Locker    slotlock.Locker
	Audit     *audit.Dispatcher
	Messages  *messaging.Resilient
	Outbox    *messaging.Outbox
	Retention *retention.Job
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.PerformanceLogger())

	schedule := ucAppointment.Schedule{
		Repo:   d.Store,
		Clock:  d.Clock,
		Slots:  d.Config.SlotTimes,
		Locker: d.Locker,
		Audit:  d.Audit,
	}

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(schedule)
	onlineBookingUC := ucAppointment.NewCreateOnlineBooking(schedule)
	manualAppointmentUC := ucAppointment.NewCreateManualAppointment(schedule)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		d.Store,
		d.Audit,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		d.Store,
		d.Audit,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		d.Store,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		d.Store,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(d.Config, d.Store)
	if err != nil {
		return err
	}

	publicHandler := handlers.NewPublicHandler(
		availabilityUC,
		onlineBookingUC,
		d.Messages,
		d.Outbox,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		manualAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	clientHandler := handlers.NewClientHandler(d.Store, d.Messages, d.Audit)
	reportHandler := handlers.NewReportHandler(d.Store, d.Clock, d.Audit)
	financeHandler := handlers.NewFinanceHandler(d.Store)
	kanbanHandler := handlers.NewKanbanHandler(d.Store)
	settingsHandler := handlers.NewSettingsHandler(d.Store, d.Audit)
	dashboardHandler := handlers.NewDashboardHandler(d.Store, d.Clock)
	retentionHandler := handlers.NewRetentionHandler(d.Retention)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	requireAdmin := middleware.AuthMiddleware(d.Config, d.Store)

	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/techniques", publicHandler.Techniques)
			publicAPI.GET("/slots", publicHandler.Slots)
			publicAPI.POST("/bookings", publicHandler.Book)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", requireAdmin, authHandler.Logout)
		api.GET("/auth/status", authHandler.Status)

		// ------------------------------
		// 🔐 ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(requireAdmin)
		{
			admin.GET("/dashboard", dashboardHandler.Get)

			admin.GET("/clients", clientHandler.List)
			admin.POST("/clients", clientHandler.Create)
			admin.GET("/clients/:id", clientHandler.Get)
			admin.PATCH("/clients/:id", clientHandler.Update)
			admin.GET("/clients/:id/reports", clientHandler.Reports)
			admin.GET("/clients/:id/retention-message", clientHandler.RetentionMessage)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			admin.GET("/techniques", appointmentHandler.Techniques)
			admin.POST("/appointments", appointmentHandler.Create)
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.GET("/appointments/:id/report", reportHandler.Get)
			admin.PUT("/appointments/:id/report", reportHandler.Save)

			admin.GET("/finances", financeHandler.List)
			admin.POST("/finances", financeHandler.Create)
			admin.GET("/finances/summary", financeHandler.Summary)

			admin.GET("/tasks", kanbanHandler.List)
			admin.POST("/tasks", kanbanHandler.Create)
			admin.PATCH("/tasks/:id", kanbanHandler.Update)
			admin.DELETE("/tasks/:id", kanbanHandler.Delete)

			admin.GET("/settings", settingsHandler.Get)
			admin.PUT("/settings", settingsHandler.Update)

			admin.POST("/retention/run", retentionHandler.Run)
		}
	}

	return nil
}
