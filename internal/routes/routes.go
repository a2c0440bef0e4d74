package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, loc *time.Location, logger zerolog.Logger) {
	// Initialize services and handlers
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(db, loc, logger))
	sessionHandler := handlers.NewSessionHandler(services.NewSessionService(db, loc, logger))
	patientHandler := handlers.NewPatientHandler(services.NewPatientService(db, logger))
	clinicianHandler := handlers.NewClinicianHandler(services.NewClinicianService(db, logger))
	guardianHandler := handlers.NewGuardianHandler(services.NewGuardianService(db, logger))
	billingHandler := handlers.NewBillingHandler(services.NewBillingService(db))
	catalogHandler := handlers.NewCatalogHandler(services.NewCatalogService(db))
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(db, loc))

	api := router.Group("/api")
	{
		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.ListAppointments)
			appointmentRoutes.GET("/catalogs", appointmentHandler.GetBookingCatalogs)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		sessionRoutes := api.Group("/sessions")
		{
			sessionRoutes.POST("", sessionHandler.CloseSession)
			sessionRoutes.GET("/search", sessionHandler.FindLatestSession)
		}

		patientRoutes := api.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.ListPatients)
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.GET("/:id/record", patientHandler.GetPatientRecord)
			patientRoutes.GET("/:id/history", patientHandler.GetPatientHistory)
		}

		clinicianRoutes := api.Group("/clinicians")
		{
			clinicianRoutes.GET("", clinicianHandler.ListClinicians)
			clinicianRoutes.POST("", clinicianHandler.CreateClinician)
			clinicianRoutes.PUT("/:id", clinicianHandler.UpdateClinician)
		}

		guardianRoutes := api.Group("/guardians")
		{
			guardianRoutes.GET("", guardianHandler.ListGuardians)
			guardianRoutes.PUT("/:id", guardianHandler.UpdateGuardian)
		}

		invoiceRoutes := api.Group("/invoices")
		{
			invoiceRoutes.GET("", billingHandler.ListInvoices)
			invoiceRoutes.GET("/:id", billingHandler.GetInvoiceByID)
		}

		catalogRoutes := api.Group("/catalogs")
		{
			catalogRoutes.GET("", catalogHandler.GetAllCatalogs)
			catalogRoutes.GET("/:catalog", catalogHandler.ListCatalog)
			catalogRoutes.POST("/:catalog", catalogHandler.CreateCatalogEntry)
			catalogRoutes.PUT("/:catalog/:id", catalogHandler.UpdateCatalogEntry)
			catalogRoutes.DELETE("/:catalog/:id", catalogHandler.DeleteCatalogEntry)
		}

		api.GET("/dashboard", dashboardHandler.GetStats)
		api.GET("/history", dashboardHandler.GetHistory)
		api.GET("/charts", dashboardHandler.GetCharts)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
