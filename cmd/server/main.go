package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/handlers"
	"chatman_legal_go/middleware"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Case{},
		&models.Lead{},
		&models.Message{},
		&models.Appointment{},
		&models.ReferralVisit{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (local avatar uploads)
	e.Static("/static", "static")

	// Public intake routes (no authentication, rate limited)
	public := e.Group("/api")
	public.Use(middleware.PublicFormRateLimiter.Middleware())
	{
		public.POST("/contact", handlers.ContactHandler)
		public.POST("/book", handlers.BookingHandler)
		public.POST("/popup", handlers.PopupHandler)
	}

	// Referral landing pages
	e.GET("/r/:slug", handlers.ReferralPageHandler)
	e.POST("/r/:slug", handlers.ReferralLeadHandler, middleware.PublicFormRateLimiter.Middleware())

	// Auth routes
	e.POST("/api/register", handlers.RegisterHandler, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/logout", handlers.LogoutHandler)
	e.GET("/api/me", handlers.MeHandler, middleware.RequireAuth())

	// Staff routes (admin + attorney)
	staff := e.Group("/api")
	staff.Use(middleware.RequireAuth())
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/admin/dashboard", handlers.AdminDashboardHandler)

		staff.GET("/cases", handlers.ListCasesHandler)
		staff.POST("/cases", handlers.CreateCaseHandler)
		staff.GET("/cases/:id", handlers.GetCaseHandler)
		staff.PUT("/cases/:id", handlers.UpdateCaseHandler)
		staff.PUT("/cases/:id/status", handlers.UpdateCaseStatusHandler)

		staff.GET("/leads", handlers.ListLeadsHandler)
		staff.PUT("/leads/:id/status", handlers.UpdateLeadStatusHandler)
		staff.GET("/leads/stats", handlers.LeadStatsHandler)
		staff.GET("/admin/leads/export", handlers.ExportLeadsHandler)

		staff.GET("/clients", handlers.ListClientsHandler)
		staff.GET("/attorneys", handlers.ListAttorneysHandler)

		staff.POST("/admin/import/preview", handlers.ImportPreviewHandler)
		staff.POST("/admin/import", handlers.ImportHandler)
		staff.GET("/admin/import/template", handlers.ImportTemplateHandler)

		staff.GET("/appointments", handlers.ListAppointmentsHandler)
		staff.POST("/appointments", handlers.CreateAppointmentHandler)
		staff.PUT("/appointments/:id/status", handlers.UpdateAppointmentStatusHandler)
	}

	// Client portal routes (any authenticated user)
	portal := e.Group("/api/portal")
	portal.Use(middleware.RequireAuth())
	{
		portal.GET("/dashboard", handlers.PortalDashboardHandler)
		portal.GET("/cases", handlers.PortalCasesHandler)
		portal.GET("/cases/:id/messages", handlers.CaseMessagesHandler)
		portal.POST("/cases/:id/messages", handlers.SendCaseMessageHandler)
		portal.GET("/profile", handlers.ProfileHandler)
		portal.PUT("/profile", handlers.UpdateProfileHandler)
		portal.POST("/profile/avatar", handlers.UploadAvatarHandler)
		portal.GET("/share", handlers.ShareHandler)
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
