package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	"github.com/LaundryServices01/laundry-admin/internal/auth"
	"github.com/LaundryServices01/laundry-admin/internal/config"
	domainarea "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/handlers"
	infraRepo "github.com/LaundryServices01/laundry-admin/internal/infra/repository"
	"github.com/LaundryServices01/laundry-admin/internal/mailer"
	"github.com/LaundryServices01/laundry-admin/internal/middleware"
	ucArea "github.com/LaundryServices01/laundry-admin/internal/usecase/area"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	tokens *auth.TokenService,
	mailService *mailer.Service,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	areaRepo := infraRepo.NewAreaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — AREAS
	// ======================================================
	createAreaUC := ucArea.NewCreateArea(
		areaRepo,
		auditDispatcher,
		domainarea.DefaultBands(),
	)

	deleteAreaUC := ucArea.NewDeleteArea(
		areaRepo,
		auditDispatcher,
	)

	toggleSlotUC := ucArea.NewToggleSlot(
		areaRepo,
		auditDispatcher,
	)

	toggleDayUC := ucArea.NewToggleDay(
		areaRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, mailService, auditDispatcher, log)
	passwordHandler := handlers.NewPasswordHandler(db, mailService, auditDispatcher, log)
	profileHandler := handlers.NewProfileHandler(db)

	areaHandler := handlers.NewAreaHandler(db, createAreaUC, deleteAreaUC)
	timeSlotHandler := handlers.NewTimeSlotHandler(db, toggleSlotUC, toggleDayUC)
	postcodeHandler := handlers.NewPostcodeHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	itemHandler := handlers.NewItemHandler(db)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/verify-email", authHandler.VerifyEmail)
		api.POST("/auth/resend-verification", authHandler.ResendVerification)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/token/refresh", authHandler.RefreshToken)
		api.POST("/auth/forgot-password", passwordHandler.ForgotPassword)
		api.POST("/auth/reset-password", passwordHandler.ResetPassword)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/profile", profileHandler.Get)
			secured.PATCH("/profile", profileHandler.Update)

			// ------------------------------
			// AREAS + TIME SLOTS
			// ------------------------------
			secured.GET("/areas", areaHandler.List)
			secured.POST("/areas", areaHandler.Create)
			secured.GET("/areas/:id", areaHandler.Get)
			secured.PUT("/areas/:id", areaHandler.Update)
			secured.PATCH("/areas/:id", areaHandler.Update)
			secured.DELETE("/areas/:id", areaHandler.Delete)

			secured.GET("/areas/:id/time-slots", timeSlotHandler.ListForArea)
			secured.PATCH("/areas/:id/time-slots/:slotID", timeSlotHandler.ToggleSlot)
			secured.PATCH("/areas/:id/time-slots/days/:day", timeSlotHandler.ToggleDay)

			secured.GET("/time-slots", timeSlotHandler.List)

			// ------------------------------
			// POSTCODES
			// ------------------------------
			secured.GET("/postcodes", postcodeHandler.List)
			secured.POST("/postcodes", postcodeHandler.Create)
			secured.GET("/postcodes/:id", postcodeHandler.Get)
			secured.PUT("/postcodes/:id", postcodeHandler.Update)
			secured.PATCH("/postcodes/:id", postcodeHandler.Update)
			secured.DELETE("/postcodes/:id", postcodeHandler.Delete)

			// ------------------------------
			// CATEGORIES + ITEMS
			// ------------------------------
			secured.GET("/categories", categoryHandler.List)
			secured.POST("/categories", categoryHandler.Create)
			secured.GET("/categories/:id", categoryHandler.Get)
			secured.PUT("/categories/:id", categoryHandler.Update)
			secured.PATCH("/categories/:id", categoryHandler.Update)
			secured.DELETE("/categories/:id", categoryHandler.Delete)

			secured.GET("/items", itemHandler.List)
			secured.POST("/items", itemHandler.Create)
			secured.GET("/items/:id", itemHandler.Get)
			secured.PUT("/items/:id", itemHandler.Update)
			secured.PATCH("/items/:id", itemHandler.Update)
			secured.DELETE("/items/:id", itemHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
