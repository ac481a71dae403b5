package app

import (
	"fmt"
	"time"

	"apptnu_backend/database"
	"apptnu_backend/internal/auth"
	"apptnu_backend/internal/config"
	"apptnu_backend/internal/email"
	"apptnu_backend/internal/handlers"
	"apptnu_backend/internal/logger"
	"apptnu_backend/internal/middleware"
	"apptnu_backend/internal/models"
	"apptnu_backend/internal/notification"
	"apptnu_backend/internal/payment/midtrans"
	"apptnu_backend/internal/routes"
	"apptnu_backend/internal/services"
	"apptnu_backend/internal/storage"
	appvalidator "apptnu_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole application: config, database, migration, router.
func Run() error {
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	router, err := SetupRouter(db, cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter wires services, handlers and middleware onto a gin engine.
// Split out from Run so tests can mount the full HTTP surface over their
// own database handle.
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Hour)

	store, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init document storage: %w", err)
	}

	var mailer email.Sender
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewSMTPSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	var provider notification.Provider
	if cfg.WhatsApp.APIURL != "" {
		provider = notification.NewHTTPProvider(cfg.WhatsApp.APIURL, cfg.WhatsApp.Token)
	} else {
		// No gateway configured: log instead of dropping silently.
		provider = LoggingProvider{}
	}

	gateway := midtrans.NewClient(cfg.Midtrans.ServerKey, cfg.Midtrans.Environment)
	if cfg.Midtrans.BaseURL != "" {
		gateway.SetBaseURL(cfg.Midtrans.BaseURL)
	}

	factory := &services.Factory{
		Issuer:         issuer,
		Gateway:        gateway,
		StrictWebhooks: cfg.Midtrans.StrictWebhooks,
		Provider:       provider,
		Store:          store,
		BaseURL:        cfg.Documents.BaseURL,
		Mailer:         mailer,
	}

	appHandlers := handlers.NewAppHandlers(factory, appvalidator.New())

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.DBMiddleware(db),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.Register(router, appHandlers, issuer)
	return router, nil
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// absent. Existing accounts are never modified.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,

		InstitutionName:  "APPTNU",
		HeadLibrarian:    "-",
		HeadPhone:        "-",
		Agency:           "APPTNU",
		PICName:          "Administrator",
		PICPhone:         "-",
		FullAddress:      "-",
		Province:         models.ProvinceJawaTimur,
		InstitutionEmail: cfg.FirstAdminEmail,
		WebsiteURL:       "https://apptnu.or.id",
		AutomationURL:    "https://apptnu.or.id",
		RepositoryStatus: models.RepositoryStatusSudah,
		Accreditation:    models.AccreditationA,
		MembershipType:   models.MembershipTypeNew,
		MembershipStatus: models.MembershipStatusActive,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Bootstrap admin created", "email", cfg.FirstAdminEmail)
	return nil
}
