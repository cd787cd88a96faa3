package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/rally/internal/rally/http"
	"github.com/aussiebroadwan/rally/internal/rally/notify"
	"github.com/aussiebroadwan/rally/internal/rally/service"
	"github.com/aussiebroadwan/rally/internal/rally/store/drivers/sqlite"
	"github.com/aussiebroadwan/rally/internal/rally/zitadel"
	"github.com/aussiebroadwan/rally/pkg/httpx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the store, services and HTTP server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db   *sqlite.Store
	keys *SessionKeys

	mailer notify.Mailer
	sms    notify.SMSSender

	tokenService        *service.TokenService
	permissionService   *service.PermissionService
	sessionService      *service.SessionService
	magicLinkService    *service.MagicLinkService
	loginService        *service.LoginService // nil without an identity provider
	inviteService       *service.InviteService
	organizationService *service.OrganizationService
	eventService        *service.EventService
	signupService       *service.SignupService
	volunteerService    *service.VolunteerService
	passkeyService      *service.PasskeyService
	reminderService     *service.ReminderService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "rally",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	})
}

// New creates an Application with all dependencies initialized.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	keys, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keys = keys

	if err := app.initNotify(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("rally starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down rally...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("rally stopped")
	return nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// OpenStore opens the database file and applies pending migrations.
func OpenStore(cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)
	return db, nil
}

func (app *Application) initNotify(ctx context.Context) error {
	if app.cfg.SMTPHost != "" {
		app.mailer = &notify.SMTPMailer{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			User:     app.cfg.SMTPUser,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
		}
	} else {
		app.logger.Warn("SMTP_HOST not set; emails will be logged, not sent")
		app.mailer = notify.LogMailer{}
	}

	switch app.cfg.SMSProvider {
	case "sns":
		sender, err := notify.NewSNSSender(ctx, app.cfg.AWSRegion, app.cfg.SMSSenderID)
		if err != nil {
			return fmt.Errorf("failed to initialize sms: %w", err)
		}
		app.sms = sender
	default:
		app.logger.Warn("SMS_PROVIDER=log; text messages will be logged, not sent")
		app.sms = notify.LogSMSSender{}
	}
	return nil
}

func (app *Application) initServices() {
	cfg := app.cfg

	app.tokenService = &service.TokenService{Store: app.db}
	app.permissionService = &service.PermissionService{Store: app.db}
	app.sessionService = &service.SessionService{
		Signer: app.keys.Signer,
		Issuer: cfg.SessionIssuer,
		TTL:    cfg.SessionTTL,
	}
	app.inviteService = &service.InviteService{
		Store:                 app.db,
		Permissions:           app.permissionService,
		TTL:                   cfg.InviteTTL,
		LinkGrantsAnyIdentity: cfg.LinkGrantsAnyIdentity,
	}
	app.magicLinkService = &service.MagicLinkService{
		Tokens:  app.tokenService,
		Invites: app.inviteService,
		Mailer:  app.mailer,
		BaseURL: cfg.PublicBaseURL,
		TTL:     cfg.MagicLinkTTL,
	}
	app.organizationService = &service.OrganizationService{Store: app.db, Permissions: app.permissionService}
	app.eventService = &service.EventService{Store: app.db, Permissions: app.permissionService}
	app.signupService = &service.SignupService{Store: app.db, Permissions: app.permissionService}
	app.volunteerService = &service.VolunteerService{
		Store:   app.db,
		Tokens:  app.tokenService,
		SMS:     app.sms,
		BaseURL: cfg.PublicBaseURL,
		TTL:     cfg.ManageLinkTTL,
	}
	app.reminderService = &service.ReminderService{
		Store:   app.db,
		SMS:     app.sms,
		BaseURL: cfg.PublicBaseURL,
		Window:  cfg.ReminderWindow,
		Workers: cfg.ReminderWorkers,
	}

	if cfg.LoginEnabled() {
		app.loginService = service.NewLoginService(
			cfg.OIDCIssuer,
			cfg.OIDCClientID,
			cfg.OIDCClientSecret,
			cfg.PublicBaseURL+"/auth/callback",
		)
		app.logger.Info("identity provider login enabled", "issuer", cfg.OIDCIssuer)
	}

	// Without a service account every passkey call fails upstream, which
	// callers see as a 500.
	tokens := service.NewServiceTokenCache(cfg.apiURL()+"/oauth/v2/token", cfg.ServiceClientID, cfg.ServiceClientSecret, cfg.ServiceScopes)
	app.passkeyService = &service.PasskeyService{IdP: zitadel.NewClient(cfg.apiURL(), tokens)}
	if !cfg.PasskeysEnabled() {
		app.logger.Warn("identity provider service account not configured; passkey management unavailable")
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.tokenService,
		app.inviteService,
		app.logger,
		cfg.HousekeepingInterval,
		cfg.TokenRetention,
	)
}

func (app *Application) initHTTP() {
	cfg := app.cfg

	router := httpapi.NewRouter(httpapi.Config{
		BuildVersion:  BuildVersion,
		BaseURL:       cfg.PublicBaseURL,
		SessionCookie: cfg.SessionCookie,
		AppRedirect:   cfg.AppRedirectPath,
		ErrorRedirect: cfg.ErrorRedirectPath,
		CronSecret:    cfg.CronSecret,
		CORSOrigins:   cfg.CORSOrigins,
		Limits: httpapi.Limits{
			Strict:   httpx.PerMinute(cfg.RateLimitStrict, httpx.StrictLimit),
			Moderate: httpx.PerMinute(cfg.RateLimitModerate, httpx.ModerateLimit),
			Lenient:  httpx.PerMinute(cfg.RateLimitLenient, httpx.LenientLimit),
			Public:   httpx.PerMinute(cfg.RateLimitPublic, httpx.PublicLimit),
		},
	}, app.keys.KeySet, app.keys.Verifier, app.db, app.logger)

	router.SessionService = app.sessionService
	router.MagicLinkService = app.magicLinkService
	router.LoginService = app.loginService
	router.InviteService = app.inviteService
	router.OrganizationService = app.organizationService
	router.EventService = app.eventService
	router.SignupService = app.signupService
	router.VolunteerService = app.volunteerService
	router.PasskeyService = app.passkeyService
	router.ReminderService = app.reminderService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
