package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/alerts"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/api"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/app"
	iauth "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/auth"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/logger"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/mail"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auzzie-server", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("bootstrap")

	if strings.TrimSpace(cfg.Auth.JWT.Secret) == "" {
		return errors.New("auth.jwt.secret must be configured (AUZZIE_AUTH_JWT_SECRET)")
	}

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db, log)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := database.EnsureAdminUser(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("ensure admin user: %w", err)
		}
	}

	jwtService, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return fmt.Errorf("initialise jwt service: %w", err)
	}

	loginService, err := iauth.NewLoginService(db, jwtService)
	if err != nil {
		return fmt.Errorf("initialise login service: %w", err)
	}

	var mailer mail.Mailer
	if cfg.Email.SMTP.Enabled {
		mailer, err = mail.NewSMTPMailer(cfg.Email.SMTPSettings())
		if err != nil {
			return fmt.Errorf("initialise mailer: %w", err)
		}
	} else {
		log.Warn("smtp disabled; outbound email will be skipped")
	}

	hub := realtime.NewHub()

	invoiceSvc, err := services.NewInvoiceService(db)
	if err != nil {
		return fmt.Errorf("initialise invoice service: %w", err)
	}
	customerSvc, err := services.NewCustomerService(db)
	if err != nil {
		return fmt.Errorf("initialise customer service: %w", err)
	}
	followUpSvc, err := services.NewFollowUpService(db)
	if err != nil {
		return fmt.Errorf("initialise follow-up service: %w", err)
	}
	notificationSvc, err := services.NewNotificationService(db, hub)
	if err != nil {
		return fmt.Errorf("initialise notification service: %w", err)
	}
	messageSvc, err := services.NewMessageService(db)
	if err != nil {
		return fmt.Errorf("initialise message service: %w", err)
	}
	fleetSvc, err := services.NewFleetService(db)
	if err != nil {
		return fmt.Errorf("initialise fleet service: %w", err)
	}
	bookingSvc, err := services.NewBookingService(db, invoiceSvc, customerSvc, followUpSvc, notificationSvc, mailer, services.BookingMailSettings{
		From:         cfg.Email.From,
		ReplyTo:      cfg.Email.ReplyTo,
		AdminAddress: cfg.Email.AdminAddress,
	})
	if err != nil {
		return fmt.Errorf("initialise booking service: %w", err)
	}

	aggregator, err := alerts.NewAggregator(db, alerts.NewHubSink(hub),
		alerts.WithInterval(cfg.Alerts.PollInterval),
		alerts.WithSourceTimeout(cfg.Alerts.SourceTimeout),
		alerts.WithPageSizes(cfg.Alerts.BookingPageSize, cfg.Alerts.MessagePageSize),
	)
	if err != nil {
		return fmt.Errorf("initialise alert aggregator: %w", err)
	}
	if err := aggregator.Start(); err != nil {
		return fmt.Errorf("start alert aggregator: %w", err)
	}
	defer func() { <-aggregator.Stop().Done() }()

	reminders, err := alerts.NewReminderPoller(db, hub,
		alerts.WithReminderInterval(cfg.Alerts.ReminderInterval),
	)
	if err != nil {
		return fmt.Errorf("initialise reminder poller: %w", err)
	}
	if err := reminders.Start(); err != nil {
		return fmt.Errorf("start reminder poller: %w", err)
	}
	defer func() { <-reminders.Stop().Done() }()

	router, err := api.NewRouter(api.Deps{
		JWT:           jwtService,
		Login:         loginService,
		Hub:           hub,
		Aggregator:    aggregator,
		Bookings:      bookingSvc,
		Invoices:      invoiceSvc,
		Notifications: notificationSvc,
		Messages:      messageSvc,
		Customers:     customerSvc,
		FollowUps:     followUpSvc,
		Fleet:         fleetSvc,
	})
	if err != nil {
		return fmt.Errorf("build api router: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return app.LoadConfig()
	default:
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return app.LoadConfig(path)
			}
			return app.LoadConfig(filepath.Dir(path))
		}
		return nil, fmt.Errorf("config path %q: %w", path, err)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database.DatabaseSettings())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(db); err != nil {
		return nil, fmt.Errorf("prepare database: %w", err)
	}

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("database handle unavailable on shutdown", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("database close failed", zap.Error(err))
	}
}
