package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/swapmart/auth-service/internal/audit"
	"github.com/swapmart/auth-service/internal/config"
	"github.com/swapmart/auth-service/internal/events"
	"github.com/swapmart/auth-service/internal/httpserver"
	"github.com/swapmart/auth-service/internal/mailer"
	"github.com/swapmart/auth-service/internal/models"
	"github.com/swapmart/auth-service/internal/repo"
	"github.com/swapmart/auth-service/internal/service"
	pkgdb "github.com/swapmart/auth-service/pkg/db"
	"github.com/swapmart/auth-service/pkg/logging"
	loggingmw "github.com/swapmart/auth-service/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.VerificationToken{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	svc := &service.AuthService{
		Users:         &repo.GormUsers{DB: db},
		Verifications: &repo.GormVerifications{DB: db},
		Mailer: &mailer.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.MailSender,
			Password: cfg.MailPassword,
		},
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		AppURL:        cfg.AppURL,
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		svc.Events = producer
	}

	if cfg.ESURL != "" {
		indexer, err := audit.NewIndexer(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("audit indexer: %v", err)
		}
		svc.Audit = indexer
	}

	e := echo.New()
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
		JWTSecret:   cfg.JWTAccessSecret,
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
