package main

import (
	"context"
	"log"
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/config"
	"github.com/calgorix23-creator/AttendEase-v2/internal/auth"
	"github.com/calgorix23-creator/AttendEase-v2/internal/consumer"
	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/handler"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/calgorix23-creator/AttendEase-v2/internal/snapshot"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/database"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	db := database.NewPostgresDB(cfg.DSN(), cfg.AutoMigrate)

	// RabbitMQ publisher: domain events for other services
	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("RABBITMQ_URL not set, domain events are disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Services
	policy := engine.Policy{Location: loc, Notice: cfg.CancellationNotice}
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	attendanceSvc := service.NewAttendanceService(sessionRepo, attendanceRepo, userRepo, ledgerRepo, policy, publisher, nil)
	sessionSvc := service.NewSessionService(sessionRepo, attendanceRepo, userRepo, ledgerRepo, cfg.RefundOnSessionDelete, publisher, nil)
	walletSvc := service.NewWalletService(userRepo, ledgerRepo, publisher, nil)
	purchaseSvc := service.NewPurchaseService(paymentRepo, packageRepo, userRepo, ledgerRepo, cfg.PaymentDelay, publisher, nil)
	packageSvc := service.NewPackageService(packageRepo)
	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, issuer)
	snapshots := snapshot.NewStore(db)

	if cfg.SeedFile != "" {
		if err := seed(ctx, snapshots, cfg.SeedFile); err != nil {
			log.Fatalf("failed to seed from %s: %v", cfg.SeedFile, err)
		}
	}
	if err := packageSvc.EnsureDefaults(ctx); err != nil {
		log.Fatalf("failed to seed packages: %v", err)
	}

	// RabbitMQ consumer: payments confirmed by the gateway
	if cfg.RabbitURL != "" {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.PaymentQueue, rabbitmq.PaymentBinding)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewPaymentConsumer(purchaseSvc).Start(ctx, msgs)
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "attendease"})
	})

	authenticate := middleware.Authenticate(issuer)
	userHandler := handler.NewUserHandler(userSvc, authSvc)

	api := e.Group("/api/v1")
	userHandler.RegisterPublicRoutes(api)

	secured := api.Group("", authenticate)
	userHandler.RegisterRoutes(secured)
	handler.NewSessionHandler(sessionSvc, attendanceSvc).RegisterRoutes(secured)
	handler.NewWalletHandler(walletSvc, purchaseSvc).RegisterRoutes(secured)
	handler.NewPackageHandler(packageSvc).RegisterRoutes(secured)

	handler.NewSnapshotHandler(snapshots).RegisterRoutes(e.Group("/api", authenticate))

	log.Printf("AttendEase starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

// seed restores the document at path into an empty database.
func seed(ctx context.Context, store *snapshot.Store, path string) error {
	empty, err := store.Empty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		log.Printf("Database already has data, skipping seed file %s", path)
		return nil
	}

	state, err := snapshot.NewFileStore(path).Load()
	if err != nil {
		return err
	}
	return store.Restore(ctx, state)
}
