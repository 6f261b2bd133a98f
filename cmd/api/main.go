package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/medibook-api/internal/config"
	"github.com/medibook/medibook-api/internal/email"
	"github.com/medibook/medibook-api/internal/handler"
	adminHandler "github.com/medibook/medibook-api/internal/handler/admin"
	appointmentHandler "github.com/medibook/medibook-api/internal/handler/appointment"
	authHandler "github.com/medibook/medibook-api/internal/handler/auth"
	doctorHandler "github.com/medibook/medibook-api/internal/handler/doctor"
	userHandler "github.com/medibook/medibook-api/internal/handler/user"
	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/notifier"
	"github.com/medibook/medibook-api/internal/repository/mongodb"
	"github.com/medibook/medibook-api/internal/router"
	authService "github.com/medibook/medibook-api/internal/service/auth"
	bookingService "github.com/medibook/medibook-api/internal/service/booking"
	dashboardService "github.com/medibook/medibook-api/internal/service/dashboard"
	doctorService "github.com/medibook/medibook-api/internal/service/doctor"
	userService "github.com/medibook/medibook-api/internal/service/user"
	"github.com/medibook/medibook-api/internal/upload"
	"github.com/medibook/medibook-api/pkg/auth"
	"github.com/medibook/medibook-api/pkg/logger"
	"github.com/medibook/medibook-api/pkg/messaging"
	"github.com/medibook/medibook-api/pkg/messaging/redis"
	"github.com/medibook/medibook-api/pkg/metrics"
	"github.com/medibook/medibook-api/pkg/payment"
	"github.com/medibook/medibook-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	// Initialize database
	db, err := mongodb.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Client().Disconnect(context.Background())

	// Initialize repositories
	doctorRepo := mongodb.NewDoctorRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)

	// Initialize message broker; booking events are dropped when Redis is
	// disabled
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redis.NewRedisBroker(cfg.Redis.URL, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	// Initialize services
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	gateway := payment.NewSimulatedGateway(nil)

	authSvc := authService.NewService(userRepo, doctorRepo, jwtSvc, hasher, authService.AdminCredentials{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	})
	doctorSvc := doctorService.NewService(doctorRepo, hasher)
	userSvc := userService.NewService(userRepo)
	bookingSvc := bookingService.NewService(doctorRepo, userRepo, appointmentRepo, gateway, broker)
	dashboardSvc := dashboardService.NewService(doctorRepo, userRepo, appointmentRepo)

	// Initialize upload store
	uploads, err := upload.NewLocalStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload store")
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(userSvc, uploads)
	doctorH := doctorHandler.NewHandler(doctorSvc, dashboardSvc)
	adminH := adminHandler.NewHandler(doctorSvc, dashboardSvc, uploads)
	appointmentH := appointmentHandler.NewHandler(bookingSvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		userH,
		doctorH,
		adminH,
		appointmentH,
		h,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "medibook",
			MediaDir:       cfg.Upload.Dir,
			MediaBaseURL:   cfg.Upload.BaseURL,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	// Start notification worker when a broker is configured
	if broker != nil {
		var emailSvc email.Service
		if cfg.SMTP.Host != "" {
			emailSvc = email.NewSMTPService(email.SMTPConfig{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
				From:     cfg.SMTP.From,
			})
		} else {
			emailSvc = email.NewNoopService()
		}

		appMetrics := metrics.NewMetrics("medibook", "notifier")
		worker := notifier.NewWorker(broker, emailSvc, appLogger, appMetrics)
		go func() {
			if err := worker.Start(workerCtx); err != nil {
				appLogger.Error(err, "notification worker stopped")
			}
		}()
	}

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
