package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"farm-backend/internal/config"
	"farm-backend/internal/database/minio"
	"farm-backend/internal/database/postgres"
	"farm-backend/internal/database/redis"
	"farm-backend/internal/event"
	"farm-backend/internal/handlers"
	"farm-backend/internal/repository"
	"farm-backend/internal/services"
	"farm-backend/internal/worker"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/var", "log", "farm_backend")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Printf("error connect to redis, price caching disabled: %s", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Printf("error connect to minio, photo storage disabled: %s", err)
		minioClient = nil
	}

	var publisher *event.NotificationPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("error connect to rabbitmq, push events disabled: %s", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewNotificationPublisher(rabbitConn)
	}

	// Repositories
	farmRepo := repository.NewFarmRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)
	climateRepo := repository.NewClimateRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	marketRepo := repository.NewMarketRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	agronomyRepo := repository.NewAgronomyRepository(db)

	// Services
	farmService := services.NewFarmService(farmRepo)
	climateService := services.NewClimateService(farmRepo, weatherRepo, climateRepo, notificationRepo, publisher)
	insuranceService := services.NewInsuranceService(farmRepo, policyRepo, claimRepo, weatherRepo, climateRepo, notificationRepo, publisher)
	marketService := services.NewMarketService(marketRepo, notificationRepo, redisClient, publisher)
	journalService := services.NewJournalService(farmRepo, journalRepo, minioClient)
	chatService := services.NewChatService(agronomyRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	expirationService := services.NewPolicyExpirationService(policyRepo, farmRepo, notificationRepo, publisher)

	// Daily sweep for policies past their end date
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := worker.NewScheduler("daily-maintenance", 24*time.Hour)
	scheduler.AddJob(worker.Job{
		Name: "policy-expiration-sweep",
		Run: func(ctx context.Context) error {
			_, err := expirationService.Run(ctx)
			return err
		},
	})
	go scheduler.Run(ctx)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Farm backend is healthy")
	})

	handlers.NewFarmHandler(farmService).Register(app)
	handlers.NewClimateHandler(climateService).Register(app)
	handlers.NewInsuranceHandler(insuranceService).Register(app)
	handlers.NewMarketHandler(marketService).Register(app)
	handlers.NewJournalHandler(journalService).Register(app)
	handlers.NewAgronomyHandler(chatService).Register(app)
	handlers.NewNotificationHandler(notificationService).Register(app)

	log.Printf("Starting farm backend on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
