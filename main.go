// File: sapdoc/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"sapdoc/config"
	"sapdoc/cron"
	"sapdoc/database"
	appointmentRepo "sapdoc/database/repository/appointment"
	"sapdoc/handlers"
	"sapdoc/metrics"
	"sapdoc/middleware"
	"sapdoc/routes"
	"sapdoc/services/assistant"
	"sapdoc/services/reminder"
	"sapdoc/services/scheduling"
	"sapdoc/utils"
)

// openStore connects the booking store selected by DB_DRIVER. The returned
// func releases the connection.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (appointmentRepo.AppointmentRepository, func(), error) {
	if cfg.DBDriver == config.DriverMongo {
		client, err := database.ConnectMongo(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return appointmentRepo.NewMongoAppointmentRepo(client, cfg.MongoDatabase), closeFn, nil
	}

	db, err := database.OpenGorm(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return appointmentRepo.NewGormAppointmentRepo(db), func() { _ = database.CloseGorm(db) }, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	if err := utils.InitializeLogger(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Booking store.
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to open booking store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeStore()
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("main: failed to prepare booking store", zap.Error(err))
	}

	grid, err := scheduling.NewGrid(cfg.SlotTimes)
	if err != nil {
		logger.Fatal("main: invalid slot grid", zap.Error(err))
	}

	checks := map[string]utils.Pinger{"store": repo}

	// Redis: assistant history on the cache DB, reminders on their own DB.
	var history assistant.HistoryStore
	if cfg.RedisAddr != "" {
		cache, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Warn("main: redis unavailable, assistant history disabled", zap.Error(err))
		} else {
			defer cache.Close()
			history = assistant.NewRedisContextStore(cache, cfg.AssistantContextTTL)
			checks["redis"] = utils.PingerFunc(func(ctx context.Context) error {
				return cache.Ping(ctx).Err()
			})
		}
	}

	var reminders scheduling.ReminderScheduler
	var worker *asynq.Server
	if cfg.RemindersEnabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisReminderDB,
		}
		sched := reminder.NewAsynqScheduler(redisOpt, cfg.ReminderLead, cfg.Location(), logger)
		defer sched.Close()
		reminders = sched
		worker = cron.InitReminderWorker(redisOpt, logger)
	}

	schedulingService := scheduling.NewSchedulingService(repo, scheduling.Options{
		Grid:         grid,
		Location:     cfg.Location(),
		MaxRangeDays: cfg.MaxRangeDays,
		Reminders:    reminders,
		Logger:       logger,
	})

	if cfg.SeedSampleData {
		if err := schedulingService.SeedSampleData(ctx); err != nil {
			logger.Warn("main: failed to seed sample data", zap.Error(err))
		}
	}

	// Assistant collaborators.
	var llm assistant.TextGenerator
	if cfg.AssistantMode == config.AssistantGemini {
		gemini, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("main: failed to initialize gemini client", zap.Error(err))
		}
		defer gemini.Close()
		llm = gemini
	}

	var transcriber assistant.Transcriber
	if cfg.SpeechEnabled {
		stt, err := assistant.NewGoogleTranscriber(ctx, cfg.GoogleServiceAccountFile)
		if err != nil {
			logger.Warn("main: speech disabled", zap.Error(err))
		} else {
			defer stt.Close()
			transcriber = stt
		}
	}

	assistantService := assistant.NewService(schedulingService, llm, history, logger)

	appointmentHandler := handlers.NewAppointmentHandler(schedulingService, logger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, transcriber, logger)
	handlerBundle := handlers.NewHandlerBundle(appointmentHandler, assistantHandler)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)
	utils.StartHealthMonitor(ctx, checks)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
