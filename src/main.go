package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-UniClub/docs"
	"Backend-UniClub/src/config"
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/database"
	"Backend-UniClub/src/jobs"
	"Backend-UniClub/src/logger"
	"Backend-UniClub/src/metrics"
	"Backend-UniClub/src/middleware"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/routes"
	"Backend-UniClub/src/seeder"
	"Backend-UniClub/src/services/clubs"
	"Backend-UniClub/src/services/events"
	"Backend-UniClub/src/services/identity"
	"Backend-UniClub/src/services/news"
	"Backend-UniClub/src/services/opportunities"
	"Backend-UniClub/src/services/stats"
	"Backend-UniClub/src/services/uploads"
	"Backend-UniClub/src/services/users"
	"Backend-UniClub/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// @title       UniClub API
// @version     1.0
// @description Bilingual university club backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := database.ConnectMongoDB(ctx, cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	if err := database.EnsureIndexes(ctx, db, logger); err != nil {
		return err
	}

	rdb, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	asynqClient := database.NewAsynqClient(cfg.Redis)
	if asynqClient != nil {
		defer asynqClient.Close()
	}
	scheduler := jobs.NewScheduler(asynqClient, database.RedisClientOpt(cfg.Redis), logger)

	m := metrics.New("uniclub", prometheus.DefaultRegisterer)

	uploader, err := uploads.New(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	uploader = uploads.Instrument(uploader, m, logger)

	cache := utils.NewCache(rdb, cfg.Timeouts.Cache, logger)

	eventRepo := repositories.NewEventRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	oppRepo := repositories.NewOpportunityRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	userRepo := repositories.NewUserRepository(db)

	if _, err := seeder.SeedOpportunities(ctx, oppRepo, logger); err != nil {
		logger.Warn("opportunity seed failed", zap.Error(err))
	}

	statsService := stats.NewService(stats.Deps{
		Users:   userRepo,
		Events:  eventRepo,
		Clubs:   clubRepo,
		Site:    cfg.Site,
		Cache:   cache,
		Metrics: m,
		Timeout: cfg.Timeouts.DB,
		Logger:  logger,
	})
	eventService := events.NewService(events.Deps{
		Events:     eventRepo,
		Users:      userRepo,
		Transactor: database.NewMongoTransactor(client, logger),
		Uploader:   uploader,
		Scheduler:  scheduler,
		Stats:      statsService,
		Cache:      cache,
		Metrics:    m,
		Site:       cfg.Site,
		Folder:     cfg.Storage.Folder,
		Timeout:    cfg.Timeouts.DB,
		Logger:     logger,
	})
	newsService := news.NewService(news.Deps{
		News:     newsRepo,
		Uploader: uploader,
		Cache:    cache,
		Folder:   cfg.Storage.Folder,
		Location: cfg.Site.Location(),
		Timeout:  cfg.Timeouts.DB,
		Logger:   logger,
	})
	oppService := opportunities.NewService(opportunities.Deps{
		Opportunities: oppRepo,
		Uploader:      uploader,
		Cache:         cache,
		Folder:        cfg.Storage.Folder,
		Timeout:       cfg.Timeouts.DB,
		Logger:        logger,
	})
	clubService := clubs.NewService(clubs.Deps{
		Clubs:    clubRepo,
		Uploader: uploader,
		Cache:    cache,
		Site:     cfg.Site,
		Folder:   cfg.Storage.Folder,
		Timeout:  cfg.Timeouts.DB,
		Logger:   logger,
	})
	userService := users.NewService(users.Deps{
		Users:   userRepo,
		Events:  eventRepo,
		Stats:   statsService,
		Site:    cfg.Site,
		Timeout: cfg.Timeouts.DB,
		Logger:  logger,
	})

	verifier, err := utils.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return err
	}
	auth := middleware.NewAuth(verifier, identity.NewResolver(userRepo, cfg.Timeouts.DB, logger), logger)

	checks := map[string]controllers.Check{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	app := newApp(cfg, logger, m)
	if cfg.Storage.Driver == "local" {
		app.Static(cfg.Storage.LocalURL, cfg.Storage.LocalPath)
	}
	routes.InitRoutes(app, routes.Handlers{
		Events:        controllers.NewEventController(eventService, logger),
		News:          controllers.NewNewsController(newsService, logger),
		Opportunities: controllers.NewOpportunityController(oppService, logger),
		Clubs:         controllers.NewClubController(clubService, statsService, logger),
		Users:         controllers.NewUserController(userService, logger),
		Admin:         controllers.NewAdminController(userService, logger),
		Health:        controllers.NewHealthController(checks, logger),
	}, auth)

	var worker *asynq.Server
	if cfg.Redis.Enabled() {
		worker = jobs.NewServer(database.RedisClientOpt(cfg.Redis), logger)
		if err := worker.Start(jobs.NewServeMux(eventRepo, logger, eventService.OnCompleted)); err != nil {
			return err
		}
		defer worker.Shutdown()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

func newApp(cfg config.Config, logger *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "uniclub",
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: utils.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Metrics(m))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}
