package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/api"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/audit"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard-api/internal/infrastructure/memory"
	"github.com/taskboard/taskboard-api/internal/infrastructure/queue"
	"github.com/taskboard/taskboard-api/pkg/logger"
)

// @title        Taskboard API
// @version      1.0
// @description  Task-management backend: users, tasks, filtering, pagination, login.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The Record Store owns both collections for the life of the process.
	store, err := memory.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed store")
	}
	taskRepo := memory.NewTaskRepo(store)

	// Optional Redis: idempotency keys survive restarts when configured.
	var rdb *goredis.Client
	var idem ports.IdempotencyStore = store.Idempotency()
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
	}

	// Optional Mongo: audit trail goes to a collection instead of the log.
	var mongoDB *gomongo.Database
	var recorder ports.AuditRecorder = audit.NewLogRecorder(log)
	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		mongoDB = db
		recorder = mongo.NewAuditRepository(db)
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, recorder, log)
	dispatcher.Start(ctx)

	taskService := service.NewTaskService(taskRepo, idem, dispatcher, log)
	userService := service.NewUserService(store)
	authService := service.NewAuthService(store, cfg.JWTSecret, 24*time.Hour)

	e := api.NewRouter(api.Deps{
		Tasks:       taskService,
		Users:       userService,
		Auth:        authService,
		JWTSecret:   cfg.JWTSecret,
		EnforceRBAC: cfg.EnforceRBAC,
		Logger:      log,
		Mongo:       mongoDB,
		Redis:       rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Bool("enforce_rbac", cfg.EnforceRBAC).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
