package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jogofacil/core/cache"
	"jogofacil/core/config"
	"jogofacil/core/database"
	"jogofacil/core/logger"
	"jogofacil/core/middleware"
	"jogofacil/core/queue"
	"jogofacil/core/storage"
	"jogofacil/modules/auth"
	"jogofacil/modules/field"
	"jogofacil/modules/notification"
	"jogofacil/modules/slot"
	"jogofacil/modules/team"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// Run wires configuration, infrastructure and every module, then serves
// HTTP until interrupted. The asynq worker runs in-process alongside the
// API server.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Server:Run:Start", "env", cfg.Server.Env, "port", cfg.Server.Port)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	publisher, err := queue.NewPublisher(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Warn("Server:Run:RabbitMQ:Unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	presigner := storage.NewPresigner(cfg.S3)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()
	workerMux := asynq.NewServeMux()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	mw := middleware.NewMiddleware()

	auth.Init(api, db, redisCache, mw)
	field.Init(api, db, presigner, mw)
	dispatcher := notification.Init(api, db, redisCache, publisher, mw)
	slotSvc := slot.Init(api, db, dispatcher, presigner, taskClient, workerMux, mw)
	team.Init(api, db, slotSvc, dispatcher, mw)

	worker := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	go func() {
		if err := worker.Run(workerMux); err != nil {
			logger.Error("Server:Worker:Error", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Run:Shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	worker.Shutdown()
	return e.Shutdown(ctx)
}
