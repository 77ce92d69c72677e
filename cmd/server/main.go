package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-be/internal/cart"
	"catalog-be/internal/config"
	"catalog-be/internal/db"
	"catalog-be/internal/handler"
	"catalog-be/internal/logger"
	"catalog-be/internal/metrics"
	"catalog-be/internal/middleware"
	"catalog-be/internal/order"
	"catalog-be/internal/product"
	"catalog-be/internal/stats"
	"catalog-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Options{Service: "catalog-api", Env: cfg.AppEnv, Level: cfg.LogLevel})
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.InitDB(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(3 * time.Minute)
	go limiter.Run(ctx, time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(database, cfg, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// setupRouter wires repositories, services and the HTTP middleware chain.
func setupRouter(database *sql.DB, cfg *config.Config, limiter *middleware.RateLimiter) http.Handler {
	userRepo := user.NewRepository(database)
	productRepo := product.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	orderRepo := order.NewRepository(database)

	checkouts := &metrics.Checkout{}

	h := handler.New(
		user.NewService(userRepo),
		product.NewService(productRepo),
		cart.NewService(cartRepo, userRepo, productRepo),
		order.NewService(orderRepo, cartRepo, userRepo, db.NewTransactor(database), checkouts),
		stats.NewService(userRepo, productRepo, orderRepo, checkouts),
	)

	router := handler.NewRouter(h, handler.RouterConfig{AllowOrigins: cfg.CORSOrigins})

	var next http.Handler = router
	next = limiter.Middleware(next)
	next = logger.LoggingMiddleware(next)
	next = logger.RequestIDMiddleware(next)
	return next
}
