package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sales_dashboard/api"
	"sales_dashboard/internal/config"
	"sales_dashboard/internal/ingest"
	"sales_dashboard/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("error building logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The dataset must be in place before the server accepts requests.
	loader := ingest.NewLoader(cfg.FetchTimeout, logger)
	raw, err := loader.Load(ctx, cfg.DataSource)
	loader.Close()
	if err != nil {
		logger.Fatal("failed to load sales data", zap.String("source", cfg.DataSource), zap.Error(err))
	}

	salesService := sales.NewService(sales.NewLocalStorage(), logger)
	snap, err := salesService.Load(raw)
	if err != nil {
		logger.Fatal("failed to initialize sales service", zap.Error(err))
	}

	metrics := api.NewMetrics()
	metrics.RecordsLoaded.Set(float64(len(snap.Sales)))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	api.InitRoutes(r, salesService, logger, api.Options{
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
		Metrics:         metrics,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		logger.Info("sales api listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("error trying to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
