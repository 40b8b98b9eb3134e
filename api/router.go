package api

import (
	"net/http"

	"sales_dashboard/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the middleware chain built by InitRoutes.
type Options struct {
	CORSAllowOrigin string
	RateLimitRPS    float64
	RateLimitBurst  int
	Metrics         *Metrics
}

// InitRoutes registers the sales query endpoints on the given Gin engine.
// Sales routes are served both at the root and under /api for the dashboard frontend.
func InitRoutes(e *gin.Engine, salesService *sales.Service, logger *zap.Logger, opts Options) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e.Use(gin.Recovery(), requestID(), accessLog(logger, opts.Metrics))
	if opts.CORSAllowOrigin != "" {
		e.Use(cors(opts.CORSAllowOrigin))
	}
	if opts.RateLimitRPS > 0 {
		e.Use(rateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	salesHandler := NewSalesHandler(salesService, logger, opts.Metrics)

	for _, g := range []*gin.RouterGroup{e.Group("/sales"), e.Group("/api/sales")} {
		g.GET("", salesHandler.handleGetSales)
		g.GET("/filters", salesHandler.handleGetFilterOptions)
	}

	e.GET("/health", salesHandler.handleHealth)
	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	if opts.Metrics != nil {
		e.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
}
