package api

import (
	"errors"
	"net/http"
	"strings"

	"sales_dashboard/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for sales queries.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
	metrics      *Metrics
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger, metrics *Metrics) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
		metrics:      metrics,
	}
}

// handleGetSales handles the GET /sales endpoint.
func (h *salesHandler) handleGetSales(ctx *gin.Context) {
	params := queryParams(ctx)

	result, err := h.salesService.Query(params)
	if err != nil {
		var rangeErr *sales.InvalidRangeError
		if errors.As(err, &rangeErr) {
			if h.metrics != nil {
				h.metrics.RangeRejections.Inc()
			}
			ctx.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error()})
			return
		}

		h.logger.Error("failed to query sales",
			zap.Any("params", params),
			zap.String("request_id", ctx.GetString(requestIDKey)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.metrics != nil {
		h.metrics.MatchedRows.Observe(float64(result.Total))
	}
	ctx.JSON(http.StatusOK, result)
}

// handleGetFilterOptions handles the GET /sales/filters endpoint.
func (h *salesHandler) handleGetFilterOptions(ctx *gin.Context) {
	options, err := h.salesService.FilterOptions()
	if err != nil {
		h.logger.Error("failed to read filter options", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, options)
}

// handleHealth reports whether a dataset is loaded.
func (h *salesHandler) handleHealth(ctx *gin.Context) {
	stats, err := h.salesService.Stats()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "records": stats.Records, "loadedAt": stats.LoadedAt})
}

// queryParams flattens the query string; repeated keys are joined with commas.
func queryParams(ctx *gin.Context) map[string]string {
	values := ctx.Request.URL.Query()
	params := make(map[string]string, len(values))
	for k, v := range values {
		params[k] = strings.Join(v, ",")
	}
	return params
}
