package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales_dashboard/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func initRoutesTests(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zaptest.NewLogger(t)
	svc := sales.NewService(sales.NewLocalStorage(), logger)
	_, err := svc.Load([]map[string]string{
		{"customerName": "Alice Smith", "phoneNumber": "555-1234", "customerRegion": "West", "age": "34", "date": "2023-05-01", "tags": "a|b", "paymentMethod": "UPI"},
		{"customerName": "bob", "phoneNumber": "555-0000", "customerRegion": "East", "age": "10", "date": "2023-06-01", "tags": "b", "paymentMethod": "Cash"},
		{"customerName": "Carol", "phoneNumber": "555-4321", "tags": "c", "quantity": "4"},
	})
	require.NoError(t, err)

	InitRoutes(router, svc, logger, opts)
	return router
}

func doGet(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestSalesQueries_FullFlow exercises the query endpoints end to end.
func TestSalesQueries_FullFlow(t *testing.T) {
	router := initRoutesTests(t, Options{Metrics: NewMetrics()})

	t.Run("GET_Sales_Search", func(t *testing.T) {
		w := doGet(router, "/sales?search=alice")
		assert.Equal(t, http.StatusOK, w.Code)

		var res sales.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Data, 1)
		assert.Equal(t, "Alice Smith", res.Data[0].CustomerName)
		assert.Equal(t, "West", res.Data[0].CustomerRegion)
		require.NotNil(t, res.Data[0].Date)
		assert.Equal(t, "2023-05-01", *res.Data[0].Date)
		assert.Equal(t, []string{"a", "b"}, res.Data[0].Tags)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("GET_Sales_NoMatch", func(t *testing.T) {
		w := doGet(router, "/sales?search=999")
		assert.Equal(t, http.StatusOK, w.Code)

		var res sales.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Empty(t, res.Data)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 0, res.TotalPages)
		assert.False(t, res.HasNext)
		assert.False(t, res.HasPrev)
	})

	t.Run("GET_Sales_TagsAndSort", func(t *testing.T) {
		w := doGet(router, "/api/sales?tags=b&sortBy=customerName")
		assert.Equal(t, http.StatusOK, w.Code)

		var res sales.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Data, 2)
		assert.Equal(t, "Alice Smith", res.Data[0].CustomerName)
		assert.Equal(t, "bob", res.Data[1].CustomerName)
		assert.Equal(t, "customerName", res.SortBy)
		assert.Equal(t, "asc", res.SortDir)
		assert.Equal(t, []string{"b"}, res.Filters.Tags)
	})

	t.Run("GET_Sales_RepeatedKeysJoin", func(t *testing.T) {
		w := doGet(router, "/sales?region=West&region=East")
		assert.Equal(t, http.StatusOK, w.Code)

		var res sales.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 2, res.Total)
	})

	t.Run("GET_Sales_Pagination", func(t *testing.T) {
		w := doGet(router, "/sales?pageSize=2&page=9")
		assert.Equal(t, http.StatusOK, w.Code)

		var res sales.PageResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 2, res.TotalPages)
		assert.Len(t, res.Data, 1)
		assert.True(t, res.HasPrev)
	})

	t.Run("GET_Sales_InvalidAgeRange", func(t *testing.T) {
		w := doGet(router, "/sales?ageMin=50&ageMax=30")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "age range")
	})

	t.Run("GET_Sales_InvalidDateRange", func(t *testing.T) {
		w := doGet(router, "/sales?dateFrom=2024-06-01&dateTo=2024-01-01")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET_FilterOptions", func(t *testing.T) {
		w := doGet(router, "/sales/filters")
		assert.Equal(t, http.StatusOK, w.Code)

		var opts sales.FilterOptions
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
		assert.Equal(t, []string{"East", "West"}, opts.Regions)
		assert.Equal(t, []string{"a", "b", "c"}, opts.Tags)
		assert.Equal(t, []string{"Cash", "UPI"}, opts.PaymentMethods)
	})

	t.Run("GET_Health", func(t *testing.T) {
		w := doGet(router, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"records":3`)
	})

	t.Run("GET_Metrics", func(t *testing.T) {
		w := doGet(router, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "sales_http_requests_total")
		assert.Contains(t, w.Body.String(), "sales_query_invalid_range_total 2")
	})
}

func TestSalesQueries_NotLoaded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := zaptest.NewLogger(t)
	InitRoutes(router, sales.NewService(sales.NewLocalStorage(), logger), logger, Options{})

	w := doGet(router, "/sales")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = doGet(router, "/sales/filters")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doGet(router, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	router := initRoutesTests(t, Options{})

	w := doGet(router, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	router := initRoutesTests(t, Options{CORSAllowOrigin: "http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "GET"))
}

func TestRateLimit(t *testing.T) {
	router := initRoutesTests(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	assert.Equal(t, http.StatusOK, doGet(router, "/ping").Code)

	w := doGet(router, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
