// Package rest serves the read-only reporting endpoints a dashboard polls:
// health, an overview of the ledger and goals, daily trends and category
// totals.
package rest

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/service"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/trend"
)

// Dashboard is the overview returned by GET /api/dashboard.
type Dashboard struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	TransactionCount int             `json:"transactionCount"`
	GroupCount       int             `json:"groupCount"`
	Goals            []api.GoalView  `json:"goals"`
}

// CategoryTotal is one row of GET /api/categories.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

type handler struct {
	store storage.DocumentStore
	clock ids.Clock
}

// NewRouter builds the gin engine. A nil clock uses the system clock.
// apiMiddleware runs in front of every /api route; /healthz stays open.
func NewRouter(store storage.DocumentStore, clock ids.Clock, apiMiddleware ...gin.HandlerFunc) *gin.Engine {
	if clock == nil {
		clock = ids.SystemClock
	}
	h := &handler{store: store, clock: clock}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", h.healthCheck)

	reports := r.Group("/api", apiMiddleware...)
	reports.GET("/dashboard", h.getDashboard)
	reports.GET("/trends", h.getTrends)
	reports.GET("/categories", h.getCategories)
	return r
}

// healthCheck handles the health check endpoint
func (h *handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := storage.Ping(ctx, h.store); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fintrack",
	})
}

// getDashboard loads every collection concurrently and summarizes them.
func (h *handler) getDashboard(c *gin.Context) {
	var (
		txs    []models.Transaction
		goals  []models.Goal
		groups []models.Group
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		txs, err = storage.List[models.Transaction](ctx, h.store, storage.CollectionTransactions)
		return err
	})
	g.Go(func() (err error) {
		goals, err = storage.List[models.Goal](ctx, h.store, storage.CollectionGoals)
		return err
	})
	g.Go(func() (err error) {
		groups, err = storage.List[models.Group](ctx, h.store, storage.CollectionGroups)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := ledger.Summarize(txs)
	today := ledger.CalendarDate(h.clock())

	// ensure empty array ([]) instead of null when there are no goals
	views := make([]api.GoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, service.ViewGoal(goal, summary.Balance, today))
	}

	c.JSON(http.StatusOK, Dashboard{
		Balance:          summary.Balance,
		TotalIncome:      summary.TotalIncome,
		TotalExpense:     summary.TotalExpense,
		TransactionCount: summary.Count,
		GroupCount:       len(groups),
		Goals:            views,
	})
}

// getTrends returns the daily series of the selected transactions.
// unified=true keys days by calendar date instead of the stored date string.
func (h *handler) getTrends(c *gin.Context) {
	txs, ok := h.selectTransactions(c)
	if !ok {
		return
	}

	unified := false
	if raw := c.Query("unified"); raw != "" {
		var err error
		if unified, err = strconv.ParseBool(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unified flag"})
			return
		}
	}

	totals := trend.DailyTotals(txs)
	if unified {
		totals = trend.DailyTotalsByCalendarDate(txs)
	}
	c.JSON(http.StatusOK, trend.Series(totals))
}

// getCategories returns category totals, largest first.
func (h *handler) getCategories(c *gin.Context) {
	txs, ok := h.selectTransactions(c)
	if !ok {
		return
	}

	totals := ledger.Categorize(txs)
	rows := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		rows = append(rows, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Name < rows[j].Name
	})

	c.JSON(http.StatusOK, rows)
}

// selectTransactions loads the ledger restricted to the ?type= query
// parameter. It writes the error response itself and reports whether the
// handler should continue.
func (h *handler) selectTransactions(c *gin.Context) ([]models.Transaction, bool) {
	t := models.TransactionType(c.Query("type"))
	if t != "" && !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction type"})
		return nil, false
	}

	txs, err := storage.List[models.Transaction](c.Request.Context(), h.store, storage.CollectionTransactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if t != "" {
		txs = ledger.ByType(txs, t)
	}
	return txs, true
}
