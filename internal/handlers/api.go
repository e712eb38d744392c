// Package handlers wires the HTTP surface to the state owners. Handlers do
// the translation work only; domain rules stay in the owning packages.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flicktrade/flicktrade/internal/market"
	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/portfolio"
	"github.com/flicktrade/flicktrade/internal/searches"
	"github.com/flicktrade/flicktrade/internal/selection"
)

// API carries the handler dependencies. All of them are required.
type API struct {
	catalog  *market.Catalog
	sim      *market.Simulator
	store    *portfolio.Store
	broker   *selection.Broker
	searches *searches.Service
	logger   *zap.Logger
}

func NewAPI(
	catalog *market.Catalog,
	sim *market.Simulator,
	store *portfolio.Store,
	broker *selection.Broker,
	searchSvc *searches.Service,
	logger *zap.Logger,
) *API {
	return &API{
		catalog:  catalog,
		sim:      sim,
		store:    store,
		broker:   broker,
		searches: searchSvc,
		logger:   logger,
	}
}

// Register mounts all routes on the router.
func (a *API) Register(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/stocks", a.ListStocks)
		api.GET("/stocks/search", a.SearchStocks)

		api.GET("/portfolio", a.GetPortfolio)
		api.POST("/orders", a.PlaceOrder)

		api.GET("/selection", a.GetSelection)
		api.POST("/selection", a.OpenSelection)
		api.DELETE("/selection", a.CloseSelection)

		api.GET("/searches", a.RecentSearches)
		api.POST("/searches", a.RecordSearch)
		api.DELETE("/searches", a.ClearSearches)
	}

	router.GET("/ws/stream", a.StreamUpdates)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

// ListStocks handles GET /api/stocks
func (a *API) ListStocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stocks": a.catalog.All()})
}

// SearchStocks handles GET /api/stocks/search?q=
func (a *API) SearchStocks(c *gin.Context) {
	results := a.catalog.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"stocks": results, "count": len(results)})
}

// GetPortfolio handles GET /api/portfolio
func (a *API) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.Current())
}

// PlaceOrder handles POST /api/orders. The order surface sends a dollar
// amount; shares are computed at the current catalog price, the buy is
// applied, and the selection is finalized.
func (a *API) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, ok := a.catalog.Get(strings.ToUpper(req.Symbol))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + req.Symbol})
		return
	}

	shares := req.Amount / stock.Price
	p, err := a.store.ApplyBuy(stock, shares)
	if err != nil {
		var verr *portfolio.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		a.logger.Error("order failed", zap.String("symbol", stock.Symbol), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order failed"})
		return
	}

	a.broker.FinalizeAfterOrder()

	holding, _ := p.Holding(stock.Symbol)
	a.logger.Info("order executed",
		zap.String("symbol", stock.Symbol),
		zap.Float64("amount", req.Amount),
		zap.Float64("shares", shares))

	c.JSON(http.StatusOK, gin.H{
		"message":   "Order executed successfully",
		"shares":    shares,
		"holding":   holding,
		"portfolio": p,
	})
}
