package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/searches"
)

// RecentSearches handles GET /api/searches
func (a *API) RecentSearches(c *gin.Context) {
	list, err := a.searches.Recent(c.Request.Context())
	if err != nil {
		a.logger.Error("failed to load recent searches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recent searches"})
		return
	}
	if list == nil {
		list = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"searches": list})
}

// RecordSearch handles POST /api/searches
func (a *API) RecordSearch(c *gin.Context) {
	var req models.RecordSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := a.searches.Record(c.Request.Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, searches.ErrEmptySymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		a.logger.Error("failed to record search", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record search"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": list})
}

// ClearSearches handles DELETE /api/searches
func (a *API) ClearSearches(c *gin.Context) {
	if err := a.searches.Clear(c.Request.Context()); err != nil {
		a.logger.Error("failed to clear recent searches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear recent searches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": []string{}})
}
