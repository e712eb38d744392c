package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flicktrade/flicktrade/internal/models"
)

// GetSelection handles GET /api/selection
func (a *API) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visible": a.broker.Visible(),
		"stock":   a.broker.Selected(),
	})
}

// OpenSelection handles POST /api/selection: opens the order surface for a
// catalog stock.
func (a *API) OpenSelection(c *gin.Context) {
	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, ok := a.catalog.Get(strings.ToUpper(req.Symbol))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + req.Symbol})
		return
	}

	a.broker.Select(stock)
	c.JSON(http.StatusOK, gin.H{"visible": true, "stock": stock})
}

// CloseSelection handles DELETE /api/selection: hides the order surface.
// The selected stock is kept so the surface can animate out with it.
func (a *API) CloseSelection(c *gin.Context) {
	a.broker.Close()
	c.JSON(http.StatusOK, gin.H{
		"visible": false,
		"stock":   a.broker.Selected(),
	})
}
