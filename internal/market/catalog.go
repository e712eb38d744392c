// Package market holds the seeded stock universe the discovery page browses,
// and the simulator that walks its prices. There is no real market data;
// the catalog is the app's entire world.
package market

import (
	"sort"
	"strings"
	"sync"

	"github.com/flicktrade/flicktrade/internal/models"
)

// Catalog is the stock universe. Reads return copies; prices move only
// through the Simulator in this package.
type Catalog struct {
	mu     sync.RWMutex
	stocks map[string]models.Stock
}

// NewCatalog builds a catalog from a seed list. Later entries with a
// duplicate symbol overwrite earlier ones.
func NewCatalog(seed []models.Stock) *Catalog {
	c := &Catalog{stocks: make(map[string]models.Stock, len(seed))}
	for _, s := range seed {
		if s.Symbol == "" || s.Price <= 0 {
			continue
		}
		c.stocks[s.Symbol] = s
	}
	return c
}

// DefaultSeed is the demo universe.
func DefaultSeed() []models.Stock {
	return []models.Stock{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Price: 150.00, Change: 1.86, ChangePercent: 1.26},
		{Symbol: "GOOGL", CompanyName: "Alphabet Inc.", Price: 140.00, Change: -0.92, ChangePercent: -0.65},
		{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Price: 380.00, Change: 4.12, ChangePercent: 1.10},
		{Symbol: "TSLA", CompanyName: "Tesla, Inc.", Price: 250.00, Change: -5.40, ChangePercent: -2.11},
		{Symbol: "AMZN", CompanyName: "Amazon.com, Inc.", Price: 180.00, Change: 2.35, ChangePercent: 1.32},
	}
}

// All returns every stock, sorted by symbol.
func (c *Catalog) All() []models.Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Stock, 0, len(c.stocks))
	for _, s := range c.stocks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Get returns the stock for symbol, if present. Lookup is case-insensitive.
func (c *Catalog) Get(symbol string) (models.Stock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stocks[strings.ToUpper(symbol)]
	return s, ok
}

// Search returns stocks whose symbol or company name contains the query,
// case-insensitive. An empty query returns the full catalog.
func (c *Catalog) Search(query string) []models.Stock {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.All()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Stock
	for _, s := range c.stocks {
		if strings.Contains(strings.ToLower(s.Symbol), query) ||
			strings.Contains(strings.ToLower(s.CompanyName), query) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (c *Catalog) put(s models.Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks[s.Symbol] = s
}
