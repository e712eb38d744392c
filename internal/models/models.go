package models

// Stock is a row in the discovery catalog: current market price plus
// today's movement. Stocks are read-only input to the portfolio; the
// store never mutates them.
type Stock struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`         // absolute day delta per share
	ChangePercent float64 `json:"change_percent"` // day delta as a percentage
}

// Holding is one position in the portfolio: quantity plus the
// share-weighted average purchase price, with valuation fields derived
// from the most recent known market price.
type Holding struct {
	Symbol          string  `json:"symbol"`
	CompanyName     string  `json:"company_name"`
	Quantity        float64 `json:"quantity"`
	AveragePrice    float64 `json:"average_price"`
	CurrentPrice    float64 `json:"current_price"`
	Change          float64 `json:"change"` // today's per-share delta, for day-change aggregation
	TotalValue      float64 `json:"total_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// Portfolio is the full aggregate published to subscribers. Holdings are
// sorted by symbol, one entry per symbol. The totals are always recomputed
// from the holdings slice, never carried forward.
type Portfolio struct {
	Holdings         []Holding `json:"holdings"`
	TotalEquity      float64   `json:"total_equity"`
	DayChange        float64   `json:"day_change"`
	DayChangePercent float64   `json:"day_change_percent"`
}

// Holding returns the position for symbol, if present.
func (p Portfolio) Holding(symbol string) (Holding, bool) {
	for _, h := range p.Holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}

// OrderRequest - what the order surface sends to buy: a dollar amount,
// converted to shares at the current catalog price.
type OrderRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SelectRequest - opens the order surface for a stock.
type SelectRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// RecordSearchRequest - adds a symbol to the recent-searches list.
type RecordSearchRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}
