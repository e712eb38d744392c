// Package portfolio owns the single Portfolio aggregate. All mutation goes
// through the Store's command methods; subscribers receive immutable
// snapshots and the previous value is never edited in place.
package portfolio

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/stream"
)

// Accepted purchase value range for a single buy order, in dollars.
const (
	MinPurchaseValue = 0.01
	MaxPurchaseValue = 1_000_000.0
)

// ValidationError is the only error kind the Store returns. Whenever it is
// raised the aggregate is left untouched and nothing is published.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + e.Reason
}

// Store is the sole owner and mutator of the Portfolio.
type Store struct {
	mu       sync.Mutex
	holdings map[string]models.Holding
	out      *stream.Stream[models.Portfolio]
}

// NewStore returns a Store seeded with an empty portfolio.
func NewStore() *Store {
	s := &Store{holdings: make(map[string]models.Holding)}
	s.out = stream.New(buildPortfolio(s.holdings))
	return s
}

// Current returns the latest published Portfolio. Never blocks on a mutation
// in progress beyond the command's own critical section.
func (s *Store) Current() models.Portfolio {
	return s.out.Current()
}

// Subscribe registers an observer for every future Portfolio and immediately
// replays the current snapshot to it. Delivery is synchronous, in
// registration order. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(models.Portfolio)) (cancel func()) {
	return s.out.Subscribe(fn)
}

// ApplyBuy folds a buy of quantity shares at the stock's current price into
// the portfolio and publishes the new aggregate.
//
// A second buy of an owned symbol updates the existing holding: the average
// price becomes the share-weighted mean of the old position and the new
// purchase. A first buy creates the holding at averagePrice == price, so the
// position starts at exactly zero gain.
func (s *Store) ApplyBuy(stock models.Stock, quantity float64) (models.Portfolio, error) {
	if stock.Symbol == "" {
		return models.Portfolio{}, &ValidationError{Reason: "stock symbol is required"}
	}
	if stock.Price <= 0 {
		return models.Portfolio{}, &ValidationError{Reason: "stock price must be positive"}
	}
	value := stock.Price * quantity
	if !(value >= MinPurchaseValue && value <= MaxPurchaseValue) {
		return models.Portfolio{}, &ValidationError{
			Reason: fmt.Sprintf("purchase value %.2f outside accepted range [%.2f, %.2f]",
				value, MinPurchaseValue, MaxPurchaseValue),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holdings[stock.Symbol]
	if ok {
		// p_new = (q0*p0 + q1*p) / (q0+q1)
		pooled := h.AveragePrice*h.Quantity + stock.Price*quantity
		h.Quantity += quantity
		h.AveragePrice = pooled / h.Quantity
	} else {
		h = models.Holding{
			Symbol:       stock.Symbol,
			CompanyName:  stock.CompanyName,
			Quantity:     quantity,
			AveragePrice: stock.Price,
		}
	}
	h.CurrentPrice = stock.Price
	h.Change = stock.Change
	s.holdings[stock.Symbol] = revalue(h)

	p := buildPortfolio(s.holdings)
	s.out.Publish(p)
	return p, nil
}

// MarkPrices folds price-feed ticks into held positions: each matching
// holding's current price and day delta are replaced and its valuation
// fields recomputed. Symbols without a holding are ignored. Publishes only
// when at least one holding changed.
func (s *Store) MarkPrices(stocks []models.Stock) models.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, st := range stocks {
		h, ok := s.holdings[st.Symbol]
		if !ok || st.Price <= 0 {
			continue
		}
		h.CurrentPrice = st.Price
		h.Change = st.Change
		s.holdings[st.Symbol] = revalue(h)
		changed = true
	}

	p := buildPortfolio(s.holdings)
	if changed {
		s.out.Publish(p)
	}
	return p
}

// revalue recomputes a holding's derived fields from its current price and
// average price. GainLossPercent is a fraction of cost basis (0.05 = 5%).
func revalue(h models.Holding) models.Holding {
	h.TotalValue = h.CurrentPrice * h.Quantity
	h.GainLoss = (h.CurrentPrice - h.AveragePrice) * h.Quantity
	h.GainLossPercent = (h.CurrentPrice - h.AveragePrice) / h.AveragePrice
	return h
}

// buildPortfolio constructs a fresh Portfolio value from the holdings set.
// The totals are always full recomputations, never incremental updates.
func buildPortfolio(holdings map[string]models.Holding) models.Portfolio {
	out := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })

	var totalEquity, dayChange float64
	for _, h := range out {
		totalEquity += h.TotalValue
		dayChange += h.Change * h.Quantity
	}

	// Day change relative to yesterday's closing equity. Zero-guarded for
	// the empty portfolio (and the degenerate base==0 case).
	var dayChangePercent float64
	if base := totalEquity - dayChange; base != 0 {
		dayChangePercent = dayChange / base
	}

	return models.Portfolio{
		Holdings:         out,
		TotalEquity:      totalEquity,
		DayChange:        dayChange,
		DayChangePercent: dayChangePercent,
	}
}
