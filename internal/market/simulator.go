package market

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/stream"
)

// Simulator drives a random walk over the catalog: one random stock moves
// up to ±2% per tick. Day deltas accumulate against the price each stock
// opened the session with, so change/changePercent stay consistent with
// the walk instead of resetting every tick.
type Simulator struct {
	catalog *Catalog
	open    map[string]float64
	rand    *rand.Rand
	logger  *zap.Logger
	ticks   *stream.Stream[models.Stock]
}

func NewSimulator(catalog *Catalog, logger *zap.Logger) *Simulator {
	open := make(map[string]float64)
	for _, s := range catalog.All() {
		// The seed carries a day delta already; back out the session open.
		open[s.Symbol] = s.Price - s.Change
	}
	return &Simulator{
		catalog: catalog,
		open:    open,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
		ticks:   stream.New(models.Stock{}),
	}
}

// SubscribeTicks registers an observer for every price tick. The stream is
// replay-latest; before the first tick the replayed value has an empty
// symbol, which consumers skip.
func (s *Simulator) SubscribeTicks(fn func(models.Stock)) (cancel func()) {
	return s.ticks.Subscribe(fn)
}

// Run ticks until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("price simulator started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("price simulator stopped")
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step moves one random stock and publishes the update.
func (s *Simulator) step() models.Stock {
	all := s.catalog.All()
	if len(all) == 0 {
		return models.Stock{}
	}
	st := all[s.rand.Intn(len(all))]

	// -2% to +2% move on the current price.
	movePct := (s.rand.Float64() - 0.5) * 4
	st.Price = st.Price * (1 + movePct/100)

	open := s.open[st.Symbol]
	if open > 0 {
		st.Change = st.Price - open
		st.ChangePercent = st.Change / open * 100
	}

	s.catalog.put(st)
	s.ticks.Publish(st)

	s.logger.Debug("price tick",
		zap.String("symbol", st.Symbol),
		zap.Float64("price", st.Price),
		zap.Float64("change", st.Change))
	return st
}
