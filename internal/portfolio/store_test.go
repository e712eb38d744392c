package portfolio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicktrade/flicktrade/internal/models"
)

func aapl(price float64) models.Stock {
	return models.Stock{Symbol: "AAPL", CompanyName: "Apple Inc.", Price: price, Change: 1.5, ChangePercent: 1.0}
}

func TestApplyBuyCreatesHolding(t *testing.T) {
	s := NewStore()

	p, err := s.ApplyBuy(aapl(100), 2)
	require.NoError(t, err)

	h, ok := p.Holding("AAPL")
	require.True(t, ok)
	assert.Equal(t, 2.0, h.Quantity)
	assert.Equal(t, 100.0, h.AveragePrice)
	assert.Equal(t, 200.0, h.TotalValue)

	// A brand-new holding starts at exactly zero gain.
	assert.Equal(t, 0.0, h.GainLoss)
	assert.Equal(t, 0.0, h.GainLossPercent)
}

func TestApplyBuyFoldsIntoExistingHolding(t *testing.T) {
	s := NewStore()

	_, err := s.ApplyBuy(aapl(100), 2)
	require.NoError(t, err)

	p, err := s.ApplyBuy(aapl(120), 1)
	require.NoError(t, err)

	require.Len(t, p.Holdings, 1, "second buy of an owned symbol must not create a duplicate")

	h := p.Holdings[0]
	assert.Equal(t, 3.0, h.Quantity)
	assert.InDelta(t, (2*100.0+1*120.0)/3, h.AveragePrice, 1e-12) // 106.666...
	assert.InDelta(t, 3*120.0, h.TotalValue, 1e-12)
	assert.InDelta(t, (120.0-h.AveragePrice)*3, h.GainLoss, 1e-12)
}

func TestWeightedAverageAssociativity(t *testing.T) {
	cases := []struct {
		name   string
		q1, p1 float64
		q2, p2 float64
	}{
		{"round numbers", 2, 100, 1, 120},
		{"fractional shares", 0.37, 153.12, 4.21, 148.77},
		{"tiny then large", 0.001, 999.99, 500, 10.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			_, err := s.ApplyBuy(models.Stock{Symbol: "X", Price: tc.p1}, tc.q1)
			require.NoError(t, err)
			_, err = s.ApplyBuy(models.Stock{Symbol: "X", Price: tc.p2}, tc.q2)
			require.NoError(t, err)

			h, ok := s.Current().Holding("X")
			require.True(t, ok)

			pooledAvg := (tc.q1*tc.p1 + tc.q2*tc.p2) / (tc.q1 + tc.q2)
			assert.InEpsilon(t, pooledAvg, h.AveragePrice, 1e-9)
			assert.InEpsilon(t, tc.q1+tc.q2, h.Quantity, 1e-9)
		})
	}
}

func TestApplyBuyValidation(t *testing.T) {
	cases := []struct {
		name     string
		stock    models.Stock
		quantity float64
	}{
		{"empty symbol", models.Stock{Price: 100}, 1},
		{"zero price", models.Stock{Symbol: "AAPL"}, 1},
		{"negative price", models.Stock{Symbol: "AAPL", Price: -5}, 1},
		{"zero purchase value", aapl(100), 0},
		{"below minimum", aapl(100), 0.00005},
		{"above maximum", aapl(100), 20_000}, // 2,000,000
		{"negative quantity", aapl(100), -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			_, err := s.ApplyBuy(aapl(100), 1) // pre-existing state
			require.NoError(t, err)
			before := s.Current()

			_, err = s.ApplyBuy(tc.stock, tc.quantity)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)

			// All-or-nothing: the aggregate is untouched on failure.
			assert.Equal(t, before, s.Current())
		})
	}
}

func TestValidationFailurePublishesNothing(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyBuy(aapl(100), 1)
	require.NoError(t, err)

	publishes := 0
	s.Subscribe(func(models.Portfolio) { publishes++ })
	require.Equal(t, 1, publishes) // the replay

	_, err = s.ApplyBuy(aapl(100), 0)
	require.Error(t, err)
	assert.Equal(t, 1, publishes, "a failed buy must not publish")
}

func TestLateSubscribeReplaysCurrentOnly(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		_, err := s.ApplyBuy(aapl(100+float64(i)), 1)
		require.NoError(t, err)
	}

	var got []models.Portfolio
	s.Subscribe(func(p models.Portfolio) { got = append(got, p) })

	require.Len(t, got, 1, "late subscriber receives the latest value, no history")
	assert.Equal(t, s.Current(), got[0])
}

func TestSubscribersNotifiedInRegistrationOrder(t *testing.T) {
	s := NewStore()

	var order []string
	s.Subscribe(func(p models.Portfolio) {
		if len(p.Holdings) > 0 {
			order = append(order, "a")
		}
	})
	s.Subscribe(func(p models.Portfolio) {
		if len(p.Holdings) > 0 {
			order = append(order, "b")
		}
	})

	_, err := s.ApplyBuy(aapl(100), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestAggregatesRecomputedFromHoldings(t *testing.T) {
	s := NewStore()

	stocks := []models.Stock{
		{Symbol: "AAPL", Price: 150, Change: 1.86},
		{Symbol: "GOOGL", Price: 140, Change: -0.92},
		{Symbol: "MSFT", Price: 380, Change: 4.12},
	}
	quantities := []float64{2, 3.5, 0.25}

	for i, st := range stocks {
		_, err := s.ApplyBuy(st, quantities[i])
		require.NoError(t, err)
	}

	p := s.Current()
	require.Len(t, p.Holdings, 3)

	// Holdings come out sorted by symbol.
	assert.Equal(t, "AAPL", p.Holdings[0].Symbol)
	assert.Equal(t, "GOOGL", p.Holdings[1].Symbol)
	assert.Equal(t, "MSFT", p.Holdings[2].Symbol)

	// Recompute the totals independently.
	var totalEquity, dayChange float64
	for _, h := range p.Holdings {
		assert.Greater(t, h.Quantity, 0.0)
		assert.Greater(t, h.AveragePrice, 0.0)
		totalEquity += h.CurrentPrice * h.Quantity
		dayChange += h.Change * h.Quantity
	}
	assert.InDelta(t, totalEquity, p.TotalEquity, 1e-9)
	assert.InDelta(t, dayChange, p.DayChange, 1e-9)
	assert.InDelta(t, dayChange/(totalEquity-dayChange), p.DayChangePercent, 1e-9)
}

func TestEmptyPortfolioDayChangePercentIsZero(t *testing.T) {
	s := NewStore()
	p := s.Current()
	assert.Empty(t, p.Holdings)
	assert.Equal(t, 0.0, p.TotalEquity)
	assert.Equal(t, 0.0, p.DayChangePercent)
}

func TestMarkPricesRevaluesHeldPositions(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyBuy(models.Stock{Symbol: "AAPL", Price: 100, Change: 0}, 2)
	require.NoError(t, err)

	p := s.MarkPrices([]models.Stock{
		{Symbol: "AAPL", Price: 110, Change: 10},
		{Symbol: "ZZZZ", Price: 50, Change: 1}, // not held, ignored
	})

	require.Len(t, p.Holdings, 1)
	h := p.Holdings[0]
	assert.Equal(t, 100.0, h.AveragePrice, "cost basis is unaffected by revaluation")
	assert.InDelta(t, 220.0, h.TotalValue, 1e-12)
	assert.InDelta(t, 20.0, h.GainLoss, 1e-12)
	assert.InDelta(t, 20.0, p.DayChange, 1e-12)
}

func TestMarkPricesWithoutMatchDoesNotPublish(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyBuy(aapl(100), 1)
	require.NoError(t, err)

	publishes := 0
	s.Subscribe(func(models.Portfolio) { publishes++ })
	require.Equal(t, 1, publishes)

	s.MarkPrices([]models.Stock{{Symbol: "ZZZZ", Price: 10, Change: 0}})
	assert.Equal(t, 1, publishes)
}

func TestPublishedPortfolioIsImmutableSnapshot(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyBuy(aapl(100), 1)
	require.NoError(t, err)

	first := s.Current()
	_, err = s.ApplyBuy(aapl(120), 1)
	require.NoError(t, err)

	// The earlier snapshot must not have been mutated in place.
	h, ok := first.Holding("AAPL")
	require.True(t, ok)
	assert.Equal(t, 1.0, h.Quantity)
	assert.Equal(t, 100.0, h.AveragePrice)
}
