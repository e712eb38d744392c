// Package selection owns the transient order-surface state: which stock is
// being ordered and whether the surface is visible. The state is ephemeral
// and shared by independent UI surfaces through two replay-latest streams.
package selection

import (
	"sync"

	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/stream"
)

// Broker is the sole owner of the selection state. Initial state is
// (visible=false, no selection).
type Broker struct {
	mu       sync.Mutex
	visible  *stream.Stream[bool]
	selected *stream.Stream[*models.Stock]
}

func NewBroker() *Broker {
	return &Broker{
		visible:  stream.New(false),
		selected: stream.New[*models.Stock](nil),
	}
}

// Select sets the stock being ordered and shows the order surface.
// The selection publishes before visibility, so a surface reacting to
// visible=true always finds the stock already set.
func (b *Broker) Select(stock models.Stock) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := stock
	b.selected.Publish(&st)
	b.visible.Publish(true)
}

// Close hides the order surface. The selection is deliberately kept: the
// closing animation and a subsequent re-open still reference the last
// stock. This is intended behavior, not a leak.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible.Publish(false)
}

// FinalizeAfterOrder hides the surface and retires the selection after a
// completed order. If a stock is selected, a copy with its day deltas
// zeroed is published first (the delta is considered absorbed into the
// trade just executed), then the selection is cleared.
func (b *Broker) FinalizeAfterOrder() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible.Publish(false)
	if cur := b.selected.Current(); cur != nil {
		done := *cur
		done.Change = 0
		done.ChangePercent = 0
		b.selected.Publish(&done)
	}
	b.selected.Publish(nil)
}

// Visible returns the current visibility snapshot.
func (b *Broker) Visible() bool {
	return b.visible.Current()
}

// Selected returns a copy of the currently selected stock, or nil. The
// copy keeps callers from reaching into the broker's state.
func (b *Broker) Selected() *models.Stock {
	cur := b.selected.Current()
	if cur == nil {
		return nil
	}
	st := *cur
	return &st
}

// SubscribeVisible registers an observer on the visibility stream with
// replay-latest semantics.
func (b *Broker) SubscribeVisible(fn func(bool)) (cancel func()) {
	return b.visible.Subscribe(fn)
}

// SubscribeSelected registers an observer on the selection stream with
// replay-latest semantics.
func (b *Broker) SubscribeSelected(fn func(*models.Stock)) (cancel func()) {
	return b.selected.Subscribe(fn)
}
