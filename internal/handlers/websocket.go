package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/flicktrade/flicktrade/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // demo app, allow all origins
	},
}

// wsEvent is one tagged message on the stream socket.
type wsEvent struct {
	Type      string            `json:"type"` // catalog | portfolio | selection | visibility | price
	Stocks    []models.Stock    `json:"stocks,omitempty"`
	Portfolio *models.Portfolio `json:"portfolio,omitempty"`
	Stock     *models.Stock     `json:"stock,omitempty"`
	Visible   *bool             `json:"visible,omitempty"`
}

// StreamUpdates handles GET /ws/stream. On connect the client receives the
// catalog plus replay-latest portfolio and selection snapshots, then every
// future publish as it happens. A slow client drops events rather than
// stalling the publishers.
func (a *API) StreamUpdates(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	a.logger.Info("stream client connected", zap.String("remote", conn.RemoteAddr().String()))

	events := make(chan wsEvent, 64)
	send := func(ev wsEvent) {
		select {
		case events <- ev:
		default:
			// Slow consumer; the next replayed/pushed state supersedes this one.
		}
	}

	cancels := []func(){
		a.store.Subscribe(func(p models.Portfolio) {
			send(wsEvent{Type: "portfolio", Portfolio: &p})
		}),
		a.broker.SubscribeSelected(func(st *models.Stock) {
			send(wsEvent{Type: "selection", Stock: st})
		}),
		a.broker.SubscribeVisible(func(v bool) {
			visible := v
			send(wsEvent{Type: "visibility", Visible: &visible})
		}),
		a.sim.SubscribeTicks(func(st models.Stock) {
			if st.Symbol == "" {
				return // replayed zero value before the first tick
			}
			tick := st
			send(wsEvent{Type: "price", Stock: &tick})
		}),
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	if err := conn.WriteJSON(wsEvent{Type: "catalog", Stocks: a.catalog.All()}); err != nil {
		return
	}

	// Reader only detects disconnect; the stream is one-way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			a.logger.Info("stream client disconnected")
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				a.logger.Warn("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
