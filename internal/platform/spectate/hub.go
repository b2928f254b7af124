package spectate

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

const (
	broadcastBuf = 64
	maxWatchers  = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Hub fans published frames out to every connected watcher. Slow
// watchers miss frames instead of holding up the game.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	logger     *log.Logger
}

// NewHub creates a hub. Call Run to start delivering frames.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client, 16),
		unregister: make(chan *client, 16),
		broadcast:  make(chan []byte, broadcastBuf),
		done:       make(chan struct{}),
		logger:     log.Default().WithPrefix("spectate"),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("watcher joined", "remote", c.addr, "watchers", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("watcher left", "remote", c.addr, "watchers", n)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Watcher too slow, drop frame
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues an encoded frame. It never blocks; frames are dropped
// when the hub is behind.
func (h *Hub) Publish(data []byte) bool {
	select {
	case h.broadcast <- data:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected watchers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handler serves the WebSocket endpoint at /ws and a plain status page.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "asteroids spectator feed: %d watching\n", h.ClientCount())
	})
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= maxWatchers {
		http.Error(w, "too many watchers", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade error", "err", err)
		return
	}

	c := newClient(h, conn, remoteIP(r))
	select {
	case <-h.done:
		conn.Close()
		return
	default:
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Feed publishes one player's snapshots. It implements sim.RenderSink.
type Feed struct {
	mu     sync.Mutex
	hub    *Hub
	player string
	every  uint64
	seen   uint64
	phase  sim.Phase
	closed bool
}

// Feed returns a sink that publishes every nth snapshot for player, plus
// every snapshot where the phase changes.
func (h *Hub) Feed(player string, every int) *Feed {
	return &Feed{hub: h, player: player, every: uint64(max(every, 1))}
}

// Present implements sim.RenderSink.
func (f *Feed) Present(s sim.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.seen++
	changed := s.State.Phase != f.phase
	f.phase = s.State.Phase
	if !changed && (f.seen-1)%f.every != 0 {
		return
	}

	data, err := Encode(NewFrame(f.player, s))
	if err != nil {
		f.hub.logger.Warn("encode frame", "player", f.player, "err", err)
		return
	}
	f.hub.Publish(data)
}

// Close stops publishing.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
