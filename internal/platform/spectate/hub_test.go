package spectate

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

func testSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Tick:  42,
		World: sim.World{W: 800, H: 600},
		State: sim.GameState{Score: 1100, Wave: 2, Lives: 3, Phase: sim.PhasePlaying},

		HasShip: true,
		Ship:    sim.ShipView{Pos: core.V(400, 300), Heading: 1.5, Radius: 12, Thrusting: true},

		Asteroids: []sim.AsteroidView{
			{Pos: core.V(10, 20), Radius: 40},
			{Pos: core.V(700, 500), Radius: 20},
		},
		Saucers:       []sim.SaucerView{{Pos: core.V(0, 100), Radius: 15}},
		Bullets:       []core.Vec2{core.V(1, 2)},
		SaucerBullets: []core.Vec2{core.V(3, 4)},
		Particles:     []sim.ParticleView{{Pos: core.V(5, 5), Life: 1}},
	}
}

// startHub runs a hub behind a test server and returns its WebSocket URL.
func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialWS(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial WS: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewFrame(t *testing.T) {
	f := NewFrame("ada", testSnapshot())

	if f.Player != "ada" || f.Tick != 42 || f.Phase != "PLAYING" {
		t.Errorf("header = %+v", f)
	}
	if f.Score != 1100 || f.Wave != 2 || f.Lives != 3 {
		t.Errorf("state = %d/%d/%d", f.Score, f.Wave, f.Lives)
	}
	if f.Ship == nil || f.Ship.X != 400 || !f.Ship.Thrusting {
		t.Errorf("ship = %+v", f.Ship)
	}
	if len(f.Asteroids) != 2 || f.Asteroids[0].R != 40 {
		t.Errorf("asteroids = %+v", f.Asteroids)
	}
	if len(f.Saucers) != 1 || len(f.Bullets) != 1 || len(f.SaucerBullets) != 1 {
		t.Error("saucers and bullets should be carried over")
	}
}

func TestNewFrameWithoutShip(t *testing.T) {
	snap := testSnapshot()
	snap.HasShip = false

	if f := NewFrame("ada", snap); f.Ship != nil {
		t.Error("no ship should be sent when the snapshot has none")
	}
}

func TestEncodeDecode(t *testing.T) {
	want := NewFrame("ada", testSnapshot())

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Player != want.Player || got.Score != want.Score || got.Ship.Heading != want.Ship.Heading {
		t.Errorf("round trip = %+v", got)
	}
	if len(got.Asteroids) != 2 || got.Asteroids[1].X != 700 {
		t.Errorf("asteroids = %+v", got.Asteroids)
	}
}

func TestFeedThrottles(t *testing.T) {
	hub := NewHub()
	feed := hub.Feed("ada", 3)
	snap := testSnapshot()

	// Phase change from the zero phase publishes the first snapshot
	for range 7 {
		feed.Present(snap)
	}
	if got := len(hub.broadcast); got != 3 {
		t.Errorf("published %d frames, expected 3", got)
	}

	snap.State.Phase = sim.PhaseGameOver
	feed.Present(snap)
	if got := len(hub.broadcast); got != 4 {
		t.Errorf("a phase change should always publish, got %d frames", got)
	}

	feed.Close()
	feed.Present(snap)
	if got := len(hub.broadcast); got != 4 {
		t.Error("a closed feed must not publish")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	for range broadcastBuf {
		if !hub.Publish([]byte{1}) {
			t.Fatal("publish should succeed while the buffer has room")
		}
	}
	if hub.Publish([]byte{1}) {
		t.Error("publish should drop when the buffer is full")
	}
}

func TestWatcherReceivesFrames(t *testing.T) {
	hub, wsURL := startHub(t)
	conn := dialWS(t, wsURL)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Feed("ada", 1).Present(testSnapshot())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read WS: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("message type = %d, expected binary", msgType)
	}
	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Player != "ada" || f.Score != 1100 {
		t.Errorf("frame = %+v", f)
	}
}

func TestWatcherDisconnect(t *testing.T) {
	hub, wsURL := startHub(t)
	conn := dialWS(t, wsURL)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestWatcherRejectedAfterHubStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub := NewHub()
	hub.Run(ctx)
	for range cap(hub.register) {
		hub.register <- &client{}
	}

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	conn := dialWS(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatal("expected the stopped hub to close the connection")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		t.Fatalf("handler hung instead of closing: %v", err)
	}
}
