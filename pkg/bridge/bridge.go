// Package bridge connects the qstate engine to a live browser tab
// over a WebSocket. The Bridge implements history.History against a
// server-side mirror of the tab's URL and history.EventSource from the
// tab's navigation reports, so an engine bound to it runs the native
// notification strategy.
//
// Replace updates the mirror first and then pushes the command to the
// tab; the tab reports back with a navigated message, which fires the
// listeners. True back/forward navigation reaches the server the same
// way, through the page script's popstate handler.
package bridge

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/chrisneven/qstate/pkg/history"
	interrs "github.com/chrisneven/qstate/internal/errors"
)

// Config configures a Bridge.
type Config struct {
	// ReadTimeout bounds the wait for the next client message.
	// Default: 60s.
	ReadTimeout time.Duration

	// WriteTimeout bounds each write to the client. Default: 10s.
	WriteTimeout time.Duration

	// CheckOrigin validates the WebSocket upgrade origin. Defaults to
	// gorilla's same-origin check.
	CheckOrigin func(r *http.Request) bool

	// Logger defaults to slog.Default scoped to component=bridge.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "bridge")
	}
}

// Bridge mirrors one browser tab's navigation state. At most one tab
// is attached at a time; a newly connecting tab displaces the previous
// connection.
type Bridge struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	current *url.URL
	state   any

	// wmu serializes writes; gorilla allows one concurrent writer.
	wmu sync.Mutex

	listeners history.Listeners
}

// New creates a Bridge with no tab attached. Location fails with
// history.ErrNoDocument until a client says hello.
func New(config Config) *Bridge {
	config.applyDefaults()
	return &Bridge{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: config.Logger,
	}
}

// Handler returns the http.Handler that upgrades the client
// connection and runs its read loop. Mount it wherever the page script
// is pointed at.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Error("websocket upgrade failed", "error", err)
			return
		}
		b.attach(conn)
		b.readLoop(conn)
	})
}

// attach makes conn the current client, closing any previous one.
func (b *Bridge) attach(conn *websocket.Conn) {
	b.mu.Lock()
	old := b.conn
	b.conn = conn
	b.mu.Unlock()

	if old != nil {
		old.Close()
		b.logger.Info("client displaced")
	}
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	defer b.detach(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(b.config.ReadTimeout))

		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				b.logger.Error("read error", "error", err)
			}
			return
		}

		switch msg.Type {
		case TypeHello, TypeNavigated:
			if err := b.navigated(msg.URL); err != nil {
				b.logger.Error("bad navigation report", "error", err)
			}

		default:
			b.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}

// detach drops conn if it is still the current client. The URL mirror
// is kept: the document existed, its last known location stays
// readable.
func (b *Bridge) detach(conn *websocket.Conn) {
	conn.Close()
	b.mu.Lock()
	if b.conn == conn {
		b.conn = nil
	}
	b.mu.Unlock()
}

// navigated records a client-reported navigation and fires listeners.
func (b *Bridge) navigated(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return interrs.New("B001", interrs.CategoryProtocol, "client reported an unparsable URL").
			WithDetail(rawURL).
			WithCause(err)
	}

	b.mu.Lock()
	b.current = u
	b.mu.Unlock()

	b.listeners.Notify()
	return nil
}

// Location implements history.History.
func (b *Bridge) Location() (*url.URL, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return nil, history.ErrNoDocument
	}
	u := *b.current
	return &u, nil
}

// Replace implements history.History. The mirror is updated before
// the command leaves the server, so the commit is readable before the
// tab's navigated report broadcasts it.
func (b *Bridge) Replace(state any, u *url.URL) error {
	if u == nil {
		return history.ErrNoDocument
	}

	b.mu.Lock()
	if b.current == nil {
		b.mu.Unlock()
		return history.ErrNoDocument
	}
	copied := *u
	b.current = &copied
	b.state = state
	conn := b.conn
	b.mu.Unlock()

	if conn == nil {
		// No live connection; the mirror carries the entry until the
		// tab reconnects.
		return nil
	}

	b.wmu.Lock()
	defer b.wmu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
	if err := conn.WriteJSON(message{Type: TypeReplace, URL: u.String()}); err != nil {
		b.logger.Error("write error", "error", err)
		return err
	}
	return nil
}

// Listen implements history.EventSource.
func (b *Bridge) Listen(cb func()) (remove func()) {
	return b.listeners.Add(cb)
}

// Connected reports whether a tab is currently attached.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}
