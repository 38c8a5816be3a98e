package websocket

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 8
	writeTimeout   = 5 * time.Second
	pongTimeout    = 60 * time.Second
	pingInterval   = pongTimeout * 9 / 10
)

type boardReader interface {
	Render() string
}

type subscriber struct {
	id   string
	send chan string
}

// Server fans every board rendering out to the connected websocket subscribers.
type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[string]*subscriber
}

func New(logger *slog.Logger) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]*subscriber),
	}
}

// Broadcast queues rendering for every subscriber. Subscribers that cannot keep up are dropped.
func (that *Server) Broadcast(rendering string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, sub := range that.subscribers {
		select {
		case sub.send <- rendering:
		default:
			that.logger.Info("dropping slow subscriber", "subscriber", id)
			delete(that.subscribers, id)
			close(sub.send)
		}
	}
}

func (that *Server) Subscribers() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subscribers)
}

// Handler upgrades the request and streams the board, starting with its current rendering.
func (that *Server) Handler(board boardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := that.logger.With("method", "Handler")

		conn, err := that.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("failed to upgrade connection", "error", err)
			return
		}

		sub := that.subscribe(board)
		log.Info("subscriber connected", "subscriber", sub.id, "remote", conn.RemoteAddr().String())

		go that.writeLoop(conn, sub)
		that.readLoop(conn)

		that.unsubscribe(sub.id)
		log.Info("subscriber disconnected", "subscriber", sub.id)
	}
}

// subscribe registers under the hub lock so no broadcast can slip in ahead of the first rendering.
func (that *Server) subscribe(board boardReader) *subscriber {
	sub := &subscriber{
		id:   uuid.NewString(),
		send: make(chan string, sendBufferSize),
	}

	that.mu.Lock()
	sub.send <- board.Render()
	that.subscribers[sub.id] = sub
	that.mu.Unlock()

	return sub
}

func (that *Server) unsubscribe(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sub, ok := that.subscribers[id]; ok {
		delete(that.subscribers, id)
		close(sub.send)
	}
}

// readLoop discards client messages and returns once the connection fails or is closed.
func (that *Server) readLoop(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (that *Server) writeLoop(conn *websocket.Conn, sub *subscriber) {
	log := that.logger.With("method", "writeLoop", "subscriber", sub.id)

	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case rendering, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, []byte(rendering)); err != nil {
				log.Error("failed to write rendering", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
