package hub

import (
	"log/slog"
	"sync"

	"github.com/teslashibe/go-focusplane/internal/log"
)

// directMessage is a message addressed to one client
type directMessage struct {
	client *Client
	msg    Message
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Name for logging
	name   string
	logger *slog.Logger

	// Registered clients
	clients map[*Client]bool

	// Inbound messages to broadcast
	broadcast chan Message

	// Messages for a single client
	direct chan directMessage

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Client greeting, sent on registration
	onRegister func(*Client)

	// Mutex for client count (read-only access from outside)
	mu sync.RWMutex

	// Closed by Close to stop Run
	done      chan struct{}
	closeOnce sync.Once

	// Running state
	running bool
	dropped uint64
}

// New creates a new Hub
func New(name string) *Hub {
	return &Hub{
		name:       name,
		logger:     log.With("hub", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		direct:     make(chan directMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// OnRegister sets a callback run on the hub goroutine for each new client,
// typically to queue an initial snapshot with SendTo. Set before Run.
func (h *Hub) OnRegister(fn func(*Client)) {
	h.onRegister = fn
}

// Run starts the hub's main loop
// This should be called in a goroutine. It returns after Close.
func (h *Hub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.running = false
			h.mu.Unlock()
			h.logger.Info("hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "total", count)
			if h.onRegister != nil {
				h.onRegister(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "remaining", count)

		case d := <-h.direct:
			h.mu.Lock()
			if _, ok := h.clients[d.client]; ok {
				h.deliver(d.client, d.msg)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				h.deliver(client, message)
			}
			h.mu.Unlock()
		}
	}
}

// deliver queues msg for client, dropping the client if it is too slow.
// Callers hold h.mu.
func (h *Hub) deliver(client *Client, msg Message) {
	select {
	case client.send <- msg:
		// Message queued successfully
	default:
		// Client's buffer is full - close and remove them
		close(client.send)
		delete(h.clients, client)
		h.dropped++
		h.logger.Warn("dropped slow client")
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		// Broadcast channel full - drop message
		h.logger.Debug("broadcast channel full, dropping message")
	}
}

// SendTo queues a message for a single client.
// It is safe to call from the client's OnMessage callback.
func (h *Hub) SendTo(client *Client, msg Message) {
	select {
	case h.direct <- directMessage{client: client, msg: msg}:
	default:
		h.logger.Debug("direct channel full, dropping message")
	}
}

// Close stops Run and disconnects every client. Safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsRunning returns whether the hub is running
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// Dropped returns how many slow clients have been dropped
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}
