// Package web provides a real-time diagnostics dashboard for the focus plane
package web

import (
	"log/slog"
	"sync"
	"time"

	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-focusplane/internal/log"
	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/hub"
	"github.com/teslashibe/go-focusplane/pkg/protocol"
)

// SessionInfo describes the running simulator session
type SessionInfo struct {
	ID             string    `json:"id"`
	Started        time.Time `json:"started"`
	UptimeSeconds  float64   `json:"uptime_s"`
	Frames         uint64    `json:"frames"`
	PlaneClients   int       `json:"plane_clients"`
	ControlClients int       `json:"control_clients"`
	DroppedClients uint64    `json:"dropped_clients"` // Slow clients cut off by either hub
}

// Server is the diagnostics dashboard server
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	// Session
	sessionID string
	started   time.Time

	// Live tuning
	store *focus.Store

	// Latest plane
	latest    protocol.PlaneData
	hasLatest bool
	latestMu  sync.RWMutex

	// Gizmo size sent with each plane
	QuadHalfExtent float64

	// Hubs for websocket broadcast
	planeHub   *hub.Hub
	controlHub *hub.Hub
}

// NewServer creates a new dashboard server editing store
func NewServer(port string, store *focus.Store) *Server {
	s := &Server{
		port:           port,
		logger:         log.With("component", "web"),
		sessionID:      uuid.New().String(),
		started:        time.Now(),
		store:          store,
		QuadHalfExtent: focus.DefaultQuadHalfExtent,
		planeHub:       hub.New("plane"),
		controlHub:     hub.New("control"),
	}

	s.planeHub.OnRegister(s.greetPlaneClient)
	s.controlHub.OnRegister(s.greetControlClient)

	app := fiber.New(fiber.Config{
		AppName:               "Focus Plane Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/plane", s.handleGetPlane)
	api.Get("/tuning", s.handleGetTuning)
	api.Put("/tuning", s.handlePutTuning)
	api.Get("/session", s.handleSession)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/plane", websocket.New(s.handlePlaneWS))
	app.Get("/ws/control", contribws.New(s.handleControlWS))

	s.app = app
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// SessionID returns the session identifier
func (s *Server) SessionID() string {
	return s.sessionID
}

// Start starts the hubs and the web server
func (s *Server) Start() error {
	s.logger.Info("dashboard listening", "url", "http://localhost:"+s.port, "session", s.sessionID)

	go s.planeHub.Run()
	go s.controlHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server and both hubs
func (s *Server) Shutdown() error {
	s.planeHub.Close()
	s.controlHub.Close()
	return s.app.Shutdown()
}

// ObservePlane implements focus.PlaneObserver. It records the plane and
// broadcasts it to stream clients.
func (s *Server) ObservePlane(frame uint64, res focus.PlaneResult) {
	data := protocol.NewPlaneData(frame, res, s.QuadHalfExtent)

	s.latestMu.Lock()
	s.latest = data
	s.hasLatest = true
	s.latestMu.Unlock()

	msg, err := protocol.NewPlaneMessage(data)
	if err != nil {
		s.logger.Warn("encode plane", "error", err)
		return
	}
	s.broadcast(s.planeHub, msg)
}

// Latest returns the most recent plane, if any
func (s *Server) Latest() (protocol.PlaneData, bool) {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	return s.latest, s.hasLatest
}

// broadcast encodes msg and fans it out on h
func (s *Server) broadcast(h *hub.Hub, msg *protocol.Message) {
	raw, err := msg.Bytes()
	if err != nil {
		s.logger.Warn("encode message", "type", msg.Type, "error", err)
		return
	}
	h.Broadcast(hub.NewJSONMessage(raw))
}

// sendTo encodes msg and queues it for one client
func (s *Server) sendTo(h *hub.Hub, c *hub.Client, msg *protocol.Message, err error) {
	if err != nil {
		s.logger.Warn("build message", "error", err)
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		s.logger.Warn("encode message", "type", msg.Type, "error", err)
		return
	}
	h.SendTo(c, hub.NewJSONMessage(raw))
}

// greetPlaneClient sends the latest plane to a new stream client
func (s *Server) greetPlaneClient(c *hub.Client) {
	data, ok := s.Latest()
	if !ok {
		return
	}
	msg, err := protocol.NewPlaneMessage(data)
	s.sendTo(s.planeHub, c, msg, err)
}

// greetControlClient sends the current tuning to a new control client
func (s *Server) greetControlClient(c *hub.Client) {
	msg, err := protocol.NewConfigMessage(s.store.Tuning())
	s.sendTo(s.controlHub, c, msg, err)
}
