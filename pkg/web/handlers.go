package web

import (
	"fmt"
	"time"

	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/hub"
	"github.com/teslashibe/go-focusplane/pkg/protocol"
)

// handleGetPlane returns the latest plane
func (s *Server) handleGetPlane(c *fiber.Ctx) error {
	data, ok := s.Latest()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no plane emitted yet",
		})
	}
	return c.JSON(data)
}

// handleGetTuning returns the live tuning parameters
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.store.Tuning())
}

// handlePutTuning applies tuning parameters
func (s *Server) handlePutTuning(c *fiber.Ctx) error {
	var params focus.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tuning body: " + err.Error(),
		})
	}

	if err := s.applyTuning(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s.store.Tuning())
}

// handleSession returns session information
func (s *Server) handleSession(c *fiber.Ctx) error {
	data, _ := s.Latest()
	return c.JSON(SessionInfo{
		ID:             s.sessionID,
		Started:        s.started,
		UptimeSeconds:  time.Since(s.started).Seconds(),
		Frames:         data.Frame,
		PlaneClients:   s.planeHub.ClientCount(),
		ControlClients: s.controlHub.ClientCount(),
		DroppedClients: s.planeHub.Dropped() + s.controlHub.Dropped(),
	})
}

// handlePlaneWS streams planes to a client
func (s *Server) handlePlaneWS(c *websocket.Conn) {
	hub.NewClient(s.planeHub, c).Run()
}

// handleControlWS accepts tuning updates and pings from a client
func (s *Server) handleControlWS(c *contribws.Conn) {
	client := hub.NewClient(s.controlHub, c)
	client.OnMessage = func(data []byte) {
		s.handleControlMessage(client, data)
	}
	client.Run()
}

// handleControlMessage processes an incoming control message
func (s *Server) handleControlMessage(client *hub.Client, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		s.replyError(client, err)
		return
	}

	switch msg.Type {
	case protocol.TypeConfig:
		params, err := msg.GetConfigData()
		if err == nil {
			err = s.applyTuning(*params)
		}
		if err != nil {
			s.replyError(client, err)
		}

	case protocol.TypePing:
		ping, err := msg.GetPingData()
		if err != nil {
			s.replyError(client, err)
			return
		}
		pong, err := protocol.NewPongMessage(ping)
		s.sendTo(s.controlHub, client, pong, err)

	default:
		s.replyError(client, fmt.Errorf("unsupported message type %q", msg.Type))
	}
}

// applyTuning updates the store and tells every control client
func (s *Server) applyTuning(params focus.TuningParams) error {
	if err := s.store.SetTuning(params); err != nil {
		return err
	}

	tuning := s.store.Tuning()
	s.logger.Info("tuning updated",
		"mode", tuning.Mode,
		"closer", tuning.LerpPowerCloser,
		"farther", tuning.LerpPowerFarther,
		"default_distance", tuning.DefaultPlaneDistance,
	)

	msg, err := protocol.NewConfigMessage(tuning)
	if err != nil {
		return err
	}
	s.broadcast(s.controlHub, msg)
	return nil
}

// replyError sends an error message to one control client
func (s *Server) replyError(client *hub.Client, err error) {
	msg, buildErr := protocol.NewErrorMessage(err)
	s.sendTo(s.controlHub, client, msg, buildErr)
}
