package protocol

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-focusplane/pkg/focus"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewPlaneData builds the payload for a plane result. A positive quadHalfExtent
// also fills in the gizmo corners.
func NewPlaneData(frame uint64, res focus.PlaneResult, quadHalfExtent float64) PlaneData {
	data := PlaneData{
		Frame:    frame,
		Mode:     res.Mode.String(),
		Position: FromR3(res.Position),
		Normal:   FromR3(res.Normal),
		Velocity: FromR3(res.Velocity),
		Distance: res.Distance,
	}
	if quadHalfExtent > 0 {
		for _, c := range focus.Quad(res, quadHalfExtent) {
			data.Quad = append(data.Quad, FromR3(c))
		}
	}
	return data
}

// NewPlaneMessage creates a plane message
func NewPlaneMessage(data PlaneData) (*Message, error) {
	return NewMessage(TypePlane, data)
}

// NewConfigMessage creates a config message carrying tuning parameters
func NewConfigMessage(params focus.TuningParams) (*Message, error) {
	return NewMessage(TypeConfig, params)
}

// NewErrorMessage creates an error message
func NewErrorMessage(err error) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Message: err.Error()})
}

// NewPingMessage creates a ping message with a fresh ID
func NewPingMessage() (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
	})
}

// NewPongMessage creates a pong message in response to a ping
func NewPongMessage(ping *PingData) (*Message, error) {
	now := time.Now().UnixMilli()
	return NewMessage(TypePong, PongData{
		ID:        ping.ID,
		PingTS:    ping.Timestamp,
		PongTS:    now,
		LatencyMs: now - ping.Timestamp,
	})
}

// =============================================================================
// Helper functions for parsing message data
// =============================================================================

// GetPlaneData extracts plane data from a message
func (m *Message) GetPlaneData() (*PlaneData, error) {
	if m.Type != TypePlane {
		return nil, fmt.Errorf("expected plane message, got %s", m.Type)
	}
	var data PlaneData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetConfigData extracts tuning parameters from a message
func (m *Message) GetConfigData() (*focus.TuningParams, error) {
	if m.Type != TypeConfig {
		return nil, fmt.Errorf("expected config message, got %s", m.Type)
	}
	var data focus.TuningParams
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetErrorData extracts error data from a message
func (m *Message) GetErrorData() (*ErrorData, error) {
	if m.Type != TypeError {
		return nil, fmt.Errorf("expected error message, got %s", m.Type)
	}
	var data ErrorData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	if m.Type != TypePing {
		return nil, fmt.Errorf("expected ping message, got %s", m.Type)
	}
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	if m.Type != TypePong {
		return nil, fmt.Errorf("expected pong message, got %s", m.Type)
	}
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
