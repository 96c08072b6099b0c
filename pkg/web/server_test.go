package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/protocol"
)

func newTestServer(port string) (*Server, *focus.Store) {
	store := focus.NewStore(focus.DefaultConfig())
	return NewServer(port, store), store
}

func samplePlane() focus.PlaneResult {
	return focus.PlaneResult{
		Position: r3.Vec{Z: 2},
		Normal:   r3.Vec{Z: -1},
		Mode:     focus.ModeFixedDistance,
		Distance: 2,
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestGetPlane_NoneYet(t *testing.T) {
	s, _ := newTestServer("0")

	resp, _ := doRequest(t, s, http.MethodGet, "/api/plane", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPlane_AfterObserve(t *testing.T) {
	s, _ := newTestServer("0")
	s.ObservePlane(7, samplePlane())

	resp, body := doRequest(t, s, http.MethodGet, "/api/plane", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data protocol.PlaneData
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, uint64(7), data.Frame)
	assert.Equal(t, "fixed", data.Mode)
	assert.InDelta(t, 2.0, data.Position.Z, 1e-12)
	assert.Len(t, data.Quad, 4)
}

func TestGetTuning_Defaults(t *testing.T) {
	s, _ := newTestServer("0")

	resp, body := doRequest(t, s, http.MethodGet, "/api/tuning", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p focus.TuningParams
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "override", p.Mode)
	assert.Equal(t, focus.DefaultLerpPowerCloser, p.LerpPowerCloser)
	assert.Equal(t, focus.DefaultLerpPowerFarther, p.LerpPowerFarther)
	require.NotNil(t, p.Enabled)
	assert.True(t, *p.Enabled)
}

func TestPutTuning_Applies(t *testing.T) {
	s, store := newTestServer("0")

	resp, _ := doRequest(t, s, http.MethodPut, "/api/tuning", `{"mode":"gaze","lerp_power_closer":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cfg := store.Snapshot()
	assert.Equal(t, focus.ModeGazeTarget, cfg.Mode)
	assert.Equal(t, 9.0, cfg.LerpPowerCloser)
	assert.Equal(t, focus.DefaultLerpPowerFarther, cfg.LerpPowerFarther)
}

func TestPutTuning_RejectsBadMode(t *testing.T) {
	s, store := newTestServer("0")
	before := store.Snapshot()

	resp, body := doRequest(t, s, http.MethodPut, "/api/tuning", `{"mode":"sideways","lerp_power_closer":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "sideways")
	assert.Equal(t, before, store.Snapshot())
}

func TestPutTuning_RejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer("0")

	resp, _ := doRequest(t, s, http.MethodPut, "/api/tuning", `{"mode":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSession(t *testing.T) {
	s, _ := newTestServer("0")
	s.ObservePlane(3, samplePlane())

	resp, body := doRequest(t, s, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info SessionInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, s.SessionID(), info.ID)
	assert.Equal(t, uint64(3), info.Frames)
	assert.Zero(t, info.DroppedClients)
	assert.NotEmpty(t, info.ID)
}

func TestWebSocketRoutesRequireUpgrade(t *testing.T) {
	s, _ := newTestServer("0")

	resp, _ := doRequest(t, s, http.MethodGet, "/ws/plane", "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func readMessage(t *testing.T, ws *websocket.Conn) *protocol.Message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.ParseMessage(data)
	require.NoError(t, err)
	return msg
}

func TestWebSocketStreams(t *testing.T) {
	s, store := newTestServer("18090")
	s.StartAsync()
	time.Sleep(100 * time.Millisecond)

	// Control clients are greeted with the current tuning
	control, _, err := websocket.DefaultDialer.Dial("ws://localhost:18090/ws/control", nil)
	require.NoError(t, err)
	defer control.Close()

	msg := readMessage(t, control)
	require.Equal(t, protocol.TypeConfig, msg.Type)
	params, err := msg.GetConfigData()
	require.NoError(t, err)
	assert.Equal(t, "override", params.Mode)

	// Ping gets a pong with the same ID
	ping, err := protocol.NewPingMessage()
	require.NoError(t, err)
	raw, err := ping.Bytes()
	require.NoError(t, err)
	require.NoError(t, control.WriteMessage(websocket.TextMessage, raw))

	msg = readMessage(t, control)
	require.Equal(t, protocol.TypePong, msg.Type)
	pong, err := msg.GetPongData()
	require.NoError(t, err)
	pingData, err := ping.GetPingData()
	require.NoError(t, err)
	assert.Equal(t, pingData.ID, pong.ID)

	// Config updates are applied and echoed to control clients
	update, err := protocol.NewConfigMessage(focus.TuningParams{Mode: "fixed"})
	require.NoError(t, err)
	raw, err = update.Bytes()
	require.NoError(t, err)
	require.NoError(t, control.WriteMessage(websocket.TextMessage, raw))

	msg = readMessage(t, control)
	require.Equal(t, protocol.TypeConfig, msg.Type)
	assert.Equal(t, focus.ModeFixedDistance, store.Snapshot().Mode)

	// A bad mode is answered with an error
	bad, err := protocol.NewConfigMessage(focus.TuningParams{Mode: "sideways"})
	require.NoError(t, err)
	raw, err = bad.Bytes()
	require.NoError(t, err)
	require.NoError(t, control.WriteMessage(websocket.TextMessage, raw))

	msg = readMessage(t, control)
	require.Equal(t, protocol.TypeError, msg.Type)
	assert.Equal(t, focus.ModeFixedDistance, store.Snapshot().Mode)

	// Plane clients receive every observed plane
	plane, _, err := websocket.DefaultDialer.Dial("ws://localhost:18090/ws/plane", nil)
	require.NoError(t, err)
	defer plane.Close()

	require.Eventually(t, func() bool {
		return s.planeHub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	s.ObservePlane(1, samplePlane())

	msg = readMessage(t, plane)
	require.Equal(t, protocol.TypePlane, msg.Type)
	data, err := msg.GetPlaneData()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), data.Frame)
	assert.Equal(t, "fixed", data.Mode)

	// Shutdown stops both hubs
	require.NoError(t, s.Shutdown())
	require.Eventually(t, func() bool {
		return !s.planeHub.IsRunning() && !s.controlHub.IsRunning()
	}, time.Second, 10*time.Millisecond)
}
