package hub

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
)

// fakeConn is an in-memory Conn
type fakeConn struct {
	inbound  chan []byte
	written  chan []byte
	closed   chan struct{}
	closeOne sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan []byte, 8),
		written: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-f.inbound:
		return websocket.TextMessage, data, nil
	case <-f.closed:
		return 0, nil, errors.New("closed")
	}
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-f.closed:
		return errors.New("closed")
	default:
	}
	if messageType != websocket.TextMessage {
		return nil
	}
	select {
	case f.written <- data:
		return nil
	case <-f.closed:
		return errors.New("closed")
	}
}

func (f *fakeConn) SetReadLimit(int64) {}
func (f *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (f *fakeConn) SetPongHandler(func(appData string) error) {}

func (f *fakeConn) Close() error {
	f.closeOne.Do(func() { close(f.closed) })
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func readWritten(t *testing.T, f *fakeConn) string {
	t.Helper()
	select {
	case data := <-f.written:
		return string(data)
	case <-time.After(time.Second):
		t.Fatal("no message written")
		return ""
	}
}

func TestNew(t *testing.T) {
	h := New("test")
	if h.ClientCount() != 0 {
		t.Error("ClientCount should be 0 initially")
	}
	if h.IsRunning() {
		t.Error("Hub should not be running before Run")
	}
}

func TestBroadcast_ReachesAllClients(t *testing.T) {
	h := New("plane")
	go h.Run()

	a, b := newFakeConn(), newFakeConn()
	go NewClient(h, a).Run()
	go NewClient(h, b).Run()
	waitFor(t, func() bool { return h.ClientCount() == 2 })

	h.Broadcast(NewJSONMessage([]byte(`{"frame":1}`)))

	for _, c := range []*fakeConn{a, b} {
		if got := readWritten(t, c); got != `{"frame":1}` {
			t.Errorf("written = %q", got)
		}
	}

	a.Close()
	waitFor(t, func() bool { return h.ClientCount() == 1 })
	b.Close()
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestOnRegisterAndSendTo(t *testing.T) {
	h := New("control")
	h.OnRegister(func(c *Client) {
		h.SendTo(c, NewJSONMessage([]byte(`"hello"`)))
	})
	go h.Run()

	conn := newFakeConn()
	client := NewClient(h, conn)
	client.OnMessage = func(data []byte) {
		h.SendTo(client, NewJSONMessage(append([]byte("echo:"), data...)))
	}
	go client.Run()

	if got := readWritten(t, conn); got != `"hello"` {
		t.Errorf("greeting = %q", got)
	}

	conn.inbound <- []byte("ping")
	if got := readWritten(t, conn); got != "echo:ping" {
		t.Errorf("reply = %q", got)
	}

	conn.Close()
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestSendTo_UnknownClientIgnored(t *testing.T) {
	h := New("control")
	go h.Run()

	stray := NewClient(h, newFakeConn())
	h.SendTo(stray, NewJSONMessage([]byte("x")))

	// Give the hub a moment; the stray client must not be registered or written
	time.Sleep(20 * time.Millisecond)
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
	select {
	case <-stray.send:
		t.Error("stray client should not receive messages")
	default:
	}
}

func TestSlowClientDropped(t *testing.T) {
	h := New("plane")
	go h.Run()
	defer h.Close()

	// Nobody drains written, so the client's send buffer fills up
	conn := newFakeConn()
	go NewClient(h, conn).Run()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	msg := NewJSONMessage([]byte(`{}`))
	deadline := time.Now().Add(2 * time.Second)
	for h.Dropped() == 0 && time.Now().Before(deadline) {
		h.Broadcast(msg)
	}

	if h.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", h.Dropped())
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
	conn.Close()
}

func TestClose_StopsRunAndClients(t *testing.T) {
	h := New("plane")
	stopped := make(chan struct{})
	go func() {
		h.Run()
		close(stopped)
	}()

	conn := newFakeConn()
	clientDone := make(chan struct{})
	go func() {
		NewClient(h, conn).Run()
		close(clientDone)
	}()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Close()
	h.Close()

	for name, ch := range map[string]chan struct{}{"hub": stopped, "client": clientDone} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("%s did not stop after Close", name)
		}
	}
	if h.IsRunning() {
		t.Error("Hub should not be running after Close")
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
}

func TestClientRun_AfterCloseReturns(t *testing.T) {
	h := New("plane")
	h.Close()

	done := make(chan struct{})
	go func() {
		NewClient(h, newFakeConn()).Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return when the hub is closed")
	}
}
