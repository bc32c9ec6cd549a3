package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, userId int64, origins []string) *httptest.Server {
	t.Helper()
	upgrader := NewUpgrader(origins)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(upgrader, w, r, userId)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubSendToUser(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub, 42, nil)

	a := dial(t, srv, nil)
	b := dial(t, srv, nil)
	require.Eventually(t, func() bool { return hub.Online(42) == 2 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, hub.SendToUser(42, []byte(`{"kind":"application_event"}`)))
	assert.Zero(t, hub.SendToUser(7, []byte("nobody")))

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"application_event"}`, string(msg))
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub, 1, nil)

	conn := dial(t, srv, nil)
	require.Eventually(t, func() bool { return hub.Online(1) == 1 }, time.Second, 10*time.Millisecond)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	assert.Eventually(t, func() bool { return hub.Online(1) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub, 3, nil)
	conn := dial(t, srv, nil)
	require.Eventually(t, func() bool { return hub.Online(3) == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.Online(3))
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestUpgraderRejectsForeignOrigin(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub, 5, []string{"http://pets.example.com"})

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	dial(t, srv, http.Header{"Origin": {"http://pets.example.com"}})
	assert.Eventually(t, func() bool { return hub.Online(5) == 1 }, time.Second, 10*time.Millisecond)
}
