package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-welfare-dashboard/internal/platform/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SendsSnapshotThenBroadcasts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(logger.Nop())
	go h.Run(ctx)

	ts := httptest.NewServer(Handler(h, func() ([]byte, error) { return []byte(`{"v":1}`), nil }))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(msg))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Broadcast([]byte(`{"v":2}`))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(msg))
}

func TestHub_BroadcastWithoutRunDoesNotBlock(t *testing.T) {
	h := NewHub(logger.Nop())
	for i := 0; i < broadcastBuffer+5; i++ {
		h.Broadcast([]byte("x"))
	}
}

func TestHub_DropsClientWhenWriteTimesOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(logger.Nop())
	h.writeWait = time.Nanosecond
	go h.Run(ctx)

	ts := httptest.NewServer(Handler(h, func() ([]byte, error) { return []byte(`{}`), nil }))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Broadcast([]byte(`{"v":2}`))

	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
