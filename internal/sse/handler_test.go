package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextEvent reads lines until it sees an "event:" line and returns its type.
func nextEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if after, ok := strings.CutPrefix(line, "event: "); ok {
			return strings.TrimSpace(after)
		}
	}
}

func TestHandlerStreamsFilteredEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(handler(hub, 20*time.Millisecond))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types="+EventTypeOrderStatusChanged, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	assert.Equal(t, EventTypeConnected, nextEvent(t, r))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(EventTypeOrderPlaced, OrderPayload{OrderID: "ignored"})
	hub.Broadcast(EventTypeOrderStatusChanged, OrderPayload{OrderID: "o1", Status: "accepted"})

	for {
		typ := nextEvent(t, r)
		if typ == EventTypeKeepalive {
			continue
		}
		assert.Equal(t, EventTypeOrderStatusChanged, typ)
		break
	}

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
