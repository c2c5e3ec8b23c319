package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/app"
	"recipebox/internal/config"
	"recipebox/internal/database/dbtest"
	"recipebox/internal/recipe"
	"recipebox/internal/shop"
	"recipebox/internal/sse"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()
	cfg := &config.Config{BackupPath: t.TempDir(), RecipeCacheSize: 16, RecipeCacheTTL: time.Minute}
	a, err := app.Build(cfg, dbtest.Open(t), app.Deps{})
	require.NoError(t, err)

	a.Hub.Start()
	srv := httptest.NewServer(NewRouter(a, nil))
	t.Cleanup(func() {
		srv.Close()
		a.Hub.Stop()
	})
	return srv, a
}

func call(t *testing.T, srv *httptest.Server, method, path, user, body string, out any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/healthz", "", "", nil).StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/readyz", "", "", nil).StatusCode)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "recipebox_")
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, http.MethodGet, "/api/v1/recipes", "", "", nil)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/recipes", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestRecipeLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	var created recipe.Recipe
	resp := call(t, srv, http.MethodPost, "/api/v1/recipes", "alice",
		`{"title": "Lentil soup", "tags": ["vegan"], "ingredients": [{"name": "Lentils", "quantity": 250, "unit": "g"}]}`, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", created.OwnerID)

	var list []recipe.Recipe
	call(t, srv, http.MethodGet, "/api/v1/recipes?tag=vegan", "", "", &list)
	require.Len(t, list, 1)

	assert.Equal(t, http.StatusNoContent, call(t, srv, http.MethodPut, "/api/v1/recipes/"+created.ID+"/favorite", "bob", "", nil).StatusCode)
	var favorites []recipe.Recipe
	call(t, srv, http.MethodGet, "/api/v1/favorites", "bob", "", &favorites)
	assert.Len(t, favorites, 1)

	call(t, srv, http.MethodPost, "/api/v1/recipes/"+created.ID+"/reviews", "bob", `{"rating": 4}`, nil)
	call(t, srv, http.MethodPost, "/api/v1/recipes/"+created.ID+"/reviews", "carol", `{"rating": 5}`, nil)
	var got recipe.Recipe
	call(t, srv, http.MethodGet, "/api/v1/recipes/"+created.ID, "", "", &got)
	assert.InDelta(t, 4.5, got.RatingAvg, 1e-9)
	assert.Equal(t, 2, got.RatingCount)

	assert.Equal(t, http.StatusForbidden, call(t, srv, http.MethodDelete, "/api/v1/recipes/"+created.ID, "bob", "", nil).StatusCode)
	assert.Equal(t, http.StatusNoContent, call(t, srv, http.MethodDelete, "/api/v1/recipes/"+created.ID, "alice", "", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/api/v1/recipes/"+created.ID, "", "", nil).StatusCode)
}

func TestSuggestionsAndImportWithoutLLM(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := call(t, srv, http.MethodPost, "/api/v1/suggestions/recipes", "alice", `{"request": "soup"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = call(t, srv, http.MethodPost, "/api/v1/recipes/import", "alice", `{"url": "https://example.com"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// TestOrderEventsStream places an order and reads it back from the event stream.
func TestOrderEventsStream(t *testing.T) {
	srv, a := newTestServer(t)

	var rec recipe.Recipe
	call(t, srv, http.MethodPost, "/api/v1/recipes", "owner", `{"title": "Pizza"}`, &rec)
	var s shop.Shop
	call(t, srv, http.MethodPost, "/api/v1/shops", "owner", `{"name": "Slice"}`, &s)
	resp := call(t, srv, http.MethodPut, "/api/v1/shops/"+s.ID+"/menu", "owner",
		`{"items": [{"recipe_id": "`+rec.ID+`", "price_cents": 900}]}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?types="+sse.EventTypeOrderPlaced, nil)
	stream, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return a.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	var order shop.Order
	resp = call(t, srv, http.MethodPost, "/api/v1/shops/"+s.ID+"/orders", "carol",
		`{"items": [{"recipe_id": "`+rec.ID+`", "quantity": 2}]}`, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1800), order.TotalCents)

	reader := bufio.NewReader(stream.Body)
	var event sse.Event
	for event.Type != sse.EventTypeOrderPlaced {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
			require.NoError(t, json.Unmarshal([]byte(data), &event))
		}
	}
	payload, ok := event.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, order.ID, payload["order_id"])
	assert.Equal(t, "pending", payload["status"])
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestRunShutsDownWithOpenStream cancels Run while an event stream is connected.
func TestRunShutsDownWithOpenStream(t *testing.T) {
	cfg := &config.Config{
		Port:            freePort(t),
		BackupPath:      t.TempDir(),
		RecipeCacheSize: 16,
		RecipeCacheTTL:  time.Minute,
	}
	a, err := app.Build(cfg, dbtest.Open(t), app.Deps{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, a) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	stream, err := http.Get(base + "/api/v1/events")
	require.NoError(t, err)
	defer stream.Body.Close()
	reader := bufio.NewReader(stream.Body)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	require.Eventually(t, func() bool { return a.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	start := time.Now()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Less(t, time.Since(start), shutdownTimeout/2)
	case <-time.After(shutdownTimeout / 2):
		t.Fatal("Run did not return after cancellation")
	}

	_, err = io.ReadAll(reader)
	assert.NoError(t, err, "stream should end cleanly")
}
