package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dungeon-core/internal/world"
	"dungeon-core/pkg/api"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServer_HealthAndVersion(t *testing.T) {
	ts := httptest.NewServer(New(":0").Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var info map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/version", &info))
	assert.Contains(t, info, "build_id")
}

func TestServer_DebugEndpoints(t *testing.T) {
	s := New(":0")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/debug/world", nil))

	g := testGame(t)
	s.Publish(g)

	var summary api.WorldSummary
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/world", &summary))
	assert.Equal(t, 1, summary.Tick)
	assert.Equal(t, int64(42), summary.Seed)
	assert.Equal(t, g.World.Len(), summary.Actors)
	assert.Equal(t, len(g.Layout.Rooms), summary.Rooms)
	assert.Equal(t, 1, summary.ByKind["CREATURE|PLAYER"])

	var actors []api.EntityView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/actors", &actors))
	assert.Len(t, actors, g.World.Len(), "held actors are included")

	var items []api.EntityView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/actors?kind=item", &items))
	assert.Len(t, items, len(g.World.Actors(world.OfKind(world.KindItem))))
	for _, it := range items {
		assert.Equal(t, "ITEM", it.Kind)
	}

	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/debug/actors?kind=dragon", nil))

	var queue []map[string]interface{}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/debug/queue", &queue))
	assert.Len(t, queue, g.Dungeon.Turns().Len())
}

func TestServer_WebSocket(t *testing.T) {
	s := New(":0")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	g := testGame(t)
	s.Publish(g)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	read := func() api.Frame {
		var f api.Frame
		require.NoError(t, conn.ReadJSON(&f))
		return f
	}

	// Новый клиент сразу получает последний ход
	first := read()
	assert.Equal(t, api.FrameTypeInit, first.Type)
	assert.Equal(t, 1, first.Tick)
	assert.Len(t, first.Rows, g.World.Height())
	assert.Equal(t, 1, s.Hub.SubscriberCount())

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: api.ActionSnapshot}))
	assert.Equal(t, api.FrameTypeInit, read().Type)

	p := g.Player.Pos()
	payload, _ := json.Marshal(api.PositionPayload{X: p.X, Y: p.Y})
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: api.ActionInspect, Payload: payload}))
	inspect := read()
	assert.Equal(t, api.FrameTypeInspect, inspect.Type)
	_, ok := findByName(inspect.Entities, "player")
	assert.True(t, ok)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "ATTACK"}))
	bad := read()
	assert.Equal(t, api.FrameTypeError, bad.Type)
	assert.Contains(t, bad.Error, "unknown action")

	g.Step()
	s.Publish(g)
	update := read()
	assert.Equal(t, api.FrameTypeUpdate, update.Type)
	assert.Equal(t, 2, update.Tick)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
