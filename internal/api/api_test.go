package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlove/together/internal/api/ws"
	"github.com/starlove/together/internal/auth"
	"github.com/starlove/together/internal/docstore/memdoc"
	"github.com/starlove/together/internal/localstate"
	"github.com/starlove/together/internal/services"
	"github.com/starlove/together/internal/theme"
)

const (
	keyAlice = "sk_alice"
	keyBob   = "sk_bob"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memdoc.New()

	authorizer, err := auth.NewStaticAuthorizer(
		keyAlice + "=alice:alice@example.com," + keyBob + "=bob:bob@example.com")
	require.NoError(t, err)

	db, err := localstate.Open(filepath.Join(t.TempDir(), "together.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	themeMgr, err := theme.NewManager(localstate.NewThemeStore(db))
	require.NoError(t, err)

	activities := services.NewActivityService(store, false, log)
	notes := services.NewNoteService(store, log)
	memories := services.NewMemoryService(store, log)

	hub := ws.NewHub(map[string]ws.SnapshotFunc{
		services.CollectionActivities: func() interface{} { return activities.Snapshot() },
		services.CollectionNotes:      func() interface{} { return notes.Snapshot() },
		services.CollectionMemories:   func() interface{} { return memories.Snapshot() },
	}, log)
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, activities.Start(ctx))
	require.NoError(t, notes.Start(ctx))
	require.NoError(t, memories.Start(ctx))
	t.Cleanup(activities.Stop)
	t.Cleanup(notes.Stop)
	t.Cleanup(memories.Stop)

	srv := httptest.NewServer(NewRouter(Deps{
		Activities: activities,
		Notes:      notes,
		Memories:   memories,
		Theme:      themeMgr,
		Authorizer: authorizer,
		Hub:        hub,
	}))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv}
}

func (s *testServer) do(t *testing.T, method, path, key string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// waitForCount polls a list endpoint until the snapshot has round-tripped
// through the store's live query.
func (s *testServer) waitForCount(t *testing.T, path, key string, want int) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp := s.do(t, "GET", path, key, nil)
		if resp.StatusCode == http.StatusOK {
			body := decodeBody(t, resp)
			if int(body["count"].(float64)) == want {
				return body
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s never reached count %d", path, want)
	return nil
}

func TestHealthIsOpen(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.Client().Get(s.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestsWithoutKeyAreRejected(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/activities", "/api/notes", "/api/memories", "/api/theme"} {
		resp := s.do(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestCreateActivityIsAcceptedThenVisible(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/api/activities", keyAlice, map[string]interface{}{
		"title": "picnic",
		"date":  "2024-05-01T12:00:00Z",
		"type":  "date",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "pending", decodeBody(t, resp)["status"])

	body := s.waitForCount(t, "/api/activities", keyAlice, 1)
	acts := body["activities"].([]interface{})
	first := acts[0].(map[string]interface{})
	assert.Equal(t, "picnic", first["title"])
	assert.Equal(t, "alice", first["userId"])
	assert.Equal(t, false, first["isFavorite"])
}

func TestCreateActivityValidationMapsTo400(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/api/activities", keyAlice, map[string]interface{}{
		"date": "2024-05-01T12:00:00Z",
		"type": "date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, "POST", "/api/activities", keyAlice, map[string]interface{}{
		"title": "x", "date": "2024-05-01T12:00:00Z", "type": "party",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUnknownActivityMapsTo404(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, "DELETE", "/api/activities/nope", keyAlice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNoteUpdateByNonOwnerMapsTo403(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/api/notes", keyBob, map[string]interface{}{"content": "hi"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	body := s.waitForCount(t, "/api/notes", keyAlice, 1)

	notes := body["notes"].([]interface{})
	id := notes[0].(map[string]interface{})["id"].(string)

	resp = s.do(t, "PATCH", "/api/notes/"+id, keyAlice, map[string]interface{}{"content": "mine now"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, "PATCH", "/api/notes/"+id, keyBob, map[string]interface{}{"content": "still bob's"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestFeedFlagsPartnerItems(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/api/activities", keyBob, map[string]interface{}{
		"title": "surprise date",
		"date":  "2024-05-01T12:00:00Z",
		"type":  "surprise",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	s.waitForCount(t, "/api/activities", keyAlice, 1)

	body := s.waitForCount(t, "/api/feed", keyAlice, 1)
	item := body["feed"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, item["canToggleFavorite"], "alice can favorite bob's item")

	body = s.waitForCount(t, "/api/feed", keyBob, 1)
	item = body["feed"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, false, item["canToggleFavorite"], "bob cannot favorite his own item")
}

func TestThemeToggleCycles(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "GET", "/api/theme", keyAlice, nil)
	body := decodeBody(t, resp)
	assert.Equal(t, "light", body["theme"])
	assert.Equal(t, false, body["isDark"])

	resp = s.do(t, "POST", "/api/theme/toggle", keyAlice, nil)
	body = decodeBody(t, resp)
	assert.Equal(t, "dark", body["theme"])
	assert.Equal(t, true, body["isDark"])

	resp = s.do(t, "POST", "/api/theme/toggle", keyAlice, nil)
	body = decodeBody(t, resp)
	assert.Equal(t, "love", body["theme"])
	assert.Equal(t, false, body["isDark"])
}

func TestWebSocketPrimesNewClients(t *testing.T) {
	s := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?key=" + keyAlice
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The hub primes every collection right after registration.
	seen := map[string]bool{}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(seen) < 3 {
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "snapshot", msg.Type)
		seen[msg.Collection] = true
	}
	assert.True(t, seen[services.CollectionActivities])
	assert.True(t, seen[services.CollectionNotes])
	assert.True(t, seen[services.CollectionMemories])
}

func TestWebSocketRejectsUnknownKey(t *testing.T) {
	s := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?key=bad"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpcomingAndTimelineViews(t *testing.T) {
	s := newTestServer(t)

	future := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	past := "2020-01-01T00:00:00Z"
	for i, date := range []string{future, past} {
		resp := s.do(t, "POST", "/api/activities", keyAlice, map[string]interface{}{
			"title": fmt.Sprintf("a%d", i),
			"date":  date,
			"type":  "event",
		})
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}
	s.waitForCount(t, "/api/activities", keyAlice, 2)

	body := s.waitForCount(t, "/api/activities/upcoming", keyAlice, 1)
	first := body["activities"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "a0", first["title"])

	body = s.waitForCount(t, "/api/activities/timeline", keyAlice, 2)
	timeline := body["activities"].([]interface{})
	assert.Equal(t, "a1", timeline[0].(map[string]interface{})["title"], "timeline is ascending")
}
