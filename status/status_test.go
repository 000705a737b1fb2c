package status

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lock    sync.Mutex
	keys    []string
	scripts []string
}

func (r *recorder) Key(key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if key == "bad" {
		return errors.Errorf("Key %q is not bound", key)
	}
	r.keys = append(r.keys, key)
	return nil
}

func (r *recorder) RunScript(script []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.scripts = append(r.scripts, string(script))
	return nil
}

func (r *recorder) Keys() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.keys...)
}

func startHub(t *testing.T, input Input) (*Hub, string) {
	t.Helper()
	hub := NewHub(input)
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
	}))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, kind string) map[string]interface{} {
	t.Helper()
	for {
		var m map[string]interface{}
		require.NoError(t, conn.ReadJSON(&m))
		if m["kind"] == kind {
			return m
		}
	}
}

func TestLateClientGetsLastSnapshot(t *testing.T) {
	hub, url := startHub(t, &recorder{})
	hub.Publish(map[string]string{"selected": "torso"})

	conn := dial(t, url)
	hello := readMessage(t, conn, MESSAGE_HELLO)
	assert.NotEmpty(t, hello["message"])

	snap := readMessage(t, conn, MESSAGE_SNAPSHOT)
	assert.Equal(t, map[string]interface{}{"selected": "torso"}, snap["snapshot"])
}

func TestBroadcast(t *testing.T) {
	hub, url := startHub(t, &recorder{})
	a, b := dial(t, url), dial(t, url)
	readMessage(t, a, MESSAGE_HELLO)
	readMessage(t, b, MESSAGE_HELLO)

	require.Eventually(t, func() bool { return len(hub.Clients()) == 2 }, 5*time.Second, 10*time.Millisecond)
	names := hub.Clients()
	assert.NotEqual(t, names[0], names[1])

	hub.Info("hello %d", 42)
	for _, conn := range []*websocket.Conn{a, b} {
		m := readMessage(t, conn, MESSAGE_STATUS)
		assert.Equal(t, "hello 42", m["message"])
		assert.EqualValues(t, INFO, m["type"])
	}
}

func TestClientInput(t *testing.T) {
	rec := &recorder{}
	_, url := startHub(t, rec)
	conn := dial(t, url)
	readMessage(t, conn, MESSAGE_HELLO)

	require.NoError(t, conn.WriteJSON(map[string]string{"key": "w"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"key": "bad"}))

	m := readMessage(t, conn, MESSAGE_STATUS)
	assert.EqualValues(t, ERROR, m["type"])
	assert.Contains(t, m["message"], "bad")
	assert.Equal(t, []string{"w"}, rec.Keys())

	require.NoError(t, conn.WriteJSON(map[string]string{}))
	m = readMessage(t, conn, MESSAGE_STATUS)
	assert.Equal(t, "Empty request", m["message"])
}

func TestMalformedRequestKeepsClient(t *testing.T) {
	rec := &recorder{}
	hub, url := startHub(t, rec)
	conn := dial(t, url)
	readMessage(t, conn, MESSAGE_HELLO)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"key": `)))
	m := readMessage(t, conn, MESSAGE_STATUS)
	assert.EqualValues(t, ERROR, m["type"])
	assert.Contains(t, m["message"], "Bad request")

	require.NoError(t, conn.WriteJSON(map[string]string{"key": "s"}))
	require.Eventually(t, func() bool { return len(rec.Keys()) == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Len(t, hub.Clients(), 1)
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, url := startHub(t, &recorder{})
	conn := dial(t, url)
	readMessage(t, conn, MESSAGE_HELLO)
	require.Eventually(t, func() bool { return len(hub.Clients()) == 1 }, 5*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return len(hub.Clients()) == 0 }, 5*time.Second, 10*time.Millisecond)
}
