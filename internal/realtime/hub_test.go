package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestHub(t *testing.T) (*Hub, string) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	go hub.Run()

	engine := gin.New()
	engine.GET("/ws", hub.ServeWS)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dialTestClient(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func joinRoom(t *testing.T, conn *websocket.Conn, restaurantID string) {
	msg, err := json.Marshal(map[string]string{
		"type":         "join-restaurant",
		"restaurantId": restaurantID,
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
	// The join travels through the hub goroutine; give it a beat.
	time.Sleep(50 * time.Millisecond)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestBroadcastReachesJoinedClient(t *testing.T) {
	hub, url := startTestHub(t)
	conn := dialTestClient(t, url)
	joinRoom(t, conn, "r-1")

	hub.Broadcast("r-1", EventNewOrder, map[string]string{"id": "o-1"})

	env := readEnvelope(t, conn)
	assert.Equal(t, EventNewOrder, env.Type)
	assert.Equal(t, "r-1", env.RestaurantID)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "o-1", payload["id"])
}

func TestBroadcastIsScopedToRoom(t *testing.T) {
	hub, url := startTestHub(t)

	joined := dialTestClient(t, url)
	joinRoom(t, joined, "r-1")

	other := dialTestClient(t, url)
	joinRoom(t, other, "r-2")

	hub.Broadcast("r-1", EventOrderUpdated, map[string]string{"id": "o-2"})

	env := readEnvelope(t, joined)
	assert.Equal(t, EventOrderUpdated, env.Type)

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "client in another room must not receive the event")
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub, url := startTestHub(t)
	conn := dialTestClient(t, url)
	joinRoom(t, conn, "r-1")

	leaveMsg, _ := json.Marshal(map[string]string{
		"type":         "leave-restaurant",
		"restaurantId": "r-1",
	})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, leaveMsg))
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("r-1", EventNewFeedback, map[string]string{"id": "f-1"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "a departed client must not receive the event")
}

func TestDroppedClientCannotRejoinAndHubSurvives(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client with a single-slot buffer that never drains. The second
	// broadcast overflows it and the hub drops the client, closing its
	// send channel.
	stuck := &client{hub: hub, send: make(chan []byte, 1), rooms: make(map[string]bool)}
	hub.register <- stuck
	hub.join <- joinRequest{client: stuck, restaurantID: "r-1"}
	hub.broadcast <- broadcastRequest{restaurantID: "r-1", message: []byte("first")}
	hub.broadcast <- broadcastRequest{restaurantID: "r-1", message: []byte("second")}
	time.Sleep(50 * time.Millisecond)

	// A join the client had queued before it was dropped must be ignored;
	// re-adding it would make the next broadcast send on a closed channel.
	hub.join <- joinRequest{client: stuck, restaurantID: "r-1"}
	hub.broadcast <- broadcastRequest{restaurantID: "r-1", message: []byte("third")}
	time.Sleep(50 * time.Millisecond)

	healthy := &client{hub: hub, send: make(chan []byte, 8), rooms: make(map[string]bool)}
	hub.register <- healthy
	hub.join <- joinRequest{client: healthy, restaurantID: "r-1"}
	hub.broadcast <- broadcastRequest{restaurantID: "r-1", message: []byte("fourth")}

	select {
	case msg := <-healthy.send:
		assert.Equal(t, "fourth", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after dropping a slow client")
	}

	msg, ok := <-stuck.send
	require.True(t, ok)
	assert.Equal(t, "first", string(msg))
	_, ok = <-stuck.send
	assert.False(t, ok, "dropped client's send channel must be closed")
}

func TestBroadcastToEmptyRoomIsHarmless(t *testing.T) {
	hub, _ := startTestHub(t)

	hub.Broadcast("r-nobody", EventNewOrder, map[string]string{"id": "o-3"})
	// Nothing to assert beyond not panicking and not blocking.
	time.Sleep(20 * time.Millisecond)
}
