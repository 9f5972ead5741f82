package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestPublishToAbsentRecipientIsFireAndForget(t *testing.T) {
	hub := NewNotificationHub()
	go hub.Run()

	// nobody connected: must not block or panic
	done := make(chan struct{})
	go func() {
		hub.Publish(99, "rideAccepted", map[string]any{"rideId": 1})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no recipient connected")
	}
}

func TestConnectedClientReceivesOwnEventsOnly(t *testing.T) {
	hub := NewNotificationHub()
	go hub.Run()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/notifications", func(c *gin.Context) {
		// stand-in for the auth middleware
		c.Set("userId", uint(7))
		hub.HandleWebSocket(c)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if res.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("status = %d", res.StatusCode)
	}

	// give the hub a beat to register the subscription
	time.Sleep(50 * time.Millisecond)

	hub.Publish(8, "rideCancelled", nil) // someone else's room
	hub.Publish(7, "rideAccepted", map[string]any{"rideId": 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != "rideAccepted" {
		t.Errorf("event = %q, want rideAccepted (other rooms' events must not leak)", got.Name)
	}
}
