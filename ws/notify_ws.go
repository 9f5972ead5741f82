package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tapan2502/Ride-Sharing-Assingement/utils"
)

// NotificationHub pushes lifecycle events to connected clients. Each client
// joins the room of its own account id; delivery is at-most-once and a
// missing recipient is not an error.
type NotificationHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	broadcast  chan Event
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

// Event is one message pushed to a single user's room.
type Event struct {
	UserID  uint   `json:"-"`
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// Run serves register/unregister/broadcast; start it once at boot.
func (h *NotificationHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.UserID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish implements services.Notifier. Fire-and-forget: if the hub is
// backed up the event is dropped rather than blocking the request.
func (h *NotificationHub) Publish(userID uint, event string, payload any) {
	select {
	case h.broadcast <- Event{UserID: userID, Name: event, Payload: payload}:
	default:
		log.Printf("ws: dropped %s event for user %d", event, userID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/notifications — the room is the authenticated account id,
// never something the client names.
func (h *NotificationHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	h.register <- sub

	go h.keepAlive(sub)
}

// keepAlive drains client frames until the connection drops; inbound
// payloads are ignored, the channel is push-only.
func (h *NotificationHub) keepAlive(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
