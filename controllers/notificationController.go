package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"event-portal/logger"
	"event-portal/middleware"
	"event-portal/models"
	"event-portal/orderstatus"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventNewOrder    = "newOrder"
	EventOrderStatus = "orderStatus"
	writeWait        = 10 * time.Second
	sendBuffer       = 32
)

// Message is the envelope of every websocket frame.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type subscriber struct {
	sessionID string
	userID    int
	stallID   int
}

// client is one connection. Only its writer goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	sub  subscriber
	send chan []byte
}

// Hub fans confirmed order events out to the websocket connections of the
// sessions they concern. A connection that falls sendBuffer frames behind is
// dropped rather than allowed to hold up the others.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logger.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(allowedOrigins []string, log *logger.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// HandleWebSocket must run behind Authentication.
func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.Session(c)
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Debug("ws_upgrade_failed", err.Error(), requestID(c), nil)
			return
		}
		defer conn.Close()

		sub := subscriber{sessionID: sess.ID, stallID: sess.StallID()}
		if sess.User != nil {
			sub.userID = sess.User.ID
		}
		cl := h.register(conn, sub)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(cl)
				break
			}
		}
	}
}

func (h *Hub) register(conn *websocket.Conn, sub subscriber) *client {
	cl := &client{conn: conn, sub: sub, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	go h.writePump(cl)
	return cl
}

func (h *Hub) writePump(cl *client) {
	defer cl.conn.Close()
	for msg := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("ws_write_failed", err.Error(), "", map[string]interface{}{"session_id": cl.sub.sessionID})
			h.drop(cl)
			return
		}
	}
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(cl)
}

// removeLocked closes send once; the writer then closes the connection.
func (h *Hub) removeLocked(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}

// StatusNotifier returns the callback a session's order controller uses.
// The acting session, the order's owner and the stall's operators hear it.
func (h *Hub) StatusNotifier(sessionID string) orderstatus.NotifyFunc {
	return func(order models.Order, from models.OrderStatus) {
		msg := Message{
			Event: EventOrderStatus,
			Payload: models.StatusNotification{
				Event:     "order_status_changed",
				OrderID:   order.ID,
				OldStatus: from,
				NewStatus: order.Status,
				Timestamp: time.Now().UTC(),
			},
		}
		h.broadcast(msg, func(s subscriber) bool {
			return s.sessionID == sessionID ||
				(order.UserID != 0 && s.userID == order.UserID) ||
				(order.StallID != 0 && s.stallID == order.StallID)
		})
	}
}

// NotifyStall tells a stall's operators about a freshly placed order.
func (h *Hub) NotifyStall(order models.Order) {
	h.broadcast(Message{Event: EventNewOrder, Payload: order}, func(s subscriber) bool {
		return s.stallID != 0 && s.stallID == order.StallID
	})
}

// CloseSession drops the session's connections, on logout.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		if cl.sub.sessionID == sessionID {
			h.removeLocked(cl)
			cl.conn.Close()
		}
	}
}

func (h *Hub) broadcast(message Message, match func(subscriber) bool) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.log.Error("ws_marshal_failed", "could not encode message", "", err, nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		if !match(cl.sub) {
			continue
		}
		select {
		case cl.send <- messageBytes:
		default:
			h.log.Warn("ws_client_too_slow", "dropping connection", "", map[string]interface{}{"session_id": cl.sub.sessionID})
			h.removeLocked(cl)
			cl.conn.Close()
		}
	}
}

// Connections counts open websocket connections.
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
