package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one WebSocket connection attached to at most one session.
type Client struct {
	UserID      string
	DisplayName string
	SessionID   string
	IsSpectator bool

	conn *websocket.Conn
	hub  *Hub
	Send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, userID, displayName string) *Client {
	return &Client{
		UserID:      userID,
		DisplayName: displayName,
		conn:        conn,
		hub:         hub,
		Send:        make(chan []byte, 256),
	}
}

// ReadPump reads inbound frames off the socket and dispatches them to the
// hub until the connection closes. It must run in its own goroutine and
// owns the only reader of conn.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.sendError(c, "malformed message")
			continue
		}
		c.hub.HandleMessage(c, &msg)
	}
}

// WritePump drains Send and writes frames to the socket, also issuing
// periodic pings. It must run in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Upgrade promotes an HTTP request to a WebSocket connection, registers
// the resulting Client with the hub, and starts its pumps. The caller's
// handler returns immediately after calling this; the pumps own the
// connection's lifetime from here on.
func Upgrade(hub *Hub, w http.ResponseWriter, r *http.Request, userID, displayName string) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	client := newClient(hub, conn, userID, displayName)
	hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
	return client, nil
}
