package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/starlove/together/internal/auth"
	"github.com/starlove/together/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Client is one connected browser session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session model.Session
}

// enqueue never blocks the hub; a client that cannot keep up loses older
// pushes, which is safe because each push is a full snapshot.
func (c *Client) enqueue(payload []byte) {
	for {
		select {
		case c.send <- payload:
			return
		default:
			select {
			case <-c.send:
			default:
			}
		}
	}
}

// ServeWS authorizes and upgrades an HTTP request, then registers the
// connection with the hub.
func ServeWS(hub *Hub, authorizer auth.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := auth.ExtractAPIKey(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		session, err := authorizer.Authorize(r.Context(), key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &Client{hub: hub, conn: conn, send: make(chan []byte, 16), session: *session}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump drains the connection. Clients send nothing meaningful; reads
// exist to notice disconnects and answer pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
