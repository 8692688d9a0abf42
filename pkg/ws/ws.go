// Package ws provides WebSocket push support using gorilla/websocket.
//
// Unlike a chat hub, the dashboard live view is strictly one-way: each
// connection carries its own order-snapshot subscription, so there is no
// broadcast fan-out. Upgrade yields a Conn whose WriteJSON is safe to call
// from the subscription goroutine while the read/ping pumps keep the
// connection honest.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Conn is a server-push WebSocket connection.
type Conn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// Upgrade performs the WebSocket handshake and starts the keepalive pumps.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	c := &Conn{conn: raw, done: make(chan struct{})}
	go c.readPump()
	go c.pingPump()
	return c, nil
}

// WriteJSON sends v as a JSON text message.
func (c *Conn) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Done is closed when the client disconnects.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close shuts the connection down. Safe to call multiple times.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.writeMu.Unlock()
		_ = c.conn.Close()
	})
}

// readPump discards inbound frames and reacts to pongs and closes.
func (c *Conn) readPump() {
	defer c.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Conn) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
