package ws

import (
	"github.com/gorilla/websocket"
)

// Client is one registered connection. Outbound messages go through the
// buffered send channel; the write pump is the only goroutine touching the
// socket for writes.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

// WritePump drains the send channel into the socket. It exits when the send
// channel is closed (unregister) or the first write fails, closing the
// socket either way.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
