package ws

import "sync"

// Conn is the subset of a WebSocket connection the hub needs. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client wraps a connection and serializes writes to it. Gorilla connections
// support only one concurrent writer, and fan-out from other connections'
// handlers would otherwise race with replies to this one.
type Client struct {
	mu   sync.Mutex
	conn Conn
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Send writes one JSON event to the connection.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
