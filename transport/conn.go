package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"

	"cubeview/config"
)

// Conn writes encoded updates to a single peer
type Conn interface {
	Write(payload []byte) error
	Close() error
	Peer() string
}

// Dial connects to the configured peer once; the connection is reused for
// the lifetime of the process.
func Dial(ctx context.Context, peer config.Peer, writeTimeout time.Duration) (Conn, error) {
	switch peer.Scheme {
	case config.SchemeUDP:
		return DialUDP(ctx, peer.Address, writeTimeout)
	case config.SchemeWS, config.SchemeWSS:
		return DialWebSocket(ctx, peer.URL, writeTimeout)
	}
	return nil, &TransportError{Op: "dial", Peer: peer.String(), Err: fmt.Errorf("unsupported scheme %q", peer.Scheme)}
}

// UDPConn sends one datagram per update
type UDPConn struct {
	conn         net.Conn
	writeTimeout time.Duration
}

// DialUDP opens a connected UDP socket to address
func DialUDP(ctx context.Context, address string, writeTimeout time.Duration) (*UDPConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", address)
	if err != nil {
		return nil, &TransportError{Op: "dial", Peer: address, Err: err}
	}
	return &UDPConn{conn: conn, writeTimeout: writeTimeout}, nil
}

// Write sends payload as a single datagram
func (c *UDPConn) Write(payload []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := c.conn.Write(payload)
	return err
}

// Close closes the socket
func (c *UDPConn) Close() error {
	return c.conn.Close()
}

// Peer returns the remote address
func (c *UDPConn) Peer() string {
	return "udp://" + c.conn.RemoteAddr().String()
}

// WebSocketConn sends one binary message per update
type WebSocketConn struct {
	conn         *websocket.Conn
	url          string
	writeTimeout time.Duration
}

// DialWebSocket opens a WebSocket connection to url
func DialWebSocket(ctx context.Context, url string, writeTimeout time.Duration) (*WebSocketConn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "dial", Peer: url, Err: err}
	}
	return &WebSocketConn{conn: conn, url: url, writeTimeout: writeTimeout}, nil
}

// Write sends payload as a binary message
func (c *WebSocketConn) Write(payload []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, payload)
}

// Close sends a close frame and closes the connection
func (c *WebSocketConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// Peer returns the WebSocket URL
func (c *WebSocketConn) Peer() string {
	return c.url
}
