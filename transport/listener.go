package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Handler is called for every accepted update
type Handler func(update PositionUpdate, from string)

// maxDatagram bounds a single received update
const maxDatagram = 512

// UDPListener receives updates sent by UDPConn
type UDPListener struct {
	conn net.PacketConn
	log  *slog.Logger
}

// ListenUDP binds a UDP socket on address
func ListenUDP(address string, log *slog.Logger) (*UDPListener, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := net.ListenPacket("udp", address)
	if err != nil {
		return nil, &TransportError{Op: "listen", Peer: address, Err: err}
	}
	return &UDPListener{conn: conn, log: log}, nil
}

// Addr returns the bound address
func (l *UDPListener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Serve reads datagrams until ctx is done. Stale and malformed datagrams
// are dropped.
func (l *UDPListener) Serve(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() { l.conn.Close() })
	defer stop()

	filter := NewSequenceFilter()
	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := l.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return &TransportError{Op: "read", Peer: l.Addr().String(), Err: err}
		}

		update, err := UnmarshalPositionUpdate(buf[:n])
		if err != nil {
			l.log.Debug("dropping malformed datagram", "from", addr, "err", err)
			continue
		}
		from := addr.String()
		if !filter.Accept(from, update.Seq) {
			l.log.Debug("dropping stale update", "from", from, "seq", update.Seq)
			continue
		}
		h(update, from)
	}
}

// Close closes the socket
func (l *UDPListener) Close() error {
	return l.conn.Close()
}

// WebSocketHandler upgrades HTTP requests and feeds received updates to a
// Handler. Each connection has its own sequence filter.
type WebSocketHandler struct {
	upgrader websocket.Upgrader
	handle   Handler
	log      *slog.Logger

	// handlers run one at a time, like the UDP listener
	mu sync.Mutex
}

// NewWebSocketHandler creates an http.Handler accepting viewer connections
func NewWebSocketHandler(h Handler, log *slog.Logger) *WebSocketHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handle: h,
		log:    log,
	}
}

// ServeHTTP implements http.Handler
func (wh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wh.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	from := r.RemoteAddr
	wh.log.Info("viewer connected", "remote", from)
	filter := NewSequenceFilter()

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				wh.log.Warn("viewer connection lost", "remote", from, "err", err)
			} else {
				wh.log.Info("viewer disconnected", "remote", from)
			}
			return
		}
		if typ != websocket.BinaryMessage {
			continue
		}

		update, err := UnmarshalPositionUpdate(msg)
		if err != nil {
			wh.log.Debug("dropping malformed message", "remote", from, "err", err)
			continue
		}
		if !filter.Accept(from, update.Seq) {
			continue
		}

		wh.mu.Lock()
		wh.handle(update, from)
		wh.mu.Unlock()
	}
}
