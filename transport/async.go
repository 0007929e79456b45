package transport

import (
	"log/slog"
	"sync/atomic"

	"cubeview/systems"
)

// AsyncSender queues updates for a single writer goroutine so that
// SendPositionUpdate never waits on the network. Updates leave in the order
// they were queued. SendPositionUpdate and Close must be called from the
// same goroutine.
type AsyncSender struct {
	conn     Conn
	queue    chan []byte
	done     chan struct{}
	reporter systems.ErrorReporter
	log      *slog.Logger

	seq    uint32
	closed atomic.Bool

	written atomic.Uint64
	failed  atomic.Uint64
}

// NewAsyncSender starts the writer goroutine. Write failures are passed to
// reporter; a nil reporter only logs them.
func NewAsyncSender(conn Conn, queueSize int, reporter systems.ErrorReporter, log *slog.Logger) *AsyncSender {
	if queueSize <= 0 {
		queueSize = 1
	}
	if log == nil {
		log = slog.Default()
	}
	s := &AsyncSender{
		conn:     conn,
		queue:    make(chan []byte, queueSize),
		done:     make(chan struct{}),
		reporter: reporter,
		log:      log,
	}
	go s.writeLoop()
	return s
}

// SendPositionUpdate queues an update. It returns a TransportError wrapping
// ErrQueueFull or ErrClosed when the update cannot be queued.
func (s *AsyncSender) SendPositionUpdate(x, y, z float32) error {
	if s.closed.Load() {
		return &TransportError{Op: "enqueue", Peer: s.conn.Peer(), Err: ErrClosed}
	}

	s.seq++
	payload := PositionUpdate{Seq: s.seq, X: x, Y: y, Z: z}.Marshal()

	select {
	case s.queue <- payload:
		return nil
	default:
		return &TransportError{Op: "enqueue", Peer: s.conn.Peer(), Err: ErrQueueFull}
	}
}

func (s *AsyncSender) writeLoop() {
	defer close(s.done)

	for payload := range s.queue {
		if err := s.conn.Write(payload); err != nil {
			s.failed.Add(1)
			terr := &TransportError{Op: "write", Peer: s.conn.Peer(), Err: err}
			if s.reporter != nil {
				s.reporter.Report(terr)
			} else {
				s.log.Warn("position update lost", "err", terr)
			}
			continue
		}
		s.written.Add(1)
	}
}

// Close flushes queued updates and closes the connection
func (s *AsyncSender) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.queue)
	<-s.done
	return s.conn.Close()
}

// Written returns how many updates reached the socket
func (s *AsyncSender) Written() uint64 {
	return s.written.Load()
}

// Failed returns how many writes failed
func (s *AsyncSender) Failed() uint64 {
	return s.failed.Load()
}
