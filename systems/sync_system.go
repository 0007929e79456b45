package systems

import (
	"fmt"
	"log/slog"
)

// PositionSender delivers a position update to the remote peer. Calls must
// not block the frame loop.
type PositionSender interface {
	SendPositionUpdate(x, y, z float32) error
}

// ErrorReporter receives failures the frame loop recovers from
type ErrorReporter interface {
	Report(err error)
}

// SyncSystem mirrors the cube's position to the peer. It sends at most one
// update per frame, and only for frames in which the position changed.
type SyncSystem struct {
	transform *TransformSystem
	sender    PositionSender
	reporter  ErrorReporter
	log       *slog.Logger

	sent   uint64
	failed uint64
}

// NewSyncSystem creates a sync system. A nil reporter drops send errors
// after logging them.
func NewSyncSystem(transform *TransformSystem, sender PositionSender, reporter ErrorReporter, log *slog.Logger) *SyncSystem {
	if log == nil {
		log = slog.Default()
	}
	return &SyncSystem{
		transform: transform,
		sender:    sender,
		reporter:  reporter,
		log:       log,
	}
}

// Sync runs once per frame, after all of the frame's input is dispatched.
// Several moves within one frame collapse into one update carrying the
// final position. A failed send is reported and not retried.
func (s *SyncSystem) Sync() {
	if !s.transform.TakeDirty() {
		return
	}

	p := s.transform.Position()
	s.log.Debug("sending cube moved", "x", p.X(), "y", p.Y(), "z", p.Z())

	if err := s.sender.SendPositionUpdate(p.X(), p.Y(), p.Z()); err != nil {
		s.failed++
		err = fmt.Errorf("send position (%g, %g, %g): %w", p.X(), p.Y(), p.Z(), err)
		if s.reporter != nil {
			s.reporter.Report(err)
		} else {
			s.log.Warn("position update dropped", "err", err)
		}
		return
	}
	s.sent++
}

// Sent returns the number of updates handed to the sender successfully
func (s *SyncSystem) Sent() uint64 {
	return s.sent
}

// Failed returns the number of updates the sender rejected
func (s *SyncSystem) Failed() uint64 {
	return s.failed
}
