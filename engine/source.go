package engine

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"cubeview/systems"
)

// QueueSource is an event source fed by Push. Each poll drains the queue.
type QueueSource struct {
	pending []systems.Event
}

// Push queues events for the next poll
func (q *QueueSource) Push(events ...systems.Event) {
	q.pending = append(q.pending, events...)
}

// Poll returns the queued events and empties the queue
func (q *QueueSource) Poll() iter.Seq[systems.Event] {
	batch := q.pending
	q.pending = nil
	return slices.Values(batch)
}

// ScriptSource replays a fixed list of frames, one per poll. After the last
// frame every poll is empty.
type ScriptSource struct {
	frames [][]systems.Event
	next   int
}

// NewScriptSource creates a source from pre-built frames
func NewScriptSource(frames [][]systems.Event) *ScriptSource {
	return &ScriptSource{frames: frames}
}

// Poll returns the next scripted frame
func (s *ScriptSource) Poll() iter.Seq[systems.Event] {
	if s.next >= len(s.frames) {
		return func(func(systems.Event) bool) {}
	}
	frame := s.frames[s.next]
	s.next++
	return slices.Values(frame)
}

// Done reports whether every scripted frame has been polled
func (s *ScriptSource) Done() bool {
	return s.next >= len(s.frames)
}

// ParseScript reads a headless input script. Frames are separated by ';'
// and events within a frame by ','. Events are key names (press edge),
// "release:<key>", "repeat:<key>", "resize:<w>x<h>" and "close".
// An empty frame is allowed: "right;;up" has three frames.
func ParseScript(script string) ([][]systems.Event, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var frames [][]systems.Event
	for i, rawFrame := range strings.Split(script, ";") {
		frame := []systems.Event{}
		for _, token := range strings.Split(rawFrame, ",") {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			ev, err := parseScriptEvent(token)
			if err != nil {
				return nil, fmt.Errorf("script frame %d: %w", i, err)
			}
			frame = append(frame, ev)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func parseScriptEvent(token string) (systems.Event, error) {
	kind, arg, hasArg := strings.Cut(token, ":")
	if !hasArg {
		if kind == "close" {
			return systems.CloseRequestedEvent{}, nil
		}
		key, ok := systems.ParseKey(kind)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", kind)
		}
		return systems.KeyPressEvent{Key: key}, nil
	}

	switch kind {
	case "release", "repeat":
		key, ok := systems.ParseKey(arg)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", arg)
		}
		if kind == "release" {
			return systems.KeyReleaseEvent{Key: key}, nil
		}
		return systems.KeyPressEvent{Key: key, Repeat: true}, nil
	case "resize":
		ws, hs, ok := strings.Cut(arg, "x")
		if !ok {
			return nil, fmt.Errorf("bad resize %q, want <w>x<h>", arg)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, fmt.Errorf("bad resize width %q: %w", ws, err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, fmt.Errorf("bad resize height %q: %w", hs, err)
		}
		return systems.ResizeEvent{Width: w, Height: h}, nil
	}
	return nil, fmt.Errorf("unknown event %q", token)
}
