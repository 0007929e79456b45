package systems

import (
	"log/slog"
	"sync"
)

// MessageType defines different types of messages that can appear in the log
type MessageType int

const (
	// MessageTypeNormal is for status messages
	MessageTypeNormal MessageType = iota
	// MessageTypeAlert is for errors the viewer recovered from
	MessageTypeAlert
)

// Message is a single log line with its type
type Message struct {
	Text string
	Type MessageType
}

// MessageLog stores the status lines shown on screen. It implements
// ErrorReporter and is safe for use from the transport's writer goroutine.
type MessageLog struct {
	mu          sync.Mutex
	messages    []Message
	maxMessages int
	log         *slog.Logger
}

// NewMessageLog creates a new message log
func NewMessageLog(log *slog.Logger) *MessageLog {
	if log == nil {
		log = slog.Default()
	}
	return &MessageLog{
		messages:    []Message{},
		maxMessages: 100, // Store the last 100 messages
		log:         log,
	}
}

// Add adds a status message to the log
func (ml *MessageLog) Add(message string) {
	ml.add(Message{Text: message, Type: MessageTypeNormal})
	ml.log.Info(message)
}

// Report records a recovered error
func (ml *MessageLog) Report(err error) {
	if err == nil {
		return
	}
	ml.add(Message{Text: "Error: " + err.Error(), Type: MessageTypeAlert})
	ml.log.Warn("recovered error", "err", err)
}

func (ml *MessageLog) add(m Message) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, m)

	// Truncate if we have too many messages
	if len(ml.messages) > ml.maxMessages {
		ml.messages = ml.messages[len(ml.messages)-ml.maxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if n > len(ml.messages) {
		n = len(ml.messages)
	}

	result := make([]Message, n)
	for i := 0; i < n; i++ {
		result[i] = ml.messages[len(ml.messages)-1-i]
	}

	return result
}

// Errors returns how many alerts are currently held
func (ml *MessageLog) Errors() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	n := 0
	for _, m := range ml.messages {
		if m.Type == MessageTypeAlert {
			n++
		}
	}
	return n
}
