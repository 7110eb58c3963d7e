package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one ephemeral feedback toast.
type Message struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Text    string    `json:"text"`
	ShownAt time.Time `json:"shown_at"`
}

// Notifier holds at most one visible message. A new message pre-empts
// the current one instead of stacking, and every message expires on
// its own after the configured TTL unless dismissed first.
type Notifier struct {
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	current *Message
	timer   *time.Timer
}

func New(ttl time.Duration, logger *zap.Logger) *Notifier {
	return &Notifier{
		ttl:    ttl,
		logger: logger,
	}
}

// Publish replaces whatever is showing and arms the expiry timer.
func (n *Notifier) Publish(level Level, text string) Message {
	msg := Message{
		ID:      uuid.NewString(),
		Level:   level,
		Text:    text,
		ShownAt: time.Now(),
	}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &msg
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(msg.ID)
	})
	n.mu.Unlock()

	n.logger.Debug("Notification published",
		zap.String("level", string(level)),
		zap.String("text", text))
	return msg
}

// Current returns a copy of the visible message, or nil.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	msg := *n.current
	return &msg
}

// Dismiss clears the visible message if it still is the identified
// one. Dismissing a message that was already replaced is a no-op.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.ID == id {
		if n.timer != nil {
			n.timer.Stop()
		}
		n.current = nil
	}
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.ID == id {
		n.current = nil
	}
}
