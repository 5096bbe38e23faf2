package shell

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NotificationKind classifies a toast message.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindWarning NotificationKind = "warning"
	KindInfo    NotificationKind = "info"
)

const (
	defaultNotificationTimeout  = 5 * time.Second
	defaultNotificationCapacity = 50
)

// ParseNotificationKind normalizes a kind name; unknown kinds become info.
func ParseNotificationKind(value string) NotificationKind {
	switch kind := NotificationKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return kind
	default:
		return KindInfo
	}
}

// Notification is a transient toast message.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationOptions configures a NotificationChannel.
type NotificationOptions struct {
	// Timeout is the display time before a notification expires. Zero uses
	// five seconds, a negative value disables expiry.
	Timeout time.Duration
	// Capacity bounds the queue; the oldest entry is evicted on overflow.
	// Zero uses 50, a negative value leaves the queue unbounded.
	Capacity  int
	Now       func() time.Time
	NewID     func() string
	Publisher Publisher
	Telemetry Telemetry
}

type notificationEntry struct {
	note  Notification
	timer *time.Timer
}

// NotificationChannel is the shared queue of toast messages.
type NotificationChannel struct {
	mu        sync.Mutex
	entries   *orderedmap.OrderedMap[string, *notificationEntry]
	timeout   time.Duration
	capacity  int
	now       func() time.Time
	newID     func() string
	publisher Publisher
	telemetry Telemetry
}

// NewNotificationChannel builds an empty channel.
func NewNotificationChannel(opts NotificationOptions) *NotificationChannel {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultNotificationTimeout
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = defaultNotificationCapacity
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &NotificationChannel{
		entries:   orderedmap.New[string, *notificationEntry](),
		timeout:   timeout,
		capacity:  capacity,
		now:       now,
		newID:     newID,
		publisher: normalizePublisher(opts.Publisher),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Show appends a notification and returns its id. It never blocks on
// listeners; expiry runs on its own timer.
func (c *NotificationChannel) Show(ctx context.Context, kind NotificationKind, title, message string) string {
	note := Notification{
		ID:        c.newID(),
		Kind:      ParseNotificationKind(string(kind)),
		Title:     title,
		Message:   message,
		CreatedAt: c.now(),
	}
	entry := &notificationEntry{note: note}

	c.mu.Lock()
	c.entries.Set(note.ID, entry)
	if c.timeout > 0 {
		id := note.ID
		entry.timer = time.AfterFunc(c.timeout, func() {
			c.expire(id)
		})
	}
	evicted := c.evictLocked()
	c.mu.Unlock()

	for _, old := range evicted {
		c.publisher.Publish(ctx, newEvent(EventNotificationRemoved, old))
	}
	c.publisher.Publish(ctx, newEvent(EventNotificationAdded, note))
	c.telemetry.Record(ctx, "shell.notification.show", map[string]any{
		"id":   note.ID,
		"kind": string(note.Kind),
	})
	return note.ID
}

// Remove drops the notification with id. Unknown ids are ignored.
func (c *NotificationChannel) Remove(ctx context.Context, id string) bool {
	c.mu.Lock()
	entry, ok := c.entries.Delete(id)
	if ok && entry.timer != nil {
		entry.timer.Stop()
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	c.publisher.Publish(ctx, newEvent(EventNotificationRemoved, entry.note))
	return true
}

// List returns the queued notifications in insertion order.
func (c *NotificationChannel) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value.note)
	}
	return out
}

// Len reports the queue length.
func (c *NotificationChannel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Close stops every pending expiry timer and empties the queue.
func (c *NotificationChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.timer != nil {
			pair.Value.timer.Stop()
		}
	}
	c.entries = orderedmap.New[string, *notificationEntry]()
}

func (c *NotificationChannel) expire(id string) {
	c.Remove(context.Background(), id)
}

func (c *NotificationChannel) evictLocked() []Notification {
	if c.capacity < 0 {
		return nil
	}
	var evicted []Notification
	for c.entries.Len() > c.capacity {
		oldest := c.entries.Oldest()
		if oldest.Value.timer != nil {
			oldest.Value.timer.Stop()
		}
		c.entries.Delete(oldest.Key)
		evicted = append(evicted, oldest.Value.note)
	}
	return evicted
}
