package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var errUnknownModalButton = fmt.Errorf("%w: button not offered by modal", ErrInvalidAction)

// DefaultModalButtons is used when a modal is shown without buttons.
var DefaultModalButtons = []string{"Close"}

// ModalResult is passed to the confirm callback.
type ModalResult struct {
	ModalID string         `json:"modal_id"`
	Button  string         `json:"button"`
	Values  map[string]any `json:"values,omitempty"`
}

// ConfirmFunc runs when a non-dismissal button closes a modal.
type ConfirmFunc func(ctx context.Context, result ModalResult) error

// ModalDescriptor is the single modal slot. Body is an opaque display payload.
type ModalDescriptor struct {
	ID      string   `json:"id,omitempty"`
	Open    bool     `json:"open"`
	Title   string   `json:"title,omitempty"`
	Body    any      `json:"body,omitempty"`
	Buttons []string `json:"buttons,omitempty"`
}

// IsDismissal reports whether label closes a modal without confirming.
func IsDismissal(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cancel", "close":
		return true
	default:
		return false
	}
}

// ModalOptions configures a ModalChannel.
type ModalOptions struct {
	NewID     func() string
	Publisher Publisher
	Telemetry Telemetry
}

// ModalChannel holds at most one open modal. A later Show replaces the
// current modal; the confirm callback fires at most once per open modal.
type ModalChannel struct {
	mu        sync.Mutex
	current   ModalDescriptor
	onConfirm ConfirmFunc
	newID     func() string
	publisher Publisher
	telemetry Telemetry
}

// NewModalChannel builds a closed modal channel.
func NewModalChannel(opts ModalOptions) *ModalChannel {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &ModalChannel{
		newID:     newID,
		publisher: normalizePublisher(opts.Publisher),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Show opens a modal, replacing any open one, and returns its id.
func (m *ModalChannel) Show(ctx context.Context, title string, body any, buttons []string, onConfirm ConfirmFunc) string {
	if len(buttons) == 0 {
		buttons = DefaultModalButtons
	}
	descriptor := ModalDescriptor{
		ID:      m.newID(),
		Open:    true,
		Title:   title,
		Body:    body,
		Buttons: append([]string(nil), buttons...),
	}

	m.mu.Lock()
	replaced := m.current
	m.current = descriptor
	m.onConfirm = onConfirm
	m.mu.Unlock()

	if replaced.Open {
		m.publisher.Publish(ctx, newEvent(EventModalClosed, map[string]any{"id": replaced.ID, "reason": "replaced"}))
	}
	m.publisher.Publish(ctx, newEvent(EventModalOpened, descriptor))
	m.telemetry.Record(ctx, "shell.modal.show", map[string]any{
		"id":      descriptor.ID,
		"title":   title,
		"buttons": len(descriptor.Buttons),
	})
	return descriptor.ID
}

// Current returns a copy of the modal slot.
func (m *ModalChannel) Current() ModalDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := m.current
	current.Buttons = append([]string(nil), m.current.Buttons...)
	return current
}

// Press closes the modal identified by modalID through button. The confirm
// callback runs after the slot is cleared, and only for non-dismissal
// buttons. Presses addressed to a modal that is no longer open are ignored.
func (m *ModalChannel) Press(ctx context.Context, modalID, button string, values map[string]any) error {
	m.mu.Lock()
	if !m.current.Open || m.current.ID != modalID {
		m.mu.Unlock()
		return nil
	}
	if !containsLabel(m.current.Buttons, button) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", errUnknownModalButton, button)
	}
	onConfirm := m.onConfirm
	m.current = ModalDescriptor{}
	m.onConfirm = nil
	m.mu.Unlock()

	m.publisher.Publish(ctx, newEvent(EventModalClosed, map[string]any{"id": modalID, "button": button}))
	if IsDismissal(button) || onConfirm == nil {
		return nil
	}
	m.telemetry.Record(ctx, "shell.modal.confirm", map[string]any{"id": modalID, "button": button})
	return onConfirm(ctx, ModalResult{ModalID: modalID, Button: button, Values: values})
}

// Dismiss closes the modal identified by modalID without confirming, as a
// backdrop click does. Stale ids are ignored.
func (m *ModalChannel) Dismiss(ctx context.Context, modalID string) {
	m.mu.Lock()
	if !m.current.Open || (modalID != "" && m.current.ID != modalID) {
		m.mu.Unlock()
		return
	}
	id := m.current.ID
	m.current = ModalDescriptor{}
	m.onConfirm = nil
	m.mu.Unlock()

	m.publisher.Publish(ctx, newEvent(EventModalClosed, map[string]any{"id": id, "reason": "dismissed"}))
}

// Hide closes whatever modal is open without confirming.
func (m *ModalChannel) Hide(ctx context.Context) {
	m.Dismiss(ctx, "")
}

func containsLabel(labels []string, label string) bool {
	for _, candidate := range labels {
		if candidate == label {
			return true
		}
	}
	return false
}
