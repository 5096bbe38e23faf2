package shell

import (
	"context"
	"errors"
)

// PanelData is the opaque display payload a panel renders.
type PanelData map[string]any

// View is the context handed to a panel when it renders.
type View struct {
	Section  Section
	Viewer   ViewerContext
	DarkMode bool
	Theme    *ThemeSelection
}

// ViewerContext captures the active user and locale.
type ViewerContext struct {
	UserID string `json:"user_id,omitempty"`
	Locale string `json:"locale,omitempty"`
}

// Panel renders the content of one section.
type Panel interface {
	Render(ctx context.Context, view View) (PanelData, error)
}

// PanelFunc adapts a function into a Panel.
type PanelFunc func(ctx context.Context, view View) (PanelData, error)

// Render calls f.
func (f PanelFunc) Render(ctx context.Context, view View) (PanelData, error) {
	return f(ctx, view)
}

// Mounter is implemented by panels that hold resources while visible, such as
// scheduled tasks or rendered charts. Mount runs when the panel becomes
// active, Unmount before another panel replaces it.
type Mounter interface {
	Mount(ctx context.Context) error
	Unmount(ctx context.Context) error
}

// Action is a user intent addressed to a panel.
type Action struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Param returns a string parameter or "".
func (a Action) Param(key string) string {
	v, _ := a.Params[key].(string)
	return v
}

// ActionHandler is implemented by panels that accept actions.
type ActionHandler interface {
	HandleAction(ctx context.Context, action Action) error
}

// ErrUnknownAction is returned by panels for actions they do not handle.
var ErrUnknownAction = errors.New("shell: unknown panel action")

// ErrInvalidAction is returned by panels for actions with unusable params.
var ErrInvalidAction = errors.New("shell: invalid panel action")
