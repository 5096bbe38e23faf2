package shell

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeSelection carries resolved theme details for one variant.
type ThemeSelection struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant"`
	Tokens     map[string]string `json:"tokens,omitempty"`
	ChartTheme string            `json:"chart_theme,omitempty"`
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style string with keys sorted.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	return &cloned
}

// DefaultLightTheme is the light token set.
func DefaultLightTheme() *ThemeSelection {
	return &ThemeSelection{
		Name:    "shell",
		Variant: "light",
		Tokens: map[string]string{
			"color-bg":        "#f9fafb",
			"color-surface":   "#ffffff",
			"color-text":      "#1f2937",
			"color-muted":     "#6b7280",
			"color-primary":   "#3b82f6",
			"color-secondary": "#8b5cf6",
			"color-border":    "#e5e7eb",
		},
		ChartTheme: types.ThemeWesteros,
	}
}

// DefaultDarkTheme is the dark token set.
func DefaultDarkTheme() *ThemeSelection {
	return &ThemeSelection{
		Name:    "shell",
		Variant: "dark",
		Tokens: map[string]string{
			"color-bg":        "#111827",
			"color-surface":   "#1f2937",
			"color-text":      "#f9fafb",
			"color-muted":     "#9ca3af",
			"color-primary":   "#60a5fa",
			"color-secondary": "#a78bfa",
			"color-border":    "#374151",
		},
		ChartTheme: types.ThemeChalk,
	}
}

// ThemeOptions configures a ThemeChannel.
type ThemeOptions struct {
	DarkMode  bool
	Light     *ThemeSelection
	Dark      *ThemeSelection
	Store     ThemeStore
	Publisher Publisher
	Telemetry Telemetry
}

// ThemeChannel holds the shared light/dark flag.
type ThemeChannel struct {
	mu        sync.RWMutex
	dark      bool
	light     *ThemeSelection
	darkSel   *ThemeSelection
	store     ThemeStore
	publisher Publisher
	telemetry Telemetry
}

// NewThemeChannel builds the channel. A stored preference wins over
// opts.DarkMode when a store is configured.
func NewThemeChannel(ctx context.Context, opts ThemeOptions) *ThemeChannel {
	light := opts.Light
	if light == nil {
		light = DefaultLightTheme()
	}
	dark := opts.Dark
	if dark == nil {
		dark = DefaultDarkTheme()
	}
	channel := &ThemeChannel{
		dark:      opts.DarkMode,
		light:     light,
		darkSel:   dark,
		store:     opts.Store,
		publisher: normalizePublisher(opts.Publisher),
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
	if channel.store != nil {
		stored, ok, err := channel.store.LoadDarkMode(ctx)
		switch {
		case err != nil:
			channel.telemetry.Record(ctx, "shell.theme.load_failed", map[string]any{
				"level": "warn",
				"error": err.Error(),
			})
		case ok:
			channel.dark = stored
		}
	}
	return channel
}

// IsDarkMode reports the current flag.
func (t *ThemeChannel) IsDarkMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Toggle flips the flag and returns the new value. Persistence failures are
// recorded but do not undo the toggle.
func (t *ThemeChannel) Toggle(ctx context.Context) bool {
	t.mu.Lock()
	t.dark = !t.dark
	dark := t.dark
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.SaveDarkMode(ctx, dark); err != nil {
			t.telemetry.Record(ctx, "shell.theme.save_failed", map[string]any{
				"level": "warn",
				"error": err.Error(),
			})
		}
	}
	t.publisher.Publish(ctx, newEvent(EventThemeToggled, map[string]any{"dark_mode": dark}))
	t.telemetry.Record(ctx, "shell.theme.toggle", map[string]any{"dark_mode": dark})
	return dark
}

// Selection returns a copy of the active variant.
func (t *ThemeChannel) Selection() *ThemeSelection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.dark {
		return cloneThemeSelection(t.darkSel)
	}
	return cloneThemeSelection(t.light)
}
