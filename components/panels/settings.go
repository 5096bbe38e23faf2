package panels

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

var validate = validator.New()

// GeneralSettings holds company-wide preferences.
type GeneralSettings struct {
	CompanyName string `json:"companyName" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Timezone    string `json:"timezone" validate:"required"`
	Language    string `json:"language" validate:"required,oneof=en es fr de"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

// NotificationSettings toggles delivery channels.
type NotificationSettings struct {
	Email        bool `json:"email"`
	Push         bool `json:"push"`
	SMS          bool `json:"sms"`
	Marketing    bool `json:"marketing"`
	OrderUpdates bool `json:"orderUpdates"`
	SystemAlerts bool `json:"systemAlerts"`
}

// SecuritySettings are kept as strings because the form edits them as text.
type SecuritySettings struct {
	TwoFactorAuth  bool   `json:"twoFactorAuth"`
	SessionTimeout string `json:"sessionTimeout" validate:"required,numeric"`
	PasswordExpiry string `json:"passwordExpiry" validate:"required,numeric"`
	LoginAttempts  string `json:"loginAttempts" validate:"required,numeric"`
}

// APISettings configure the public API.
type APISettings struct {
	APIKey       string `json:"apiKey" validate:"required"`
	WebhookURL   string `json:"webhookUrl" validate:"omitempty,url"`
	RateLimiting bool   `json:"rateLimiting"`
	APIVersion   string `json:"apiVersion" validate:"required"`
}

// Settings is the full settings form.
type Settings struct {
	General       GeneralSettings      `json:"general" validate:"required"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security" validate:"required"`
	API           APISettings          `json:"api" validate:"required"`
}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			CompanyName: "ViroTech Enterprise",
			Email:       "admin@virotech.com",
			Timezone:    "UTC-5",
			Language:    "en",
			Currency:    "USD",
		},
		Notifications: NotificationSettings{
			Email: true, Push: true, SMS: false, Marketing: true, OrderUpdates: true, SystemAlerts: true,
		},
		Security: SecuritySettings{
			SessionTimeout: "30",
			PasswordExpiry: "90",
			LoginAttempts:  "5",
		},
		API: APISettings{
			APIKey:       "vt_sk_1234567890abcdef",
			WebhookURL:   "https://api.virotech.com/webhooks",
			RateLimiting: true,
			APIVersion:   "v2.1",
		},
	}
}

// ValidateSettings checks a settings form.
func ValidateSettings(s Settings) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return fmt.Errorf("panels: invalid settings: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// SettingsPanel edits a draft of the settings and commits it on save.
type SettingsPanel struct {
	deps Deps
	tabs *tabs

	mu    sync.RWMutex
	saved Settings
	draft Settings
}

// NewSettingsPanel builds the settings panel with factory defaults.
func NewSettingsPanel(deps Deps) *SettingsPanel {
	return &SettingsPanel{
		deps:  deps,
		tabs:  newTabs("general", "notifications", "security", "api"),
		saved: DefaultSettings(),
		draft: DefaultSettings(),
	}
}

// Saved returns the committed settings.
func (p *SettingsPanel) Saved() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.saved
}

// Draft returns the settings being edited.
func (p *SettingsPanel) Draft() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.draft
}

func (p *SettingsPanel) Render(context.Context, shell.View) (shell.PanelData, error) {
	p.mu.RLock()
	draft := p.draft
	dirty := draft != p.saved
	p.mu.RUnlock()
	return shell.PanelData{
		"title":    "Settings",
		"subtitle": "Manage your account and application preferences",
		"tab":      p.tabs.Active(),
		"tabs":     p.tabs.List(),
		"settings": draft,
		"dirty":    dirty,
	}, nil
}

// HandleAction supports tab, update, save and reset.
func (p *SettingsPanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "tab":
		return p.tabs.Select(action.Param("tab"))
	case "update":
		return p.update(action.Param("category"), action.Param("key"), action.Params["value"])
	case "save":
		p.mu.Lock()
		draft := p.draft
		if err := ValidateSettings(draft); err != nil {
			p.mu.Unlock()
			p.deps.notify(ctx, shell.KindError, "Invalid Settings", err.Error())
			return fmt.Errorf("%w: %w", shell.ErrInvalidAction, err)
		}
		p.saved = draft
		p.mu.Unlock()
		p.deps.notify(ctx, shell.KindSuccess, "Settings Saved", "Your settings have been successfully updated.")
		p.deps.panelUpdated(ctx, shell.SectionSettings)
		return nil
	case "reset":
		p.mu.Lock()
		p.saved = DefaultSettings()
		p.draft = DefaultSettings()
		p.mu.Unlock()
		p.deps.notify(ctx, shell.KindInfo, "Settings Reset", "All settings have been reset to default values.")
		p.deps.panelUpdated(ctx, shell.SectionSettings)
		return nil
	default:
		return unknownAction(shell.SectionSettings, action)
	}
}

// update changes one draft field. Values arrive as strings or booleans
// depending on the transport.
func (p *SettingsPanel) update(category, key string, value any) error {
	text := fmt.Sprint(value)
	flag := func() (bool, error) {
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return strconv.ParseBool(text)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	d := &p.draft
	var err error
	switch category + "." + key {
	case "general.companyName":
		d.General.CompanyName = text
	case "general.email":
		d.General.Email = text
	case "general.timezone":
		d.General.Timezone = text
	case "general.language":
		d.General.Language = text
	case "general.currency":
		d.General.Currency = text
	case "notifications.email":
		d.Notifications.Email, err = flag()
	case "notifications.push":
		d.Notifications.Push, err = flag()
	case "notifications.sms":
		d.Notifications.SMS, err = flag()
	case "notifications.marketing":
		d.Notifications.Marketing, err = flag()
	case "notifications.orderUpdates":
		d.Notifications.OrderUpdates, err = flag()
	case "notifications.systemAlerts":
		d.Notifications.SystemAlerts, err = flag()
	case "security.twoFactorAuth":
		d.Security.TwoFactorAuth, err = flag()
	case "security.sessionTimeout":
		d.Security.SessionTimeout = text
	case "security.passwordExpiry":
		d.Security.PasswordExpiry = text
	case "security.loginAttempts":
		d.Security.LoginAttempts = text
	case "api.apiKey":
		d.API.APIKey = text
	case "api.webhookUrl":
		d.API.WebhookURL = text
	case "api.rateLimiting":
		d.API.RateLimiting, err = flag()
	case "api.apiVersion":
		d.API.APIVersion = text
	default:
		return fmt.Errorf("%w: unknown setting %s.%s", shell.ErrInvalidAction, category, key)
	}
	if err != nil {
		return fmt.Errorf("%w: setting %s.%s: %w", shell.ErrInvalidAction, category, key, err)
	}
	return nil
}
