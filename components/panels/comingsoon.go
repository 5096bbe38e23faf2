package panels

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// ComingSoonPanel renders the placeholder of sections that are announced
// but not built. One instance serves every such section.
type ComingSoonPanel struct {
	deps Deps
}

// NewComingSoonPanel builds the shared placeholder panel.
func NewComingSoonPanel(deps Deps) *ComingSoonPanel {
	return &ComingSoonPanel{deps: deps}
}

func (p *ComingSoonPanel) Render(_ context.Context, view shell.View) (shell.PanelData, error) {
	placeholder := view.Section.Placeholder
	if placeholder == nil {
		placeholder = &shell.Placeholder{
			Title:       view.Section.LabelForLocale(view.Viewer.Locale),
			Description: "This section is under development.",
		}
	}
	return shell.PanelData{
		"title":       placeholder.Title,
		"placeholder": placeholder,
	}, nil
}

// HandleAction supports notify-me.
func (p *ComingSoonPanel) HandleAction(ctx context.Context, action shell.Action) error {
	if action.Name != "notify-me" {
		return fmt.Errorf("%w: %s on placeholder", shell.ErrUnknownAction, action.Name)
	}
	title := action.Param("title")
	if title == "" {
		title = "this feature"
	}
	p.deps.notify(ctx, shell.KindInfo, "Notification Set",
		fmt.Sprintf("We'll let you know when %s is ready.", title))
	return nil
}
