package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// SetSectionInput selects the active section.
type SetSectionInput struct {
	Section string `json:"section"`
}

type sectionService interface {
	SetActiveSection(ctx context.Context, id string) shell.SectionID
}

// SetSectionCommand switches the visible panel. Unknown ids fall back to the
// default section instead of failing.
type SetSectionCommand struct {
	service sectionService
	opts    Options
}

// NewSetSectionCommand creates the command.
func NewSetSectionCommand(service sectionService, opts Options) *SetSectionCommand {
	return &SetSectionCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[SetSectionInput] = (*SetSectionCommand)(nil)

// Execute validates the payload and switches sections.
func (c *SetSectionCommand) Execute(ctx context.Context, msg SetSectionInput) error {
	if c.service == nil {
		return errors.New("section command requires shell")
	}
	if err := c.opts.Validator.Validate(shell.SchemaSection, msg); err != nil {
		return invalid(err)
	}
	active := c.service.SetActiveSection(ctx, msg.Section)
	c.opts.Telemetry.Record(ctx, "shell.command.section", map[string]any{
		"requested": msg.Section,
		"active":    string(active),
	})
	return nil
}

// SearchInput is a header search query.
type SearchInput struct {
	Query string `json:"query"`
}

type searchService interface {
	Search(ctx context.Context, query string)
}

// SearchCommand forwards header searches.
type SearchCommand struct {
	service searchService
	opts    Options
}

// NewSearchCommand creates the command.
func NewSearchCommand(service searchService, opts Options) *SearchCommand {
	return &SearchCommand{service: service, opts: opts.normalize()}
}

var _ gocommand.Commander[SearchInput] = (*SearchCommand)(nil)

// Execute runs the search. Blank queries are accepted and ignored.
func (c *SearchCommand) Execute(ctx context.Context, msg SearchInput) error {
	if c.service == nil {
		return errors.New("search command requires shell")
	}
	query := strings.TrimSpace(msg.Query)
	if query == "" {
		return nil
	}
	c.service.Search(ctx, query)
	c.opts.Telemetry.Record(ctx, "shell.command.search", map[string]any{"length": len(query)})
	return nil
}
