package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

type layoutService interface {
	Layout(ctx context.Context, viewer shell.ViewerContext) (shell.Layout, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[shell.ViewerContext, shell.Layout] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer shell.ViewerContext) (shell.Layout, error) {
	return q.service.Layout(ctx, viewer)
}
