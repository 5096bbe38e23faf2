package panels

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersCreateThroughModal(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("create", nil)))
	modal := f.deps.Channels.Modal.Current()
	require.True(t, modal.Open)
	assert.Equal(t, "Add New Order", modal.Title)
	assert.Equal(t, []string{"Create Order", "Cancel"}, modal.Buttons)

	err := f.deps.Channels.Modal.Press(ctx, modal.ID, "Create Order", map[string]any{
		"customer": "Ann Lee",
		"product":  "iPad Air",
		"amount":   "1,200.50",
		"status":   "Processing",
	})
	require.NoError(t, err)

	orders := f.deps.Store.Orders()
	require.Len(t, orders, 6)
	assert.Equal(t, "#ORD-0006", orders[0].ID)
	assert.Equal(t, "Processing", orders[0].Status)
	assert.Equal(t, "1,200.50", orders[0].Record().Value("amount"))
	assert.Equal(t, []string{"Order Created"}, f.titles())
	assert.Contains(t, f.events.types(), shell.EventPanelUpdated)
}

func TestOrdersCreateIgnoresIncompleteForm(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("create", nil)))
	modal := f.deps.Channels.Modal.Current()
	require.NoError(t, f.deps.Channels.Modal.Press(ctx, modal.ID, "Create Order", map[string]any{"customer": "Ann"}))

	assert.Len(t, f.deps.Store.Orders(), 5)
	assert.Empty(t, f.titles())
	assert.False(t, f.deps.Channels.Modal.Current().Open)
}

func TestOrdersEditThroughModal(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("edit", map[string]any{"id": "#ORD-0003"})))
	modal := f.deps.Channels.Modal.Current()
	assert.Equal(t, "Edit Order", modal.Title)

	require.NoError(t, f.deps.Channels.Modal.Press(ctx, modal.ID, "Update Order", map[string]any{
		"customer": "Mike Wilson",
		"product":  "iPad Air",
		"amount":   "650",
		"status":   "Delivered",
	}))

	order, ok := f.deps.Store.Order("#ORD-0003")
	require.True(t, ok)
	assert.Equal(t, "Delivered", order.Status)
	assert.Equal(t, "650.00", order.Record().Value("amount"))
	assert.Equal(t, []string{"Order Updated"}, f.titles())
}

func TestOrdersDeleteRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("delete", map[string]any{"id": "#ORD-0002"})))
	modal := f.deps.Channels.Modal.Current()
	require.NoError(t, f.deps.Channels.Modal.Press(ctx, modal.ID, "Cancel", nil))
	assert.Len(t, f.deps.Store.Orders(), 5)

	require.NoError(t, panel.HandleAction(ctx, action("delete", map[string]any{"id": "#ORD-0002"})))
	modal = f.deps.Channels.Modal.Current()
	require.NoError(t, f.deps.Channels.Modal.Press(ctx, modal.ID, "Yes, delete it!", nil))

	_, ok := f.deps.Store.Order("#ORD-0002")
	assert.False(t, ok)
	assert.Equal(t, []string{"Order Deleted"}, f.titles())
}

func TestOrdersUnknownOrder(t *testing.T) {
	panel := NewOrdersPanel(newFixture(t).deps)
	err := panel.HandleAction(context.Background(), action("view", map[string]any{"id": "#ORD-9999"}))
	require.Error(t, err)
}

func TestOrdersFilter(t *testing.T) {
	panel := NewOrdersPanel(newFixture(t).deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("filter", map[string]any{"search": "iphone"})))
	filtered := panel.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "#ORD-0002", filtered[0].ID)

	require.NoError(t, panel.HandleAction(ctx, action("filter", map[string]any{"search": "", "status": "shipped"})))
	filtered = panel.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Mike Wilson", filtered[0].Customer)
}

func TestOrdersExport(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)

	require.NoError(t, panel.HandleAction(context.Background(), action("export", map[string]any{"format": "csv"})))

	assert.Equal(t, []string{"virotech-orders.csv"}, f.delivery.names())
	note := f.lastNotification(t)
	assert.Equal(t, shell.KindSuccess, note.Kind)
	assert.Equal(t, "Orders data exported to CSV successfully.", note.Message)
	assert.Contains(t, f.events.types(), shell.EventExportReady)
}

func TestOrdersExportEmptySelectionWarns(t *testing.T) {
	f := newFixture(t)
	panel := NewOrdersPanel(f.deps)
	ctx := context.Background()

	require.NoError(t, panel.HandleAction(ctx, action("filter", map[string]any{"search": "no such order"})))
	require.NoError(t, panel.HandleAction(ctx, action("export", map[string]any{"format": "json"})))

	assert.Empty(t, f.delivery.names())
	note := f.lastNotification(t)
	assert.Equal(t, shell.KindWarning, note.Kind)
	assert.Equal(t, "No Data", note.Title)
	assert.NotContains(t, f.events.types(), shell.EventExportReady)
}

func TestOrdersExportFailureIsReported(t *testing.T) {
	f := newFixture(t)
	f.delivery.err = errors.New("disk full")
	panel := NewOrdersPanel(f.deps)

	err := panel.HandleAction(context.Background(), action("export", nil))
	require.Error(t, err)
	note := f.lastNotification(t)
	assert.Equal(t, shell.KindError, note.Kind)
	assert.Equal(t, "Export Failed", note.Title)
}

func TestOrdersRejectsUnknownFormat(t *testing.T) {
	panel := NewOrdersPanel(newFixture(t).deps)
	err := panel.HandleAction(context.Background(), action("export", map[string]any{"format": "xlsx"}))
	require.ErrorIs(t, err, shell.ErrInvalidAction)
}

func TestOrdersRender(t *testing.T) {
	panel := NewOrdersPanel(newFixture(t).deps)
	data, err := panel.Render(context.Background(), defaultView())
	require.NoError(t, err)

	tables, ok := data["tables"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, tables, 1)
	rows, ok := tables[0]["rows"].([][]string)
	require.True(t, ok)
	assert.Len(t, rows, 5)
}

func TestOrdersUnknownAction(t *testing.T) {
	panel := NewOrdersPanel(newFixture(t).deps)
	err := panel.HandleAction(context.Background(), action("archive", nil))
	assert.ErrorIs(t, err, shell.ErrUnknownAction)
}
