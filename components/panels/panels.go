// Package panels implements the section panels of the admin shell.
package panels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

const (
	defaultRealtimeInterval = 2 * time.Second
	maxAlerts               = 10
)

// Deps are the shared services handed to every panel.
type Deps struct {
	Store            *Store
	Channels         shell.Channels
	Exporter         *export.Pipeline
	Charts           *Charts
	Publisher        shell.Publisher
	Telemetry        shell.Telemetry
	RealtimeInterval time.Duration
}

func (d Deps) normalize() (Deps, error) {
	if d.Channels.Notifications == nil || d.Channels.Modal == nil || d.Channels.Theme == nil {
		return d, errors.New("panels: shell channels are required")
	}
	if d.Exporter == nil {
		return d, errors.New("panels: export pipeline is required")
	}
	if d.Store == nil {
		d.Store = NewStore(StoreOptions{})
	}
	if d.Charts == nil {
		d.Charts = NewCharts()
	}
	if d.Publisher == nil {
		d.Publisher = shell.PublisherFunc(func(context.Context, shell.Event) {})
	}
	if d.Telemetry == nil {
		d.Telemetry = noopTelemetry{}
	}
	if d.RealtimeInterval <= 0 {
		d.RealtimeInterval = defaultRealtimeInterval
	}
	return d, nil
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// Build returns a panel for every known section.
func Build(deps Deps) (map[shell.SectionID]shell.Panel, error) {
	deps, err := deps.normalize()
	if err != nil {
		return nil, err
	}
	comingSoon := NewComingSoonPanel(deps)
	return map[shell.SectionID]shell.Panel{
		shell.SectionDashboard:     NewDashboardPanel(deps),
		shell.SectionRealtime:      NewRealtimePanel(deps),
		shell.SectionAnalytics:     NewAnalyticsPanel(deps),
		shell.SectionCRM:           NewCRMPanel(deps),
		shell.SectionOrders:        NewOrdersPanel(deps),
		shell.SectionFinance:       NewFinancePanel(deps),
		shell.SectionMarketing:     comingSoon,
		shell.SectionHR:            comingSoon,
		shell.SectionProjects:      comingSoon,
		shell.SectionCommunication: comingSoon,
		shell.SectionSecurity:      NewSecurityPanel(deps),
		shell.SectionIntegrations:  NewIntegrationsPanel(deps),
		shell.SectionSettings:      NewSettingsPanel(deps),
	}, nil
}

// notify is shorthand for the shared notification channel.
func (d Deps) notify(ctx context.Context, kind shell.NotificationKind, title, message string) {
	d.Channels.Notifications.Show(ctx, kind, title, message)
}

// exportDataset runs an export and reports the outcome through a
// notification. Empty datasets are a warning, not an error.
func (d Deps) exportDataset(ctx context.Context, req export.Request, subject string) error {
	receipt, err := d.Exporter.Export(ctx, req)
	switch {
	case export.IsNoData(err):
		d.notify(ctx, shell.KindWarning, "No Data", "There is no data to export.")
		return nil
	case err != nil:
		d.notify(ctx, shell.KindError, "Export Failed", err.Error())
		return err
	}
	d.notify(ctx, shell.KindSuccess, "Export Complete",
		fmt.Sprintf("%s exported to %s successfully.", subject, formatLabel(req.Format)))
	d.Publisher.Publish(ctx, shell.Event{
		Type:      shell.EventExportReady,
		Payload:   map[string]any{"tag": req.Tag, "format": string(req.Format), "receipt": receipt},
		Timestamp: time.Now(),
	})
	return nil
}

func (d Deps) panelUpdated(ctx context.Context, section shell.SectionID) {
	d.Publisher.Publish(ctx, shell.Event{Type: shell.EventPanelUpdated, Section: section, Timestamp: time.Now()})
}

func formatLabel(format export.Format) string {
	if format == export.FormatPDF {
		return "PDF"
	}
	return strings.ToUpper(string(format))
}

func parseExportFormat(action shell.Action) (export.Format, error) {
	value := action.Param("format")
	if value == "" {
		value = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shell.ErrInvalidAction, err)
	}
	return format, nil
}

func chartTheme(view shell.View) string {
	if view.Theme != nil {
		return view.Theme.ChartTheme
	}
	return ""
}

func stat(label, value, change string) map[string]any {
	return map[string]any{"label": label, "value": value, "change": change}
}

func table(title string, records []*export.Record) map[string]any {
	out := map[string]any{"title": title, "columns": []string{}, "rows": [][]string{}}
	doc, err := export.BuildPrintDocument(records, title, time.Time{})
	if err != nil {
		return out
	}
	columns := make([]string, len(doc.Columns))
	for i, col := range doc.Columns {
		columns[i] = col.Label
	}
	out["columns"] = columns
	out["rows"] = doc.Rows
	return out
}

func unknownAction(section shell.SectionID, action shell.Action) error {
	return fmt.Errorf("%w: %s on %s", shell.ErrUnknownAction, action.Name, section)
}

// tabs tracks the selected tab of a tabbed panel.
type tabs struct {
	mu     sync.RWMutex
	ids    []string
	active string
}

func newTabs(ids ...string) *tabs {
	return &tabs{ids: ids, active: ids[0]}
}

func (t *tabs) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

func (t *tabs) Select(id string) error {
	for _, candidate := range t.ids {
		if candidate == id {
			t.mu.Lock()
			t.active = id
			t.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("panels: unknown tab %q", id)
}

func (t *tabs) List() []string {
	return append([]string(nil), t.ids...)
}
