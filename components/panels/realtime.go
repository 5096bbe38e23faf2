package panels

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

var alertTypes = []string{"High CPU Usage", "Memory Warning", "Network Spike", "Disk Space Low"}

// SystemMetrics are the simulated host gauges, in percent.
type SystemMetrics struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Disk    float64 `json:"disk"`
	Network float64 `json:"network"`
}

// Alert is a raised system alert.
type Alert struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// RealtimePanel simulates live system monitoring. The ticker only runs while
// the panel is mounted and monitoring is on.
type RealtimePanel struct {
	deps     Deps
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	metrics    SystemMetrics
	alerts     []Alert
	monitoring bool
	mounted    bool
	task       *shell.Task
}

// NewRealtimePanel builds the monitor with its starting readings.
func NewRealtimePanel(deps Deps) *RealtimePanel {
	return &RealtimePanel{
		deps:       deps,
		interval:   deps.RealtimeInterval,
		now:        time.Now,
		metrics:    SystemMetrics{CPU: 45, Memory: 62, Disk: 78, Network: 34},
		monitoring: true,
	}
}

// Mount starts the ticker when monitoring is on.
func (p *RealtimePanel) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = true
	if p.monitoring {
		p.startLocked(ctx)
	}
	return nil
}

// Unmount stops the ticker and releases the charts.
func (p *RealtimePanel) Unmount(context.Context) error {
	p.mu.Lock()
	p.mounted = false
	task := p.task
	p.task = nil
	p.mu.Unlock()

	task.Stop()
	p.deps.Charts.Release(shell.SectionRealtime)
	return nil
}

func (p *RealtimePanel) startLocked(ctx context.Context) {
	if p.task != nil {
		return
	}
	p.task = shell.StartTask(ctx, p.interval, p.Tick)
}

// Running reports whether the ticker is active.
func (p *RealtimePanel) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.task != nil
}

// Tick drifts the gauges once and, one time in ten, raises an alert.
func (p *RealtimePanel) Tick(ctx context.Context) {
	store := p.deps.Store
	p.mu.Lock()
	p.metrics = SystemMetrics{
		CPU:     clamp(p.metrics.CPU+(store.float()-0.5)*10, 10, 90),
		Memory:  clamp(p.metrics.Memory+(store.float()-0.5)*8, 20, 95),
		Disk:    clamp(p.metrics.Disk+(store.float()-0.5)*5, 30, 95),
		Network: clamp(p.metrics.Network+(store.float()-0.5)*15, 5, 80),
	}
	var raised *Alert
	if store.float() < 0.1 {
		now := p.now()
		alert := Alert{
			ID:        now.UnixNano(),
			Type:      alertTypes[store.intn(len(alertTypes))],
			Severity:  severity(store.float, store.float),
			Timestamp: now.Format("3:04:05 PM"),
			Message:   "System metric exceeded threshold",
		}
		p.alerts = append([]Alert{alert}, p.alerts...)
		if len(p.alerts) > maxAlerts {
			p.alerts = p.alerts[:maxAlerts]
		}
		raised = &alert
	}
	p.mu.Unlock()

	p.deps.panelUpdated(ctx, shell.SectionRealtime)
	if raised != nil {
		p.deps.Telemetry.Record(ctx, "panels.realtime.alert", map[string]any{
			"level":    "warn",
			"type":     raised.Type,
			"severity": raised.Severity,
		})
	}
}

// severity draws high above 0.7, then medium above 0.4 on a second draw.
func severity(first, second func() float64) string {
	if first() > 0.7 {
		return "high"
	}
	if second() > 0.4 {
		return "medium"
	}
	return "low"
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Metrics returns the current readings.
func (p *RealtimePanel) Metrics() SystemMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

// Alerts returns the raised alerts, newest first.
func (p *RealtimePanel) Alerts() []Alert {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Alert(nil), p.alerts...)
}

// Render releases the previous charts before drawing the current readings.
func (p *RealtimePanel) Render(_ context.Context, view shell.View) (shell.PanelData, error) {
	p.deps.Charts.Release(shell.SectionRealtime)

	p.mu.Lock()
	metrics := p.metrics
	alerts := append([]Alert(nil), p.alerts...)
	monitoring := p.monitoring
	p.mu.Unlock()

	stats := p.deps.Store.Realtime()
	traffic := make([]float64, 20)
	labels := make([]string, 20)
	for i := range traffic {
		labels[i] = fmt.Sprintf("%ds", i)
		traffic[i] = float64(p.deps.Store.intn(100) + 50)
	}
	theme := chartTheme(view)
	trafficHTML, err := p.deps.Charts.Render(shell.SectionRealtime, "traffic", ChartSpec{
		Kind: ChartLine, Title: "Live Traffic", Labels: labels,
		Series: []Series{{Name: "Active Users", Values: traffic}},
	}, theme)
	if err != nil {
		return nil, err
	}
	performanceHTML, err := p.deps.Charts.Render(shell.SectionRealtime, "performance", ChartSpec{
		Kind: ChartPie, Title: "System Performance",
		Labels: []string{"CPU", "Memory", "Disk", "Network"},
		Series: []Series{{Name: "Usage", Values: []float64{metrics.CPU, metrics.Memory, metrics.Disk, metrics.Network}}},
	}, theme)
	if err != nil {
		return nil, err
	}

	alertRows := make([]*export.Record, 0, len(alerts))
	for _, alert := range alerts {
		alertRows = append(alertRows, export.NewRecord(
			export.F("type", alert.Type),
			export.F("severity", alert.Severity),
			export.F("timestamp", alert.Timestamp),
			export.F("message", alert.Message),
		))
	}

	return shell.PanelData{
		"title":      "Real-time Monitor",
		"subtitle":   "Live system metrics and traffic",
		"monitoring": monitoring,
		"metrics":    metrics,
		"stats": []map[string]any{
			stat("Active Users", groupInt(stats.ActiveUsers), ""),
			stat("Page Views", groupInt(stats.PageViews), ""),
			stat("Bounce Rate", fmt.Sprintf("%g%%", stats.BounceRate), ""),
			stat("Avg. Session", stats.AvgSessionDuration, ""),
			stat("CPU", fmt.Sprintf("%.0f%%", metrics.CPU), ""),
			stat("Memory", fmt.Sprintf("%.0f%%", metrics.Memory), ""),
			stat("Disk", fmt.Sprintf("%.0f%%", metrics.Disk), ""),
			stat("Network", fmt.Sprintf("%.0f%%", metrics.Network), ""),
		},
		"charts": []string{trafficHTML, performanceHTML},
		"tables": []map[string]any{table("Recent Alerts", alertRows)},
	}, nil
}

// HandleAction supports "toggle-monitoring" and "clear-alerts".
func (p *RealtimePanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "toggle-monitoring":
		p.mu.Lock()
		p.monitoring = !p.monitoring
		monitoring := p.monitoring
		var stop *shell.Task
		if monitoring && p.mounted {
			p.startLocked(ctx)
		} else if !monitoring {
			stop, p.task = p.task, nil
		}
		p.mu.Unlock()
		stop.Stop()
		if monitoring {
			p.deps.notify(ctx, shell.KindInfo, "Monitoring Resumed", "Real-time monitoring is running.")
		} else {
			p.deps.notify(ctx, shell.KindWarning, "Monitoring Paused", "Real-time monitoring has been paused.")
		}
		return nil
	case "clear-alerts":
		p.mu.Lock()
		p.alerts = nil
		p.mu.Unlock()
		return nil
	default:
		return unknownAction(shell.SectionRealtime, action)
	}
}
