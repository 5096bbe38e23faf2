package panels

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

var analyticsCharts = []struct {
	name string
	spec ChartSpec
}{
	{"sales", ChartSpec{
		Kind: ChartLine, Title: "Sales Performance",
		Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Series: []Series{
			{Name: "Revenue", Values: []float64{45000, 52000, 48000, 61000, 55000, 67000, 73000, 69000, 78000, 82000, 85000, 92000}},
			{Name: "Profit", Values: []float64{15000, 18000, 16000, 22000, 19000, 25000, 28000, 26000, 31000, 34000, 36000, 40000}},
		},
	}},
	{"customers", ChartSpec{
		Kind: ChartBar, Title: "Customer Growth",
		Labels: []string{"Q1", "Q2", "Q3", "Q4"},
		Series: []Series{
			{Name: "New Customers", Values: []float64{245, 312, 289, 356}},
			{Name: "Returning Customers", Values: []float64{189, 234, 267, 298}},
		},
	}},
	{"performance", ChartSpec{
		Kind: ChartBar, Title: "Performance",
		Labels: []string{"Sales", "Marketing", "Customer Service", "Product Quality", "Innovation", "Efficiency"},
		Series: []Series{{Name: "Current Performance", Values: []float64{85, 78, 92, 88, 76, 82}}},
	}},
	{"conversion", ChartSpec{
		Kind: ChartPie, Title: "Conversion Funnel",
		Labels: []string{"Converted", "Abandoned Cart", "Browsing", "Bounced"},
		Series: []Series{{Name: "Visitors", Values: []float64{25, 15, 35, 25}}},
	}},
}

// AnalyticsPanel is the business intelligence view.
type AnalyticsPanel struct {
	deps Deps
}

// NewAnalyticsPanel builds the analytics panel.
func NewAnalyticsPanel(deps Deps) *AnalyticsPanel {
	return &AnalyticsPanel{deps: deps}
}

func (p *AnalyticsPanel) Render(_ context.Context, view shell.View) (shell.PanelData, error) {
	analytics := p.deps.Store.Analytics()
	theme := chartTheme(view)
	rendered := make([]string, 0, len(analyticsCharts))
	for _, c := range analyticsCharts {
		html, err := p.deps.Charts.Render(shell.SectionAnalytics, c.name, c.spec, theme)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, html)
	}
	return shell.PanelData{
		"title":    "Advanced Analytics Dashboard",
		"subtitle": "Comprehensive business intelligence and performance metrics",
		"stats": []map[string]any{
			stat("Monthly Revenue", export.FormatMoney(analytics.TotalRevenue), "+12.5%"),
			stat("Customer Acquisition", groupInt(analytics.TotalOrders), "+8.2%"),
			stat("Conversion Rate", fmt.Sprintf("%g%%", analytics.ConversionRate), "-2.1%"),
			stat("Customer Satisfaction", fmt.Sprintf("%g/5.0", analytics.CustomerSatisfaction), "+0.3"),
		},
		"charts": rendered,
		"tables": []map[string]any{
			table("Top Products", analyticsTopProducts()),
			table("Traffic Sources", analyticsTrafficSources()),
		},
	}, nil
}

// HandleAction supports "export" with a dataset param of products or traffic.
func (p *AnalyticsPanel) HandleAction(ctx context.Context, action shell.Action) error {
	if action.Name != "export" {
		return unknownAction(shell.SectionAnalytics, action)
	}
	format, err := parseExportFormat(action)
	if err != nil {
		return err
	}
	req := export.Request{Tag: "analytics-products", Format: format, Title: "Top Products Report", Records: analyticsTopProducts()}
	subject := "Top products"
	if action.Param("dataset") == "traffic" {
		req = export.Request{Tag: "analytics-traffic", Format: format, Title: "Traffic Sources Report", Records: analyticsTrafficSources()}
		subject = "Traffic sources"
	}
	return p.deps.exportDataset(ctx, req, subject)
}

// Mount is a no-op.
func (p *AnalyticsPanel) Mount(context.Context) error { return nil }

// Unmount releases the rendered charts.
func (p *AnalyticsPanel) Unmount(context.Context) error {
	p.deps.Charts.Release(shell.SectionAnalytics)
	return nil
}
