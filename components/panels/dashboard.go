package panels

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

var (
	dashboardRevenue = ChartSpec{
		Kind: ChartLine, Title: "Revenue",
		Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		Series: []Series{{Name: "Revenue", Values: []float64{12000, 19000, 15000, 25000, 22000, 30000}}},
	}
	dashboardOrders = ChartSpec{
		Kind: ChartBar, Title: "Orders",
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Series: []Series{{Name: "Orders", Values: []float64{45, 52, 38, 65, 59, 80, 42}}},
	}
	dashboardTraffic = ChartSpec{
		Kind: ChartPie, Title: "Traffic Sources",
		Labels: []string{"Direct", "Social", "Email", "Search"},
		Series: []Series{{Name: "Traffic", Values: []float64{35, 25, 20, 20}}},
	}
)

// DashboardPanel is the landing overview.
type DashboardPanel struct {
	deps Deps
}

// NewDashboardPanel builds the overview panel.
func NewDashboardPanel(deps Deps) *DashboardPanel {
	return &DashboardPanel{deps: deps}
}

func (p *DashboardPanel) Render(_ context.Context, view shell.View) (shell.PanelData, error) {
	analytics := p.deps.Store.Analytics()
	realtime := p.deps.Store.Realtime()
	theme := chartTheme(view)

	charts := make([]string, 0, 3)
	for _, c := range []struct {
		name string
		spec ChartSpec
	}{{"revenue", dashboardRevenue}, {"orders", dashboardOrders}, {"traffic", dashboardTraffic}} {
		html, err := p.deps.Charts.Render(shell.SectionDashboard, c.name, c.spec, theme)
		if err != nil {
			return nil, err
		}
		charts = append(charts, html)
	}

	orders := p.deps.Store.Orders()
	if len(orders) > 5 {
		orders = orders[:5]
	}
	recent := make([]*export.Record, 0, len(orders))
	for _, order := range orders {
		recent = append(recent, order.Record())
	}

	return shell.PanelData{
		"title":    "Dashboard Overview",
		"subtitle": "Welcome back! Here's what's happening with your business today.",
		"stats": []map[string]any{
			stat("Total Revenue", export.FormatMoney(analytics.TotalRevenue), "+12.5%"),
			stat("Total Orders", groupInt(analytics.TotalOrders), "+8.2%"),
			stat("Active Customers", groupInt(analytics.ActiveCustomers), "+15.3%"),
			stat("Conversion Rate", fmt.Sprintf("%g%%", analytics.ConversionRate), "-2.1%"),
		},
		"charts": charts,
		"tables": []map[string]any{
			table("Recent Orders", export.Project("orders", recent)),
		},
		"realtime": realtime,
	}, nil
}

// Unmount releases the rendered charts.
func (p *DashboardPanel) Unmount(context.Context) error {
	p.deps.Charts.Release(shell.SectionDashboard)
	return nil
}

// Mount is a no-op; charts render lazily.
func (p *DashboardPanel) Mount(context.Context) error { return nil }

func groupInt(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}
