package panels

import (
	"context"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/shopspring/decimal"
)

var financeCharts = []struct {
	name string
	spec ChartSpec
}{
	{"revenue", ChartSpec{
		Kind: ChartLine, Title: "Revenue Trend",
		Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		Series: []Series{{Name: "Revenue", Values: []float64{85000, 92000, 78000, 105000, 118000, 125000}}},
	}},
	{"expenses", ChartSpec{
		Kind: ChartPie, Title: "Expense Breakdown",
		Labels: []string{"Operations", "Marketing", "Technology", "Personnel"},
		Series: []Series{{Name: "Expenses", Values: []float64{22000, 12500, 18500, 45000}}},
	}},
	{"cashflow", ChartSpec{
		Kind: ChartBar, Title: "Cash Flow",
		Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4"},
		Series: []Series{
			{Name: "Inflow", Values: []float64{25000, 18000, 32000, 28000}},
			{Name: "Outflow", Values: []float64{-15000, -22000, -18000, -20000}},
		},
	}},
}

// FinancePanel shows the financial overview, transactions, invoices and budgets.
type FinancePanel struct {
	deps    Deps
	tabs    *tabs
	figures financials
}

// NewFinancePanel builds the finance panel on the overview tab.
func NewFinancePanel(deps Deps) *FinancePanel {
	return &FinancePanel{
		deps:    deps,
		tabs:    newTabs("overview", "transactions", "invoices", "budgets"),
		figures: defaultFinancials(),
	}
}

// dataset returns the export tag, title and raw records of a tab.
func (p *FinancePanel) dataset(tab string) (string, string, []*export.Record) {
	switch tab {
	case "transactions":
		return "financial-transactions", "Financial Transactions Report", financeTransactions()
	case "invoices":
		return "financial-invoices", "Financial Invoices Report", financeInvoices()
	case "budgets":
		return "financial-budgets", "Financial Budgets Report", financeBudgets()
	default:
		return "financial-overview", "Financial Overview Report", p.figures.records()
	}
}

func (p *FinancePanel) Render(_ context.Context, view shell.View) (shell.PanelData, error) {
	active := p.tabs.Active()
	tag, title, records := p.dataset(active)

	data := shell.PanelData{
		"title":    "Financial Management",
		"subtitle": "Track revenue, expenses, and financial performance",
		"tab":      active,
		"tabs":     p.tabs.List(),
		"stats": []map[string]any{
			stat("Total Revenue", export.FormatMoney(p.figures.Revenue), ""),
			stat("Total Expenses", export.FormatMoney(p.figures.Expenses), ""),
			stat("Net Profit", export.FormatMoney(p.figures.Profit()), p.margin()),
			stat("Cash Flow", export.FormatMoney(p.figures.CashFlow), ""),
		},
		"tables": []map[string]any{table(title, export.Project(tag, records))},
	}
	if active == "overview" {
		theme := chartTheme(view)
		rendered := make([]string, 0, len(financeCharts))
		for _, c := range financeCharts {
			html, err := p.deps.Charts.Render(shell.SectionFinance, c.name, c.spec, theme)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, html)
		}
		data["charts"] = rendered
	}
	return data, nil
}

// margin is net profit over revenue, as a percentage with one decimal.
func (p *FinancePanel) margin() string {
	if p.figures.Revenue.IsZero() {
		return ""
	}
	return p.figures.Profit().Div(p.figures.Revenue).Mul(decimal.NewFromInt(100)).StringFixed(1) + "% margin"
}

// HandleAction supports tab, create-invoice and export.
func (p *FinancePanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "tab":
		return p.tabs.Select(action.Param("tab"))
	case "create-invoice":
		p.deps.notify(ctx, shell.KindSuccess, "Invoice Created", "New invoice has been created successfully.")
		return nil
	case "export":
		format, err := parseExportFormat(action)
		if err != nil {
			return err
		}
		tag, title, records := p.dataset(p.tabs.Active())
		return p.deps.exportDataset(ctx, export.Request{
			Tag:      tag,
			Format:   format,
			Filename: tag,
			Title:    title,
			Records:  records,
		}, "Financial report")
	default:
		return unknownAction(shell.SectionFinance, action)
	}
}

// Mount is a no-op.
func (p *FinancePanel) Mount(context.Context) error { return nil }

// Unmount releases the rendered charts.
func (p *FinancePanel) Unmount(context.Context) error {
	p.deps.Charts.Release(shell.SectionFinance)
	return nil
}
