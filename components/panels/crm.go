package panels

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

type crmDataset struct {
	label   string
	title   string
	records func() []*export.Record
}

var crmDatasets = map[string]crmDataset{
	"leads":     {"Leads", "CRM Leads Report", crmLeads},
	"customers": {"Customers", "CRM Customers Report", crmCustomers},
	"deals":     {"Deals", "CRM Deals Report", crmDeals},
}

// CRMPanel shows leads, customers and deals.
type CRMPanel struct {
	deps Deps
	tabs *tabs
}

// NewCRMPanel builds the CRM panel on the leads tab.
func NewCRMPanel(deps Deps) *CRMPanel {
	return &CRMPanel{deps: deps, tabs: newTabs("leads", "customers", "deals")}
}

func (p *CRMPanel) Render(context.Context, shell.View) (shell.PanelData, error) {
	active := p.tabs.Active()
	dataset := crmDatasets[active]
	tabList := make([]map[string]any, 0, 3)
	for _, id := range p.tabs.List() {
		tabList = append(tabList, map[string]any{
			"id":     id,
			"label":  crmDatasets[id].label,
			"count":  len(crmDatasets[id].records()),
			"active": id == active,
		})
	}
	return shell.PanelData{
		"title":    "Customer Relations Management",
		"subtitle": "Manage leads, customers, and deals in one place",
		"tab":      active,
		"tabs":     tabList,
		"tables": []map[string]any{
			table(dataset.label, export.Project("crm-"+active, dataset.records())),
		},
	}, nil
}

// HandleAction supports tab, add-lead, contact and export.
func (p *CRMPanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "tab":
		return p.tabs.Select(action.Param("tab"))
	case "add-lead":
		p.deps.notify(ctx, shell.KindSuccess, "Lead Added", "New lead has been successfully added to the system.")
		return nil
	case "contact":
		for _, customer := range crmCustomers() {
			if export.FormatValue(customer.Value("id")) == action.Param("id") {
				p.deps.notify(ctx, shell.KindInfo, "Contact Initiated",
					fmt.Sprintf("Contacting %s at %s", customer.Value("name"), customer.Value("company")))
				return nil
			}
		}
		return fmt.Errorf("panels: customer %q not found", action.Param("id"))
	case "export":
		format, err := parseExportFormat(action)
		if err != nil {
			return err
		}
		active := p.tabs.Active()
		dataset := crmDatasets[active]
		return p.deps.exportDataset(ctx, export.Request{
			Tag:      "crm-" + active,
			Format:   format,
			Filename: "crm-" + active,
			Title:    dataset.title,
			Records:  dataset.records(),
		}, active+" data")
	default:
		return unknownAction(shell.SectionCRM, action)
	}
}
