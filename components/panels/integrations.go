package panels

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// Integration is a third-party service that can be connected.
type Integration struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Connected   bool   `json:"connected"`
}

// Status is "connected" or "available".
func (i Integration) Status() string {
	if i.Connected {
		return "connected"
	}
	return "available"
}

// IntegrationCategories lists the filter categories; "all" disables filtering.
var IntegrationCategories = []string{"all", "Payment", "E-commerce", "Marketing", "CRM", "Communication", "Analytics", "Automation", "Accounting"}

func defaultIntegrations() []Integration {
	return []Integration{
		{1, "Stripe", "Payment", "Accept payments online with Stripe's secure payment processing", "fab fa-stripe", true},
		{2, "PayPal", "Payment", "Process payments through PayPal's global payment platform", "fab fa-paypal", false},
		{3, "Shopify", "E-commerce", "Sync your Shopify store with ViroTech dashboard", "fab fa-shopify", true},
		{4, "WooCommerce", "E-commerce", "Connect your WooCommerce store for unified management", "fab fa-wordpress", false},
		{5, "Mailchimp", "Marketing", "Sync customer data with Mailchimp for email campaigns", "fab fa-mailchimp", true},
		{6, "HubSpot", "CRM", "Integrate with HubSpot CRM for customer relationship management", "fab fa-hubspot", false},
		{7, "Salesforce", "CRM", "Connect with Salesforce for advanced CRM capabilities", "fab fa-salesforce", false},
		{8, "Slack", "Communication", "Get notifications and updates directly in Slack", "fab fa-slack", true},
		{9, "Google Analytics", "Analytics", "Import Google Analytics data for comprehensive reporting", "fab fa-google", true},
		{10, "Zapier", "Automation", "Connect with 3000+ apps through Zapier automation", "fas fa-bolt", false},
		{11, "QuickBooks", "Accounting", "Sync financial data with QuickBooks accounting software", "fas fa-calculator", false},
		{12, "Xero", "Accounting", "Connect with Xero for streamlined financial management", "fas fa-chart-pie", false},
	}
}

// IntegrationsPanel lists integrations and toggles their connection.
type IntegrationsPanel struct {
	deps Deps

	mu           sync.RWMutex
	integrations []Integration
	search       string
	category     string
}

// NewIntegrationsPanel builds the integrations panel.
func NewIntegrationsPanel(deps Deps) *IntegrationsPanel {
	return &IntegrationsPanel{deps: deps, integrations: defaultIntegrations(), category: "all"}
}

// Filtered returns integrations matching the search and category filter.
func (p *IntegrationsPanel) Filtered() []Integration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	search := strings.ToLower(p.search)
	var out []Integration
	for _, integration := range p.integrations {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(integration.Name), search) ||
			strings.Contains(strings.ToLower(integration.Description), search)
		matchesCategory := p.category == "all" || integration.Category == p.category
		if matchesSearch && matchesCategory {
			out = append(out, integration)
		}
	}
	return out
}

func (p *IntegrationsPanel) counts() (connected, available int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, integration := range p.integrations {
		if integration.Connected {
			connected++
		} else {
			available++
		}
	}
	return connected, available
}

func (p *IntegrationsPanel) Render(context.Context, shell.View) (shell.PanelData, error) {
	connected, available := p.counts()
	items := p.Filtered()
	cards := make([]map[string]any, 0, len(items))
	for _, item := range items {
		cards = append(cards, map[string]any{
			"id":          item.ID,
			"name":        item.Name,
			"category":    item.Category,
			"description": item.Description,
			"icon":        item.Icon,
			"status":      item.Status(),
		})
	}
	return shell.PanelData{
		"title":      "Integrations",
		"subtitle":   "Connect your favorite tools and services",
		"categories": IntegrationCategories,
		"stats": []map[string]any{
			stat("Connected", strconv.Itoa(connected), ""),
			stat("Available", strconv.Itoa(available), ""),
		},
		"integrations": cards,
	}, nil
}

// HandleAction supports filter, connect and disconnect.
func (p *IntegrationsPanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "filter":
		p.mu.Lock()
		p.search = strings.TrimSpace(action.Param("search"))
		if category := strings.TrimSpace(action.Param("category")); category != "" {
			p.category = category
		}
		p.mu.Unlock()
		return nil
	case "connect":
		integration, was, err := p.setConnected(action.Param("id"), true)
		if err != nil {
			return err
		}
		if was {
			p.deps.notify(ctx, shell.KindInfo, "Already Connected",
				fmt.Sprintf("%s is already connected to your account.", integration.Name))
			return nil
		}
		p.deps.notify(ctx, shell.KindSuccess, "Integration Connected",
			fmt.Sprintf("%s has been successfully connected!", integration.Name))
		return nil
	case "disconnect":
		integration, _, err := p.setConnected(action.Param("id"), false)
		if err != nil {
			return err
		}
		p.deps.notify(ctx, shell.KindWarning, "Integration Disconnected",
			fmt.Sprintf("%s has been disconnected from your account.", integration.Name))
		return nil
	default:
		return unknownAction(shell.SectionIntegrations, action)
	}
}

// setConnected updates an integration and reports its previous state.
func (p *IntegrationsPanel) setConnected(rawID string, connected bool) (Integration, bool, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return Integration{}, false, fmt.Errorf("%w: integration id %q", shell.ErrInvalidAction, rawID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.integrations {
		if p.integrations[i].ID == id {
			was := p.integrations[i].Connected
			p.integrations[i].Connected = connected
			return p.integrations[i], was, nil
		}
	}
	return Integration{}, false, fmt.Errorf("panels: integration %d not found", id)
}
