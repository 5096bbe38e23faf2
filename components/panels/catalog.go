package panels

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-dashboard-shell/components/export"
)

// Dataset is an exportable table outside any panel instance.
type Dataset struct {
	Tag      string
	Filename string
	Title    string
	Records  []*export.Record
}

type datasetSource struct {
	filename string
	title    string
	records  func(*Store) []*export.Record
}

var datasetSources = map[string]datasetSource{
	"orders":                 {ordersExportFilename, "Orders Report", func(s *Store) []*export.Record { return orderRecords(s.Orders()) }},
	"crm-leads":              {"crm-leads", "CRM Leads Report", func(*Store) []*export.Record { return crmLeads() }},
	"crm-customers":          {"crm-customers", "CRM Customers Report", func(*Store) []*export.Record { return crmCustomers() }},
	"crm-deals":              {"crm-deals", "CRM Deals Report", func(*Store) []*export.Record { return crmDeals() }},
	"financial-overview":     {"financial-overview", "Financial Overview Report", func(*Store) []*export.Record { return defaultFinancials().records() }},
	"financial-transactions": {"financial-transactions", "Financial Transactions Report", func(*Store) []*export.Record { return financeTransactions() }},
	"financial-invoices":     {"financial-invoices", "Financial Invoices Report", func(*Store) []*export.Record { return financeInvoices() }},
	"financial-budgets":      {"financial-budgets", "Financial Budgets Report", func(*Store) []*export.Record { return financeBudgets() }},
	"security-overview":      {"security-overview", "Security Overview Report", func(*Store) []*export.Record { return securityOverview() }},
	"security-users":         {"security-users", "Security Users Report", func(*Store) []*export.Record { return defaultSecurityUserRecords() }},
	"security-logs":          {"security-audit-logs", "Security Audit Logs Report", func(*Store) []*export.Record { return securityLogs() }},
	"security-compliance":    {"security-compliance", "Security Compliance Report", func(*Store) []*export.Record { return securityCompliance() }},
	"security-policies":      {"security-policies", "Security Policies Report", func(*Store) []*export.Record { return securityPolicies() }},
	"analytics-products":     {"analytics-products", "Top Products Report", func(*Store) []*export.Record { return analyticsTopProducts() }},
	"analytics-traffic":      {"analytics-traffic", "Traffic Sources Report", func(*Store) []*export.Record { return analyticsTrafficSources() }},
}

// DatasetTags lists the tags LookupDataset accepts, sorted.
func DatasetTags() []string {
	tags := make([]string, 0, len(datasetSources))
	for tag := range datasetSources {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// LookupDataset resolves tag against store. A nil store uses the seed data.
func LookupDataset(store *Store, tag string) (Dataset, error) {
	source, ok := datasetSources[tag]
	if !ok {
		return Dataset{}, fmt.Errorf("panels: unknown dataset %q", tag)
	}
	if store == nil {
		store = NewStore(StoreOptions{})
	}
	return Dataset{
		Tag:      tag,
		Filename: source.filename,
		Title:    source.title,
		Records:  source.records(store),
	}, nil
}

func defaultSecurityUserRecords() []*export.Record {
	users := defaultSecurityUsers()
	out := make([]*export.Record, 0, len(users))
	for _, u := range users {
		out = append(out, u.record())
	}
	return out
}
