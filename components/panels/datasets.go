package panels

import (
	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/shopspring/decimal"
)

func crmLeads() []*export.Record {
	return []*export.Record{
		export.NewRecord(export.F("id", 1), export.F("name", "Sarah Johnson"), export.F("company", "TechCorp Inc."), export.F("email", "sarah@techcorp.com"), export.F("phone", "+1 (555) 123-4567"), export.F("status", "hot"), export.F("value", "$25,000"), export.F("source", "Website"), export.F("lastContact", "2024-01-15"), export.F("assignedTo", "John Smith")),
		export.NewRecord(export.F("id", 2), export.F("name", "Michael Chen"), export.F("company", "Digital Solutions"), export.F("email", "michael@digitalsol.com"), export.F("phone", "+1 (555) 987-6543"), export.F("status", "warm"), export.F("value", "$15,000"), export.F("source", "Referral"), export.F("lastContact", "2024-01-14"), export.F("assignedTo", "Emma Davis")),
		export.NewRecord(export.F("id", 3), export.F("name", "Lisa Rodriguez"), export.F("company", "StartupXYZ"), export.F("email", "lisa@startupxyz.com"), export.F("phone", "+1 (555) 456-7890"), export.F("status", "cold"), export.F("value", "$8,000"), export.F("source", "LinkedIn"), export.F("lastContact", "2024-01-10"), export.F("assignedTo", "Mike Wilson")),
	}
}

func crmCustomers() []*export.Record {
	return []*export.Record{
		export.NewRecord(export.F("id", 1), export.F("name", "Robert Anderson"), export.F("company", "Enterprise Corp"), export.F("email", "robert@enterprise.com"), export.F("phone", "+1 (555) 111-2222"), export.F("totalValue", "$125,000"), export.F("joinDate", "2023-06-15"), export.F("lastOrder", "2024-01-12"), export.F("status", "active")),
		export.NewRecord(export.F("id", 2), export.F("name", "Jennifer White"), export.F("company", "Global Industries"), export.F("email", "jennifer@global.com"), export.F("phone", "+1 (555) 333-4444"), export.F("totalValue", "$89,500"), export.F("joinDate", "2023-08-22"), export.F("lastOrder", "2024-01-08"), export.F("status", "active")),
		export.NewRecord(export.F("id", 3), export.F("name", "David Thompson"), export.F("company", "Innovation Labs"), export.F("email", "david@innovation.com"), export.F("phone", "+1 (555) 555-6666"), export.F("totalValue", "$45,200"), export.F("joinDate", "2023-11-10"), export.F("lastOrder", "2023-12-20"), export.F("status", "inactive")),
	}
}

func crmDeals() []*export.Record {
	return []*export.Record{
		export.NewRecord(export.F("id", 1), export.F("title", "Enterprise Software License"), export.F("company", "TechCorp Inc."), export.F("value", "$50,000"), export.F("stage", "negotiation"), export.F("probability", 75), export.F("closeDate", "2024-02-15"), export.F("owner", "John Smith")),
		export.NewRecord(export.F("id", 2), export.F("title", "Cloud Migration Project"), export.F("company", "Digital Solutions"), export.F("value", "$35,000"), export.F("stage", "proposal"), export.F("probability", 60), export.F("closeDate", "2024-02-28"), export.F("owner", "Emma Davis")),
		export.NewRecord(export.F("id", 3), export.F("title", "Consulting Services"), export.F("company", "StartupXYZ"), export.F("value", "$12,000"), export.F("stage", "qualified"), export.F("probability", 40), export.F("closeDate", "2024-03-10"), export.F("owner", "Mike Wilson")),
	}
}

// financials holds the finance overview figures.
type financials struct {
	Revenue            decimal.Decimal
	Expenses           decimal.Decimal
	CashFlow           decimal.Decimal
	AccountsReceivable decimal.Decimal
	AccountsPayable    decimal.Decimal
}

func (f financials) Profit() decimal.Decimal {
	return f.Revenue.Sub(f.Expenses)
}

func defaultFinancials() financials {
	return financials{
		Revenue:            decimal.NewFromInt(125000),
		Expenses:           decimal.NewFromInt(87500),
		CashFlow:           decimal.NewFromInt(42000),
		AccountsReceivable: decimal.NewFromInt(25000),
		AccountsPayable:    decimal.NewFromInt(18500),
	}
}

func (f financials) records() []*export.Record {
	rows := []struct {
		metric string
		value  decimal.Decimal
	}{
		{"Total Revenue", f.Revenue},
		{"Total Expenses", f.Expenses},
		{"Net Profit", f.Profit()},
		{"Cash Flow", f.CashFlow},
		{"Accounts Receivable", f.AccountsReceivable},
		{"Accounts Payable", f.AccountsPayable},
	}
	out := make([]*export.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, export.NewRecord(export.F("metric", row.metric), export.F("value", row.value)))
	}
	return out
}

func financeTransactions() []*export.Record {
	tx := func(id int, date, description, category string, amount int64, kind, status string) *export.Record {
		return export.NewRecord(
			export.F("id", id), export.F("date", date), export.F("description", description),
			export.F("category", category), export.F("amount", decimal.NewFromInt(amount)),
			export.F("type", kind), export.F("status", status),
		)
	}
	return []*export.Record{
		tx(1, "2024-01-15", "Software License Payment", "Revenue", 15000, "income", "completed"),
		tx(2, "2024-01-14", "Office Rent", "Operating Expenses", -3500, "expense", "completed"),
		tx(3, "2024-01-13", "Consulting Services", "Revenue", 8500, "income", "pending"),
		tx(4, "2024-01-12", "Marketing Campaign", "Marketing", -2200, "expense", "completed"),
		tx(5, "2024-01-11", "Equipment Purchase", "Assets", -5800, "expense", "completed"),
	}
}

func financeInvoices() []*export.Record {
	inv := func(id, client string, amount int64, due, status, issued string) *export.Record {
		return export.NewRecord(
			export.F("id", id), export.F("client", client), export.F("amount", decimal.NewFromInt(amount)),
			export.F("dueDate", due), export.F("status", status), export.F("issueDate", issued),
		)
	}
	return []*export.Record{
		inv("INV-001", "TechCorp Inc.", 15000, "2024-02-15", "sent", "2024-01-15"),
		inv("INV-002", "Digital Solutions", 8500, "2024-02-10", "paid", "2024-01-10"),
		inv("INV-003", "StartupXYZ", 3200, "2024-02-20", "overdue", "2024-01-05"),
	}
}

func financeBudgets() []*export.Record {
	budget := func(category string, allocated, spent int64) *export.Record {
		a, s := decimal.NewFromInt(allocated), decimal.NewFromInt(spent)
		return export.NewRecord(
			export.F("category", category), export.F("allocated", a),
			export.F("spent", s), export.F("remaining", a.Sub(s)),
		)
	}
	return []*export.Record{
		budget("Marketing", 15000, 12500),
		budget("Operations", 25000, 22000),
		budget("Technology", 20000, 18500),
		budget("Personnel", 45000, 45000),
	}
}

// securityMetrics are the headline figures of the security overview.
var securityMetrics = struct {
	ThreatLevel     string
	ActiveThreats   int
	BlockedAttempts int
	ComplianceScore int
	LastScan        string
	Critical        int
	High            int
	Medium          int
	Low             int
}{"Low", 2, 147, 94, "2024-01-15 14:30", 0, 1, 3, 8}

func securityOverview() []*export.Record {
	m := securityMetrics
	row := func(metric string, value any) *export.Record {
		return export.NewRecord(export.F("Metric", metric), export.F("Value", value))
	}
	return []*export.Record{
		row("Threat Level", m.ThreatLevel),
		row("Active Threats", m.ActiveThreats),
		row("Blocked Attempts", m.BlockedAttempts),
		row("Compliance Score (%)", m.ComplianceScore),
		row("Critical Vulnerabilities", m.Critical),
		row("High Vulnerabilities", m.High),
		row("Medium Vulnerabilities", m.Medium),
		row("Low Vulnerabilities", m.Low),
	}
}

func securityLogs() []*export.Record {
	entry := func(id int, user, action, resource, ts, ip, status, location string) *export.Record {
		return export.NewRecord(
			export.F("id", id), export.F("user", user), export.F("action", action), export.F("resource", resource),
			export.F("timestamp", ts), export.F("ip", ip), export.F("status", status), export.F("location", location),
		)
	}
	return []*export.Record{
		entry(1, "admin@virotech.com", "Login", "Dashboard", "2024-01-15 14:25:30", "192.168.1.100", "success", "New York, US"),
		entry(2, "john.smith@virotech.com", "File Access", "Financial Reports", "2024-01-15 14:20:15", "192.168.1.105", "success", "New York, US"),
		entry(3, "unknown@suspicious.com", "Login Attempt", "Admin Panel", "2024-01-15 14:15:45", "45.123.456.789", "blocked", "Unknown"),
		entry(4, "emma.davis@virotech.com", "Data Export", "Customer Database", "2024-01-15 14:10:20", "192.168.1.110", "success", "New York, US"),
	}
}

// securityUser is mutable: MFA can be toggled from the panel.
type securityUser struct {
	ID          int
	Name        string
	Email       string
	Role        string
	Status      string
	LastLogin   string
	Permissions []string
	MFAEnabled  bool
}

func (u securityUser) record() *export.Record {
	return export.NewRecord(
		export.F("id", u.ID), export.F("name", u.Name), export.F("email", u.Email), export.F("role", u.Role),
		export.F("status", u.Status), export.F("lastLogin", u.LastLogin), export.F("mfaEnabled", u.MFAEnabled),
	)
}

func defaultSecurityUsers() []securityUser {
	return []securityUser{
		{1, "Admin User", "admin@virotech.com", "Administrator", "active", "2024-01-15 14:25", []string{"full_access", "user_management", "system_config"}, true},
		{2, "John Smith", "john.smith@virotech.com", "Manager", "active", "2024-01-15 14:20", []string{"read_reports", "manage_team", "export_data"}, true},
		{3, "Emma Davis", "emma.davis@virotech.com", "Analyst", "active", "2024-01-15 14:10", []string{"read_reports", "export_data"}, false},
		{4, "Mike Wilson", "mike.wilson@virotech.com", "User", "inactive", "2024-01-10 09:15", []string{"read_only"}, false},
	}
}

func securityCompliance() []*export.Record {
	check := func(name, status string, score, issues int, last string) *export.Record {
		return export.NewRecord(
			export.F("Compliance Type", name), export.F("Status", status), export.F("Score (%)", score),
			export.F("Issues Found", issues), export.F("Last Check", last),
		)
	}
	return []*export.Record{
		check("GDPR Compliance", "compliant", 98, 0, "2024-01-15"),
		check("SOX Compliance", "compliant", 95, 1, "2024-01-14"),
		check("HIPAA Compliance", "warning", 87, 3, "2024-01-13"),
		check("PCI DSS", "compliant", 92, 2, "2024-01-12"),
	}
}

func securityPolicies() []*export.Record {
	policy := func(name, description, status, updated string) *export.Record {
		return export.NewRecord(
			export.F("Policy Name", name), export.F("Description", description),
			export.F("Status", status), export.F("Last Updated", updated),
		)
	}
	return []*export.Record{
		policy("Password Policy", "Minimum 8 characters, special characters required", "active", "2024-01-01"),
		policy("Access Control Policy", "Role-based access control with principle of least privilege", "active", "2023-12-15"),
		policy("Data Retention Policy", "Customer data retained for 7 years, logs for 1 year", "active", "2023-11-20"),
		policy("Incident Response Policy", "Procedures for security incident handling and reporting", "review", "2023-10-10"),
	}
}

func analyticsTopProducts() []*export.Record {
	product := func(name string, sales int, revenue, growth string) *export.Record {
		return export.NewRecord(export.F("name", name), export.F("sales", sales), export.F("revenue", revenue), export.F("growth", growth))
	}
	return []*export.Record{
		product("MacBook Pro", 245, "$612,500", "+15%"),
		product("iPhone 15", 189, "$188,811", "+8%"),
		product("iPad Air", 156, "$93,444", "+12%"),
		product("AirPods Pro", 134, "$33,366", "+5%"),
		product("Apple Watch", 98, "$39,102", "+18%"),
	}
}

func analyticsTrafficSources() []*export.Record {
	source := func(name string, visits int, revenue string, pct int) *export.Record {
		return export.NewRecord(export.F("source", name), export.F("visits", visits), export.F("revenue", revenue), export.F("percentage", pct))
	}
	return []*export.Record{
		source("Google", 2500, "$5,000", 35),
		source("Facebook", 1800, "$3,600", 25),
		source("Direct", 1200, "$2,400", 17),
		source("Twitter", 900, "$1,800", 13),
		source("LinkedIn", 700, "$1,400", 10),
	}
}
