package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectUnknownTagIsIdentity(t *testing.T) {
	records := []*Record{NewRecord(F("lastContact", "2024-01-15"))}
	out := Project("unknown-tag", records)
	require.Len(t, out, 1)
	if out[0] != records[0] {
		t.Fatalf("expected identical record pointer for unknown tag")
	}
}

func TestProjectCRMLeads(t *testing.T) {
	lead := NewRecord(
		F("id", 1),
		F("name", "John Smith"),
		F("company", "Tech Corp"),
		F("email", "john@techcorp.com"),
		F("phone", "+1 555-0123"),
		F("status", "hot"),
		F("value", 25000),
		F("source", "Website"),
		F("lastContact", "2024-01-15"),
		F("assignedTo", "Sarah Johnson"),
	)
	out := Project("crm-leads", []*Record{lead})
	require.Len(t, out, 1)
	assert.Equal(t, []string{
		"Name", "Company", "Email", "Phone", "Status", "Value", "Source", "Last Contact", "Assigned To",
	}, out[0].Keys())
	assert.Equal(t, "2024-01-15", out[0].Value("Last Contact"))
	_, hasID := out[0].Get("id")
	assert.False(t, hasID)
}

func TestProjectSecurityUsersMFA(t *testing.T) {
	out := Project("security-users", []*Record{
		NewRecord(F("name", "A"), F("mfaEnabled", true)),
		NewRecord(F("name", "B"), F("mfaEnabled", false)),
	})
	assert.Equal(t, "Yes", out[0].Value("MFA Enabled"))
	assert.Equal(t, "No", out[1].Value("MFA Enabled"))
	assert.Nil(t, out[0].Value("Email"))
}

func TestProjectInvoicesAndLogsRenameSources(t *testing.T) {
	invoices := Project("financial-invoices", []*Record{NewRecord(F("id", "INV-001"))})
	assert.Equal(t, "INV-001", invoices[0].Value("Invoice ID"))

	logs := Project("security-logs", []*Record{NewRecord(F("ip", "192.168.1.100"))})
	assert.Equal(t, "192.168.1.100", logs[0].Value("IP Address"))
}

func TestProjectBudgets(t *testing.T) {
	out := Project("financial-budgets", []*Record{
		NewRecord(F("category", "Marketing"), F("allocated", 15000), F("spent", 12500), F("remaining", 2500)),
	})
	rec := out[0]
	assert.Equal(t, "$15,000", rec.Value("Allocated"))
	assert.Equal(t, "$12,500", rec.Value("Spent"))
	assert.Equal(t, "$2,500", rec.Value("Remaining"))
	assert.Equal(t, "83.3%", rec.Value("Usage (%)"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", FormatMoney(decimal.Zero))
	assert.Equal(t, "$125,430", FormatMoney(decimal.NewFromInt(125430)))
	assert.Equal(t, "$1,234,567.5", FormatMoney(decimal.RequireFromString("1234567.50")))
	assert.Equal(t, "-$999", FormatMoney(decimal.NewFromInt(-999)))
}

func TestRegistryRegisterOverrides(t *testing.T) {
	reg := NewRegistry()
	require.Error(t, reg.Register("", Columns()))
	require.NoError(t, reg.Register("custom", Columns(Col("Label", "key"))))

	out := reg.Project("custom", []*Record{NewRecord(F("key", "v"))})
	assert.Equal(t, "v", out[0].Value("Label"))
	assert.Contains(t, reg.Tags(), "crm-deals")
	assert.Contains(t, reg.Tags(), "custom")
}
