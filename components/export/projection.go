package export

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Projection maps a domain record onto a display record.
type Projection func(rec *Record) *Record

// Column copies a source key into a display column.
type Column struct {
	Label  string
	Source string
	Format func(any) any
}

// Columns builds a projection from an ordered column list.
func Columns(cols ...Column) Projection {
	return func(rec *Record) *Record {
		out := NewRecord()
		for _, col := range cols {
			value := rec.Value(col.Source)
			if col.Format != nil {
				value = col.Format(value)
			}
			out.Set(col.Label, value)
		}
		return out
	}
}

// Col is shorthand for a column without formatting.
func Col(label, source string) Column {
	return Column{Label: label, Source: source}
}

var builtinProjections = map[string]Projection{
	"crm-leads": Columns(
		Col("Name", "name"),
		Col("Company", "company"),
		Col("Email", "email"),
		Col("Phone", "phone"),
		Col("Status", "status"),
		Col("Value", "value"),
		Col("Source", "source"),
		Col("Last Contact", "lastContact"),
		Col("Assigned To", "assignedTo"),
	),
	"crm-customers": Columns(
		Col("Name", "name"),
		Col("Company", "company"),
		Col("Email", "email"),
		Col("Phone", "phone"),
		Col("Total Value", "totalValue"),
		Col("Join Date", "joinDate"),
		Col("Last Order", "lastOrder"),
		Col("Status", "status"),
	),
	"crm-deals": Columns(
		Col("Title", "title"),
		Col("Company", "company"),
		Col("Value", "value"),
		Col("Stage", "stage"),
		Col("Probability (%)", "probability"),
		Col("Close Date", "closeDate"),
		Col("Owner", "owner"),
	),
	"financial-transactions": Columns(
		Col("Date", "date"),
		Col("Description", "description"),
		Col("Category", "category"),
		Col("Amount", "amount"),
		Col("Type", "type"),
		Col("Status", "status"),
	),
	"financial-invoices": Columns(
		Col("Invoice ID", "id"),
		Col("Client", "client"),
		Col("Amount", "amount"),
		Col("Due Date", "dueDate"),
		Col("Status", "status"),
		Col("Issue Date", "issueDate"),
	),
	"financial-budgets": projectBudget,
	"financial-overview": Columns(
		Col("Metric", "metric"),
		Column{Label: "Value", Source: "value", Format: money},
	),
	"security-logs": Columns(
		Col("Timestamp", "timestamp"),
		Col("User", "user"),
		Col("Action", "action"),
		Col("Resource", "resource"),
		Col("IP Address", "ip"),
		Col("Status", "status"),
		Col("Location", "location"),
	),
	"security-users": Columns(
		Col("Name", "name"),
		Col("Email", "email"),
		Col("Role", "role"),
		Col("Status", "status"),
		Col("Last Login", "lastLogin"),
		Column{Label: "MFA Enabled", Source: "mfaEnabled", Format: yesNo},
	),
	"orders": Columns(
		Col("Order ID", "id"),
		Col("Customer", "customer"),
		Col("Product", "product"),
		Col("Amount", "amount"),
		Col("Status", "status"),
		Col("Date", "date"),
	),
}

// Project applies the built-in recipe for tag. Unknown tags return records unchanged.
func Project(tag string, records []*Record) []*Record {
	projection, ok := builtinProjections[tag]
	if !ok {
		return records
	}
	return apply(projection, records)
}

// Registry holds the projection table. It starts with the built-in recipes.
type Registry struct {
	mu          sync.RWMutex
	projections map[string]Projection
}

// NewRegistry returns a registry seeded with the built-in recipes.
func NewRegistry() *Registry {
	reg := &Registry{projections: make(map[string]Projection, len(builtinProjections))}
	for tag, projection := range builtinProjections {
		reg.projections[tag] = projection
	}
	return reg
}

// Register adds or replaces the recipe for tag.
func (r *Registry) Register(tag string, projection Projection) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("export: projection tag is required")
	}
	if projection == nil {
		return fmt.Errorf("export: projection for %s is nil", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projections[tag] = projection
	return nil
}

// Tags lists registered dataset tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.projections))
	for tag := range r.projections {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Project applies the recipe for tag, falling back to identity.
func (r *Registry) Project(tag string, records []*Record) []*Record {
	if r == nil {
		return Project(tag, records)
	}
	r.mu.RLock()
	projection, ok := r.projections[tag]
	r.mu.RUnlock()
	if !ok {
		return records
	}
	return apply(projection, records)
}

func apply(projection Projection, records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		out = append(out, projection(rec))
	}
	return out
}

func projectBudget(rec *Record) *Record {
	allocated := toDecimal(rec.Value("allocated"))
	spent := toDecimal(rec.Value("spent"))
	remaining := allocated.Sub(spent)
	if v, ok := rec.Get("remaining"); ok && v != nil {
		remaining = toDecimal(v)
	}
	usage := "0.0%"
	if !allocated.IsZero() {
		usage = spent.Div(allocated).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	}
	return NewRecord(
		F("Category", rec.Value("category")),
		F("Allocated", FormatMoney(allocated)),
		F("Spent", FormatMoney(spent)),
		F("Remaining", FormatMoney(remaining)),
		F("Usage (%)", usage),
	)
}

func yesNo(v any) any {
	if b, ok := v.(bool); ok && b {
		return "Yes"
	}
	return "No"
}

func money(v any) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return s
	}
	return FormatMoney(toDecimal(v))
}

// FormatMoney renders an amount as "$12,345" or "$1,234.5" with grouped thousands.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimPrefix(strings.ReplaceAll(n, ",", ""), "$"))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
