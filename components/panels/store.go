package panels

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/shopspring/decimal"
)

const orderDateLayout = "January 2, 2006"

// Order is one e-commerce order.
type Order struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Product  string          `json:"product"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
	Date     string          `json:"date"`
}

// Record converts the order into an export record.
func (o Order) Record() *export.Record {
	return export.NewRecord(
		export.F("id", o.ID),
		export.F("customer", o.Customer),
		export.F("product", o.Product),
		export.F("amount", formatAmount(o.Amount)),
		export.F("status", o.Status),
		export.F("date", o.Date),
	)
}

// OrderInput carries the fields of a new order.
type OrderInput struct {
	Customer string
	Product  string
	Amount   decimal.Decimal
	Status   string
}

// OrderPatch updates an order. Empty strings and a nil amount leave the
// field unchanged.
type OrderPatch struct {
	Customer string
	Product  string
	Amount   *decimal.Decimal
	Status   string
}

// Analytics holds the business totals shown on the dashboard.
type Analytics struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalOrders          int             `json:"total_orders"`
	ActiveCustomers      int             `json:"active_customers"`
	ConversionRate       float64         `json:"conversion_rate"`
	MonthlyGrowth        float64         `json:"monthly_growth"`
	CustomerSatisfaction float64         `json:"customer_satisfaction"`
}

// RealtimeStats holds the live traffic counters.
type RealtimeStats struct {
	ActiveUsers        int     `json:"active_users"`
	PageViews          int     `json:"page_views"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration string  `json:"avg_session_duration"`
}

// StoreOptions configures a Store.
type StoreOptions struct {
	Now  func() time.Time
	Rand *rand.Rand
}

// Store is the shared, in-memory business data the panels read and mutate.
type Store struct {
	mu        sync.RWMutex
	orders    []Order
	analytics Analytics
	realtime  RealtimeStats
	now       func() time.Time
	rng       *rand.Rand
}

// NewStore builds a store seeded with the demo dataset.
func NewStore(opts StoreOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{
		orders:    seedOrders(),
		analytics: seedAnalytics(),
		realtime: RealtimeStats{
			ActiveUsers:        1247,
			PageViews:          8934,
			BounceRate:         32.1,
			AvgSessionDuration: "3:42",
		},
		now: now,
		rng: rng,
	}
}

func seedOrders() []Order {
	return []Order{
		{ID: "#ORD-0001", Customer: "John Smith", Product: "MacBook Pro", Amount: decimal.RequireFromString("2499.00"), Status: "Completed", Date: "May 15, 2023"},
		{ID: "#ORD-0002", Customer: "Sarah Johnson", Product: "iPhone 15", Amount: decimal.RequireFromString("999.00"), Status: "Processing", Date: "May 14, 2023"},
		{ID: "#ORD-0003", Customer: "Mike Wilson", Product: "iPad Air", Amount: decimal.RequireFromString("599.00"), Status: "Shipped", Date: "May 13, 2023"},
		{ID: "#ORD-0004", Customer: "Emily Davis", Product: "AirPods Pro", Amount: decimal.RequireFromString("249.00"), Status: "Pending", Date: "May 12, 2023"},
		{ID: "#ORD-0005", Customer: "David Brown", Product: "Apple Watch", Amount: decimal.RequireFromString("399.00"), Status: "Delivered", Date: "May 11, 2023"},
	}
}

func seedAnalytics() Analytics {
	return Analytics{
		TotalRevenue:         decimal.NewFromInt(125430),
		TotalOrders:          1247,
		ActiveCustomers:      892,
		ConversionRate:       3.2,
		MonthlyGrowth:        12.5,
		CustomerSatisfaction: 4.8,
	}
}

// Orders returns the orders, newest first.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Order(nil), s.orders...)
}

// Order looks an order up by id.
func (s *Store) Order(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return Order{}, false
}

// AddOrder numbers the order from the current count, dates it today and
// puts it first.
func (s *Store) AddOrder(in OrderInput) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "Pending"
	}
	order := Order{
		ID:       fmt.Sprintf("#ORD-%04d", len(s.orders)+1),
		Customer: in.Customer,
		Product:  in.Product,
		Amount:   in.Amount,
		Status:   status,
		Date:     s.now().Format(orderDateLayout),
	}
	s.orders = append([]Order{order}, s.orders...)
	return order
}

// UpdateOrder applies patch to every order with id.
func (s *Store) UpdateOrder(id string, patch OrderPatch) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		updated Order
		found   bool
	)
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		order := &s.orders[i]
		if patch.Customer != "" {
			order.Customer = patch.Customer
		}
		if patch.Product != "" {
			order.Product = patch.Product
		}
		if patch.Amount != nil {
			order.Amount = *patch.Amount
		}
		if patch.Status != "" {
			order.Status = patch.Status
		}
		updated, found = *order, true
	}
	return updated, found
}

// DeleteOrder removes every order with id.
func (s *Store) DeleteOrder(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	removed := false
	for _, order := range s.orders {
		if order.ID == id {
			removed = true
			continue
		}
		kept = append(kept, order)
	}
	s.orders = kept
	return removed
}

// Analytics returns the business totals.
func (s *Store) Analytics() Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analytics
}

// Realtime returns the live counters.
func (s *Store) Realtime() RealtimeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.realtime
}

// DriftRealtime moves active users by -5..4 and adds 0..19 page views.
func (s *Store) DriftRealtime() RealtimeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.realtime.ActiveUsers += s.rng.Intn(10) - 5
	s.realtime.PageViews += s.rng.Intn(20)
	return s.realtime
}

// StartDrift drifts the realtime counters every interval.
func (s *Store) StartDrift(ctx context.Context, interval time.Duration) *shell.Task {
	return shell.StartTask(ctx, interval, func(context.Context) {
		s.DriftRealtime()
	})
}

// float draws from the shared generator under the store lock.
func (s *Store) float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Store) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// formatAmount renders a decimal with two places and thousands separators.
func formatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
