package panels

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/shopspring/decimal"
)

const ordersExportFilename = "virotech-orders"

// OrderProducts are the products offered by the create form.
var OrderProducts = []string{"MacBook Pro", "iPhone 15", "iPad Air", "AirPods Pro", "Apple Watch"}

// OrderStatuses are the statuses an order can move through.
var OrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Completed", "Cancelled"}

// OrdersPanel manages the order list.
type OrdersPanel struct {
	deps Deps

	mu     sync.RWMutex
	search string
	status string
}

// NewOrdersPanel builds the orders panel.
func NewOrdersPanel(deps Deps) *OrdersPanel {
	return &OrdersPanel{deps: deps, status: "all"}
}

// Filtered returns the orders matching the current search and status filter.
func (p *OrdersPanel) Filtered() []Order {
	p.mu.RLock()
	search := strings.ToLower(p.search)
	status := p.status
	p.mu.RUnlock()

	var out []Order
	for _, order := range p.deps.Store.Orders() {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(order.Customer), search) ||
			strings.Contains(strings.ToLower(order.ID), search) ||
			strings.Contains(strings.ToLower(order.Product), search)
		matchesStatus := status == "all" || strings.EqualFold(order.Status, status)
		if matchesSearch && matchesStatus {
			out = append(out, order)
		}
	}
	return out
}

func (p *OrdersPanel) Render(context.Context, shell.View) (shell.PanelData, error) {
	orders := p.Filtered()
	p.mu.RLock()
	search, status := p.search, p.status
	p.mu.RUnlock()
	return shell.PanelData{
		"title":    "Orders Management",
		"subtitle": "Manage and track all customer orders",
		"filters":  map[string]any{"search": search, "status": status},
		"stats": []map[string]any{
			stat("Orders", groupInt(len(p.deps.Store.Orders())), ""),
			stat("Shown", groupInt(len(orders)), ""),
		},
		"tables":   []map[string]any{table("Orders", export.Project("orders", orderRecords(orders)))},
		"products": OrderProducts,
		"statuses": OrderStatuses,
	}, nil
}

// HandleAction supports filter, create, edit, view, delete and export.
// Create, edit and delete open a modal; the change happens on confirm.
func (p *OrdersPanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "filter":
		p.mu.Lock()
		p.search = strings.TrimSpace(action.Param("search"))
		if status := strings.TrimSpace(action.Param("status")); status != "" {
			p.status = status
		}
		p.mu.Unlock()
		return nil
	case "create":
		p.deps.Channels.Modal.Show(ctx, "Add New Order", map[string]any{
			"form":     "order",
			"products": OrderProducts,
			"statuses": OrderStatuses[:4],
		}, []string{"Create Order", "Cancel"}, p.confirmCreate)
		return nil
	case "edit":
		order, err := p.lookup(action)
		if err != nil {
			return err
		}
		p.deps.Channels.Modal.Show(ctx, "Edit Order", map[string]any{
			"form":  "order",
			"order": order,
		}, []string{"Update Order", "Cancel"}, func(ctx context.Context, result shell.ModalResult) error {
			return p.confirmEdit(ctx, order.ID, result)
		})
		return nil
	case "view":
		order, err := p.lookup(action)
		if err != nil {
			return err
		}
		p.deps.Channels.Modal.Show(ctx, "Order Details", order.Record().Map(), []string{"Close"}, nil)
		return nil
	case "delete":
		order, err := p.lookup(action)
		if err != nil {
			return err
		}
		p.deps.Channels.Modal.Show(ctx, "Are you sure?", "You won't be able to revert this!",
			[]string{"Cancel", "Yes, delete it!"}, func(ctx context.Context, _ shell.ModalResult) error {
				if p.deps.Store.DeleteOrder(order.ID) {
					p.deps.notify(ctx, shell.KindSuccess, "Order Deleted", "Order has been successfully deleted.")
					p.deps.panelUpdated(ctx, shell.SectionOrders)
				}
				return nil
			})
		return nil
	case "export":
		format, err := parseExportFormat(action)
		if err != nil {
			return err
		}
		return p.deps.exportDataset(ctx, export.Request{
			Tag:      "orders",
			Format:   format,
			Filename: ordersExportFilename,
			Title:    "Orders Report",
			Records:  orderRecords(p.Filtered()),
		}, "Orders data")
	default:
		return unknownAction(shell.SectionOrders, action)
	}
}

func (p *OrdersPanel) lookup(action shell.Action) (Order, error) {
	id := action.Param("id")
	order, ok := p.deps.Store.Order(id)
	if !ok {
		return Order{}, fmt.Errorf("panels: order %q not found", id)
	}
	return order, nil
}

// confirmCreate adds the order when customer, product and amount are given.
// Incomplete forms close silently.
func (p *OrdersPanel) confirmCreate(ctx context.Context, result shell.ModalResult) error {
	customer := formValue(result.Values, "customer")
	product := formValue(result.Values, "product")
	amount, ok := formAmount(result.Values, "amount")
	if customer == "" || product == "" || !ok {
		return nil
	}
	p.deps.Store.AddOrder(OrderInput{
		Customer: customer,
		Product:  product,
		Amount:   amount,
		Status:   formValue(result.Values, "status"),
	})
	p.deps.notify(ctx, shell.KindSuccess, "Order Created", "New order has been successfully created.")
	p.deps.panelUpdated(ctx, shell.SectionOrders)
	return nil
}

func (p *OrdersPanel) confirmEdit(ctx context.Context, id string, result shell.ModalResult) error {
	customer := formValue(result.Values, "customer")
	product := formValue(result.Values, "product")
	amount, ok := formAmount(result.Values, "amount")
	if customer == "" || product == "" || !ok {
		return nil
	}
	if _, found := p.deps.Store.UpdateOrder(id, OrderPatch{
		Customer: customer,
		Product:  product,
		Amount:   &amount,
		Status:   formValue(result.Values, "status"),
	}); !found {
		return nil
	}
	p.deps.notify(ctx, shell.KindSuccess, "Order Updated", "Order has been successfully updated.")
	p.deps.panelUpdated(ctx, shell.SectionOrders)
	return nil
}

func orderRecords(orders []Order) []*export.Record {
	out := make([]*export.Record, 0, len(orders))
	for _, order := range orders {
		out = append(out, order.Record())
	}
	return out
}

func formValue(values map[string]any, key string) string {
	switch v := values[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func formAmount(values map[string]any, key string) (decimal.Decimal, bool) {
	raw := strings.ReplaceAll(formValue(values, key), ",", "")
	if raw == "" {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
