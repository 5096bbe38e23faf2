package panels

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
)

// SecurityPanel covers threats, access control, audit logs, compliance and
// policies.
type SecurityPanel struct {
	deps Deps
	tabs *tabs

	mu    sync.RWMutex
	users []securityUser
}

// NewSecurityPanel builds the security panel on the overview tab.
func NewSecurityPanel(deps Deps) *SecurityPanel {
	return &SecurityPanel{
		deps:  deps,
		tabs:  newTabs("overview", "access", "logs", "compliance", "policies"),
		users: defaultSecurityUsers(),
	}
}

func (p *SecurityPanel) userRecords() []*export.Record {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*export.Record, 0, len(p.users))
	for _, u := range p.users {
		out = append(out, u.record())
	}
	return out
}

// dataset returns the export tag, file name, title and raw records of a tab.
func (p *SecurityPanel) dataset(tab string) (tag, filename, title string, records []*export.Record) {
	switch tab {
	case "access":
		return "security-users", "security-users", "Security Users Report", p.userRecords()
	case "logs":
		return "security-logs", "security-audit-logs", "Security Audit Logs Report", securityLogs()
	case "compliance":
		return "security-compliance", "security-compliance", "Security Compliance Report", securityCompliance()
	case "policies":
		return "security-policies", "security-policies", "Security Policies Report", securityPolicies()
	default:
		return "security-overview", "security-overview", "Security Overview Report", securityOverview()
	}
}

func (p *SecurityPanel) Render(context.Context, shell.View) (shell.PanelData, error) {
	active := p.tabs.Active()
	tag, _, title, records := p.dataset(active)
	m := securityMetrics
	return shell.PanelData{
		"title":    "Security & Compliance",
		"subtitle": "Monitor security threats and compliance status",
		"tab":      active,
		"tabs":     p.tabs.List(),
		"stats": []map[string]any{
			stat("Threat Level", m.ThreatLevel, ""),
			stat("Active Threats", strconv.Itoa(m.ActiveThreats), ""),
			stat("Blocked Attempts", strconv.Itoa(m.BlockedAttempts), ""),
			stat("Compliance Score", fmt.Sprintf("%d%%", m.ComplianceScore), ""),
		},
		"last_scan": m.LastScan,
		"tables":    []map[string]any{table(title, export.Project(tag, records))},
	}, nil
}

// HandleAction supports tab, run-scan, toggle-mfa and export.
func (p *SecurityPanel) HandleAction(ctx context.Context, action shell.Action) error {
	switch action.Name {
	case "tab":
		return p.tabs.Select(action.Param("tab"))
	case "run-scan":
		p.deps.notify(ctx, shell.KindInfo, "Security Scan Started", "Comprehensive security scan is now running...")
		return nil
	case "toggle-mfa":
		id, err := strconv.Atoi(action.Param("id"))
		if err != nil {
			return fmt.Errorf("%w: user id %q", shell.ErrInvalidAction, action.Param("id"))
		}
		if !p.toggleMFA(id) {
			return fmt.Errorf("panels: user %d not found", id)
		}
		p.deps.notify(ctx, shell.KindSuccess, "MFA Updated", "Multi-factor authentication settings have been updated.")
		return nil
	case "export":
		format, err := parseExportFormat(action)
		if err != nil {
			return err
		}
		tag, filename, title, records := p.dataset(p.tabs.Active())
		return p.deps.exportDataset(ctx, export.Request{
			Tag:      tag,
			Format:   format,
			Filename: filename,
			Title:    title,
			Records:  records,
		}, "Security report")
	default:
		return unknownAction(shell.SectionSecurity, action)
	}
}

func (p *SecurityPanel) toggleMFA(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].ID == id {
			p.users[i].MFAEnabled = !p.users[i].MFAEnabled
			return true
		}
	}
	return false
}
