package shell

import "strings"

// SectionID selects the panel shown by the switchboard.
type SectionID string

// Known sections in sidebar order.
const (
	SectionDashboard     SectionID = "dashboard-content"
	SectionRealtime      SectionID = "realtime-content"
	SectionAnalytics     SectionID = "analytics-content"
	SectionCRM           SectionID = "crm-content"
	SectionOrders        SectionID = "orders-content"
	SectionFinance       SectionID = "finance-content"
	SectionMarketing     SectionID = "marketing-content"
	SectionHR            SectionID = "hr-content"
	SectionProjects      SectionID = "projects-content"
	SectionCommunication SectionID = "communication-content"
	SectionSecurity      SectionID = "security-content"
	SectionIntegrations  SectionID = "integrations"
	SectionSettings      SectionID = "settings-content"
)

// DefaultSection is selected on startup and for unrecognized identifiers.
const DefaultSection = SectionDashboard

var knownSections = []SectionID{
	SectionDashboard,
	SectionRealtime,
	SectionAnalytics,
	SectionCRM,
	SectionOrders,
	SectionFinance,
	SectionMarketing,
	SectionHR,
	SectionProjects,
	SectionCommunication,
	SectionSecurity,
	SectionIntegrations,
	SectionSettings,
}

var knownSectionSet = func() map[SectionID]struct{} {
	set := make(map[SectionID]struct{}, len(knownSections))
	for _, id := range knownSections {
		set[id] = struct{}{}
	}
	return set
}()

// Sections returns the closed set of section identifiers in sidebar order.
func Sections() []SectionID {
	out := make([]SectionID, len(knownSections))
	copy(out, knownSections)
	return out
}

// ParseSection reports whether id names a known section.
func ParseSection(id string) (SectionID, bool) {
	candidate := SectionID(strings.TrimSpace(id))
	_, ok := knownSectionSet[candidate]
	return candidate, ok
}

// ResolveSection maps id onto a known section, falling back to DefaultSection.
func ResolveSection(id string) SectionID {
	if section, ok := ParseSection(id); ok {
		return section
	}
	return DefaultSection
}

// Section carries sidebar metadata for a section.
type Section struct {
	ID          SectionID         `json:"id" yaml:"id"`
	Label       string            `json:"label" yaml:"label"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Placeholder *Placeholder      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// LabelForLocale returns the sidebar label for the requested locale.
func (s Section) LabelForLocale(locale string) string {
	return ResolveLocalizedValue(s.Labels, locale, s.Label)
}

// Placeholder describes a section that is announced but not built yet.
type Placeholder struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Icon         string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color        string   `json:"color,omitempty" yaml:"color,omitempty"`
	Features     []string `json:"features,omitempty" yaml:"features,omitempty"`
	ExpectedDate string   `json:"expected_date,omitempty" yaml:"expected_date,omitempty"`
}
