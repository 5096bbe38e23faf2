package shell

// NavItem is one sidebar entry.
type NavItem struct {
	ID     SectionID `json:"id"`
	Label  string    `json:"label"`
	Icon   string    `json:"icon,omitempty"`
	Active bool      `json:"active"`
}

// HeaderState is what the header renders.
type HeaderState struct {
	Title             string `json:"title"`
	DarkMode          bool   `json:"dark_mode"`
	NotificationCount int    `json:"notification_count"`
	Search            string `json:"search,omitempty"`
}

// ThemeView is the resolved theme handed to templates.
type ThemeView struct {
	Variant    string            `json:"variant"`
	ChartTheme string            `json:"chart_theme,omitempty"`
	Tokens     map[string]string `json:"tokens,omitempty"`
	CSS        string            `json:"css,omitempty"`
}

// Layout is the composed shell: sidebar, header, active panel and the
// notification and modal overlays.
type Layout struct {
	Active        SectionID       `json:"active"`
	Section       Section         `json:"section"`
	Sidebar       []NavItem       `json:"sidebar"`
	Header        HeaderState     `json:"header"`
	Panel         PanelData       `json:"panel"`
	Notifications []Notification  `json:"notifications"`
	Modal         ModalDescriptor `json:"modal"`
	Theme         ThemeView       `json:"theme"`
}

func newThemeView(selection *ThemeSelection) ThemeView {
	if selection == nil {
		return ThemeView{}
	}
	return ThemeView{
		Variant:    selection.Variant,
		ChartTheme: selection.ChartTheme,
		Tokens:     selection.CSSVariables(),
		CSS:        selection.CSSVariablesInline(),
	}
}
