package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"flowdeck/internal/registry"
	"flowdeck/internal/workflow"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	errorTextStyle = lipgloss.NewStyle().Foreground(colorError)

	infoLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	searchInputStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	selectorStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	selectorDisabledStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Background(colorSurface0).
				Padding(0, 1)
)

// ---------------------------------------------------------------------------
// Tab names
// ---------------------------------------------------------------------------

var tabNames = []string{"Outputs", "Settings"}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func renderHeader(name string, activeTab, width int) string {
	app := headerAppStyle.Render(name)

	var tabs []string
	for i, tab := range tabNames {
		if i == activeTab {
			tabs = append(tabs, activeTabStyle.Render(tab))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab))
		}
	}
	tabBar := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))

	content := app + "  " + tabBar
	if width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(width).Render(content)
}

func (m model) renderFooter(text string) string {
	if m.width == 0 {
		return footerStyle.Render(text)
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return footerStyle.Render(padRight(flat, m.width))
}

func (m model) renderStatus(text string) string {
	style := statusBarStyle
	if m.statusErr {
		style = style.Foreground(colorError)
	}
	if m.width == 0 {
		return style.Render(text)
	}
	flat := truncate(strings.ReplaceAll(text, "\n", " "), m.width-4)
	return style.Render(padRight(flat, m.width))
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}

// renderModalContent frames a modal: title, separator, body, footer.
func renderModalContent(title string, lines []string, footer string) string {
	width := maxLineWidth(lines)
	if w := lipgloss.Width(footer); w > width {
		width = w
	}
	sep := lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("─", max(width, 1)))

	var b strings.Builder
	b.WriteString(padRight(titleStyle.Render(title), width))
	b.WriteString("\n" + sep + "\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n" + sep + "\n")
	b.WriteString(footer)
	return modalStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m model) View() string {
	header := renderHeader(appName, m.activeTab, m.width)

	var body string
	switch m.activeTab {
	case tabSettings:
		body = m.renderSettingsTab()
	default:
		body = m.renderOutputsTab()
	}

	status := m.renderStatus(m.status)
	footer := m.renderFooter(renderHelp(m.keys.HelpBindings(m.scope())) + "  " + renderHelp(m.keys.HelpBindings(scopeGlobal)))

	view := header + "\n" + body + "\n" + status + "\n" + footer

	if m.pickerOpen && m.picker != nil {
		x, y, _, _ := m.pickerRect()
		view = overlayAt(view, m.renderPickerModal(), x, y, m.width, m.height)
	}
	return view
}

// pickerModalWidth keeps the dropdown readable without spanning the
// whole terminal.
func (m model) pickerModalWidth() int {
	w := 56
	if m.width > 0 && w > m.width-6 {
		w = m.width - 6
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m model) renderPickerModal() string {
	return renderOutputPicker(m.picker, m.pickerModalWidth(), m.keys)
}

// pickerRect reports the modal's screen rectangle; the mouse handler
// uses it for outside-click dismissal.
func (m model) pickerRect() (x, y, w, h int) {
	if m.picker == nil {
		return 0, 0, 0, 0
	}
	rendered := m.renderPickerModal()
	w = maxLineWidth(splitLines(rendered))
	h = lipgloss.Height(rendered)
	x = (m.width - w) / 2
	if x < 0 {
		x = 0
	}
	y = 3
	return x, y, w, h
}

func (m model) renderOutputsTab() string {
	contentWidth := m.sectionContentWidth()

	var lines []string

	selector := m.selectedLabel() + " ▾"
	if m.selectorEnabled() {
		selector = selectorStyle.Render(selector)
	} else {
		selector = selectorDisabledStyle.Render(selector)
	}
	lines = append(lines, infoLabelStyle.Render("Output: ")+selector, "")

	if m.loadErr != nil {
		lines = append(lines, errorTextStyle.Render("Workflow unavailable."))
	} else if m.loaded && len(m.groups) == 0 {
		lines = append(lines, infoLabelStyle.Render("This workflow has no selectable outputs."))
	}

	for _, g := range m.groups {
		meta := registry.Lookup(g.BlockType)
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Render(meta.Glyph)
		name := lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(g.BlockName)
		detail := infoLabelStyle.Render(fmt.Sprintf("  %s · %d outputs · depth %d", meta.Label, len(g.Handles), g.Distance))
		lines = append(lines, glyph+" "+name+detail)
		for _, h := range g.Handles {
			marker := "  "
			if h.ID == m.selectedID {
				marker = cursorStyle.Render("● ")
			}
			lines = append(lines, "   "+marker+infoLabelStyle.Render(h.Path))
		}
	}

	for i := range lines {
		lines[i] = padRight(lines[i], contentWidth)
	}
	return m.renderSection("Workflow outputs", strings.Join(lines, "\n"))
}

func (m model) renderSettingsTab() string {
	menuWidth := 24
	paneWidth := m.sectionContentWidth() - menuWidth - 3
	if paneWidth < 10 {
		paneWidth = 10
	}

	menu := renderSettingsMenu(m.settings, menuWidth)
	pane := renderSettingsPane(m.settings, paneWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, menu, "   ", pane)
	return m.renderSection("Settings", body)
}

func (m model) renderSection(title, content string) string {
	contentWidth := m.sectionContentWidth()
	header := padRight(titleStyle.Render(title), contentWidth)
	sepStyle := lipgloss.NewStyle().Foreground(colorSurface2)
	separator := sepStyle.Render(strings.Repeat("─", contentWidth))
	sectionContent := header + "\n" + separator + "\n" + content
	section := listBoxStyle.Width(m.sectionWidth()).Render(sectionContent)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (m model) sectionWidth() int {
	if m.width <= 0 {
		return 72
	}
	w := m.width - 4
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m model) sectionContentWidth() int {
	return m.sectionWidth() - 4
}

// workflowStatusLine summarizes a freshly loaded snapshot.
func workflowStatusLine(groups []workflow.Group, handles []workflow.Handle) string {
	if len(handles) == 0 {
		return "Workflow loaded: no selectable outputs."
	}
	return fmt.Sprintf("Workflow loaded: %d outputs across %d blocks.", len(handles), len(groups))
}
