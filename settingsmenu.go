package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// settingsSection identifies one settings panel.
type settingsSection string

const (
	sectionGeneral      settingsSection = "general"
	sectionEnvironment  settingsSection = "environment"
	sectionCredentials  settingsSection = "credentials"
	sectionAPIKeys      settingsSection = "apikeys"
	sectionSubscription settingsSection = "subscription"
	sectionTeam         settingsSection = "team"
	sectionPrivacy      settingsSection = "privacy"
)

// settingsItem is one entry of the settings navigation list. hideInDev
// drops the item in development environments; requiresTeam drops it for
// users without a team.
type settingsItem struct {
	id           settingsSection
	label        string
	icon         string
	hideInDev    bool
	requiresTeam bool
}

// settingsItems is the full static navigation list, in display order.
var settingsItems = []settingsItem{
	{id: sectionGeneral, label: "General", icon: "⚙"},
	{id: sectionEnvironment, label: "Environment", icon: "⬡"},
	{id: sectionCredentials, label: "Credentials", icon: "⚿"},
	{id: sectionAPIKeys, label: "API Keys", icon: "⚷"},
	{id: sectionSubscription, label: "Subscription", icon: "✦", hideInDev: true},
	{id: sectionTeam, label: "Team", icon: "👥", requiresTeam: true},
	{id: sectionPrivacy, label: "Privacy", icon: "◎", hideInDev: true},
}

// visibleSettingsItems filters the static list against the environment
// gates. Order is preserved; no other reshaping happens here.
func visibleSettingsItems(items []settingsItem, devMode, team bool) []settingsItem {
	out := make([]settingsItem, 0, len(items))
	for _, it := range items {
		if it.hideInDev && devMode {
			continue
		}
		if it.requiresTeam && !team {
			continue
		}
		out = append(out, it)
	}
	return out
}

// settingsMenu renders the nav list plus a placeholder pane; the caller
// owns which section is active and reacts to activations.
type settingsMenu struct {
	items  []settingsItem
	cursor int
	active settingsSection
	onPick func(settingsSection)
}

func newSettingsMenu(devMode, team bool, onPick func(settingsSection)) *settingsMenu {
	m := &settingsMenu{
		items:  visibleSettingsItems(settingsItems, devMode, team),
		onPick: onPick,
	}
	if len(m.items) > 0 {
		m.active = m.items[0].id
		m.cursor = 0
	}
	return m
}

func (s *settingsMenu) CursorUp() {
	if s != nil && s.cursor > 0 {
		s.cursor--
	}
}

func (s *settingsMenu) CursorDown() {
	if s == nil {
		return
	}
	if s.cursor < len(s.items)-1 {
		s.cursor++
	}
}

// Activate marks the cursored item active and invokes the selection
// callback with its id.
func (s *settingsMenu) Activate() {
	if s == nil || s.cursor < 0 || s.cursor >= len(s.items) {
		return
	}
	s.active = s.items[s.cursor].id
	if s.onPick != nil {
		s.onPick(s.active)
	}
}

// ActiveSection returns the currently active section id.
func (s *settingsMenu) ActiveSection() settingsSection {
	if s == nil {
		return ""
	}
	return s.active
}

var settingsPaneText = map[settingsSection]string{
	sectionGeneral:      "Theme, timezone and editor preferences.",
	sectionEnvironment:  "Environment variables shared by workflow blocks.",
	sectionCredentials:  "OAuth connections available to blocks.",
	sectionAPIKeys:      "Keys for invoking workflows over the API.",
	sectionSubscription: "Plan, usage and billing.",
	sectionTeam:         "Members, invitations and roles.",
	sectionPrivacy:      "Telemetry and data retention controls.",
}

// renderSettingsMenu draws the nav list; exactly one row is highlighted
// as active, driven by s.active rather than the cursor.
func renderSettingsMenu(s *settingsMenu, width int) string {
	if s == nil {
		return ""
	}
	var lines []string
	for i, it := range s.items {
		prefix := "  "
		if i == s.cursor {
			prefix = cursorStyle.Render("> ")
		}
		labelStyle := lipgloss.NewStyle().Foreground(colorSubtext1)
		if it.id == s.active {
			labelStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		line := prefix + it.icon + " " + labelStyle.Render(it.label)
		if width > 0 {
			line = padRight(line, width)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderSettingsPane shows the active section's placeholder body.
func renderSettingsPane(s *settingsMenu, width int) string {
	if s == nil {
		return ""
	}
	text, ok := settingsPaneText[s.active]
	if !ok {
		text = "Nothing here yet."
	}
	return lipgloss.NewStyle().Foreground(colorSubtext0).Width(max(width, 10)).Render(text)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
