package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"flowdeck/internal/workflow"
)

func (m model) Init() tea.Cmd {
	return refreshCmd(m.store)
}

// refreshCmd resolves the workflow snapshot off the update loop.
func refreshCmd(store workflow.Store) tea.Cmd {
	return func() tea.Msg {
		groups, err := workflow.NewResolver(store).Resolve()
		return workflowLoadedMsg{groups: groups, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workflowLoadedMsg:
		return m.handleWorkflowLoaded(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleWorkflowLoaded(msg workflowLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	if msg.err != nil {
		m.loadErr = msg.err
		m.groups = nil
		m.handles = nil
		m.setError("Workflow load failed: " + msg.err.Error())
		m.logger.Warn("workflow load failed", zap.Error(msg.err))
		return m, nil
	}
	m.loadErr = nil
	m.groups = msg.groups
	m.handles = workflow.FlattenGroups(msg.groups)

	// A previously selected handle can disappear when upstream blocks are
	// deleted or renamed; the display reverts to the placeholder and the
	// selection callback is not re-invoked.
	if m.selectedID != "" {
		if _, ok := workflow.FindHandle(m.handles, m.selectedID); !ok {
			if near, ok := workflow.NearestHandle(m.handles, m.selectedID); ok {
				m.setStatus("Selected output is gone. Did you mean " + near.BlockName + "." + near.Path + "?")
			} else {
				m.setStatus("Selected output is gone.")
			}
			return m, nil
		}
	}
	m.setStatus(workflowStatusLine(m.groups, m.handles))
	return m, nil
}

// handleMouse implements outside-click dismissal for the dropdown: a
// left press outside the modal rectangle closes it without selecting.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.pickerOpen {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y, w, h := m.pickerRect()
	inside := msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h
	if !inside {
		m.pickerOpen = false
		m.picker = nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pickerOpen {
		return m.updatePicker(msg)
	}

	binding := m.keys.Lookup(msg.String(), m.scope())
	if binding == nil {
		return m, nil
	}
	switch binding.Action {
	case actionQuit:
		m.logger.Info("quit")
		return m, tea.Quit
	case actionNextTab:
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case actionPrevTab:
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		return m, nil
	}

	if m.activeTab == tabSettings {
		return m.updateSettings(msg, binding)
	}
	return m.updateOutputs(binding)
}

func (m model) updateOutputs(binding *Binding) (tea.Model, tea.Cmd) {
	switch binding.Action {
	case actionOpenPicker:
		if !m.selectorEnabled() {
			m.setStatus("No outputs available.")
			return m, nil
		}
		m.picker = newOutputPicker(m.groups)
		m.pickerOpen = true
		return m, nil
	case actionClearPick:
		m.selectedID = ""
		m.setStatus("Selection cleared.")
		return m, nil
	case actionRefresh:
		m.setStatus("Reloading workflow…")
		return m, refreshCmd(m.store)
	}
	return m, nil
}

func (m model) updateSettings(msg tea.KeyMsg, binding *Binding) (tea.Model, tea.Cmd) {
	switch binding.Action {
	case actionNavigate:
		// One binding covers both directions; the pressed key decides.
		switch normalizeKeyName(msg.String()) {
		case "k", "up":
			m.settings.CursorUp()
		case "j", "down":
			m.settings.CursorDown()
		}
		return m, nil
	case actionActivate:
		m.settings.Activate()
		m.setStatus("Settings: " + string(m.settings.ActiveSection()))
		return m, nil
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := m.picker.HandleKey(msg.String())
	switch result.Action {
	case pickerActionSelected:
		m.selectedID = result.ItemID
		m.pickerOpen = false
		m.picker = nil
		m.setStatus("Selected " + m.selectedLabel())
		m.logger.Info("output selected", zap.String("handle", m.selectedID))
		return m, nil
	case pickerActionCancelled:
		m.pickerOpen = false
		m.picker = nil
		return m, nil
	}
	return m, nil
}
