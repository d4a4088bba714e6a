package main

import (
	"go.uber.org/zap"

	"flowdeck/internal/config"
	"flowdeck/internal/workflow"
)

const appName = "Flowdeck"

// Tab indices
const (
	tabOutputs  = 0
	tabSettings = 1
	tabCount    = 2
)

// model is the whole application state. Selection state lives here, not
// in the picker: the picker reports a choice and is torn down.
type model struct {
	cfg    config.Config
	logger *zap.Logger
	keys   *KeyRegistry
	store  workflow.Store

	// Resolved workflow snapshot.
	groups  []workflow.Group
	handles []workflow.Handle
	loadErr error
	loaded  bool

	// Output selection.
	selectedID string

	// Dropdown state.
	pickerOpen bool
	picker     *pickerState

	settings *settingsMenu

	activeTab int
	width     int
	height    int
	status    string
	statusErr bool
}

// workflowLoadedMsg carries a freshly resolved snapshot.
type workflowLoadedMsg struct {
	groups []workflow.Group
	err    error
}

func newModel(cfg config.Config, logger *zap.Logger, store workflow.Store) model {
	m := model{
		cfg:    cfg,
		logger: logger,
		keys:   NewKeyRegistry(),
		store:  store,
		status: "Loading workflow…",
	}
	m.settings = newSettingsMenu(cfg.Env.DevMode, cfg.Env.Team, func(id settingsSection) {
		logger.Info("settings section opened", zap.String("section", string(id)))
	})
	return m
}

func (m *model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

// scope names the key-binding scope of the focused surface.
func (m model) scope() string {
	if m.pickerOpen {
		return scopeOutputPicker
	}
	if m.activeTab == tabSettings {
		return scopeSettingsNav
	}
	return scopeOutputs
}

// selectedLabel resolves the current selection for display; a stale or
// empty selection falls back to the configured placeholder.
func (m model) selectedLabel() string {
	return workflow.SelectedLabel(m.handles, m.selectedID, m.cfg.UI.Placeholder)
}

// selectorEnabled reports whether the dropdown can open at all.
func (m model) selectorEnabled() bool {
	return len(m.handles) > 0
}
