// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/config"
	"github.com/kalpruh/enrol/internal/keys"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/pubsub"
	"github.com/kalpruh/enrol/internal/ui/toaster"
	"github.com/kalpruh/enrol/internal/ui/wizardview"
	"github.com/kalpruh/enrol/internal/wizard"
)

// Model is the root application state.
type Model struct {
	wizard  wizardview.Model
	toaster toaster.Model
	keys    keys.KeyMap

	width  int
	height int

	// Catalog reloads (pubsub-based), nil without an override file
	catalogs       *catalog.Store
	listenerCtx    context.Context
	listenerCancel context.CancelFunc
	listener       *pubsub.Listener[*catalog.Catalog]
}

// New creates the application for w. When store has an override file the
// wizard follows its reloads.
func New(ctx context.Context, w *wizard.Wizard, store *catalog.Store, cfg config.Config) Model {
	m := Model{
		wizard: wizardview.New(w, store.Current(),
			wizardview.WithContext(ctx),
			wizardview.WithMarkdownStyle(cfg.UI.MarkdownStyle),
		),
		toaster:  toaster.New(),
		keys:     keys.DefaultKeyMap(),
		catalogs: store,
	}

	if store.Path() != "" {
		m.listenerCtx, m.listenerCancel = context.WithCancel(ctx)
		m.listener = pubsub.NewListener(m.listenerCtx, store.Broker())
	}
	return m
}

// Wizard returns the wizard screen.
func (m Model) Wizard() wizardview.Model { return m.wizard }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.wizard.Init()}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.wizard.SetSize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			log.Info(log.CatUI, "Quit requested")
			return m, tea.Quit
		}

	case pubsub.Event[*catalog.Catalog]:
		return m.handleCatalogEvent(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.wizard, cmd = m.wizard.Update(msg)
	return m, cmd
}

func (m Model) handleCatalogEvent(ev pubsub.Event[*catalog.Catalog]) (tea.Model, tea.Cmd) {
	var toast tea.Cmd
	switch ev.Type {
	case pubsub.ReloadedEvent:
		m.wizard.SetCatalog(ev.Payload)
		log.Debug(log.CatUI, "Applied reloaded catalog", "algorithms", ev.Payload.Len())
		m.toaster, toast = m.toaster.Show(
			fmt.Sprintf("Algorithm catalog reloaded (%d entries)", ev.Payload.Len()),
			toaster.StyleInfo, toaster.DefaultDuration)
	case pubsub.FailedEvent:
		log.Warn(log.CatUI, "Catalog reload failed, keeping previous catalog", "error", ev.Err)
		m.toaster, toast = m.toaster.Show(
			"Catalog reload failed; keeping the previous list",
			toaster.StyleWarn, toaster.DefaultDuration)
	}

	if m.listener == nil {
		return m, toast
	}
	return m, tea.Batch(toast, m.listener.Listen())
}

// View implements tea.Model.
func (m Model) View() string {
	view := zone.Scan(m.wizard.View())
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.listenerCancel != nil {
		m.listenerCancel()
	}
	return nil
}
