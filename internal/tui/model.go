// Package tui implements the Bubble Tea console for tvconsole.
package tui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	corekv "github.com/hay-kot/tvconsole/internal/core/kv"
	"github.com/hay-kot/tvconsole/internal/core/logging"
	"github.com/hay-kot/tvconsole/internal/core/modkeys"
	"github.com/hay-kot/tvconsole/internal/core/notify"
	"github.com/hay-kot/tvconsole/internal/tui/components"
	catalogview "github.com/hay-kot/tvconsole/internal/tui/views/catalog"
)

const (
	keyCtrlC = "ctrl+c"

	// tab bar, divider and status bar
	chromeHeight = 3
	tableOriginY = 2

	notificationLimit = 50
	kvTimeout         = 2 * time.Second
)

// Options configures the console.
type Options struct {
	Store catalog.Store
	// Bus receives selection, expansion and catalog events. Notifications
	// are read back from it. Optional.
	Bus *eventbus.EventBus
	// KVStore persists the active tab and per-table sort and filter. Optional.
	KVStore corekv.KV
	// Info loads the database details shown by the info dialog. Optional.
	Info func(ctx context.Context) (DatabaseInfo, error)
	// Clipboard writes copied ids. Defaults to the system clipboard.
	Clipboard func(string) error
	// Warnings are shown in the status bar on start.
	Warnings []string
	Build    BuildInfo
}

// DatabaseInfo describes the catalog database.
type DatabaseInfo struct {
	Path          string
	SchemaVersion int
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	store  catalog.Store
	bus    *eventbus.EventBus
	keys   KeyMap
	logger zerolog.Logger
	build  BuildInfo

	// Modifier tracking shared by every table.
	hub     *modkeys.Hub
	tracker *modkeys.Tracker
	surface *rangeSurface
	detach  func()

	tabs   []catalogview.Tab
	active int

	notices   chan notify.Notification
	notes     *notify.Log
	clipboard func(string) error
	info      func(ctx context.Context) (DatabaseInfo, error)

	tableState   *corekv.TypedKV[catalogview.ViewState]
	consoleState *corekv.TypedKV[string]

	snapshot   catalog.Snapshot
	loaded     bool
	refreshing bool

	helpDialog *components.HelpDialog
	infoDialog *components.InfoDialog

	width    int
	height   int
	quitting bool
}

// New builds the console. The catalog is loaded by Init.
func New(cfg *config.Config, opts Options) Model {
	surface := &rangeSurface{}
	hub := modkeys.NewHub()
	tracker := modkeys.NewTracker(surface, logging.Component("modkeys"))

	m := Model{
		cfg:       cfg,
		store:     opts.Store,
		bus:       opts.Bus,
		keys:      DefaultKeyMap(),
		logger:    logging.Component("tui"),
		build:     opts.Build,
		hub:       hub,
		tracker:   tracker,
		surface:   surface,
		detach:    tracker.Attach(hub),
		notes:     notify.NewLog(notificationLimit),
		clipboard: opts.Clipboard,
		info:      opts.Info,
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}

	bus := opts.Bus
	if bus != nil {
		ch := make(chan notify.Notification, 16)
		bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
			select {
			case ch <- notify.Notification{Level: p.Level, Message: p.Message, CreatedAt: time.Now()}:
			default:
			}
		})
		m.notices = ch
	}

	m.tabs = catalogview.Tabs(catalogview.Deps{
		Config:    cfg,
		Modifiers: tracker,
		OnSelectionChange: func(table string, ids []string) {
			if bus != nil {
				bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Table: table, IDs: ids})
			}
		},
		OnExpandChange: func(table string, id string) {
			if bus != nil {
				bus.PublishRowExpanded(eventbus.RowExpandedPayload{Table: table, RowID: id})
			}
		},
	})

	if opts.KVStore != nil {
		m.tableState = corekv.Scoped[catalogview.ViewState](opts.KVStore, corekv.NamespaceTables)
		m.consoleState = corekv.Scoped[string](opts.KVStore, corekv.NamespaceConsole)
		m.restoreViewState()
	}

	for _, w := range opts.Warnings {
		m.notes.Add(notify.Notification{Level: notify.LevelWarning, Message: w, CreatedAt: time.Now()})
	}

	m.tabs[m.active].Focus()
	return m
}

// Init starts the first load, the notification listener and polling.
func (m Model) Init() tea.Cmd {
	if m.bus != nil {
		m.bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	}
	cmds := []tea.Cmd{
		loadSnapshot(m.store),
		waitForNotification(m.notices),
		scheduleRefresh(m.cfg.TUI.RefreshInterval),
	}
	if _, ok := m.notes.Latest(); ok {
		cmds = append(cmds, expireNotification())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if dispatchModifiers(m.hub, m.tracker, msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case snapshotLoadedMsg:
		return m.handleSnapshot(msg)
	case refreshTickMsg:
		cmd := scheduleRefresh(m.cfg.TUI.RefreshInterval)
		if m.refreshing {
			return m, cmd
		}
		m.refreshing = true
		return m, tea.Batch(loadSnapshot(m.store), cmd)

	case notificationMsg:
		m.notes.Add(msg.notification)
		return m, tea.Batch(waitForNotification(m.notices), expireNotification())
	case notificationExpiredMsg:
		return m, nil

	case copyDoneMsg:
		return m.handleCopyDone(msg)
	case infoLoadedMsg:
		return m.handleInfoLoaded(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleClick(msg)
	}

	if m.dialogOpen() {
		return m, nil
	}
	return m, m.activeTab().Update(msg)
}

func (m Model) handleSnapshot(msg snapshotLoadedMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("catalog load failed")
		if m.bus != nil {
			m.bus.PublishCatalogRefreshFailed(eventbus.CatalogRefreshFailedPayload{Err: msg.err})
			return m, nil
		}
		return m, m.notify(notify.LevelError, "refresh failed: %v", msg.err)
	}

	m.snapshot = msg.snap
	m.loaded = true
	for _, t := range m.tabs {
		t.Apply(msg.snap)
	}

	counts := msg.snap.Counts()
	m.logger.Debug().
		Int("channels", counts.Channels).
		Int("streams", counts.Streams).
		Dur("duration", msg.duration).
		Msg("catalog loaded")

	if m.bus != nil {
		m.bus.PublishCatalogRefreshed(eventbus.CatalogRefreshedPayload{Counts: counts, Duration: msg.duration})
	}
	return m, nil
}

func (m Model) handleCopyDone(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("table", msg.table).Msg("clipboard write failed")
		return m, m.notify(notify.LevelError, "copy failed: %v", msg.err)
	}

	if m.bus != nil {
		m.bus.PublishSelectionCopied(eventbus.SelectionCopiedPayload{Table: msg.table, Count: msg.count})
		return m, nil
	}
	if msg.count == 0 {
		return m, m.notify(notify.LevelWarning, "nothing selected in %s", msg.table)
	}
	return m, m.notify(notify.LevelInfo, "copied %d %s ids", msg.count, msg.table)
}

func (m Model) handleInfoLoaded(msg infoLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.notify(notify.LevelError, "database info: %v", msg.err)
	}
	m.infoDialog = m.newInfoDialog(msg.info)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	switch {
	case m.helpDialog != nil:
		switch keyStr {
		case "esc", "?", "q", "enter":
			m.helpDialog = nil
		}
		return m, nil
	case m.infoDialog != nil:
		switch keyStr {
		case "esc", "i", "q", "enter":
			m.infoDialog = nil
		case "up", "k":
			m.infoDialog.ScrollUp()
		case "down", "j":
			m.infoDialog.ScrollDown()
		}
		return m, nil
	}

	tab := m.activeTab()
	if tab.HasEditorFocus() {
		return m, tab.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.NextTab):
		m.setActive(m.active + 1)
	case key.Matches(msg, m.keys.PrevTab):
		m.setActive(m.active - 1)
	case key.Matches(msg, m.keys.Jump):
		if n := int(keyStr[0] - '1'); n < len(m.tabs) {
			m.setActive(n)
		}
	case key.Matches(msg, m.keys.Copy):
		return m, copyIDs(m.clipboard, tab.Name(), tab.SelectedIDs())
	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, loadSnapshot(m.store)
	case key.Matches(msg, m.keys.Info):
		if m.info == nil {
			m.infoDialog = m.newInfoDialog(DatabaseInfo{})
			return m, nil
		}
		return m, loadInfo(m.info)
	case key.Matches(msg, m.keys.Help):
		m.helpDialog = m.newHelpDialog()
	default:
		return m, tab.Update(msg)
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.dialogOpen() {
		return m, nil
	}
	mouse := msg.Mouse()
	if mouse.Y == 0 {
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if i := m.tabAt(mouse.X); i >= 0 {
			m.setActive(i)
		}
		return m, nil
	}
	return m, m.activeTab().Update(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.saveViewState()
	m.detach()
	if m.bus != nil {
		m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	}
	return m, tea.Quit
}

// notify records a notification that does not come from the bus.
func (m *Model) notify(level notify.Level, format string, args ...any) tea.Cmd {
	m.notes.Add(notify.Notification{
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		CreatedAt: time.Now(),
	})
	return expireNotification()
}

func (m *Model) setActive(i int) {
	n := len(m.tabs)
	i = ((i % n) + n) % n
	if i == m.active {
		return
	}
	m.tabs[m.active].Blur()
	m.active = i
	m.tabs[m.active].Focus()
}

func (m *Model) resize() {
	h := max(m.height-chromeHeight, 1)
	for _, t := range m.tabs {
		t.SetSize(m.width, h)
		t.SetOrigin(0, tableOriginY)
	}
}

func (m Model) activeTab() catalogview.Tab {
	return m.tabs[m.active]
}

func (m Model) dialogOpen() bool {
	return m.helpDialog != nil || m.infoDialog != nil
}

// ActiveTable returns the name of the focused table.
func (m Model) ActiveTable() string {
	return m.activeTab().Name()
}

// Notifications returns the console notifications, newest first.
func (m Model) Notifications() []notify.Notification {
	return m.notes.List()
}
