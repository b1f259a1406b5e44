// Package dashboard is the live dashboard engine: it owns the set of
// active monitor panels, the catalog browser, and the responsive grid
// that arranges them. All shared state lives on the Bubble Tea update
// loop; background work (polls, discovery) runs in commands and hands
// results back as messages, so nothing here needs a lock.
package dashboard

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/errors"
	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/internal/source"
)

// focusArea is which pane keyboard navigation applies to.
type focusArea int

const (
	focusBrowser focusArea = iota
	focusGrid
)

// monitorUnavailableMsg reports that a just-enabled monitor failed its
// reachability probe; the panel is rolled back and the failure surfaced.
type monitorUnavailableMsg struct {
	name string
}

// openFailedMsg reports that instantiating a monitor failed outright.
type openFailedMsg struct {
	name string
	err  error
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	cfg     *config.Config
	catalog source.Catalog
	browser browser
	log     logger.Logger

	// panels is keyed case-insensitively; order preserves insertion
	// for deterministic grid placement.
	panels map[string]*Panel
	order  []string

	width    int
	height   int
	focus    focusArea
	selected int

	showError  bool
	errContext string
	errDetail  string

	quitting bool
}

// New creates the dashboard model. Panics on nil arguments; those are
// wiring defects, not runtime conditions.
func New(cfg *config.Config, catalog source.Catalog) *Model {
	if cfg == nil {
		panic("dashboard: nil config")
	}
	if catalog == nil {
		panic("dashboard: nil catalog")
	}
	return &Model{
		cfg:     cfg,
		catalog: catalog,
		browser: newBrowser(),
		log:     logger.Default(),
		panels:  make(map[string]*Panel),
	}
}

// panelKey normalizes a source name for registry lookup.
func panelKey(name string) string {
	return strings.ToLower(name)
}

// Init kicks off discovery and the loading spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.catalog), m.browser.spinner.Tick)
}

// Update handles all messages. This is the single place shared state
// mutates.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()

	case spinner.TickMsg:
		return m, m.browser.updateSpinner(msg)

	case discoveryMsg:
		return m, m.handleDiscovery(msg)

	case ToggleMsg:
		if msg.Enabled {
			return m, m.enablePanel(msg.Descriptor)
		}
		m.disablePanel(msg.Descriptor.Name)

	case pollTickMsg:
		// A tick reschedules only for the exact panel that issued it.
		// A missing, disposed, or superseded panel does not reschedule;
		// that is how its timer dies.
		panel, ok := m.panels[panelKey(msg.name)]
		if !ok || panel != msg.panel || panel.disposed {
			return m, nil
		}
		return m, tea.Batch(panel.pollCmd(), panel.tickCmd())

	case pollResultMsg:
		// Same identity check: an in-flight read issued before disposal
		// must not land on a successor panel under the same name.
		if panel, ok := m.panels[panelKey(msg.name)]; ok && panel == msg.panel {
			panel.applyResult(msg)
		}

	case monitorUnavailableMsg:
		m.disablePanel(msg.name)
		m.browser.setEnabled(msg.name, false)
		m.surfaceError("Source '"+msg.name+"' is not reachable",
			"The source did not answer its reachability probe.")

	case openFailedMsg:
		m.browser.setEnabled(msg.name, false)
		m.surfaceError("Couldn't start monitoring '"+msg.name+"'",
			errors.Summary(msg.err))
	}

	return m, nil
}

// View renders the whole dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Close disposes every panel. Called once on shutdown; safe to call
// again.
func (m *Model) Close() {
	for _, panel := range m.panels {
		panel.dispose()
	}
}

// ActiveCount returns the number of live panels.
func (m *Model) ActiveCount() int {
	return len(m.panels)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The error modal swallows everything except dismissal.
	if m.showError {
		if key.Matches(msg, keys.Quit) {
			return m.quit()
		}
		m.showError = false
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()

	case key.Matches(msg, keys.Focus):
		if m.focus == focusBrowser {
			m.focus = focusGrid
		} else {
			m.focus = focusBrowser
		}

	case key.Matches(msg, keys.Up):
		if m.focus == focusBrowser {
			m.browser.moveUp()
		} else if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, keys.Down):
		if m.focus == focusBrowser {
			m.browser.moveDown()
		} else if m.selected < len(m.order)-1 {
			m.selected++
		}

	case key.Matches(msg, keys.Toggle):
		if m.focus == focusBrowser {
			return m, m.browser.toggle()
		}

	case key.Matches(msg, keys.Reload):
		return m, tea.Batch(m.browser.reload(), loadCmd(m.catalog))
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func (m *Model) handleDiscovery(msg discoveryMsg) tea.Cmd {
	active := make(map[string]bool, len(m.panels))
	for key := range m.panels {
		active[key] = true
	}
	m.browser.applyDiscovery(msg, active)

	if msg.err != nil {
		m.log.Error("discovery failed: %v", msg.err)
		if m.cfg.ShowDebugErrors {
			m.surfaceError("Source discovery failed", errors.Summary(msg.err))
		}
	}
	return nil
}

// enablePanel creates and starts a panel for the descriptor. Enabling
// an already-enabled name is a no-op.
func (m *Model) enablePanel(desc source.Descriptor) tea.Cmd {
	key := panelKey(desc.Name)
	if _, exists := m.panels[key]; exists {
		return nil
	}

	monitor, err := m.catalog.Open(desc)
	if err != nil {
		name := desc.Name
		return func() tea.Msg { return openFailedMsg{name: name, err: err} }
	}

	panel := newPanel(desc.Name, monitor,
		m.cfg.MaxDataPoints,
		time.Duration(m.cfg.PollIntervalSeconds)*time.Second)
	m.panels[key] = panel
	m.order = append(m.order, key)
	m.reflow()

	// Probe reachability off the render loop before the first real
	// poll. Success starts the polling loop with an immediate first
	// tick; an unreachable source rolls the panel back.
	name := desc.Name
	return func() tea.Msg {
		if !monitor.TryBegin() {
			return monitorUnavailableMsg{name: name}
		}
		return pollTickMsg{name: name, panel: panel}
	}
}

// disablePanel disposes and removes a panel. Disabling an absent name
// is a no-op.
func (m *Model) disablePanel(name string) {
	key := panelKey(name)
	panel, ok := m.panels[key]
	if !ok {
		return
	}

	panel.dispose()
	delete(m.panels, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.selected >= len(m.order) && m.selected > 0 {
		m.selected = len(m.order) - 1
	}
	m.reflow()
}

// orderedPanels returns the live panels in insertion order.
func (m *Model) orderedPanels() []*Panel {
	panels := make([]*Panel, 0, len(m.order))
	for _, key := range m.order {
		if panel, ok := m.panels[key]; ok {
			panels = append(panels, panel)
		}
	}
	return panels
}

// reflow recomputes every panel's chart area from the current
// viewport. Runs on every resize and panel-set change.
func (m *Model) reflow() {
	chartW, chartH := m.chartArea()
	for _, panel := range m.panels {
		panel.setChartSize(chartW, chartH)
	}
}

func (m *Model) surfaceError(context, detail string) {
	m.showError = true
	m.errContext = context
	m.errDetail = detail
}

// setEnabled flips a browser item's selection flag by name, used when
// the engine rolls back a toggle that could not take effect.
func (b *browser) setEnabled(name string, enabled bool) {
	for i := range b.items {
		if panelKey(b.items[i].desc.Name) == panelKey(name) {
			b.items[i].enabled = enabled
			return
		}
	}
}
