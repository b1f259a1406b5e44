package dashboard

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/source"
)

// fakeCatalog is a scriptable Catalog for engine tests.
type fakeCatalog struct {
	descs    []source.Descriptor
	err      error
	openErr  error
	monitors map[string]*fakeMonitor
}

func newFakeCatalog(names ...string) *fakeCatalog {
	c := &fakeCatalog{monitors: make(map[string]*fakeMonitor)}
	for _, name := range names {
		c.descs = append(c.descs, source.Descriptor{Name: name, Kind: source.KindSynthetic})
	}
	return c
}

func (c *fakeCatalog) Available(ctx context.Context) ([]source.Descriptor, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.descs, nil
}

func (c *fakeCatalog) Open(desc source.Descriptor) (source.Monitor, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	m := newFakeMonitor(1, 2, 3)
	c.monitors[desc.Name] = m
	return m, nil
}

func newTestModel(catalog *fakeCatalog, mutate ...func(*config.Config)) *Model {
	cfg := config.DefaultConfig()
	for _, f := range mutate {
		f(cfg)
	}
	m := New(cfg, catalog)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// loaded drives the model through a successful discovery.
func loaded(m *Model, catalog *fakeCatalog) {
	m.Update(discoveryMsg{descriptors: catalog.descs})
}

func TestNewPanicsOnNilArguments(t *testing.T) {
	assert.Panics(t, func() { New(nil, newFakeCatalog()) })
	assert.Panics(t, func() { New(config.DefaultConfig(), nil) })
}

func TestEnableTwiceIsNoOp(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)

	desc := catalog.descs[0]
	m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	require.Equal(t, 1, m.ActiveCount())

	_, cmd := m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	assert.Nil(t, cmd, "second enable schedules nothing")
	assert.Equal(t, 1, m.ActiveCount(), "registry size unchanged")
	assert.Len(t, m.order, 1, "no duplicate placement entry")
}

func TestDisableAbsentIsNoOp(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)

	assert.NotPanics(t, func() {
		m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: false})
	})
	assert.Equal(t, 0, m.ActiveCount())
}

func TestEnableIsCaseInsensitive(t *testing.T) {
	catalog := newFakeCatalog("Build/Payments")
	m := newTestModel(catalog)
	loaded(m, catalog)

	m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: true})
	m.Update(ToggleMsg{Descriptor: source.Descriptor{Name: "build/payments"}, Enabled: true})

	assert.Equal(t, 1, m.ActiveCount())
}

func TestEnableDisableLifecycle(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)

	desc := catalog.descs[0]
	_, cmd := m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	require.NotNil(t, cmd)

	// The probe runs off-loop and reports back with the first tick.
	msg := cmd()
	tick, ok := msg.(pollTickMsg)
	require.True(t, ok)
	assert.Equal(t, desc.Name, tick.name)

	// The tick triggers an immediate poll plus the next timer.
	_, cmd = m.Update(tick)
	assert.NotNil(t, cmd)

	m.Update(ToggleMsg{Descriptor: desc, Enabled: false})
	assert.Equal(t, 0, m.ActiveCount())
	assert.Equal(t, 1, catalog.monitors[desc.Name].closes(), "disable disposes the monitor")

	// A tick for the removed panel schedules nothing: its timer dies.
	_, cmd = m.Update(tick)
	assert.Nil(t, cmd)
}

func TestInFlightResultDiscardedAfterReenable(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)
	desc := catalog.descs[0]

	m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	old := m.panels[panelKey(desc.Name)]
	require.NotNil(t, old)

	// Capture a poll that is still in flight when the panel dies.
	inFlight := old.pollCmd()
	require.NotNil(t, inFlight)
	stale := inFlight()

	m.Update(ToggleMsg{Descriptor: desc, Enabled: false})
	m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	successor := m.panels[panelKey(desc.Name)]
	require.NotNil(t, successor)
	require.NotSame(t, old, successor)

	m.Update(stale)
	assert.Equal(t, 0, successor.window.Len(),
		"a result read by the disposed panel never lands on its successor")
}

func TestStaleTickDiesAfterReenable(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)
	desc := catalog.descs[0]

	_, cmd := m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	require.NotNil(t, cmd)
	oldTick := cmd()
	require.IsType(t, pollTickMsg{}, oldTick)

	m.Update(ToggleMsg{Descriptor: desc, Enabled: false})
	m.Update(ToggleMsg{Descriptor: desc, Enabled: true})

	// The old chain's tick finds a live panel under the same name but
	// must not reschedule; only the successor's own chain polls it.
	_, cmd = m.Update(oldTick)
	assert.Nil(t, cmd, "superseded timer chain stays dead")
}

func TestUnreachableMonitorRollsBack(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)

	desc := catalog.descs[0]
	_, cmd := m.Update(ToggleMsg{Descriptor: desc, Enabled: true})
	require.NotNil(t, cmd)
	catalog.monitors[desc.Name].reachable = false

	msg := cmd()
	_, ok := msg.(monitorUnavailableMsg)
	require.True(t, ok)

	m.Update(msg)
	assert.Equal(t, 0, m.ActiveCount(), "panel rolled back")
	assert.True(t, m.showError, "invalid operation is surfaced")
	assert.False(t, m.browser.items[0].enabled, "selection flag rolled back")
}

func TestOpenFailureSurfaced(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	catalog.openErr = fmt.Errorf("connection not ready")
	m := newTestModel(catalog)
	loaded(m, catalog)

	_, cmd := m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: true})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, 0, m.ActiveCount())
	assert.True(t, m.showError)
}

func TestDiscoveryEmptySnapshot(t *testing.T) {
	catalog := newFakeCatalog()
	m := newTestModel(catalog)

	m.Update(discoveryMsg{descriptors: []source.Descriptor{}})

	assert.Equal(t, browserLoaded, m.browser.state, "no loading node remains")
	assert.Empty(t, m.browser.items)
	assert.False(t, m.showError, "empty is not an error")
}

func TestDiscoveryFailureGatedByShowDebugErrors(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.err = fmt.Errorf("enumeration blew up")

	quiet := newTestModel(catalog)
	quiet.Update(discoveryMsg{err: catalog.err})
	assert.Equal(t, browserFailed, quiet.browser.state, "error placeholder shown")
	assert.False(t, quiet.showError, "no dialog without the debug flag")

	loud := newTestModel(catalog, func(c *config.Config) { c.ShowDebugErrors = true })
	loud.Update(discoveryMsg{err: catalog.err})
	assert.Equal(t, browserFailed, loud.browser.state)
	assert.True(t, loud.showError, "dialog shown with the debug flag")
}

func TestBrowserToggleEmitsExactlyOnce(t *testing.T) {
	catalog := newFakeCatalog("build/payments", "build/emails")
	m := newTestModel(catalog)
	loaded(m, catalog)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	toggle, ok := msg.(ToggleMsg)
	require.True(t, ok)
	assert.Equal(t, "build/payments", toggle.Descriptor.Name)
	assert.True(t, toggle.Enabled)

	// Toggling again flips it back off.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	toggle = cmd().(ToggleMsg)
	assert.False(t, toggle.Enabled)
}

func TestBrowserIgnoresInputWhileLoading(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)

	require.Equal(t, browserLoading, m.browser.state)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "interaction is ignored while loading")
}

func TestReloadDiscardsNodes(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)
	require.Len(t, m.browser.items, 1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.NotNil(t, cmd, "reload re-runs discovery")
	assert.Equal(t, browserLoading, m.browser.state)
	assert.Empty(t, m.browser.items, "prior nodes fully discarded")
}

func TestReloadPreservesRunningPanels(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)
	m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: true})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	loaded(m, catalog)

	assert.Equal(t, 1, m.ActiveCount(), "reload does not stop monitors")
	assert.True(t, m.browser.items[0].enabled, "running panel re-marked enabled")
}

func TestQuitDisposesEverything(t *testing.T) {
	catalog := newFakeCatalog("a", "b")
	m := newTestModel(catalog)
	loaded(m, catalog)
	m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: true})
	m.Update(ToggleMsg{Descriptor: catalog.descs[1], Enabled: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	for name, monitor := range catalog.monitors {
		assert.Equal(t, 1, monitor.closes(), "monitor %s closed on quit", name)
	}
	assert.Equal(t, "", m.View())
}

func TestViewRenders(t *testing.T) {
	catalog := newFakeCatalog("build/payments")
	m := newTestModel(catalog)
	loaded(m, catalog)
	m.Update(ToggleMsg{Descriptor: catalog.descs[0], Enabled: true})

	// Give the panel a sample so the card renders a chart.
	panel := m.panels["build/payments"]
	m.Update(pollResultMsg{name: "build/payments", panel: panel, value: 42, at: sampleAt(0, 0).Time, ok: true})

	view := m.View()
	assert.Contains(t, view, "build/payments")
	assert.Contains(t, view, "42")
	assert.NotPanics(t, func() {
		m.Update(tea.WindowSizeMsg{Width: 99, Height: 40})
		m.View()
	})
}
