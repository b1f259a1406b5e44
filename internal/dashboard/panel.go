package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/internal/source"
)

// Panel owns one monitor, its poll timer, its sample window, and its
// chart geometry. Panels are fully independent of each other; disposing
// one never touches another.
//
// Lifecycle: created, then polling from the first probe tick, then
// disposed. Disposal stops new polls from being scheduled but cannot
// cancel one already in flight; applyResult discards late results via
// the disposed flag.
type Panel struct {
	name     string
	monitor  source.Monitor
	window   *Window
	geom     ChartGeometry
	interval time.Duration
	log      logger.Logger

	chartWidth  int
	chartHeight int

	disposed bool
	current  float64
	hasValue bool
	minSeen  float64
	maxSeen  float64
	lastPoll time.Time
}

// newPanel creates a panel. Panics on a nil monitor or empty name;
// both are construction defects, not runtime conditions.
func newPanel(name string, monitor source.Monitor, maxDataPoints int, interval time.Duration) *Panel {
	if name == "" {
		panic("panel: empty name")
	}
	if monitor == nil {
		panic("panel: nil monitor for " + name)
	}
	if interval < time.Second {
		interval = time.Second
	}
	return &Panel{
		name:        name,
		monitor:     monitor,
		window:      NewWindow(maxDataPoints),
		interval:    interval,
		log:         logger.Default(),
		chartWidth:  1,
		chartHeight: 1,
	}
}

// tickCmd schedules the next poll tick, stamped with this panel's
// identity so the tick dies with it.
func (p *Panel) tickCmd() tea.Cmd {
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return pollTickMsg{name: p.name, panel: p}
	})
}

// pollCmd reads the monitor off the render loop. Failures come back as
// ok=false and are dropped without a trace; a hung source simply never
// reports, and the chart stops advancing for this panel.
func (p *Panel) pollCmd() tea.Cmd {
	name := p.name
	monitor := p.monitor
	if monitor == nil {
		return nil
	}
	return func() tea.Msg {
		value, err := monitor.ReadValue()
		if err != nil {
			return pollResultMsg{name: name, panel: p, ok: false}
		}
		return pollResultMsg{name: name, panel: p, value: value, at: time.Now(), ok: true}
	}
}

// applyResult folds a poll result into the panel state. Runs on the
// render loop. Late results for a disposed panel and failed polls both
// leave every piece of state untouched.
func (p *Panel) applyResult(msg pollResultMsg) {
	if p.disposed {
		p.log.Debug("panel %s: dropping late poll result after disposal", p.name)
		return
	}
	if !msg.ok {
		return
	}

	p.window.Append(Sample{Time: msg.at, Value: msg.value})
	p.geom = ComputeGeometry(p.window.All(), p.chartWidth, p.chartHeight)
	p.lastPoll = msg.at

	p.current = msg.value
	if !p.hasValue {
		p.minSeen, p.maxSeen = msg.value, msg.value
		p.hasValue = true
	} else {
		if msg.value < p.minSeen {
			p.minSeen = msg.value
		}
		if msg.value > p.maxSeen {
			p.maxSeen = msg.value
		}
	}
}

// setChartSize records the chart cell area and reflows the geometry.
func (p *Panel) setChartSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.chartWidth = width
	p.chartHeight = height
	p.geom = ComputeGeometry(p.window.All(), width, height)
}

// dispose tears the panel down: the monitor is closed and dropped, and
// the disposed flag stops both future scheduling and late results.
// Idempotent.
func (p *Panel) dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.monitor != nil {
		if err := p.monitor.Close(); err != nil {
			p.log.Debug("panel %s: close failed: %v", p.name, err)
		}
		p.monitor = nil
	}
}

// Disposed reports whether the panel has been torn down.
func (p *Panel) Disposed() bool {
	return p.disposed
}
