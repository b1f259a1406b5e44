package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/queuewatch/qw/internal/source"
)

// browserState is the catalog browser's load state.
type browserState int

const (
	browserLoading browserState = iota
	browserLoaded
	browserFailed
)

// catalogItem is one discoverable source plus its selection flag. The
// flag tracks what the operator has toggled, not what is running; the
// orchestration layer owns the running set.
type catalogItem struct {
	desc    source.Descriptor
	enabled bool
}

// browser is the deferred-load catalog list. While loading it animates
// a spinner and ignores interaction; once loaded it is a flat expanded
// category of toggleable items; on failure it shows a static error
// marker and waits for an external reload.
type browser struct {
	state   browserState
	spinner spinner.Model
	items   []catalogItem
	cursor  int
}

func newBrowser() browser {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    120 * time.Millisecond,
	}
	s.Style = spinnerStyle
	return browser{
		state:   browserLoading,
		spinner: s,
	}
}

// loadCmd runs discovery off the render loop and reports back with a
// discoveryMsg.
func loadCmd(catalog source.Catalog) tea.Cmd {
	return func() tea.Msg {
		descriptors, err := catalog.Available(context.Background())
		return discoveryMsg{descriptors: descriptors, err: err}
	}
}

// reload discards every node and returns to the loading placeholder.
func (b *browser) reload() tea.Cmd {
	b.state = browserLoading
	b.items = nil
	b.cursor = 0
	return b.spinner.Tick
}

// applyDiscovery replaces the placeholder with the snapshot. Items
// whose names appear in active are marked enabled so a reload doesn't
// lose track of panels that are already running.
func (b *browser) applyDiscovery(msg discoveryMsg, active map[string]bool) {
	if msg.err != nil {
		b.state = browserFailed
		b.items = nil
		b.cursor = 0
		return
	}

	b.state = browserLoaded
	b.items = make([]catalogItem, 0, len(msg.descriptors))
	for _, desc := range msg.descriptors {
		b.items = append(b.items, catalogItem{
			desc:    desc,
			enabled: active[panelKey(desc.Name)],
		})
	}
	if b.cursor >= len(b.items) {
		b.cursor = 0
	}
}

// interactive reports whether the browser accepts input right now.
// Everything is ignored while the placeholder is up.
func (b *browser) interactive() bool {
	return b.state == browserLoaded && len(b.items) > 0
}

func (b *browser) moveUp() {
	if !b.interactive() {
		return
	}
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *browser) moveDown() {
	if !b.interactive() {
		return
	}
	if b.cursor < len(b.items)-1 {
		b.cursor++
	}
}

// toggle flips the item under the cursor and emits exactly one
// ToggleMsg. It never starts or stops monitors itself.
func (b *browser) toggle() tea.Cmd {
	if !b.interactive() {
		return nil
	}

	item := &b.items[b.cursor]
	item.enabled = !item.enabled

	msg := ToggleMsg{Descriptor: item.desc, Enabled: item.enabled}
	return func() tea.Msg { return msg }
}

// updateSpinner advances the loading animation. Cosmetic only.
func (b *browser) updateSpinner(msg tea.Msg) tea.Cmd {
	if b.state != browserLoading {
		return nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return cmd
}

// view renders the browser pane.
func (b *browser) view(width int, focused bool) string {
	var sb strings.Builder

	title := browserTitleStyle.Render("▾ Sources")
	sb.WriteString(title)
	sb.WriteString("\n")

	switch b.state {
	case browserLoading:
		sb.WriteString("  " + b.spinner.View() + " " + mutedStyle.Render("discovering..."))

	case browserFailed:
		sb.WriteString("  " + errorMarkStyle.Render("✗ discovery failed"))

	case browserLoaded:
		if len(b.items) == 0 {
			sb.WriteString("  " + mutedStyle.Render("(no sources found)"))
			break
		}
		for i, item := range b.items {
			box := "[ ]"
			if item.enabled {
				box = "[x]"
			}
			line := box + " " + item.desc.Name

			style := itemStyle
			if focused && i == b.cursor {
				style = itemSelectedStyle
			} else if item.enabled {
				style = itemEnabledStyle
			}
			sb.WriteString("  " + style.Render(truncate(line, width-2)))
			if i < len(b.items)-1 {
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
