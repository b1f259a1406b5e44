package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Pane dimensions. The browser keeps a fixed column on the left; the
// grid takes the rest.
const (
	browserPaneWidth = 30
	chartHeightCells = 6
	yGutterWidth     = 6
)

func (m *Model) render() string {
	if m.width == 0 {
		return "starting..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	browserPane := m.renderBrowserPane(bodyHeight)
	gridPane := m.renderGridPane()

	body := lipgloss.JoinHorizontal(lipgloss.Top, browserPane, gridPane)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.showError {
		return m.renderErrorModal()
	}
	return view
}

func (m *Model) renderHeader() string {
	title := headerStyle.Render("qw")
	status := fmt.Sprintf("%d active · %d discovered",
		len(m.panels), len(m.browser.items))
	if age, ok := m.lastSampleAge(); ok {
		status += fmt.Sprintf(" · updated %ds ago", int(age.Seconds()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, headerCountStyle.Render(status))
}

// lastSampleAge returns how long ago any panel accepted a sample.
func (m *Model) lastSampleAge() (time.Duration, bool) {
	var latest time.Time
	for _, p := range m.panels {
		if p.lastPoll.After(latest) {
			latest = p.lastPoll
		}
	}
	if latest.IsZero() {
		return 0, false
	}
	return time.Since(latest), true
}

func (m *Model) renderFooter() string {
	parts := make([]string, 0, 6)
	for _, b := range keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return footerStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderBrowserPane(height int) string {
	style := browserStyle
	if m.focus == focusBrowser {
		style = browserFocusedStyle
	}
	return style.
		Width(browserPaneWidth - 2).
		Height(height - 2).
		Render(m.browser.view(browserPaneWidth-4, m.focus == focusBrowser))
}

func (m *Model) renderGridPane() string {
	panels := m.orderedPanels()
	if len(panels) == 0 {
		return mutedStyle.
			Padding(1, 2).
			Render("No panels. Toggle a source to start monitoring.")
	}

	cardW := m.cardOuterWidth()
	cards := make([]string, len(panels))
	for i, panel := range panels {
		selected := m.focus == focusGrid && i == m.selected
		cards[i] = m.renderCard(panel, cardW, selected)
	}
	return RenderGrid(cards, m.width)
}

// cardOuterWidth derives one card's total width from the viewport:
// the cards split whatever is left of the grid pane.
func (m *Model) cardOuterWidth() int {
	return CardWidth(m.width-browserPaneWidth, m.width)
}

// chartArea returns the chart cell dimensions inside one card.
func (m *Model) chartArea() (width, height int) {
	inner := m.cardOuterWidth() - 4 // border and padding
	width = inner - yGutterWidth - 1
	if width < 1 {
		width = 1
	}
	return width, chartHeightCells
}

func (m *Model) renderCard(p *Panel, outerWidth int, selected bool) string {
	inner := outerWidth - 4
	if inner < 10 {
		inner = 10
	}

	var lines []string

	name := truncate(p.name, inner-10)
	value := "--"
	if p.hasValue {
		value = formatValue(p.current)
	}
	gap := inner - lipgloss.Width(name) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	lines = append(lines,
		cardTitleStyle.Render(name)+strings.Repeat(" ", gap)+valueStyle.Render(value))

	chartW := inner - yGutterWidth - 1
	if chartW < 1 {
		chartW = 1
	}
	if p.window.Len() == 0 {
		for i := 0; i < chartHeightCells; i++ {
			lines = append(lines, "")
		}
		lines[1+chartHeightCells/2] = mutedStyle.Render("  waiting for first poll...")
	} else {
		chart := RenderChart(p.window.All(), chartW, chartHeightCells)
		labels := YAxisLabels(p.geom, chartHeightCells, yGutterWidth)
		for i, row := range chart {
			lines = append(lines,
				axisStyle.Render(labels[i])+" "+chartStyle.Render(row))
		}
		lines = append(lines,
			strings.Repeat(" ", yGutterWidth+1)+axisStyle.Render(XAxisLabels(p.geom, chartW)))
	}

	stats := "--"
	if p.hasValue {
		stats = fmt.Sprintf("min %s · max %s", formatValue(p.minSeen), formatValue(p.maxSeen))
	}
	lines = append(lines, mutedStyle.Render(stats))

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.
		Width(outerWidth - 2).
		Height(CardHeight - 2).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderErrorModal() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("✗ " + m.errContext))
	if m.errDetail != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.errDetail)
	}
	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("press any key to dismiss"))

	modal := modalStyle.MaxWidth(m.width - 4).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
