package dashboard

import "github.com/charmbracelet/lipgloss"

// Dashboard palette.
const (
	colorBorder    = lipgloss.Color("#2A2A4A")
	colorAccent    = lipgloss.Color("#FF2E97")
	colorChart     = lipgloss.Color("#00FFFF")
	colorPrimary   = lipgloss.Color("#FFFFFF")
	colorSecondary = lipgloss.Color("#B4B4D0")
	colorMuted     = lipgloss.Color("#6B6B8D")
	colorEnabled   = lipgloss.Color("#39FF14")
	colorError     = lipgloss.Color("#FF0055")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	headerCountStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	browserStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	browserFocusedStyle = browserStyle.
				BorderForeground(colorAccent)

	browserTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardSelectedStyle = cardStyle.
				BorderForeground(colorAccent)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorChart).
			Bold(true)

	chartStyle = lipgloss.NewStyle().
			Foreground(colorChart)

	axisStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	itemEnabledStyle = lipgloss.NewStyle().
				Foreground(colorEnabled)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	errorMarkStyle = lipgloss.NewStyle().
			Foreground(colorError)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
