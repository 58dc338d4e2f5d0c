package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorPanel   = lipgloss.Color("#44475A")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	valueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle   = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorWhite)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	orangeStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	netStyle      = lipgloss.NewStyle().Foreground(colorCyan)
)

// usageColor colors a utilization percentage.
func usageColor(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return critStyle
	case pct >= 50:
		return warnStyle
	default:
		return okStyle
	}
}

// remainingColor colors a "higher is better" percentage such as battery
// charge or drive life remaining.
func remainingColor(pct float64) lipgloss.Style {
	switch {
	case pct < 15:
		return critStyle
	case pct < 30:
		return warnStyle
	default:
		return okStyle
	}
}

// tempColor colors a temperature in °C.
func tempColor(c float64) lipgloss.Style {
	switch {
	case c >= 90:
		return critStyle
	case c >= 70:
		return warnStyle
	case c >= 55:
		return orangeStyle
	default:
		return okStyle
	}
}

// healthBadge renders a pass/fail verdict.
func healthBadge(ok bool) string {
	if ok {
		return okStyle.Render("PASSED")
	}
	return critStyle.Render("FAILING")
}
