package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column widths shared by all sections.
const (
	colKey   = 16 // detail key: "Used:", "Swap:", etc.
	barWidth = 20
	minInner = 60
)

// kv is one key/value detail line.
type kv struct {
	Key string
	Val string
}

// styledPad pads a styled string to the given visual width using spaces.
// Unlike fmt.Sprintf("%-Xs"), this accounts for ANSI escape codes.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

// ─── BOX DRAWING HELPERS ─────────────────────────────────────────────────────

// boxTop renders the top border of a rounded box.
// Total visual width = innerW + 5 (1 indent + 1 corner + innerW+2 dashes + 1 corner).
func boxTop(innerW int) string {
	return " " + dimStyle.Render("╭"+strings.Repeat("─", innerW+2)+"╮")
}

// boxBot renders the bottom border of a rounded box.
func boxBot(innerW int) string {
	return " " + dimStyle.Render("╰"+strings.Repeat("─", innerW+2)+"╯")
}

// boxMid renders a horizontal divider inside a box.
func boxMid(innerW int) string {
	return " " + dimStyle.Render("├"+strings.Repeat("─", innerW+2)+"┤")
}

// boxRow renders one content line inside a box, padded to innerW.
func boxRow(content string, innerW int) string {
	visW := lipgloss.Width(content)
	pad := innerW - visW
	if pad < 0 {
		pad = 0
	}
	return " " + dimStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + dimStyle.Render("│")
}

// boxSection renders a titled section inside a bordered box.
// title is styled with headerStyle, content lines are rendered as-is inside the box.
func boxSection(title string, lines []string, innerW int) string {
	var sb strings.Builder
	sb.WriteString(boxTop(innerW) + "\n")
	sb.WriteString(boxRow(headerStyle.Render(title), innerW) + "\n")
	sb.WriteString(boxMid(innerW) + "\n")
	for _, line := range lines {
		sb.WriteString(boxRow(line, innerW) + "\n")
	}
	sb.WriteString(boxBot(innerW) + "\n")
	return sb.String()
}

// kvLine renders a dim key padded to colKey followed by the value.
func kvLine(key, val string) string {
	return styledPad(dimStyle.Render(key+":"), colKey) + " " + val
}

// kvLines renders details with the plain value style.
func kvLines(details []kv) []string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, kvLine(d.Key, valueStyle.Render(d.Val)))
	}
	return lines
}

// pageInnerW computes box inner width from terminal width.
func pageInnerW(termWidth int) int {
	w := termWidth - 6
	if w < minInner {
		w = minInner
	}
	return w
}

// bar renders a percentage bar of given width.
func bar(pct float64, width int) string {
	return barStyled(pct, width, usageColor(pct))
}

// barStyled renders a percentage bar with an explicit style.
func barStyled(pct float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 10
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

// pctBar renders a bar followed by the percentage.
func pctBar(pct float64) string {
	return fmt.Sprintf("%s %s", bar(pct, barWidth), usageColor(pct).Render(fmt.Sprintf("%5.1f%%", pct)))
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// truncate shortens s to maxLen runes with ellipsis if needed.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func padLeft(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

// sparkline renders a simple ASCII sparkline chart (single-line).
func sparkline(data []float64, width int, minVal, maxVal float64) string {
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	resampled := resample(data, width, true)

	var sb strings.Builder
	for _, v := range resampled {
		ratio := (v - minVal) / (maxVal - minVal)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		idx := int(ratio * float64(len(blocks)-1))
		switch {
		case ratio > 0.8:
			sb.WriteString(critStyle.Render(string(blocks[idx])))
		case ratio > 0.4:
			sb.WriteString(warnStyle.Render(string(blocks[idx])))
		default:
			sb.WriteString(okStyle.Render(string(blocks[idx])))
		}
	}
	return sb.String()
}
