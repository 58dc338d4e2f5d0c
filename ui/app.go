package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/macsense/engine"
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

// overviewPage is the synthetic first page of the live view.
const overviewPage = "overview"

// chartHeight is the height of the overview CPU chart in rows.
const chartHeight = 6

type tickMsg time.Time

type collectMsg struct {
	snap  *model.Snapshot
	rates *model.RateSnapshot
}

// Model is the bubbletea model of the live view.
type Model struct {
	ticker   engine.Ticker
	engine   *engine.Engine
	interval time.Duration
	opts     Options
	keys     KeyMap
	width    int
	height   int

	// Data
	snap  *model.Snapshot
	rates *model.RateSnapshot

	// Navigation
	pages    []string
	page     int
	showHelp bool
	viewport viewport.Model

	// Auto-refresh control
	paused bool

	status     string
	statusTime time.Time
}

// NewModel creates a live view over ticker showing the given sections.
func NewModel(ticker engine.Ticker, interval time.Duration, sections []string, opts Options) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		ticker:   ticker,
		engine:   ticker.Base(),
		interval: interval,
		opts:     opts,
		keys:     DefaultKeyMap,
		pages:    append([]string{overviewPage}, sections...),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), collectOnce(m.ticker))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		snap, rates := ticker.Tick()
		return collectMsg{snap: snap, rates: rates}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % len(m.pages)
			m.refresh(true)
		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page - 1 + len(m.pages)) % len(m.pages)
			m.refresh(true)
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if m.paused {
				m.setStatus("paused")
			} else {
				m.setStatus("resumed")
			}
		case key.Matches(msg, m.keys.Rescan):
			m.engine.Trigger("smart")
			m.engine.Trigger("wifi")
			m.setStatus("SMART and Wi-Fi refresh on next tick")
		case key.Matches(msg, m.keys.AllIf):
			m.opts.All = !m.opts.All
			m.refresh(false)
		default:
			if p := pageForDigit(msg.String()); p >= 0 && p < len(m.pages) {
				m.page = p
				m.refresh(true)
			}
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, tick(m.interval)
		}
		return m, tea.Batch(tick(m.interval), collectOnce(m.ticker))

	case collectMsg:
		if msg.snap != nil {
			m.snap = msg.snap
			m.rates = msg.rates
			m.refresh(false)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.opts.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-2) // tab bar + status bar
		m.refresh(false)
		return m, nil
	}
	return m, nil
}

// pageForDigit maps "1".."9" to page indexes; other keys yield -1.
func pageForDigit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTime = time.Now()
}

// refresh re-renders the current page into the viewport, keeping the
// scroll position unless top is set.
func (m *Model) refresh(top bool) {
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.pageContent())
	if top {
		m.viewport.GotoTop()
	} else {
		m.viewport.SetYOffset(offset)
	}
}

func (m Model) pageContent() string {
	if m.snap == nil {
		return dimStyle.Render(" collecting...")
	}
	name := m.pages[m.page]
	if name == overviewPage {
		return m.renderOverview()
	}
	out := RenderSection(name, m.snap, m.rates, m.opts)
	if len(m.snap.Errors) > 0 {
		out += RenderErrors(m.snap.Errors, m.opts)
	}
	return out
}

// renderOverview shows one line per domain plus a CPU history chart.
func (m Model) renderOverview() string {
	snap, rates := m.snap, m.rates
	var lines []string

	if rates != nil {
		lines = append(lines, kvLine("CPU", pctBar(rates.CPUBusyPct)))
	} else {
		lines = append(lines, kvLine("CPU", dimStyle.Render("waiting for second sample")))
	}
	lines = append(lines, kvLine("Load", valueStyle.Render(fmt.Sprintf("%.2f %.2f %.2f",
		snap.CPU.Load.Load1, snap.CPU.Load.Load5, snap.CPU.Load.Load15))))
	if snap.Memory.TotalBytes > 0 {
		lines = append(lines, kvLine("Memory", fmt.Sprintf("%s  %s / %s", pctBar(snap.Memory.UsedPercent()),
			util.FormatBytes(snap.Memory.UsedBytes()), util.FormatBytes(snap.Memory.TotalBytes))))
	}
	if rates != nil {
		var rd, wr, rx, tx float64
		for _, d := range rates.DiskRates {
			rd += d.ReadBps
			wr += d.WriteBps
		}
		for _, n := range rates.NetRates {
			rx += n.RxBps
			tx += n.TxBps
		}
		lines = append(lines,
			kvLine("Disk I/O", valueStyle.Render(fmt.Sprintf("read %s  write %s", util.FormatRate(rd), util.FormatRate(wr)))),
			kvLine("Network", valueStyle.Render(fmt.Sprintf("rx %s  tx %s", util.FormatRate(rx), util.FormatRate(tx)))))
	}
	if hot, ok := snap.Sensors.MaxTemperature(); ok {
		lines = append(lines, kvLine("Hottest", fmt.Sprintf("%s %s", sensorValue(hot, m.opts), dimStyle.Render(hot.Key))))
	}
	if b := snap.Battery; b.Present {
		c := b.ChargePercent()
		lines = append(lines, kvLine("Battery", fmt.Sprintf("%s %s", barStyled(c, barWidth, remainingColor(c)),
			remainingColor(c).Render(util.FormatPct(c)))))
	}
	if w := snap.WiFi.Interface; snap.WiFi.Supported && w.Associated() {
		lines = append(lines, kvLine("Wi-Fi", valueStyle.Render(fmt.Sprintf("%s  %d dBm  ch %d", w.SSID, w.RSSI, w.Channel))))
	}
	for _, l := range snap.SMART {
		if !l.Healthy() {
			lines = append(lines, kvLine("SMART "+l.Device, healthBadge(false)))
		}
	}

	innerW := m.opts.innerW()
	var sb strings.Builder
	sb.WriteString(boxSection("OVERVIEW", lines, innerW))

	if m.engine != nil {
		h := m.engine.History
		var start, end time.Time
		if first := h.Get(0); first != nil {
			start = first.Timestamp
		}
		if last := h.Latest(); last != nil {
			end = last.Timestamp
		}
		busy := h.Series(func(r model.RateSnapshot) float64 { return r.CPUBusyPct })
		if len(busy) > 1 {
			chart := areaChart(busy, "CPU Busy %", innerW, chartHeight, pctScale(), start, end)
			sb.WriteString(boxSection("HISTORY", strings.Split(chart, "\n"), innerW))
		}
		netSum := func(field func(model.NetRate) float64) []float64 {
			return h.Series(func(r model.RateSnapshot) float64 {
				var sum float64
				for _, n := range r.NetRates {
					sum += field(n)
				}
				return sum
			})
		}
		rx := netSum(func(n model.NetRate) float64 { return n.RxBps })
		tx := netSum(func(n model.NetRate) float64 { return n.TxBps })
		if len(rx) > 1 {
			chart := areaChart(rx, "Receive", innerW, chartHeight/2, rateScale(rx), start, end)
			lines := strings.Split(chart, "\n")
			lines = append(lines, kvLine("Transmit", sparkline(tx, innerW-colKey-16, 0, rateScale(tx).max)+
				dimStyle.Render(" now "+util.FormatRate(tx[len(tx)-1]))))
			sb.WriteString(boxSection("NETWORK", lines, innerW))
		}
	}
	return sb.String()
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderTabs() + "\n" + m.viewport.View() + "\n" + m.renderStatusBar()
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, p := range m.pages {
		label := fmt.Sprintf(" %d %s ", i+1, SectionTitle(p))
		if i == m.page {
			tabs = append(tabs, selectedStyle.Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	return titleStyle.Render(" macsense ") + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.snap != nil {
		parts = append(parts, m.snap.Timestamp.Format("15:04:05"))
	}
	parts = append(parts, "every "+m.interval.String())
	if m.paused {
		parts = append(parts, warnStyle.Render("PAUSED"))
	}
	if m.status != "" && time.Since(m.statusTime) < 5*time.Second {
		parts = append(parts, orangeStyle.Render(m.status))
	}
	parts = append(parts, "? help  q quit")
	return helpStyle.Render(" " + strings.Join(parts, " │ "))
}

func (m Model) renderHelp() string {
	var lines []string
	for _, b := range m.keys.bindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%s %s", titleStyle.Render(padRight(h.Key, 10)), h.Desc))
	}
	lines = append(lines, "", dimStyle.Render("1-9 jump to section; any key closes help"))
	return boxSection("KEYS", lines, pageInnerW(m.width))
}

// Run starts the live view on the alternate screen.
func Run(ticker engine.Ticker, interval time.Duration, sections []string, opts Options) error {
	p := tea.NewProgram(NewModel(ticker, interval, sections, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
