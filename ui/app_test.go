package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ftahirops/macsense/engine"
	"github.com/ftahirops/macsense/model"
)

// stubTicker replays a fixed snapshot.
type stubTicker struct {
	eng   *engine.Engine
	snap  *model.Snapshot
	ticks int
}

func (s *stubTicker) Tick() (*model.Snapshot, *model.RateSnapshot) {
	s.ticks++
	return s.snap, &model.RateSnapshot{DeltaSec: 1, CPUBusyPct: 33}
}

func (s *stubTicker) Base() *engine.Engine { return s.eng }

func newTestModel() (Model, *stubTicker) {
	st := &stubTicker{eng: engine.NewEngine(nil, 10, nil), snap: fixtureSnapshot()}
	m := NewModel(st, time.Second, []string{"cpu", "memory", "smart"}, testOptions())
	return m, st
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelCollectAndNavigate(t *testing.T) {
	m, st := newTestModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	msg := collectOnce(st)()
	m, _ = update(t, m, msg)
	if m.snap == nil || st.ticks != 1 {
		t.Fatalf("snapshot not stored, ticks = %d", st.ticks)
	}
	if !strings.Contains(m.View(), "OVERVIEW") {
		t.Errorf("first page should be the overview:\n%s", m.View())
	}

	m, _ = update(t, m, keyRunes("l"))
	if m.pages[m.page] != "cpu" || !strings.Contains(m.View(), "Apple M3 Max") {
		t.Errorf("next page = %q", m.pages[m.page])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.pages[m.page] != "smart" {
		t.Errorf("prev should wrap to last page, got %q", m.pages[m.page])
	}
	m, _ = update(t, m, keyRunes("3"))
	if m.pages[m.page] != "memory" {
		t.Errorf("digit 3 = %q, want memory", m.pages[m.page])
	}
	m, _ = update(t, m, keyRunes("9"))
	if m.pages[m.page] != "memory" {
		t.Errorf("out of range digit changed page to %q", m.pages[m.page])
	}
}

func TestModelPauseSkipsCollection(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, keyRunes("p"))
	if !m.paused {
		t.Fatal("expected paused")
	}
	if !strings.Contains(m.renderStatusBar(), "PAUSED") {
		t.Error("status bar should show PAUSED")
	}
	m, _ = update(t, m, keyRunes("p"))
	if m.paused {
		t.Error("expected resumed")
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, keyRunes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "next section") {
		t.Fatal("help not shown")
	}
	m, _ = update(t, m, keyRunes("x"))
	if m.showHelp {
		t.Error("any key should close help")
	}
	_, cmd := update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelOverviewChart(t *testing.T) {
	st := &stubTicker{eng: engine.NewEngine(nil, 10, nil), snap: fixtureSnapshot()}
	for i := 0; i < 3; i++ {
		st.eng.History.Push(model.Snapshot{Timestamp: fixedNow.Add(time.Duration(i) * time.Second)})
		st.eng.History.PushRate(model.RateSnapshot{
			DeltaSec:   1,
			CPUBusyPct: float64(20 * i),
			NetRates:   []model.NetRate{{Name: "en0", RxBps: float64(i) * 1024, TxBps: 512}},
		})
	}
	m := NewModel(st, time.Second, nil, testOptions())
	m, _ = update(t, m, collectOnce(st)())
	out := m.renderOverview()
	for _, w := range []string{"HISTORY", "CPU Busy %", "33.0%", "NETWORK", "Receive", "now 2K", "Transmit", "512 B/s"} {
		if !strings.Contains(out, w) {
			t.Errorf("overview missing %q", w)
		}
	}
}

func TestPageForDigit(t *testing.T) {
	tests := map[string]int{"1": 0, "9": 8, "0": -1, "a": -1, "12": -1}
	for in, want := range tests {
		if got := pageForDigit(in); got != want {
			t.Errorf("pageForDigit(%q) = %d, want %d", in, got, want)
		}
	}
}
