package sim

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hostile-sim/internal/config"
	"hostile-sim/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	if err := w.Write(telemetry.DroneStateRow{DroneID: "hostile-0"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg, ok := p.msgs[0].(dronesMsg); !ok || len(msg.rows) != 1 {
		t.Fatalf("expected dronesMsg, got %T", p.msgs[0])
	}
	if err := w.WriteEvents([]telemetry.CombatEventRow{
		{EventType: "shot"},
		{EventType: "destroyed", DroneID: "hostile-0"},
	}); err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(p.msgs) != 2 {
		t.Fatalf("shots should be skipped, got %d msgs", len(p.msgs))
	}
	if msg, ok := p.msgs[1].(logMsg); !ok || !strings.Contains(msg.line, "hostile-0") {
		t.Fatalf("expected logMsg for destroyed, got %#v", p.msgs[1])
	}
	if err := w.WriteState(telemetry.SessionStateRow{Phase: "contact"}); err != nil {
		t.Fatalf("state: %v", err)
	}
	if _, ok := p.msgs[2].(stateMsg); !ok {
		t.Fatalf("expected stateMsg, got %T", p.msgs[2])
	}
	w.SetAdminStatus(true)
	if _, ok := p.msgs[3].(adminMsg); !ok {
		t.Fatalf("expected adminMsg, got %T", p.msgs[3])
	}
}

func TestWrapToggle(t *testing.T) {
	m := newTUIModel(config.Default())
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	m = mi.(tuiModel)
	mi, _ = m.Update(logMsg{line: "one two three four five six"})
	m = mi.(tuiModel)
	if n := m.vp.TotalLineCount(); n != 1 {
		t.Fatalf("expected single line before wrap, got %d", n)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m = mi.(tuiModel)
	if !m.wrap {
		t.Fatalf("wrap not toggled")
	}
	if n := m.vp.TotalLineCount(); n < 2 {
		t.Fatalf("expected wrapped content, got %d lines", n)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTUIModel(config.Default())
	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = mi.(tuiModel)
	if !strings.Contains(m.View(), "toggle line wrap") {
		t.Fatalf("help not shown")
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mi.(tuiModel)
	if m.help {
		t.Fatalf("esc should close help")
	}
}

func TestLogIsCapped(t *testing.T) {
	m := newTUIModel(config.Default())
	for i := 0; i < maxLogLines+20; i++ {
		mi, _ := m.Update(logMsg{line: "x"})
		m = mi.(tuiModel)
	}
	if len(m.logs) != maxLogLines {
		t.Fatalf("expected %d log lines, got %d", maxLogLines, len(m.logs))
	}
}

func TestDroneRowsSortedByDistance(t *testing.T) {
	rows := droneRows([]telemetry.DroneStateRow{
		{DroneID: "far", Distance: 80},
		{DroneID: "near", Distance: 12, Wounded: true, Distress: true},
	})
	if rows[0][0] != "near" {
		t.Fatalf("closest drone should come first, got %v", rows[0][0])
	}
	if rows[0][9] != "WD" {
		t.Fatalf("flags = %q", rows[0][9])
	}
}

func TestHeaderShowsPlayerDown(t *testing.T) {
	m := newTUIModel(config.Default())
	mi, _ := m.Update(stateMsg{telemetry.SessionStateRow{Phase: "overrun", Hull: 0, HullMax: 100, PlayerDown: true}})
	m = mi.(tuiModel)
	if !strings.Contains(m.header, "PLAYER DOWN") || !strings.Contains(m.header, "overrun") {
		t.Fatalf("header missing state: %q", m.header)
	}
}
