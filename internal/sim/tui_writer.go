package sim

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"hostile-sim/internal/config"
	"hostile-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// dronesMsg carries one tick of drone rows.
type dronesMsg struct{ rows []telemetry.DroneStateRow }

// logMsg carries a combat log line for the viewport.
type logMsg struct{ line string }

// stateMsg carries a session state update.
type stateMsg struct{ telemetry.SessionStateRow }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

const maxLogLines = 500

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUIWriter renders the drones and the combat log using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.Config) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		// Quitting the TUI ends the run.
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TelemetryWriter.
func (w *TUIWriter) Write(row telemetry.DroneStateRow) error {
	return w.WriteBatch([]telemetry.DroneStateRow{row})
}

// WriteBatch replaces the drone table with one tick of rows.
func (w *TUIWriter) WriteBatch(rows []telemetry.DroneStateRow) error {
	cp := make([]telemetry.DroneStateRow, len(rows))
	copy(cp, rows)
	w.program.Send(dronesMsg{rows: cp})
	return nil
}

// WriteEvent implements EventWriter. Individual shots are left to the
// burst summaries.
func (w *TUIWriter) WriteEvent(e telemetry.CombatEventRow) error {
	if e.EventType == "shot" {
		return nil
	}
	w.program.Send(logMsg{line: formatEvent(e)})
	return nil
}

// WriteEvents outputs multiple combat events.
func (w *TUIWriter) WriteEvents(rows []telemetry.CombatEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row telemetry.SessionStateRow) error {
	w.program.Send(stateMsg{SessionStateRow: row})
	return nil
}

// SetAdminStatus updates the admin UI indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

func formatEvent(e telemetry.CombatEventRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%6d]%s %s%-19s%s %s %s%s%s",
		colorGray, e.SimTimeMs, colorReset,
		eventColor(e.EventType), e.EventType, colorReset,
		e.DroneID,
		personalityColor(e.Personality), e.Personality, colorReset)
	if e.Weapon != "" {
		fmt.Fprintf(&b, " weapon=%s", e.Weapon)
	}
	if e.Shots > 0 {
		fmt.Fprintf(&b, " hits=%d/%d", e.Hits, e.Shots)
	}
	if e.Role != "" {
		fmt.Fprintf(&b, " role=%s", e.Role)
	}
	if e.OtherID != "" {
		fmt.Fprintf(&b, " with=%s", e.OtherID)
	}
	fmt.Fprintf(&b, " dist=%.1f", e.Distance)
	return b.String()
}

type tuiModel struct {
	cfg          *config.Config
	table        table.Model
	vp           viewport.Model
	logs         []string
	state        telemetry.SessionStateRow
	admin        bool
	wrap         bool
	autoscroll   bool
	help         bool
	width        int
	height       int
	header       string
	headerHeight int
}

func newTUIModel(cfg *config.Config) tuiModel {
	cols := []table.Column{
		{Title: "Drone", Width: 11},
		{Title: "Personality", Width: 11},
		{Title: "State", Width: 10},
		{Title: "Role", Width: 9},
		{Title: "Dist", Width: 6},
		{Title: "Brg", Width: 5},
		{Title: "Alt", Width: 5},
		{Title: "HP", Width: 4},
		{Title: "Weapon", Width: 15},
		{Title: "Flags", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(7))
	m := tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
	m.header = m.renderHeader()
	m.headerHeight = lipgloss.Height(m.header)
	return m
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "?":
			m.help = true
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case dronesMsg:
		m.table.SetRows(droneRows(msg.rows))
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		m.refreshViewport()
	case stateMsg:
		m.state = msg.SessionStateRow
		m.header = m.renderHeader()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
	case adminMsg:
		m.admin = msg.active
		m.header = m.renderHeader()
	}
	return m, nil
}

func droneRows(rows []telemetry.DroneStateRow) []table.Row {
	sorted := make([]telemetry.DroneStateRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })
	out := make([]table.Row, 0, len(sorted))
	for _, r := range sorted {
		var flags []string
		if r.Wounded {
			flags = append(flags, "W")
		}
		if r.Suppressed {
			flags = append(flags, "S")
		}
		if r.Distress {
			flags = append(flags, "D")
		}
		out = append(out, table.Row{
			r.DroneID,
			r.Personality,
			r.State,
			r.Role,
			fmt.Sprintf("%.1f", r.Distance),
			fmt.Sprintf("%.0f", r.Bearing),
			fmt.Sprintf("%.0f", r.Altitude),
			fmt.Sprintf("%.0f", r.Health),
			r.Weapon,
			strings.Join(flags, ""),
		})
	}
	return out
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - m.headerHeight - lipgloss.Height(m.table.View()) - lipgloss.Height(m.renderBottom()) - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	lines := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		if m.wrap && m.vp.Width > 0 {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) renderHeader() string {
	st := m.state
	hull := okStyle
	if st.HullMax > 0 {
		switch pct := st.Hull / st.HullMax * 100; {
		case pct <= 25:
			hull = badStyle
		case pct <= 50:
			hull = warnStyle
		}
	}
	closest := "-"
	if st.ActiveDrones > 0 {
		closest = fmt.Sprintf("%.1fm", st.ClosestDistance)
	}
	camo := dimStyle.Render("camo off")
	if st.Camo {
		camo = okStyle.Render("camo on")
	}
	scenarioName := ""
	if m.cfg != nil {
		scenarioName = m.cfg.Scenario + " / "
	}
	line1 := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("HOSTILE SIM"), "  ",
		fmt.Sprintf("%s%s  t=%.1fs", scenarioName, st.Phase, float64(st.SimTimeMs)/1000),
	)
	line2 := fmt.Sprintf("drones %d/%d  closest %s  %s  %s  kills %d  shots %d  hits %d",
		st.ActiveDrones, st.MaxDrones, closest,
		hull.Render(fmt.Sprintf("hull %.0f/%.0f", st.Hull, st.HullMax)),
		camo, st.Destroyed, st.ShotsFired, st.ShotsHit)
	if st.PlayerDown {
		line2 += "  " + badStyle.Render("PLAYER DOWN")
	}
	if m.admin {
		line2 += "  " + okStyle.Render("admin")
	}
	if m.wrap && m.width > 0 {
		line2 = wordwrap.String(line2, m.width)
	}
	return line1 + "\n" + line2
}

func (m tuiModel) renderBottom() string {
	return dimStyle.Render(fmt.Sprintf("q quit  w wrap:%t  s autoscroll:%t  ? help", m.wrap, m.autoscroll))
}

func (m tuiModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	b.WriteString("q, ctrl+c   quit\n")
	b.WriteString("w           toggle line wrap\n")
	b.WriteString("s           toggle autoscroll\n")
	b.WriteString("up/down     scroll the combat log\n")
	b.WriteString("?           close help\n\n")
	b.WriteString(titleStyle.Render("Flags") + "\n\n")
	b.WriteString("W wounded   S suppressed   D distress\n")
	return b.String()
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.table.View(),
		divider,
		"Combat Log:",
		m.vp.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}
