package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "dragochi/internal/modules/analytics/dto"
	"dragochi/internal/ui/components"
	"dragochi/internal/ui/theme"
)

// Port is the slice of the analytics handler this view reads from.
type Port interface {
	Month(ctx context.Context, month time.Time, latest bool) (analyticsdto.MonthlyReportOutput, error)
}

// LoadedMsg carries a freshly built monthly report.
type LoadedMsg struct {
	Out analyticsdto.MonthlyReportOutput
	Err error
}

type KeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Refresh key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous month")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next month")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

const barWidth = 24

type Model struct {
	ctx    context.Context
	port   Port
	keys   KeyMap
	games  map[string]string
	out    analyticsdto.MonthlyReportOutput
	loaded bool
	err    error
	width  int
}

func New(ctx context.Context, port Port) Model {
	return Model{ctx: ctx, port: port, keys: DefaultKeys(), games: map[string]string{}}
}

// Init loads the latest month that has sessions.
func (m Model) Init() tea.Cmd { return m.Load(time.Now(), true) }

func (m Model) Keys() KeyMap { return m.keys }

func (m *Model) SetGameNames(names map[string]string) {
	if names != nil {
		m.games = names
	}
}

// Month is the first instant of the month on screen, or zero before the first load.
func (m Model) Month() time.Time {
	if !m.loaded {
		return time.Time{}
	}
	return m.out.Report.MonthStart
}

func (m Model) Load(month time.Time, latest bool) tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Month(m.ctx, month, latest)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.out = msg.Out
			m.loaded = true
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Prev):
			if m.out.Previous != nil {
				return m, m.Load(*m.out.Previous, false)
			}
		case key.Matches(msg, m.keys.Next):
			if m.out.Next != nil {
				return m, m.Load(*m.out.Next, false)
			}
		case key.Matches(msg, m.keys.Refresh):
			if m.loaded {
				return m, m.Load(m.out.Report.MonthStart, false)
			}
			return m, m.Load(time.Now(), true)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Error.Render("stats: " + m.err.Error())
	}
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	r := m.out.Report
	header := theme.Title.Render(r.MonthStart.Format("January 2006")) + "  " + m.renderNav()
	summary := lipgloss.JoinVertical(lipgloss.Left,
		"total  "+theme.Hot.Render(components.Human(r.TotalDurationSeconds)),
		m.renderMoM(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		summary,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.Pane.Render(m.renderPlatforms()),
			theme.Pane.Render(m.renderGames()),
			theme.Pane.Render(m.renderTrend()),
		),
	)
}

func (m Model) renderNav() string {
	prev, next := "     ", "     "
	if m.out.Previous != nil {
		prev = "← " + m.out.Previous.Format("Jan")
	}
	if m.out.Next != nil {
		next = m.out.Next.Format("Jan") + " →"
	}
	return theme.Muted.Render(prev + "  " + next)
}

func (m Model) renderMoM() string {
	mom := m.out.Report.MoM
	delta := components.Human(abs(mom.DeltaSeconds))
	sign := "+"
	if mom.DeltaSeconds < 0 {
		sign = "-"
	}
	line := fmt.Sprintf("vs last month  %s%s", sign, delta)
	if mom.PercentageChange != nil {
		line += fmt.Sprintf(" (%+.0f%%)", *mom.PercentageChange)
	} else {
		line += " (no data last month)"
	}
	return theme.Muted.Render(line)
}

func (m Model) renderPlatforms() string {
	rows := []string{theme.Title.Render("Platforms")}
	top := 0
	for _, p := range m.out.Report.ByPlatform {
		if p.DurationSeconds > top {
			top = p.DurationSeconds
		}
	}
	for _, p := range m.out.Report.ByPlatform {
		rows = append(rows, fmt.Sprintf("%-8s %8s %s", p.Platform, components.Human(p.DurationSeconds), components.HBar(p.DurationSeconds, top, barWidth)))
	}
	if len(rows) == 1 {
		rows = append(rows, theme.Muted.Render("no sessions"))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderGames() string {
	rows := []string{theme.Title.Render("Games")}
	top := 0
	for _, g := range m.out.Report.ByGame {
		if g.DurationSeconds > top {
			top = g.DurationSeconds
		}
	}
	for _, g := range m.out.Report.ByGame {
		name := "no game"
		if g.GameID != nil {
			name = m.games[*g.GameID]
			if name == "" {
				name = "deleted game"
			}
		}
		rows = append(rows, fmt.Sprintf("%-14s %8s %s", truncate(name, 14), components.Human(g.DurationSeconds), components.HBar(g.DurationSeconds, top, barWidth)))
	}
	if len(rows) == 1 {
		rows = append(rows, theme.Muted.Render("no sessions"))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTrend() string {
	rows := []string{theme.Title.Render("Last 6 months")}
	top := 0
	for _, p := range m.out.Report.TrendLast6Months {
		if p.TotalDurationSeconds > top {
			top = p.TotalDurationSeconds
		}
	}
	for _, p := range m.out.Report.TrendLast6Months {
		rows = append(rows, fmt.Sprintf("%s %8s %s", p.MonthStart.Format("Jan 06"), components.Human(p.TotalDurationSeconds), components.HBar(p.TotalDurationSeconds, top, barWidth)))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
