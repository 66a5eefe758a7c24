package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "dragochi/internal/modules/catalog/dto"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/ui/components"
	"dragochi/internal/ui/theme"
	statsview "dragochi/internal/ui/views/stats"
	trackerview "dragochi/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type catalogPort interface {
	ListGames(ctx context.Context) ([]catalogdto.GameOutput, error)
	ListFriends(ctx context.Context) ([]catalogdto.FriendOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Tracker", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type catalogLoadedMsg struct {
	games   []catalogdto.GameOutput
	friends []catalogdto.FriendOutput
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding

	tracker trackerview.KeyMap
	stats   statsview.KeyMap
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		tracker: trackerview.DefaultKeys(),
		stats:   statsview.DefaultKeys(),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.tracker.Start, k.tracker.Toggle, k.tracker.Stop, k.tracker.Discard},
		{k.tracker.Platform, k.tracker.NextGame, k.tracker.Friend, k.tracker.Pick},
		{k.stats.Prev, k.stats.Next, k.stats.Refresh},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: tab routing, help overlay, command palette
// and the status line. Tracking and reporting live in the sub-views.
type Model struct {
	ctx     context.Context
	catalog catalogPort
	loc     *time.Location

	trackView trackerview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	ctx context.Context,
	tracking trackerview.Port,
	catalog catalogPort,
	analytics statsview.Port,
	defaultPlatform string,
	loc *time.Location,
) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{
		ctx:       ctx,
		catalog:   catalog,
		loc:       loc,
		trackView: trackerview.New(ctx, tracking, defaultPlatform),
		statsView: statsview.New(ctx, analytics),
		activeTab: tabTracker,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.trackView.Init(),
		m.statsView.Init(),
		m.loadCatalogCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
		m.trackView, _ = m.trackView.Update(sz)
		m.statsView, _ = m.statsView.Update(sz)
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.status = "catalog: " + msg.err.Error()
			return m, nil
		}
		m.trackView.SetCatalog(msg.games, msg.friends)
		names := make(map[string]string, len(msg.games))
		for _, g := range msg.games {
			names[g.ID] = g.Name
		}
		m.statsView.SetGameNames(names)
		gameNames := make([]string, 0, len(msg.games))
		for _, g := range msg.games {
			gameNames = append(gameNames, g.Name)
		}
		m.palette.SetGames(gameNames)
		return m, nil

	// Tracker messages are routed regardless of the visible tab so the
	// one-second tick never stops.
	case trackerview.TickMsg:
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case trackerview.StateMsg:
		m.status = describeState(msg)
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case trackerview.StoppedMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrNoActiveSession):
			m.status = "session was already ended elsewhere"
		case msg.Err != nil && msg.Out.Stopped:
			m.status = "stopped, but the snapshot could not be cleared: " + msg.Err.Error()
		case msg.Err != nil:
			m.status = "stop failed: " + msg.Err.Error()
		case !msg.Out.Stopped:
			m.status = "nothing to stop"
		default:
			m.status = "saved " + components.Human(msg.Out.DurationSeconds)
		}
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, tea.Batch(cmd, m.statsView.Load(time.Now(), false))

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmds = append(cmds, m.palette.Open(m.trackView.State().Status))
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTracker:
		m.trackView, tabCmd = m.trackView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabStats:
		content = lipgloss.NewStyle().Height(contentH).Render(m.statsView.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.trackView.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "dragochi  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	state := m.trackView.State()
	if state.Status == "running" || state.Status == "paused" {
		left = theme.StatusStyle(state.Status).Render("● "+components.Clock(state.ElapsedSeconds)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "start":
		if len(parts) < 2 {
			m.status = "usage: start <pc|console|mobile> [game name]"
			return m, nil
		}
		if !m.trackView.SelectPlatform(parts[1]) {
			m.status = "unknown platform: " + parts[1]
			return m, nil
		}
		if len(parts) > 2 && !m.trackView.SelectGame(strings.Join(parts[2:], " ")) {
			m.status = "unknown game: " + strings.Join(parts[2:], " ")
			return m, nil
		}
		m.activeTab = tabTracker
		return m, m.trackView.StartCmd()

	case "note":
		m.trackView.SetNote(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))
		m.status = "note set for next session"
		return m, nil

	case "pause", "resume":
		state := m.trackView.State().Status
		if (parts[0] == "pause" && state != "running") || (parts[0] == "resume" && state != "paused") {
			m.status = "already " + state
			return m, nil
		}
		return m, m.trackView.ToggleCmd()

	case "stop":
		return m, m.trackView.StopCmd()

	case "discard":
		return m, m.trackView.DiscardCmd()

	case "month":
		if len(parts) < 2 {
			m.status = "usage: month <YYYY-MM>"
			return m, nil
		}
		month, err := time.ParseInLocation("2006-01", parts[1], m.loc)
		if err != nil {
			m.status = "invalid month: " + parts[1]
			return m, nil
		}
		m.activeTab = tabStats
		return m, m.statsView.Load(month, false)

	case "latest":
		m.activeTab = tabStats
		return m, m.statsView.Load(time.Now(), true)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		if m.catalog == nil {
			return catalogLoadedMsg{}
		}
		games, err := m.catalog.ListGames(m.ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		friends, err := m.catalog.ListFriends(m.ctx)
		return catalogLoadedMsg{games: games, friends: friends, err: err}
	}
}

func describeState(msg trackerview.StateMsg) string {
	switch {
	case errors.Is(msg.Err, apperrors.ErrActiveSessionExists):
		return "a session is already running"
	case errors.Is(msg.Err, apperrors.ErrNoActiveSession):
		return "no active session"
	case msg.Err != nil:
		return msg.Action + " failed: " + msg.Err.Error()
	}
	switch msg.Action {
	case "start":
		return "tracking started"
	case "discard":
		return "session discarded"
	default:
		return msg.State.Status
	}
}
