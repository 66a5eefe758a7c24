package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "dragochi/internal/modules/catalog/dto"
	trackingdto "dragochi/internal/modules/tracking/dto"
	"dragochi/internal/ui/components"
	"dragochi/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the slice of the tracking handler this view drives.
type Port interface {
	Start(ctx context.Context, platform, gameID, note string, friendIDs []string) (trackingdto.StateOutput, error)
	Toggle(ctx context.Context) (trackingdto.StateOutput, error)
	Stop(ctx context.Context) (trackingdto.StopOutput, error)
	Discard(ctx context.Context) (trackingdto.StateOutput, error)
	Status(ctx context.Context) trackingdto.StateOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg drives the once-per-second elapsed refresh.
type TickMsg time.Time

// StateMsg carries the result of a start, pause/resume or discard.
type StateMsg struct {
	Action string
	State  trackingdto.StateOutput
	Err    error
}

// StoppedMsg carries the result of a stop.
type StoppedMsg struct {
	Out trackingdto.StopOutput
	Err error
}

// ─── keys ────────────────────────────────────────────────────────────────────

type KeyMap struct {
	Start    key.Binding
	Toggle   key.Binding
	Stop     key.Binding
	Discard  key.Binding
	Platform key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Friend   key.Binding
	Pick     key.Binding
}

func DefaultKeys() KeyMap {
	return KeyMap{
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Stop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Discard:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "discard")),
		Platform: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "platform")),
		NextGame: key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "game")),
		PrevGame: key.NewBinding(key.WithKeys("G"), key.WithHelp("g/G", "game")),
		Friend:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next friend")),
		Pick:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle friend")),
	}
}

var platforms = []string{"pc", "console", "mobile"}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the live session and the setup used for the next start.
type Model struct {
	ctx  context.Context
	port Port
	keys KeyMap

	state trackingdto.StateOutput

	games    []catalogdto.GameOutput
	friends  []catalogdto.FriendOutput
	platform int
	game     int // -1 means no game
	cursor   int
	picked   map[string]bool
	note     string

	width  int
	height int
}

func New(ctx context.Context, port Port, defaultPlatform string) Model {
	m := Model{
		ctx:    ctx,
		port:   port,
		keys:   DefaultKeys(),
		game:   -1,
		picked: map[string]bool{},
	}
	for i, p := range platforms {
		if p == defaultPlatform {
			m.platform = i
		}
	}
	if port != nil {
		m.state = port.Status(ctx)
	}
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) State() trackingdto.StateOutput { return m.state }

// SetCatalog replaces the games and friends offered in the setup panel.
func (m *Model) SetCatalog(games []catalogdto.GameOutput, friends []catalogdto.FriendOutput) {
	m.games = games
	m.friends = friends
	if m.game >= len(games) {
		m.game = -1
	}
	if m.cursor >= len(friends) {
		m.cursor = 0
	}
}

func (m *Model) SetNote(note string) { m.note = strings.TrimSpace(note) }

// SelectPlatform reports false for names outside pc, console and mobile.
func (m *Model) SelectPlatform(name string) bool {
	for i, p := range platforms {
		if strings.EqualFold(p, name) {
			m.platform = i
			return true
		}
	}
	return false
}

// SelectGame picks the first game whose name starts with prefix, ignoring case.
func (m *Model) SelectGame(prefix string) bool {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		m.game = -1
		return true
	}
	for i, g := range m.games {
		if strings.HasPrefix(strings.ToLower(g.Name), prefix) {
			m.game = i
			return true
		}
	}
	return false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.port != nil {
			m.state = m.port.Status(m.ctx)
		}
		return m, tick()

	case StateMsg:
		if msg.State.Status != "" {
			m.state = msg.State
		}

	case StoppedMsg:
		if m.port != nil {
			m.state = m.port.Status(m.ctx)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Start):
			return m, m.StartCmd()
		case key.Matches(msg, m.keys.Toggle):
			return m, m.ToggleCmd()
		case key.Matches(msg, m.keys.Stop):
			return m, m.StopCmd()
		case key.Matches(msg, m.keys.Discard):
			return m, m.DiscardCmd()
		case key.Matches(msg, m.keys.Platform):
			m.platform = (m.platform + 1) % len(platforms)
		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.game++
				if m.game >= len(m.games) {
					m.game = -1
				}
			}
		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.game--
				if m.game < -1 {
					m.game = len(m.games) - 1
				}
			}
		case key.Matches(msg, m.keys.Friend):
			if len(m.friends) > 0 {
				m.cursor = (m.cursor + 1) % len(m.friends)
			}
		case key.Matches(msg, m.keys.Pick):
			if len(m.friends) > 0 {
				id := m.friends[m.cursor].ID
				m.picked[id] = !m.picked[id]
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	timer := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Session"),
		"",
		theme.Timer.Render(components.Clock(m.state.ElapsedSeconds)),
		theme.StatusStyle(m.state.Status).Render(strings.ToUpper(m.state.Status)),
		"",
		m.renderActive(),
	)
	setup := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Next session"),
		"",
		m.renderSetup(),
	)
	left, right := theme.PaneActive, theme.Pane
	if m.state.Status == "idle" || m.state.Status == "" {
		left, right = theme.Pane, theme.PaneActive
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left.Render(timer), right.Render(setup))
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) StartCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	platform := platforms[m.platform]
	gameID := ""
	if m.game >= 0 && m.game < len(m.games) {
		gameID = m.games[m.game].ID
	}
	friendIDs := m.pickedFriends()
	note := m.note
	return func() tea.Msg {
		state, err := m.port.Start(m.ctx, platform, gameID, note, friendIDs)
		return StateMsg{Action: "start", State: state, Err: err}
	}
}

func (m Model) ToggleCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		state, err := m.port.Toggle(m.ctx)
		return StateMsg{Action: "toggle", State: state, Err: err}
	}
}

func (m Model) StopCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Stop(m.ctx)
		return StoppedMsg{Out: out, Err: err}
	}
}

func (m Model) DiscardCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		state, err := m.port.Discard(m.ctx)
		return StateMsg{Action: "discard", State: state, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) pickedFriends() []string {
	var ids []string
	for _, f := range m.friends {
		if m.picked[f.ID] {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func (m Model) gameName(id string) string {
	if id == "" {
		return "no game"
	}
	for _, g := range m.games {
		if g.ID == id {
			return g.Name
		}
	}
	return "unknown game"
}

func (m Model) friendNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		for _, f := range m.friends {
			if f.ID == id {
				name = f.Name
				break
			}
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func (m Model) renderActive() string {
	if m.state.SessionID == "" {
		return theme.Muted.Render("press s to start")
	}
	lines := []string{
		fmt.Sprintf("%s on %s", theme.Hot.Render(m.gameName(m.state.GameID)), m.state.Platform),
	}
	if m.state.StartAt != nil {
		lines = append(lines, theme.Muted.Render("started "+m.state.StartAt.Local().Format("15:04")))
	}
	if len(m.state.FriendIDs) > 0 {
		lines = append(lines, "with "+m.friendNames(m.state.FriendIDs))
	}
	if m.state.Note != "" {
		lines = append(lines, theme.Muted.Render(m.state.Note))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSetup() string {
	var sb strings.Builder
	game := "no game"
	if m.game >= 0 && m.game < len(m.games) {
		game = m.games[m.game].Name
	}
	fmt.Fprintf(&sb, "platform  %s\n", theme.Hot.Render(platforms[m.platform]))
	fmt.Fprintf(&sb, "game      %s\n", theme.Hot.Render(game))
	if m.note != "" {
		fmt.Fprintf(&sb, "note      %s\n", m.note)
	}
	sb.WriteString("\n")
	if len(m.friends) == 0 {
		sb.WriteString(theme.Muted.Render("no friends yet"))
		return sb.String()
	}
	for i, f := range m.friends {
		mark := "[ ]"
		if m.picked[f.ID] {
			mark = "[x]"
		}
		line := mark + " " + f.Name
		if i == m.cursor {
			line = theme.Hot.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
