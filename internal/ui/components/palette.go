package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dragochi/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const maxSuggestions = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
	firstStyle      = lipgloss.NewStyle().Foreground(theme.Peach)
)

type paletteCommand struct {
	name  string
	usage string
	// offered reports whether the command makes sense for a tracker status.
	offered func(status string) bool
}

func always(string) bool     { return true }
func idle(s string) bool     { return s == "" || s == "idle" }
func tracking(s string) bool { return s == "running" || s == "paused" }
func only(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

// paletteCommands must stay in sync with the switch in app/model.go executePalette.
var paletteCommands = []paletteCommand{
	{name: "start", usage: "start <pc|console|mobile> [game name]", offered: idle},
	{name: "pause", usage: "pause", offered: only("running")},
	{name: "resume", usage: "resume", offered: only("paused")},
	{name: "stop", usage: "stop", offered: tracking},
	{name: "discard", usage: "discard", offered: tracking},
	{name: "note", usage: "note <text>", offered: always},
	{name: "month", usage: "month <YYYY-MM>", offered: always},
	{name: "latest", usage: "latest", offered: always},
}

var palettePlatforms = []string{"pc", "console", "mobile"}

// Palette is the command line overlay. Suggestions follow the tracker status it
// was opened with, and `start <platform> ` completes game names from the catalog.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	status  string
	games   []string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "start pc valorant"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty palette for the given tracker status.
func (p *Palette) Open(status string) tea.Cmd {
	p.visible = true
	p.status = status
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// SetGames replaces the game names offered after `start <platform> `.
func (p *Palette) SetGames(names []string) {
	games := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			games = append(games, n)
		}
	}
	sort.Slice(games, func(i, j int) bool { return strings.ToLower(games[i]) < strings.ToLower(games[j]) })
	p.games = games
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 {
				p.input.SetValue(completion(s[0]))
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Suggestions lists what the current input can become, best match first.
func (p Palette) Suggestions() []string {
	raw := strings.ToLower(p.input.Value())
	fields := strings.Fields(raw)
	open := strings.HasSuffix(raw, " ")

	switch {
	case len(fields) == 0:
		return p.commands("")
	case len(fields) == 1 && !open:
		return p.commands(fields[0])
	case fields[0] != "start" || !idle(p.status):
		return nil
	case len(fields) == 1 || (len(fields) == 2 && !open):
		partial := ""
		if len(fields) == 2 {
			partial = fields[1]
		}
		var out []string
		for _, pl := range palettePlatforms {
			if strings.HasPrefix(pl, partial) {
				out = append(out, "start "+pl+" [game name]")
			}
		}
		return out
	}

	platform := fields[1]
	if !knownPlatform(platform) {
		return nil
	}
	partial := strings.Join(fields[2:], " ")
	var out []string
	for _, g := range p.games {
		if strings.HasPrefix(strings.ToLower(g), partial) {
			out = append(out, "start "+platform+" "+g)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func knownPlatform(s string) bool {
	for _, pl := range palettePlatforms {
		if pl == s {
			return true
		}
	}
	return false
}

func (p Palette) commands(prefix string) []string {
	var out []string
	for _, c := range paletteCommands {
		if c.offered(p.status) && strings.HasPrefix(c.name, prefix) {
			out = append(out, c.usage)
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// completion drops the placeholder arguments of a suggestion and leaves the
// cursor ready for the next word.
func completion(s string) string {
	if i := strings.IndexAny(s, "<["); i >= 0 {
		return s[:i]
	}
	return s
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	status := p.status
	if status == "" {
		status = "idle"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "  " + theme.StatusStyle(status).Render(status) + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if s := p.Suggestions(); len(s) > 0 {
		sb.WriteString("\n")
		for i, line := range s {
			if i == 0 {
				sb.WriteString(firstStyle.Render("› "+line) + "\n")
				continue
			}
			sb.WriteString(suggestionStyle.Render("  "+line) + "\n")
		}
		sb.WriteString(theme.Muted.Render("tab to complete") + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
