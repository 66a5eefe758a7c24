package tracker

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "dragochi/internal/modules/catalog/dto"
	trackingdto "dragochi/internal/modules/tracking/dto"
)

type fakePort struct {
	started  []string
	friends  []string
	note     string
	status   trackingdto.StateOutput
	toggles  int
	stops    int
	discards int
}

func (f *fakePort) Start(_ context.Context, platform, gameID, note string, friendIDs []string) (trackingdto.StateOutput, error) {
	f.started = []string{platform, gameID}
	f.friends = friendIDs
	f.note = note
	f.status = trackingdto.StateOutput{Status: "running", SessionID: "s1", Platform: platform, GameID: gameID}
	return f.status, nil
}

func (f *fakePort) Toggle(context.Context) (trackingdto.StateOutput, error) {
	f.toggles++
	return f.status, nil
}

func (f *fakePort) Stop(context.Context) (trackingdto.StopOutput, error) {
	f.stops++
	f.status = trackingdto.StateOutput{Status: "idle", ElapsedSeconds: 90}
	return trackingdto.StopOutput{SessionID: "s1", DurationSeconds: 90, Stopped: true}, nil
}

func (f *fakePort) Discard(context.Context) (trackingdto.StateOutput, error) {
	f.discards++
	return trackingdto.StateOutput{Status: "idle"}, nil
}

func (f *fakePort) Status(context.Context) trackingdto.StateOutput { return f.status }

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(port *fakePort) Model {
	port.status = trackingdto.StateOutput{Status: "idle"}
	m := New(context.Background(), port, "console")
	m.SetCatalog(
		[]catalogdto.GameOutput{{ID: "g1", Name: "Apex Legends"}, {ID: "g2", Name: "Valorant"}},
		[]catalogdto.FriendOutput{{ID: "f1", Name: "Ava"}, {ID: "f2", Name: "Ben"}},
	)
	return m
}

func TestStartUsesSelectedSetup(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newModel(port)

	for _, k := range []string{"p", "g", "g", "f", "t"} {
		m, _ = m.Update(keyMsg(k))
	}
	m.SetNote(" ranked ")
	m, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatalf("start key should produce a command")
	}
	msg, ok := cmd().(StateMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("unexpected start result %#v", msg)
	}
	if port.started[0] != "mobile" || port.started[1] != "g2" {
		t.Fatalf("unexpected setup %v", port.started)
	}
	if len(port.friends) != 1 || port.friends[0] != "f2" || port.note != "ranked" {
		t.Fatalf("unexpected friends %v note %q", port.friends, port.note)
	}

	m, _ = m.Update(msg)
	if m.State().Status != "running" || m.State().SessionID != "s1" {
		t.Fatalf("state not applied: %+v", m.State())
	}
}

func TestGameSelectionWrapsThroughNoGame(t *testing.T) {
	t.Parallel()
	m := newModel(&fakePort{})
	m, _ = m.Update(keyMsg("G"))
	if m.game != 1 {
		t.Fatalf("G from no game should pick the last game, got %d", m.game)
	}
	m, _ = m.Update(keyMsg("g"))
	if m.game != -1 {
		t.Fatalf("g past the last game should clear the selection, got %d", m.game)
	}
	if !m.SelectGame("val") || m.game != 1 {
		t.Fatalf("prefix match failed")
	}
	if m.SelectGame("zelda") {
		t.Fatalf("unknown game should not match")
	}
	if !m.SelectPlatform("PC") || m.platform != 0 || m.SelectPlatform("switch") {
		t.Fatalf("platform selection misbehaved")
	}
}

func TestTickRefreshesStatusAndReschedules(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newModel(port)
	port.status = trackingdto.StateOutput{Status: "running", SessionID: "s1", ElapsedSeconds: 42}

	m, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Fatalf("tick should schedule the next tick")
	}
	if m.State().ElapsedSeconds != 42 {
		t.Fatalf("expected elapsed 42, got %d", m.State().ElapsedSeconds)
	}
}

func TestToggleStopDiscardKeys(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newModel(port)

	_, cmd := m.Update(keyMsg(" "))
	cmd()
	_, cmd = m.Update(keyMsg("x"))
	stopped, ok := cmd().(StoppedMsg)
	if !ok || !stopped.Out.Stopped {
		t.Fatalf("unexpected stop result %#v", stopped)
	}
	_, cmd = m.Update(keyMsg("D"))
	cmd()
	if port.toggles != 1 || port.stops != 1 || port.discards != 1 {
		t.Fatalf("unexpected calls toggles=%d stops=%d discards=%d", port.toggles, port.stops, port.discards)
	}
}
