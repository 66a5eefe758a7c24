package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	analyticsdto "dragochi/internal/modules/analytics/dto"
	catalogdto "dragochi/internal/modules/catalog/dto"
	trackingdto "dragochi/internal/modules/tracking/dto"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/ui/components"
	trackerview "dragochi/internal/ui/views/tracker"
)

type stubTracking struct{ platform, game string }

func (s *stubTracking) Start(_ context.Context, platform, gameID, _ string, _ []string) (trackingdto.StateOutput, error) {
	s.platform, s.game = platform, gameID
	return trackingdto.StateOutput{Status: "running", SessionID: "s1"}, nil
}
func (s *stubTracking) Toggle(context.Context) (trackingdto.StateOutput, error) {
	return trackingdto.StateOutput{Status: "paused"}, nil
}
func (s *stubTracking) Stop(context.Context) (trackingdto.StopOutput, error) {
	return trackingdto.StopOutput{}, nil
}
func (s *stubTracking) Discard(context.Context) (trackingdto.StateOutput, error) {
	return trackingdto.StateOutput{Status: "idle"}, nil
}
func (s *stubTracking) Status(context.Context) trackingdto.StateOutput {
	return trackingdto.StateOutput{Status: "idle"}
}

type stubCatalog struct{}

func (stubCatalog) ListGames(context.Context) ([]catalogdto.GameOutput, error) {
	return []catalogdto.GameOutput{{ID: "g1", Name: "Valorant"}}, nil
}
func (stubCatalog) ListFriends(context.Context) ([]catalogdto.FriendOutput, error) {
	return nil, nil
}

type stubAnalytics struct{ months []time.Time }

func (s *stubAnalytics) Month(_ context.Context, month time.Time, _ bool) (analyticsdto.MonthlyReportOutput, error) {
	s.months = append(s.months, month)
	return analyticsdto.MonthlyReportOutput{}, nil
}

func newTestModel() (Model, *stubTracking, *stubAnalytics) {
	return newTestModelIn(time.UTC)
}

func newTestModelIn(loc *time.Location) (Model, *stubTracking, *stubAnalytics) {
	tr, an := &stubTracking{}, &stubAnalytics{}
	m := NewModel(context.Background(), tr, stubCatalog{}, an, "pc", loc)
	next, _ := m.Update(m.loadCatalogCmd()())
	return next.(Model), tr, an
}

func TestPaletteStartSelectsPlatformAndGame(t *testing.T) {
	t.Parallel()
	m, tr, _ := newTestModel()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "start console valo"})
	if cmd == nil {
		t.Fatalf("expected start command")
	}
	msg := cmd()
	next, _ = next.(Model).Update(msg)
	if tr.platform != "console" || tr.game != "g1" {
		t.Fatalf("unexpected start %q %q", tr.platform, tr.game)
	}
	if got := next.(Model).status; got != "tracking started" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestPaletteRejectsUnknownInput(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	cases := map[string]string{
		"start switch":  "unknown platform",
		"start pc zzz":  "unknown game",
		"month 2025-13": "invalid month",
		"pause":         "already idle",
		"frobnicate":    "unknown command",
	}
	for input, want := range cases {
		next, _ := m.Update(components.PaletteSubmitMsg{Input: input})
		if got := next.(Model).status; !strings.HasPrefix(got, want) {
			t.Fatalf("%q: expected status %q, got %q", input, want, got)
		}
	}
}

func TestPaletteMonthLoadsStats(t *testing.T) {
	t.Parallel()
	m, _, an := newTestModel()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "month 2025-03"})
	if next.(Model).activeTab != tabStats || cmd == nil {
		t.Fatalf("expected switch to stats with a load command")
	}
	cmd()
	if len(an.months) != 1 || an.months[0].Month() != time.March || an.months[0].Year() != 2025 {
		t.Fatalf("unexpected months %v", an.months)
	}
}

func TestPaletteMonthUsesConfiguredZone(t *testing.T) {
	t.Parallel()
	// Fixed zones keep the test independent of the host's TZ and tzdata.
	for _, loc := range []*time.Location{time.FixedZone("UTC-5", -5*3600), time.FixedZone("UTC+9", 9*3600)} {
		m, _, an := newTestModelIn(loc)
		_, cmd := m.Update(components.PaletteSubmitMsg{Input: "month 2025-03"})
		if cmd == nil {
			t.Fatalf("%s: expected a load command", loc)
		}
		cmd()
		if len(an.months) != 1 {
			t.Fatalf("%s: unexpected months %v", loc, an.months)
		}
		want := time.Date(2025, time.March, 1, 0, 0, 0, 0, loc)
		if got := an.months[0]; !got.Equal(want) || got.Location() != loc {
			t.Fatalf("%s: requested %v, want %v", loc, got, want)
		}
	}
}

func TestDescribeStateErrors(t *testing.T) {
	t.Parallel()
	if got := describeState(trackerview.StateMsg{Action: "start", Err: apperrors.ErrActiveSessionExists}); got != "a session is already running" {
		t.Fatalf("unexpected %q", got)
	}
	if got := describeState(trackerview.StateMsg{Action: "toggle", Err: errors.New("disk full")}); got != "toggle failed: disk full" {
		t.Fatalf("unexpected %q", got)
	}
	if got := describeState(trackerview.StateMsg{Action: "toggle", State: trackingdto.StateOutput{Status: "paused"}}); got != "paused" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestQuitKey(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestPaletteOffersCatalogGames(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("start pc v")})
	got := next.(Model).palette.Suggestions()
	if len(got) != 1 || got[0] != "start pc Valorant" {
		t.Fatalf("unexpected suggestions %q", got)
	}
}
