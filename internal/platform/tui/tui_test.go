package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/input"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected input.Key
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, input.KeyLeft},
		{"a", runes("a"), input.KeyLeft},
		{"h", runes("h"), input.KeyLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, input.KeyRight},
		{"d", runes("d"), input.KeyRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, input.KeySpace},
		{"p", runes("p"), input.KeyNone},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, input.KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.GameKey(tt.msg); got != tt.expected {
				t.Errorf("GameKey() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKeyReleaser(t *testing.T) {
	t0 := time.Unix(0, 0)
	r := newKeyReleaser(500*time.Millisecond, 100*time.Millisecond)

	r.press(input.KeyLeft, t0)
	if got := r.expired(t0.Add(499 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expired() before initial timeout = %v, expected none", got)
	}

	// Auto-repeat shortens the deadline.
	r.press(input.KeyLeft, t0.Add(450*time.Millisecond))
	if got := r.expired(t0.Add(549 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expired() before repeat timeout = %v, expected none", got)
	}
	got := r.expired(t0.Add(550 * time.Millisecond))
	if len(got) != 1 || got[0] != input.KeyLeft {
		t.Errorf("expired() = %v, expected [left]", got)
	}
	if got := r.expired(t0.Add(time.Second)); len(got) != 0 {
		t.Errorf("expired() after release = %v, expected none", got)
	}

	r.press(input.KeyRight, t0)
	r.reset()
	if got := r.expired(t0.Add(time.Hour)); len(got) != 0 {
		t.Errorf("expired() after reset = %v, expected none", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColor(0, 0, "SCORE", core.ColorWhite)
	s.DrawTextColor(10, 0, "/^\\", core.ColorGreen)
	s.SetCell(0, 1, core.Cell{Rune: 'X', Color: core.ColorRed, Bold: true})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() lines = %d, expected 2", len(lines))
	}
	for _, want := range []string{"SCORE", "/^\\"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line %q does not contain %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "X") {
		t.Errorf("second line %q does not contain X", lines[1])
	}
}

func newTestModel(t *testing.T, w, h int) Model {
	t.Helper()
	m, err := NewModel(Options{
		Config: config.DefaultInvadersConfig(),
		Width:  w,
		Height: h,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestModelStartsOnSpaceAndTicks(t *testing.T) {
	m := newTestModel(t, 80, 25)
	start := m.loop.Now()

	if m.ctrl.Phase() != engine.PhaseStopped {
		t.Fatalf("Phase() = %v, expected stopped", m.ctrl.Phase())
	}
	if !strings.Contains(m.screen.String(), "PRESS SPACE") {
		t.Error("welcome screen not drawn")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.ctrl.Phase() != engine.PhaseRunning {
		t.Fatalf("Phase() after space = %v, expected running", m.ctrl.Phase())
	}

	for _, at := range []time.Duration{time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond} {
		m = update(t, m, TickMsg(start.Add(at)))
	}
	if m.ctrl.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", m.ctrl.Ticks())
	}
	if !strings.Contains(m.View(), "SCORE: 0") {
		t.Error("View() does not show the HUD")
	}
}

func TestModelPauseKey(t *testing.T) {
	m := newTestModel(t, 80, 25)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	m = update(t, m, runes("p"))
	if m.ctrl.Phase() != engine.PhasePaused {
		t.Errorf("Phase() after p = %v, expected paused", m.ctrl.Phase())
	}
	m = update(t, m, runes("p"))
	if m.ctrl.Phase() != engine.PhaseRunning {
		t.Errorf("Phase() after second p = %v, expected running", m.ctrl.Phase())
	}
	m = update(t, m, runes("x"))
	if m.ctrl.Phase() != engine.PhaseStopped {
		t.Errorf("Phase() after x = %v, expected stopped", m.ctrl.Phase())
	}
}

func TestModelHeldKeyReleases(t *testing.T) {
	m := newTestModel(t, 80, 25)
	start := m.loop.Now()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if !m.in.Held(input.KeyLeft) {
		t.Fatal("left not held after press")
	}
	m = update(t, m, TickMsg(start.Add(time.Second)))
	if m.in.Held(input.KeyLeft) {
		t.Error("left still held after the release timeout")
	}
}

func TestModelHeldSpaceFiresOnce(t *testing.T) {
	m := newTestModel(t, 80, 25)
	start := m.loop.Now()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m = update(t, m, space)
	if m.ctrl.Phase() != engine.PhaseRunning {
		t.Fatalf("Phase() after space = %v, expected running", m.ctrl.Phase())
	}
	m = update(t, m, TickMsg(start.Add(100*time.Millisecond)))

	tests := []struct {
		name string
		at   time.Duration
		fire bool
	}{
		{"auto-repeat while held", 0, false},
		{"press after release", time.Second, true},
	}

	for _, tc := range tests {
		if tc.at > 0 {
			m = update(t, m, TickMsg(start.Add(tc.at)))
		}
		m = update(t, m, space)
		if got := m.in.CurrentIntent().Fire; got != tc.fire {
			t.Errorf("%s: CurrentIntent().Fire = %t, expected %t", tc.name, got, tc.fire)
		}
	}
}

func TestModelRestartForgetsHeldKeys(t *testing.T) {
	m := newTestModel(t, 80, 25)
	start := m.loop.Now()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, runes("r"))
	if m.ctrl.Phase() != engine.PhaseRunning {
		t.Fatalf("Phase() after r = %v, expected running", m.ctrl.Phase())
	}
	if n := len(m.releaser.held); n != 0 {
		t.Errorf("releaser holds %d keys after restart, expected 0", n)
	}

	// A fresh press gets the initial hold window, not the repeat one.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg(start.Add(150*time.Millisecond)))
	if !m.in.Held(input.KeyLeft) {
		t.Error("left released within the initial hold window after restart")
	}
}

func TestModelTooSmall(t *testing.T) {
	m := newTestModel(t, 10, 5)
	if m.ctrl.Simulation() != nil {
		t.Fatal("Simulation() should be nil on a tiny terminal")
	}
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Errorf("View() = %q, expected a size message", m.View())
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	if m.ctrl.Simulation() == nil {
		t.Error("Simulation() still nil after growing the terminal")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 80, 25)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if v := next.View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestJournalModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sessions := []struct {
		id, reason string
	}{
		{"aaa", engine.EndGameOver},
		{"bbb", engine.EndStopped},
		{"ccc", engine.EndGameOver},
	}
	for i, s := range sessions {
		start := t0.Add(time.Duration(i) * time.Minute)
		if err := store.BeginSession(s.id, 1, start); err != nil {
			t.Fatalf("BeginSession() error = %v", err)
		}
		if err := store.EndSession(s.id, start.Add(10*time.Second), s.reason, 600, ""); err != nil {
			t.Fatalf("EndSession() error = %v", err)
		}
	}

	m := NewJournalModel(store, 100, 30)
	if got := len(m.visible()); got != 3 {
		t.Errorf("visible() = %d, expected 3", got)
	}
	if !strings.Contains(m.View(), "game_over 2") {
		t.Error("View() does not show reason counts")
	}

	next, _ := m.Update(runes("f"))
	m = next.(JournalModel)
	if got := len(m.visible()); got != 2 {
		t.Errorf("visible() with game_over filter = %d, expected 2", got)
	}
	next, _ = m.Update(runes("f"))
	m = next.(JournalModel)
	if got := len(m.visible()); got != 1 || m.visible()[0].ID != "bbb" {
		t.Errorf("visible() with stopped filter = %v, expected [bbb]", m.visible())
	}
}

func TestJournalModelDetail(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := store.BeginSession("4f1c9a7e-detail", 7, t0); err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}
	if err := store.EndSession("4f1c9a7e-detail", t0.Add(90*time.Second), engine.EndFatal, 4200, "board overflow"); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m := NewJournalModel(store, 100, 30)

	next, _ := m.Update(enter)
	m = next.(JournalModel)
	if m.detail == nil {
		t.Fatal("detail not opened on enter")
	}
	view := m.View()
	for _, want := range []string{"4f1c9a7e-detail", "board overflow", "4200", "1m30s"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() with detail does not contain %q", want)
		}
	}

	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"enter closes", enter},
		{"filter closes", runes("f")},
	}
	for _, tc := range tests {
		if m.detail == nil {
			next, _ = m.Update(enter)
			m = next.(JournalModel)
		}
		next, _ = m.Update(tc.msg)
		m = next.(JournalModel)
		if m.detail != nil {
			t.Errorf("%s: detail still open", tc.name)
		}
	}
}

func TestJournalModelWithoutStore(t *testing.T) {
	m := NewJournalModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No session journal") {
		t.Errorf("View() = %q, expected a missing journal message", m.View())
	}
}
