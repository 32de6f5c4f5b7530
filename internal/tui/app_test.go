package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
)

// fixedRand gives variance 1.0 and always picks the first option.
type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) Intn(int) int     { return 0 }

func immediate(_ time.Duration, fn func()) { fn() }

func newSimScreen(t *testing.T) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(100, 30)
	t.Cleanup(ss.Fini)
	return ss
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return New(newSimScreen(t), catalog.Default(), battle.NewResolver(fixedRand{}), battle.WithScheduler(immediate))
}

// rowText reads back one screen row.
func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyUp, 0, ActionUp},
		{tcell.KeyDown, 0, ActionDown},
		{tcell.KeyEnter, 0, ActionSelect},
		{tcell.KeyEscape, 0, ActionBack},
		{tcell.KeyRune, 'k', ActionUp},
		{tcell.KeyRune, 'j', ActionDown},
		{tcell.KeyRune, '1', ActionAbility1},
		{tcell.KeyRune, '2', ActionAbility2},
		{tcell.KeyRune, '3', ActionAbility3},
		{tcell.KeyRune, 'r', ActionRematch},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, 'x', ActionNone},
	}
	for _, tc := range tests {
		ev := tcell.NewEventKey(tc.key, tc.r, tcell.ModNone)
		if got := keyToAction(ev); got != tc.want {
			t.Errorf("keyToAction(%v, %q) = %v, want %v", tc.key, tc.r, got, tc.want)
		}
	}
}

func TestActionAbility(t *testing.T) {
	if ActionAbility1.ability() != 0 || ActionAbility3.ability() != 2 {
		t.Error("Unexpected ability index")
	}
	if ActionRematch.ability() != -1 {
		t.Error("Expected -1 for non-ability action")
	}
}

func TestApplyList_Navigation(t *testing.T) {
	a := newTestApp(t)
	a.apply(ActionUp)
	if a.selected != a.catalog.Len()-1 {
		t.Errorf("Expected wrap to last, got %d", a.selected)
	}
	a.apply(ActionDown)
	a.apply(ActionDown)
	if a.selected != 1 {
		t.Errorf("Expected 1, got %d", a.selected)
	}
	if !a.apply(ActionBack) {
		t.Error("Expected esc on the list to quit")
	}
}

func TestApply_QuitFromAnyMode(t *testing.T) {
	a := newTestApp(t)
	a.apply(ActionSelect)
	if !a.apply(ActionQuit) {
		t.Error("Expected quit in battle mode")
	}
}

func TestStartBattle(t *testing.T) {
	a := newTestApp(t)
	a.apply(ActionSelect)
	if a.mode != modeBattle || a.arena == nil {
		t.Fatal("Expected battle mode with an arena")
	}
	snap := a.arena.Snapshot()
	if snap.Player.ID != "umbra-rex" || snap.Enemy.ID != "inferno-drake" {
		t.Errorf("Unexpected pairing %s vs %s", snap.Player.ID, snap.Enemy.ID)
	}
	// Inferno Drake is faster and has already struck.
	if snap.Turn != battle.Player || snap.PlayerHP >= snap.Player.Stats.HP {
		t.Errorf("Expected enemy opening strike, got turn %s hp %d", snap.Turn, snap.PlayerHP)
	}
}

func TestApplyBattle_AttackAndBack(t *testing.T) {
	a := newTestApp(t)
	a.apply(ActionSelect)
	before := a.arena.Snapshot().EnemyHP
	a.apply(ActionAbility2)
	if got := a.arena.Snapshot().EnemyHP; got >= before {
		t.Errorf("Expected enemy to take damage, hp %d -> %d", before, got)
	}
	if a.status != "" {
		t.Errorf("Unexpected status %q", a.status)
	}
	a.apply(ActionBack)
	if a.mode != modeList || a.arena != nil {
		t.Error("Expected to return to the list")
	}
}

func TestApplyBattle_BusyStatus(t *testing.T) {
	var pending []func()
	a := New(newSimScreen(t), catalog.Default(), battle.NewResolver(fixedRand{}),
		battle.WithScheduler(func(_ time.Duration, fn func()) { pending = append(pending, fn) }))
	a.selected = 4 // Venom Lurker outpaces Umbra Rex
	a.apply(ActionSelect)
	a.apply(ActionAbility1)
	a.apply(ActionAbility1)
	if a.status != "Enemy is thinking..." {
		t.Errorf("Expected busy status, got %q", a.status)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected one pending enemy turn, got %d", len(pending))
	}
	pending[0]()
	a.apply(ActionAbility1)
	if a.status != "" {
		t.Errorf("Expected attack to succeed after enemy turn, got %q", a.status)
	}
}

func TestApplyBattle_RematchAfterEnd(t *testing.T) {
	a := newTestApp(t)
	a.apply(ActionSelect)
	a.apply(ActionRematch)
	if a.status == "" {
		t.Error("Expected rematch to be refused mid-battle")
	}
	for i := 0; i < 50 && !a.arena.Snapshot().Ended; i++ {
		a.apply(ActionAbility1)
	}
	old := a.arena
	if !old.Snapshot().Ended {
		t.Fatal("Battle did not end")
	}
	a.apply(ActionAbility1)
	if a.status != "Not now" {
		t.Errorf("Expected ended battle to refuse attacks, got %q", a.status)
	}
	a.apply(ActionRematch)
	if a.arena == old || a.arena.Snapshot().Ended {
		t.Error("Expected a fresh arena after rematch")
	}
}

func TestDraw(t *testing.T) {
	a := newTestApp(t)
	a.draw()
	text := screenText(a.screen)
	for _, want := range []string{"WRAITH VAULT", "> Umbra Rex", "Plasma Phoenix", "Eclipse Strike"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected list screen to contain %q", want)
		}
	}

	a.apply(ActionSelect)
	a.draw()
	text = screenText(a.screen)
	for _, want := range []string{"Umbra Rex VS Inferno Drake", "Your Turn", "1) Eclipse Strike", "/120"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected battle screen to contain %q", want)
		}
	}
}

func TestHPGauge(t *testing.T) {
	tests := []struct {
		cur, maxHP, filled int
	}{
		{100, 100, barWidth},
		{50, 100, barWidth / 2},
		{0, 100, 0},
		{-5, 100, 0},
		{10, 0, 0},
	}
	for _, tc := range tests {
		g := hpGauge(tc.cur, tc.maxHP)
		if n := strings.Count(g, "█"); n != tc.filled {
			t.Errorf("hpGauge(%d, %d) filled %d, want %d", tc.cur, tc.maxHP, n, tc.filled)
		}
	}
}

func TestRun_Quit(t *testing.T) {
	a := newTestApp(t)
	if err := a.screen.PostEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	if err := a.screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.selected != 1 {
		t.Errorf("Expected selection to move before quit, got %d", a.selected)
	}
}

func TestRun_EmptyCatalog(t *testing.T) {
	c, err := catalog.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a := New(newSimScreen(t), c, battle.NewResolver(fixedRand{}))
	if err := a.Run(); err == nil {
		t.Error("Expected error for empty catalog")
	}
}
