package battle

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// manualScheduler queues callbacks until the test runs them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) runAll() int {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func immediate(_ time.Duration, fn func()) { fn() }

func TestArena_AttackSchedulesEnemyTurn(t *testing.T) {
	sched := &manualScheduler{}
	a := NewArena(NewResolver(fixedRand{f: 0.5}), wraith("p", 500, 50, 50, 10), wraith("e", 500, 50, 50, 5),
		WithScheduler(sched.schedule), WithThink(250*time.Millisecond))
	a.Start()
	if n := len(sched.pending); n != 0 {
		t.Fatalf("Start scheduled %d callbacks with player first", n)
	}

	st, err := a.Attack(0)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if st.Turn != Enemy {
		t.Errorf("Turn = %s, want enemy", st.Turn)
	}
	snap := a.Snapshot()
	if !snap.Busy {
		t.Error("Expected arena to be busy while enemy thinks")
	}
	if len(sched.delays) != 1 || sched.delays[0] != 250*time.Millisecond {
		t.Errorf("Unexpected scheduled delays %v", sched.delays)
	}

	if _, err := a.Attack(1); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}
	if got := a.Snapshot(); got.EnemyHP != snap.EnemyHP || got.Round != 1 {
		t.Error("Rejected attack changed state")
	}

	if n := sched.runAll(); n != 1 {
		t.Fatalf("Expected 1 enemy turn, ran %d", n)
	}
	snap = a.Snapshot()
	if snap.Busy {
		t.Error("Expected arena idle after enemy turn")
	}
	if snap.Turn != Player || snap.Round != 2 || snap.PlayerHP >= 500 {
		t.Errorf("Unexpected state after enemy turn: %+v", snap.State)
	}
}

func TestArena_StartWhenEnemyFaster(t *testing.T) {
	sched := &manualScheduler{}
	a := NewArena(NewResolver(fixedRand{f: 0.5}), wraith("p", 500, 50, 50, 5), wraith("e", 500, 50, 50, 10),
		WithScheduler(sched.schedule))
	a.Start()
	a.Start()
	if len(sched.pending) != 1 {
		t.Fatalf("Expected exactly one scheduled enemy turn, got %d", len(sched.pending))
	}
	if _, err := a.Attack(0); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy before enemy opening move, got %v", err)
	}
	if sched.delays[0] != DefaultThink {
		t.Errorf("Expected default think delay, got %v", sched.delays[0])
	}
	sched.runAll()
	if snap := a.Snapshot(); snap.Turn != Player || snap.Busy {
		t.Errorf("Expected player turn after enemy opening, got %+v", snap)
	}
}

func TestArena_InvalidAbilityKeepsArenaIdle(t *testing.T) {
	a := NewArena(NewResolver(fixedRand{f: 0.5}), wraith("p", 500, 50, 50, 10), wraith("e", 500, 50, 50, 5),
		WithScheduler(immediate))
	if _, err := a.Attack(7); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Expected ErrInvalidTransition, got %v", err)
	}
	if snap := a.Snapshot(); snap.Busy || snap.Round != 0 {
		t.Errorf("Unexpected snapshot after rejected attack: %+v", snap)
	}
}

func TestArena_PlaysToCompletion(t *testing.T) {
	var mu sync.Mutex
	var changes []Snapshot
	a := NewArena(NewResolver(fixedRand{f: 0.5}), wraith("p", 200, 80, 50, 10), wraith("e", 200, 60, 50, 5),
		WithScheduler(immediate),
		WithOnChange(func(s Snapshot) {
			mu.Lock()
			changes = append(changes, s)
			mu.Unlock()
		}))
	a.Start()

	for i := 0; i < 100; i++ {
		if a.Snapshot().Ended {
			break
		}
		if _, err := a.Attack(i % 3); err != nil {
			t.Fatalf("Attack %d: %v", i, err)
		}
	}
	final := a.Snapshot()
	if !final.Ended || final.Winner != Player {
		t.Fatalf("Expected player victory, got %+v", final.State)
	}
	if _, err := a.Attack(0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition after end, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(changes) != final.Round {
		t.Errorf("Expected %d change notifications, got %d", final.Round, len(changes))
	}
}

func TestArena_Rematch(t *testing.T) {
	a := NewArena(NewResolver(fixedRand{f: 0.5}), wraith("p", 100, 110, 60, 85), wraith("e", 80, 75, 70, 80),
		WithScheduler(immediate))
	if _, err := a.Attack(0); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if !a.Snapshot().Ended {
		t.Fatal("Expected first battle to end")
	}
	b := a.Rematch()
	snap := b.Snapshot()
	if snap.Ended || snap.EnemyHP != 80 || snap.PlayerHP != 100 || snap.Round != 0 {
		t.Errorf("Rematch did not start fresh: %+v", snap.State)
	}
	if snap.Player.ID != "p" || snap.Enemy.ID != "e" {
		t.Errorf("Rematch changed combatants: %s vs %s", snap.Player.ID, snap.Enemy.ID)
	}
	if !a.Snapshot().Ended {
		t.Error("Rematch modified the old arena")
	}
}

func TestArena_RealTimer(t *testing.T) {
	done := make(chan Snapshot, 4)
	a := NewArena(NewResolver(nil), wraith("p", 1000, 50, 50, 10), wraith("e", 1000, 50, 50, 5),
		WithThink(5*time.Millisecond),
		WithOnChange(func(s Snapshot) { done <- s }))
	if _, err := a.Attack(0); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	<-done // player attack
	select {
	case s := <-done:
		if s.Turn != Player || s.Busy {
			t.Errorf("Unexpected snapshot after enemy turn: %+v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("enemy turn never resolved")
	}
}
