package battle

import (
	"sync"
	"time"

	"wraithbound/internal/catalog"
)

// DefaultThink is the pause before the enemy's move resolves.
const DefaultThink = time.Second

// Scheduler runs fn after d. time.AfterFunc is the default; tests pass a
// function that calls fn directly.
type Scheduler func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithThink sets the enemy thinking delay.
func WithThink(d time.Duration) ArenaOption {
	return func(a *Arena) { a.think = d }
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) ArenaOption {
	return func(a *Arena) { a.schedule = s }
}

// WithOnChange registers a callback invoked with a snapshot after every
// settled transition, including enemy turns that resolve in the background.
// It is called without the arena lock held.
func WithOnChange(fn func(Snapshot)) ArenaOption {
	return func(a *Arena) { a.onChange = fn }
}

// Arena owns one live battle. Only one transition is in flight at a time:
// while the enemy is thinking the arena is busy and Attack is rejected.
type Arena struct {
	resolver *Resolver
	opts     []ArenaOption
	think    time.Duration
	schedule Scheduler
	onChange func(Snapshot)

	mu    sync.Mutex
	state State
	busy  bool
}

// NewArena creates an arena for player against enemy. Call Start to let the
// enemy move if it is faster.
func NewArena(r *Resolver, player, enemy catalog.Wraith, opts ...ArenaOption) *Arena {
	a := &Arena{
		resolver: r,
		opts:     opts,
		think:    DefaultThink,
		schedule: afterFunc,
		state:    r.NewBattle(player, enemy),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Start schedules the enemy's opening move when the enemy is faster. It is
// a no-op otherwise and safe to call more than once.
func (a *Arena) Start() {
	a.mu.Lock()
	pending := a.claimEnemyTurn()
	a.mu.Unlock()
	if pending {
		a.schedule(a.think, a.enemyTurn)
	}
}

// Snapshot returns the current state and busy flag.
func (a *Arena) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{State: a.state, Busy: a.busy}
}

// Attack resolves the player's ability and, if the enemy is now up,
// schedules its turn. It returns the settled post-attack state.
func (a *Arena) Attack(ability int) (State, error) {
	a.mu.Lock()
	if a.busy {
		st := a.state
		a.mu.Unlock()
		return st, ErrBusy
	}
	next, err := a.resolver.ResolvePlayerAction(a.state, ability)
	if err != nil {
		a.mu.Unlock()
		return next, err
	}
	a.state = next
	pending := a.claimEnemyTurn()
	snap := Snapshot{State: a.state, Busy: a.busy}
	a.mu.Unlock()

	a.notify(snap)
	if pending {
		a.schedule(a.think, a.enemyTurn)
	}
	return snap.State, nil
}

// Rematch returns a fresh arena over the same pair with the same options,
// already started.
func (a *Arena) Rematch() *Arena {
	a.mu.Lock()
	player, enemy := a.state.Player, a.state.Enemy
	a.mu.Unlock()
	n := NewArena(a.resolver, player, enemy, a.opts...)
	n.Start()
	return n
}

// claimEnemyTurn marks the arena busy if the enemy must move next. The
// caller holds a.mu.
func (a *Arena) claimEnemyTurn() bool {
	if a.busy || a.state.Phase() != AwaitingEnemyAction {
		return false
	}
	a.busy = true
	return true
}

func (a *Arena) enemyTurn() {
	a.mu.Lock()
	if !a.busy {
		a.mu.Unlock()
		return
	}
	next, err := a.resolver.ResolveEnemyAction(a.state)
	if err == nil {
		a.state = next
	}
	a.busy = false
	snap := Snapshot{State: a.state}
	a.mu.Unlock()

	if err == nil {
		a.notify(snap)
	}
}

func (a *Arena) notify(s Snapshot) {
	if a.onChange != nil {
		a.onChange(s)
	}
}
