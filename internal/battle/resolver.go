// Package battle resolves turn-based fights between two catalog Wraiths.
//
// Resolver is synchronous: each call takes a State and returns the next one.
// Arena wraps a single State for presentation callers and adds the enemy
// "thinking" delay and the busy flag that keeps transitions from overlapping.
package battle

import (
	"fmt"
	"math"
	"math/rand"

	"wraithbound/internal/catalog"
)

const (
	// MinDamage is the floor applied to every hit.
	MinDamage = 5

	varianceMin   = 0.8
	varianceSpan  = 0.4
	defenseWeight = 0.3

	openingMessage = "Battle begins! Choose your attack!"
)

// Rand is the randomness the resolver draws from. *math/rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// globalRand uses the package-level math/rand functions, which are safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() } //nolint:gosec // game randomness
func (globalRand) Intn(n int) int   { return rand.Intn(n) }   //nolint:gosec // game randomness

// Resolver applies battle transitions.
type Resolver struct {
	rng Rand
}

// NewResolver returns a resolver drawing from rng. A nil rng uses the
// package-level generator. A non-nil rng must not be shared with other
// goroutines unless it is itself safe for concurrent use.
func NewResolver(rng Rand) *Resolver {
	if rng == nil {
		rng = globalRand{}
	}
	return &Resolver{rng: rng}
}

// Damage computes one hit: floor(attack*variance - defense*0.3), never
// below MinDamage.
func Damage(attacker, defender catalog.Stats, variance float64) int {
	raw := int(math.Floor(float64(attacker.Attack)*variance - float64(defender.Defense)*defenseWeight))
	if raw < MinDamage {
		return MinDamage
	}
	return raw
}

func (r *Resolver) variance() float64 {
	return varianceMin + r.rng.Float64()*varianceSpan
}

// NewBattle sets up a fresh battle. The faster side moves first; the player
// wins ties.
func (r *Resolver) NewBattle(player, enemy catalog.Wraith) State {
	turn := Player
	if player.Stats.Speed < enemy.Stats.Speed {
		turn = Enemy
	}
	return State{
		Player:   player,
		Enemy:    enemy,
		PlayerHP: player.Stats.HP,
		EnemyHP:  enemy.Stats.HP,
		Turn:     turn,
		Message:  openingMessage,
	}
}

// ResolvePlayerAction resolves the player's chosen ability. st is not
// modified; on error the returned state is st unchanged.
func (r *Resolver) ResolvePlayerAction(st State, ability int) (State, error) {
	if err := checkTurn(st, Player); err != nil {
		return st, err
	}
	if ability < 0 || ability >= len(st.Player.Abilities) {
		return st, fmt.Errorf("%w: ability index %d out of range 0..%d", ErrInvalidTransition, ability, len(st.Player.Abilities)-1)
	}
	return r.strike(st, Player, ability), nil
}

// ResolveEnemyAction resolves the enemy's turn with a uniformly random
// ability.
func (r *Resolver) ResolveEnemyAction(st State) (State, error) {
	if err := checkTurn(st, Enemy); err != nil {
		return st, err
	}
	if len(st.Enemy.Abilities) == 0 {
		return st, fmt.Errorf("%w: enemy %s has no abilities", ErrInvalidTransition, st.Enemy.ID)
	}
	return r.strike(st, Enemy, r.rng.Intn(len(st.Enemy.Abilities))), nil
}

func checkTurn(st State, side Side) error {
	if st.Ended {
		return fmt.Errorf("%w: battle already ended", ErrInvalidTransition)
	}
	if st.Turn != side {
		return fmt.Errorf("%w: not the %s's turn", ErrInvalidTransition, side)
	}
	return nil
}

// strike applies one already-validated attack from side.
func (r *Resolver) strike(st State, side Side, ability int) State {
	attacker, defender := st.Player, st.Enemy
	defenderHP := &st.EnemyHP
	next, winner := Enemy, Player
	fallen := fmt.Sprintf("%s has fallen! Victory!", st.Enemy.Name)
	if side == Enemy {
		attacker, defender = st.Enemy, st.Player
		defenderHP = &st.PlayerHP
		next, winner = Player, Enemy
		fallen = fmt.Sprintf("%s has fallen! Defeat...", st.Player.Name)
	}

	dmg := Damage(attacker.Stats, defender.Stats, r.variance())
	*defenderHP = max(0, *defenderHP-dmg)

	name := attacker.Abilities[ability]
	act := &Action{
		Side:    side,
		Ability: ability,
		Name:    name,
		Damage:  dmg,
		Message: fmt.Sprintf("%s used %s! Dealt %d damage!", attacker.Name, name, dmg),
	}
	st.Last = act
	st.Round++
	st.Message = act.Message

	if *defenderHP == 0 {
		st.Ended = true
		st.Winner = winner
		st.Message = fallen
		return st
	}
	st.Turn = next
	return st
}

// PickOpponent picks a uniformly random Wraith other than playerID. It
// returns an error wrapping catalog.ErrNotFound when no other Wraith exists.
func (r *Resolver) PickOpponent(c *catalog.Catalog, playerID string) (catalog.Wraith, error) {
	var pool []catalog.Wraith
	for _, w := range c.List() {
		if w.ID != playerID {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return catalog.Wraith{}, fmt.Errorf("%w: no opponent for %q", catalog.ErrNotFound, playerID)
	}
	return pool[r.rng.Intn(len(pool))], nil
}
