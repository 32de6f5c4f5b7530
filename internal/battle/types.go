package battle

import (
	"errors"

	"wraithbound/internal/catalog"
)

var (
	// ErrInvalidTransition is returned for an action out of turn, after the
	// battle ended, or with an ability index out of range.
	ErrInvalidTransition = errors.New("invalid battle transition")

	// ErrBusy is returned by an Arena while an enemy turn is pending.
	ErrBusy = errors.New("battle busy: enemy turn pending")
)

// Side identifies one of the two combatants.
type Side string

const (
	None   Side = ""
	Player Side = "player"
	Enemy  Side = "enemy"
)

// Phase is the state machine position derived from Turn and Ended.
type Phase int

const (
	AwaitingPlayerAction Phase = iota
	AwaitingEnemyAction
	Ended
)

func (p Phase) String() string {
	switch p {
	case AwaitingPlayerAction:
		return "awaiting_player"
	case AwaitingEnemyAction:
		return "awaiting_enemy"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Action is one resolved attack.
type Action struct {
	Side    Side
	Ability int
	Name    string // ability label
	Damage  int
	Message string // "<name> used <ability>! Dealt <n> damage!"
}

// State is one battle between two catalog Wraiths. Player and Enemy are
// copies; the battle never writes to them.
type State struct {
	Player   catalog.Wraith
	Enemy    catalog.Wraith
	PlayerHP int
	EnemyHP  int
	Turn     Side
	Message  string
	Ended    bool
	Winner   Side
	Round    int     // resolved transitions so far
	Last     *Action // most recent attack, nil before the first one
}

// Phase reports which transition, if any, the state accepts next.
func (s State) Phase() Phase {
	switch {
	case s.Ended:
		return Ended
	case s.Turn == Enemy:
		return AwaitingEnemyAction
	default:
		return AwaitingPlayerAction
	}
}

// Snapshot is what a presentation caller renders: the settled state plus
// whether an enemy turn is still in flight.
type Snapshot struct {
	State
	Busy bool
}
