package web

import (
	"strings"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
)

// featuredCount is how many Wraiths the home page shows.
const featuredCount = 4

// CardView is one Wraith as rendered on a card or detail panel.
type CardView struct {
	catalog.Wraith
	Stars string
}

func cardView(w catalog.Wraith) CardView {
	return CardView{Wraith: w, Stars: strings.Repeat("★", w.Rarity)}
}

func cardViews(ws []catalog.Wraith) []CardView {
	out := make([]CardView, len(ws))
	for i, w := range ws {
		out[i] = cardView(w)
	}
	return out
}

// HomeViewModel backs the landing page.
type HomeViewModel struct {
	Featured []CardView
}

// ElementSection is one element's block on the collection page.
type ElementSection struct {
	Element catalog.Element
	Wraiths []CardView
}

// CollectionViewModel backs the collection page.
type CollectionViewModel struct {
	Total     int
	Legendary int
	Elements  int
	Sections  []ElementSection
}

// DetailViewModel backs the detail panel of one Wraith.
type DetailViewModel struct {
	Card     CardView
	Opponent string // optional preselected enemy id
}

// HPBar is one side's health bar.
type HPBar struct {
	Name    string
	Current int
	Max     int
	Percent int
	Level   string // "high" | "mid" | "low", for bar color
}

func hpBar(name string, cur, maxHP int) HPBar {
	pct := 0
	if maxHP > 0 {
		pct = cur * 100 / maxHP
	}
	level := "low"
	switch {
	case pct > 60:
		level = "high"
	case pct > 30:
		level = "mid"
	}
	return HPBar{Name: name, Current: cur, Max: maxHP, Percent: pct, Level: level}
}

// ArenaViewModel backs the arena fragment.
type ArenaViewModel struct {
	Player    CardView
	Enemy     CardView
	PlayerHP  HPBar
	EnemyHP   HPBar
	Message   string
	LastHit   string // "player" | "enemy" | "" - side that just took damage
	TurnLabel string
	Ended     bool
	Victory   bool
	Busy      bool
	CanAct    bool
	Error     string
}

func arenaView(snap battle.Snapshot) ArenaViewModel {
	st := snap.State
	vm := ArenaViewModel{
		Player:   cardView(st.Player),
		Enemy:    cardView(st.Enemy),
		PlayerHP: hpBar(st.Player.Name, st.PlayerHP, st.Player.Stats.HP),
		EnemyHP:  hpBar(st.Enemy.Name, st.EnemyHP, st.Enemy.Stats.HP),
		Message:  st.Message,
		Ended:    st.Ended,
		Victory:  st.Winner == battle.Player,
		Busy:     snap.Busy,
		CanAct:   st.Phase() == battle.AwaitingPlayerAction && !snap.Busy,
	}
	if st.Last != nil {
		vm.LastHit = string(battle.Player)
		if st.Last.Side == battle.Player {
			vm.LastHit = string(battle.Enemy)
		}
	}
	switch {
	case st.Ended && vm.Victory:
		vm.TurnLabel = "VICTORY!"
	case st.Ended:
		vm.TurnLabel = "DEFEAT"
	case st.Turn == battle.Player:
		vm.TurnLabel = "Your Turn"
	default:
		vm.TurnLabel = "Enemy Turn"
	}
	return vm
}
