// Package tui is a terminal front end for browsing the catalog and fighting
// battles against the Arena.
package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
)

type mode uint8

const (
	modeList mode = iota
	modeBattle
)

// App holds the terminal UI state. Run owns the screen; the arena's enemy
// turns only post interrupt events to it.
type App struct {
	screen   tcell.Screen
	catalog  *catalog.Catalog
	resolver *battle.Resolver
	opts     []battle.ArenaOption

	mode     mode
	selected int
	arena    *battle.Arena
	status   string
}

// New returns an App drawing on screen. The screen must already be
// initialized; the caller is responsible for Fini.
func New(screen tcell.Screen, c *catalog.Catalog, r *battle.Resolver, opts ...battle.ArenaOption) *App {
	a := &App{screen: screen, catalog: c, resolver: r}
	a.opts = append(append(a.opts, opts...), battle.WithOnChange(func(battle.Snapshot) {
		// Dropped when the queue is full; the next poll redraws anyway.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}))
	return a
}

// Run draws and handles events until the user quits or the screen closes.
func (a *App) Run() error {
	if a.catalog.Len() == 0 {
		return errors.New("catalog is empty")
	}
	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if a.apply(keyToAction(ev)) {
				return nil
			}
		}
	}
}

// apply updates state for one action and reports whether to quit.
func (a *App) apply(act Action) bool {
	if act == ActionQuit {
		return true
	}
	a.status = ""
	switch a.mode {
	case modeList:
		return a.applyList(act)
	case modeBattle:
		a.applyBattle(act)
	}
	return false
}

func (a *App) applyList(act Action) bool {
	n := a.catalog.Len()
	switch act {
	case ActionUp:
		a.selected = (a.selected - 1 + n) % n
	case ActionDown:
		a.selected = (a.selected + 1) % n
	case ActionSelect:
		a.startBattle()
	case ActionBack:
		return true
	}
	return false
}

func (a *App) applyBattle(act Action) {
	switch act {
	case ActionAbility1, ActionAbility2, ActionAbility3:
		if _, err := a.arena.Attack(act.ability()); err != nil {
			a.status = describe(err)
		}
	case ActionRematch:
		if !a.arena.Snapshot().Ended {
			a.status = "Finish the battle first"
			return
		}
		a.arena = a.arena.Rematch()
	case ActionBack:
		a.arena = nil
		a.mode = modeList
	}
}

func (a *App) startBattle() {
	player := a.catalog.List()[a.selected]
	enemy, err := a.resolver.PickOpponent(a.catalog, player.ID)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.arena = battle.NewArena(a.resolver, player, enemy, a.opts...)
	a.mode = modeBattle
	a.arena.Start()
}

func describe(err error) string {
	switch {
	case errors.Is(err, battle.ErrBusy):
		return "Enemy is thinking..."
	case errors.Is(err, battle.ErrInvalidTransition):
		return "Not now"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
