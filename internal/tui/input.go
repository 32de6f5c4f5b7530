package tui

import "github.com/gdamore/tcell/v2"

// Action is a user request decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionSelect
	ActionAbility1
	ActionAbility2
	ActionAbility3
	ActionRematch
	ActionBack
	ActionQuit
)

// ability returns the ability index for ActionAbility1..3, or -1.
func (a Action) ability() int {
	if a >= ActionAbility1 && a <= ActionAbility3 {
		return int(a - ActionAbility1)
	}
	return -1
}

func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyEnter:
		return ActionSelect
	case tcell.KeyEscape:
		return ActionBack
	case tcell.KeyCtrlC:
		return ActionQuit
	}
	switch ev.Rune() {
	case 'k', 'K':
		return ActionUp
	case 'j', 'J':
		return ActionDown
	case ' ':
		return ActionSelect
	case '1':
		return ActionAbility1
	case '2':
		return ActionAbility2
	case '3':
		return ActionAbility3
	case 'r', 'R':
		return ActionRematch
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
