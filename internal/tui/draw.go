package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"wraithbound/internal/battle"
	"wraithbound/internal/cardart"
	"wraithbound/internal/catalog"
)

const barWidth = 20

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStars  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func elementStyle(e catalog.Element) tcell.Style {
	c := cardart.Accent(e)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (a *App) draw() {
	a.screen.Clear()
	switch a.mode {
	case modeList:
		a.drawList()
	case modeBattle:
		a.drawBattle()
	}
	if a.status != "" {
		_, h := a.screen.Size()
		putString(a.screen, 1, h-2, a.status, styleStatus)
	}
	a.screen.Show()
}

func (a *App) drawList() {
	s := a.screen
	_, h := s.Size()
	putString(s, 1, 0, fmt.Sprintf("WRAITH VAULT  %d wraiths, %d legendary",
		a.catalog.Len(), a.catalog.CountByRarity(catalog.Legendary)), styleTitle)

	list := a.catalog.List()
	for i, w := range list {
		y := 2 + i
		style := styleText
		cursor := "  "
		if i == a.selected {
			style = style.Reverse(true)
			cursor = "> "
		}
		x := putString(s, 1, y, cursor, style)
		x = putString(s, x, y, fmt.Sprintf("%-16s", w.Name), style)
		x = putString(s, x+1, y, fmt.Sprintf("%-7s", w.Element), elementStyle(w.Element))
		x = putString(s, x+1, y, fmt.Sprintf("%-5s", strings.Repeat("★", w.Rarity)), styleStars)
		putString(s, x+1, y, fmt.Sprintf("HP %3d  ATK %3d  DEF %3d  SPD %3d",
			w.Stats.HP, w.Stats.Attack, w.Stats.Defense, w.Stats.Speed), styleDim)
	}

	sel := list[a.selected]
	y := 3 + len(list)
	putString(s, 1, y, sel.Description, styleText)
	putString(s, 1, y+1, "Abilities: "+strings.Join(sel.Abilities, ", "), styleDim)
	putString(s, 1, h-1, "up/down select   enter battle   q quit", styleDim)
}

func (a *App) drawBattle() {
	s := a.screen
	_, h := s.Size()
	snap := a.arena.Snapshot()
	st := snap.State

	x := putString(s, 1, 0, st.Player.Name, elementStyle(st.Player.Element).Bold(true))
	x = putString(s, x+1, 0, "VS", styleDim)
	putString(s, x+1, 0, st.Enemy.Name, elementStyle(st.Enemy.Element).Bold(true))

	drawHP(s, 2, st.Player, st.PlayerHP)
	drawHP(s, 3, st.Enemy, st.EnemyHP)

	putString(s, 1, 5, st.Message, styleText)
	putString(s, 1, 6, turnLabel(snap), styleTitle)

	if st.Ended {
		putString(s, 1, 8, "r rematch   esc back   q quit", styleDim)
		return
	}
	style := styleText
	if snap.Busy || st.Turn != battle.Player {
		style = styleDim
	}
	for i, ab := range st.Player.Abilities {
		putString(s, 1, 8+i, fmt.Sprintf("%d) %s", i+1, ab), style)
	}
	putString(s, 1, h-1, "1-3 attack   esc back   q quit", styleDim)
}

func drawHP(s tcell.Screen, y int, w catalog.Wraith, hp int) {
	x := putString(s, 1, y, fmt.Sprintf("%-16s", w.Name), styleText)
	x = putString(s, x+1, y, hpGauge(hp, w.Stats.HP), elementStyle(w.Element))
	putString(s, x+1, y, fmt.Sprintf("%d/%d", hp, w.Stats.HP), styleText)
}

func hpGauge(cur, maxHP int) string {
	filled := 0
	if maxHP > 0 {
		filled = cur * barWidth / maxHP
	}
	filled = max(0, min(barWidth, filled))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func turnLabel(snap battle.Snapshot) string {
	switch {
	case snap.Ended && snap.Winner == battle.Player:
		return "VICTORY!"
	case snap.Ended:
		return "DEFEAT"
	case snap.Turn == battle.Player && !snap.Busy:
		return "Your Turn"
	default:
		return "Enemy Turn..."
	}
}

// putString draws str at (x, y) and returns the column after it.
func putString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
