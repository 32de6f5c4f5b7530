// arena is a terminal client for browsing the Wraith catalog and fighting
// battles.
//
// Usage:
//
//	go run ./cmd/arena [-catalog wraiths.yaml] [-think 1s]
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
	"wraithbound/internal/tui"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog YAML file (default: bundled catalog)")
	think := flag.Duration("think", battle.DefaultThink, "enemy think delay")
	flag.Parse()

	if err := run(*catalogPath, *think); err != nil {
		log.Fatal(err)
	}
}

func run(catalogPath string, think time.Duration) error {
	cat := catalog.Default()
	if catalogPath != "" {
		c, err := catalog.Load(catalogPath)
		if err != nil {
			return err
		}
		cat = c
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	app := tui.New(screen, cat, battle.NewResolver(nil), battle.WithThink(think))
	return app.Run()
}
