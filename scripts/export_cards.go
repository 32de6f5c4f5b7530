// export_cards renders every Wraith card to PNG files under static/cards/.
// Usage: go run scripts/export_cards.go [catalog.yaml] [-w width]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wraithbound/internal/cardart"
	"wraithbound/internal/catalog"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	width := flag.Int("w", 0, "thumbnail width in pixels (0 for full size)")
	flag.Parse()

	cat := catalog.Default()
	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/export_cards.go [-w width] [catalog.yaml]\n")
		return 1
	}
	if flag.NArg() == 1 {
		c, err := catalog.Load(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		cat = c
	}

	outDir := filepath.Join("static", "cards")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}
	for _, w := range cat.List() {
		outPath := filepath.Join(outDir, w.ID+".png")
		if err := writeCard(w, *width, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
			return 1
		}
		fmt.Println(outPath)
	}
	return 0
}

func writeCard(w catalog.Wraith, width int, path string) error {
	if filepath.Clean(path) != path || strings.Contains(path, "..") {
		return fmt.Errorf("invalid path")
	}
	b, err := cardart.PNG(w, width)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
