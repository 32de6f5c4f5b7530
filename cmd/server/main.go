package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
	"wraithbound/internal/session"
	"wraithbound/internal/web"
)

func main() {
	addr := flag.String("addr", "", "listen address (default :$PORT or :8080)")
	catalogPath := flag.String("catalog", "", "catalog YAML file (default: bundled catalog)")
	tmplDir := flag.String("templates", "templates", "templates directory")
	staticDir := flag.String("static", "static", "static files directory")
	think := flag.Duration("think", battle.DefaultThink, "enemy think delay")
	flag.Parse()

	cat := catalog.Default()
	if *catalogPath != "" {
		c, err := catalog.Load(*catalogPath)
		if err != nil {
			log.Fatal(err)
		}
		cat = c
	}

	tmpl, err := web.ParseTemplates(*tmplDir)
	if err != nil {
		log.Fatal(err)
	}

	srv := &web.Server{
		Catalog:      cat,
		Resolver:     battle.NewResolver(nil),
		Store:        session.NewMemoryStore[*battle.Arena](),
		Tmpl:         tmpl,
		ArenaOptions: []battle.ArenaOption{battle.WithThink(*think)},
		StaticDir:    *staticDir,
	}

	listen := *addr
	if listen == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		listen = ":" + port
	}
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("%d wraiths loaded, listening on http://localhost%s", cat.Len(), listen)
	log.Fatal(httpSrv.ListenAndServe())
}
