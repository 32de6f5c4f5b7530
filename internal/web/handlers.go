package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"wraithbound/internal/battle"
	"wraithbound/internal/catalog"
	"wraithbound/internal/session"
)

type Server struct {
	Catalog  *catalog.Catalog
	Resolver *battle.Resolver
	Store    session.Store[*battle.Arena]
	Tmpl     *template.Template

	// ArenaOptions are applied to every arena the server creates.
	ArenaOptions []battle.ArenaOption
	// StaticDir is served under /static/. Defaults to "static".
	StaticDir string
}

const cookieName = "wraithbound_sid"

// templateFiles are parsed together; pages pick their body by key in layout.html.
var templateFiles = []string{
	"layout.html",
	"home.html",
	"collection.html",
	"card.html",
	"detail.html",
	"battle.html",
	"arena.html",
}

// ParseTemplates parses the page templates from dir.
func ParseTemplates(dir string) (*template.Template, error) {
	paths := make([]string, len(templateFiles))
	for i, f := range templateFiles {
		paths[i] = filepath.Join(dir, f)
	}
	return template.ParseFiles(paths...)
}

func (s *Server) Routes() http.Handler {
	static := s.StaticDir
	if static == "" {
		static = "static"
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/collection", s.handleCollection)
	mux.HandleFunc("/collection.pdf", s.handleCollectionPDF)
	mux.HandleFunc("/wraith/", s.handleDetail)
	mux.HandleFunc("/cards/", s.handleCard)

	mux.HandleFunc("/battle", s.handleBattle)
	mux.HandleFunc("/battle/state", s.handleBattleState)
	mux.HandleFunc("/battle/attack", s.handleAttack)
	mux.HandleFunc("/battle/rematch", s.handleRematch)
	mux.HandleFunc("/battle/leave", s.handleLeave)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(static))))
	return mux
}

// GET /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vm := HomeViewModel{Featured: cardViews(s.Catalog.Featured(featuredCount))}
	s.render(w, http.StatusOK, "layout.html", map[string]any{"Home": vm})
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// GET /collection
func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	groups := s.Catalog.GroupByElement()
	vm := CollectionViewModel{
		Total:     s.Catalog.Len(),
		Legendary: s.Catalog.CountByRarity(catalog.Legendary),
		Elements:  len(groups),
	}
	for _, el := range catalog.Elements() {
		if ws := groups[el]; len(ws) > 0 {
			vm.Sections = append(vm.Sections, ElementSection{Element: el, Wraiths: cardViews(ws)})
		}
	}
	s.render(w, http.StatusOK, "layout.html", map[string]any{"Collection": vm})
}

// GET /wraith/{id}
//
// htmx requests get the detail fragment for the modal; plain requests get a
// full page.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/wraith/"), "/")
	wr, err := s.Catalog.ByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	vm := DetailViewModel{Card: cardView(wr), Opponent: r.URL.Query().Get("enemy")}
	if isHTMX(r) {
		s.render(w, http.StatusOK, "detail.html", vm)
		return
	}
	s.render(w, http.StatusOK, "layout.html", map[string]any{"Detail": vm})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// arena returns the visitor's live arena, if any.
func (s *Server) arena(ctx context.Context, r *http.Request) (*battle.Arena, string, bool) {
	id := s.sessionID(r)
	if id == "" {
		return nil, "", false
	}
	a, ok, err := s.Store.Get(ctx, id)
	if err != nil {
		log.Printf("session %s: %v", id, err)
		return nil, id, false
	}
	if !ok || a == nil {
		return nil, id, false
	}
	return a, id, true
}

// ensureSession returns the visitor's session id, issuing a cookie if needed.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := s.sessionID(r); id != "" {
		return id
	}
	id := s.Store.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, battle.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, battle.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
