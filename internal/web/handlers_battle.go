package web

import (
	"log"
	"net/http"
	"strconv"

	"wraithbound/internal/battle"
)

const pathBattle = "/battle"

// /battle: GET renders the arena page, POST starts a new battle.
func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.showBattle(w, r)
	case http.MethodPost:
		s.startBattle(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) showBattle(w http.ResponseWriter, r *http.Request) {
	a, _, ok := s.arena(r.Context(), r)
	if !ok {
		http.Redirect(w, r, "/collection", http.StatusFound)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, http.StatusOK, "layout.html", map[string]any{"Battle": arenaView(a.Snapshot())})
}

// POST /battle
//
// Form: player (required), enemy (optional; random opponent otherwise).
// Replaces any arena the visitor already had.
func (s *Server) startBattle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	player, err := s.Catalog.ByID(r.FormValue("player"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	enemyID := r.FormValue("enemy")
	if enemyID == player.ID {
		http.Error(w, "a wraith cannot fight itself", http.StatusBadRequest)
		return
	}
	enemy, err := s.Resolver.PickOpponent(s.Catalog, player.ID)
	if enemyID != "" {
		enemy, err = s.Catalog.ByID(enemyID)
	}
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	ctx := r.Context()
	id := s.ensureSession(w, r)
	a := battle.NewArena(s.Resolver, player, enemy, s.ArenaOptions...)
	if err := s.Store.Put(ctx, id, a); err != nil {
		log.Printf("session %s: save arena: %v", id, err)
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	a.Start()
	http.Redirect(w, r, pathBattle, http.StatusSeeOther)
}

// GET /battle/state returns the arena fragment. The fragment polls this
// endpoint while the enemy is thinking.
func (s *Server) handleBattleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a, _, ok := s.arena(r.Context(), r)
	if !ok {
		http.Error(w, "no battle in progress", http.StatusNotFound)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, http.StatusOK, "arena.html", arenaView(a.Snapshot()))
}

// POST /battle/attack
//
// Form: ability (0..2). Busy arenas answer 409, invalid actions 400; both
// still carry the current arena fragment.
func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	a, _, ok := s.arena(r.Context(), r)
	if !ok {
		http.Redirect(w, r, "/collection", http.StatusFound)
		return
	}
	ability, err := strconv.Atoi(r.FormValue("ability"))
	if err != nil {
		ability = -1
	}

	status := http.StatusOK
	var msg string
	if _, err := a.Attack(ability); err != nil {
		status = statusFor(err)
		msg = err.Error()
	}
	if !isHTMX(r) && status == http.StatusOK {
		http.Redirect(w, r, pathBattle, http.StatusSeeOther)
		return
	}
	vm := arenaView(a.Snapshot())
	vm.Error = msg
	s.render(w, status, "arena.html", vm)
}

// POST /battle/rematch starts a fresh battle between the same pair.
func (s *Server) handleRematch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	a, id, ok := s.arena(ctx, r)
	if !ok {
		http.Redirect(w, r, "/collection", http.StatusFound)
		return
	}
	if err := s.Store.Put(ctx, id, a.Rematch()); err != nil {
		log.Printf("session %s: save rematch: %v", id, err)
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, pathBattle, http.StatusSeeOther)
}

// POST /battle/leave discards the visitor's arena.
func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id := s.sessionID(r); id != "" {
		if err := s.Store.Delete(r.Context(), id); err != nil {
			log.Printf("session %s: delete: %v", id, err)
		}
	}
	http.Redirect(w, r, "/collection", http.StatusSeeOther)
}
