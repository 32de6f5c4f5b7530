package web

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"wraithbound/internal/cardart"
	"wraithbound/internal/sheetgen"
)

const assetCacheControl = "public, max-age=3600"

// handleCard serves generated card art at /cards/{id}.png. Optional query
// w sets the thumbnail width.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	base := path.Base(r.URL.Path)
	if path.Ext(base) != ".png" {
		http.NotFound(w, r)
		return
	}
	wr, err := s.Catalog.ByID(strings.TrimSuffix(base, ".png"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	width := 0
	if q := r.URL.Query().Get("w"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			http.Error(w, "bad width", http.StatusBadRequest)
			return
		}
		width = n
	}
	b, err := cardart.PNG(wr, width)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", assetCacheControl)
	if _, err := w.Write(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleCollectionPDF serves the printable collector sheet.
func (s *Server) handleCollectionPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pdf, err := sheetgen.Generate(s.Catalog, "Wraith Vault")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="wraith-vault.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
