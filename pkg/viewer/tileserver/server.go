// Package tileserver serves a tile pyramid and its icons over HTTP so the
// viewer can load assets from a remote host.
package tileserver

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zyedidia/generic/mapset"

	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/tiles"
)

// Server answers tile and icon requests from a directory on disk.
type Server struct {
	dir    string // directory that contains the asset root
	root   string
	ext    string
	levels mapset.Set[int]
}

// New creates a server for the pyramid described by cfg, reading files
// below dir.
func New(cfg *config.Config, dir string) *Server {
	levels := mapset.New[int]()
	for _, l := range cfg.ResolutionLevels {
		levels.Put(l)
	}
	return &Server{dir: dir, root: cfg.AssetRoot, ext: cfg.ImageExt, levels: levels}
}

// Routes returns the HTTP handler:
//
//	GET /health
//	GET /tiles/{level}/{col}/{row}
//	GET /icons/{name}
//	GET /{root}/{level}/image-{col}-{row}.{ext}   (the viewer's asset layout)
//	GET /{root}/icons/{file}
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/tiles/{level}/{col}/{row}", s.getTile)
	r.Get("/icons/{name}", s.getIcon)

	r.Route("/"+strings.Trim(s.root, "/"), func(r chi.Router) {
		r.Get("/icons/{name}.{ext}", s.getIcon)
		r.Get("/{level}/image-{col}-{row}.{ext}", s.getTile)
	})
	return r
}

// parseKey reads and validates the tile coordinates of a request.
func (s *Server) parseKey(r *http.Request) (tiles.Key, bool) {
	level, err1 := strconv.Atoi(chi.URLParam(r, "level"))
	col, err2 := strconv.Atoi(chi.URLParam(r, "col"))
	row, err3 := strconv.Atoi(chi.URLParam(r, "row"))
	if err1 != nil || err2 != nil || err3 != nil {
		return tiles.Key{}, false
	}
	k := tiles.Key{Level: level, Col: col, Row: row}
	return k, s.levels.Has(level) && k.Valid()
}

// getTile handles tile requests; out-of-grid coordinates never touch disk.
func (s *Server) getTile(w http.ResponseWriter, r *http.Request) {
	if ext := chi.URLParam(r, "ext"); ext != "" && ext != s.ext {
		respondError(w, http.StatusNotFound, "unknown image type")
		return
	}
	k, ok := s.parseKey(r)
	if !ok {
		respondError(w, http.StatusNotFound, tiles.ErrOutOfGrid.Error())
		return
	}
	s.serveAsset(w, r, tiles.Path(s.root, k, s.ext))
}

// getIcon handles icon requests by name.
func (s *Server) getIcon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if ext := chi.URLParam(r, "ext"); ext != "" && ext != s.ext {
		respondError(w, http.StatusNotFound, "unknown image type")
		return
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		respondError(w, http.StatusBadRequest, "invalid icon name")
		return
	}
	s.serveAsset(w, r, tiles.IconPath(s.root, name, s.ext))
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, assetPath string) {
	full := filepath.Join(s.dir, filepath.FromSlash(path.Clean(assetPath)))
	if _, err := os.Stat(full); err != nil {
		respondError(w, http.StatusNotFound, "asset not found")
		return
	}
	http.ServeFile(w, r, full)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
