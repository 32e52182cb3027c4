// Package server exposes a flattened song over a read-only HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/roach88/songtab/internal/score"
)

type handler struct {
	song   *score.Song
	logger *slog.Logger
}

// New returns the API handler for song. All routes are GET only:
//
//	/song              summary
//	/notes             notes table rows
//	/harmony           harmony table rows
//	/sections          section names in document order
//	/sections/{name}   grouping for one section name; the name may contain "/"
func New(song *score.Song, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{song: song, logger: logger}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/song", h.handleSong).Methods(http.MethodGet)
	router.HandleFunc("/notes", h.handleNotes).Methods(http.MethodGet)
	router.HandleFunc("/harmony", h.handleHarmony).Methods(http.MethodGet)
	router.HandleFunc("/sections", h.handleSections).Methods(http.MethodGet)
	router.HandleFunc("/sections/{name:.+}", h.handleSection).Methods(http.MethodGet)

	return cors.Default().Handler(router)
}

func (h *handler) handleSong(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.song.Summary())
}

func (h *handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.song.NotesTable())
}

func (h *handler) handleHarmony(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.song.HarmonyTable())
}

func (h *handler) handleSections(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.song.SectionNames())
}

func (h *handler) handleSection(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	g, ok := h.song.Section(name)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown section: " + name})
		return
	}
	h.writeJSON(w, http.StatusOK, g)
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}
