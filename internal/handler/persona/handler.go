// Package persona exposes the persona catalog over HTTP.
package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/pkg/colors"
	"github.com/streetwise-app/backend/pkg/utils"
)

// theme is the derived gradient palette for a persona card: the configured
// pair plus tinted/shaded variants the client renders without computing.
type theme struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Soft    string `json:"soft"`
	Deep    string `json:"deep"`
}

func themeFor(p persona.Persona) theme {
	return theme{
		Primary: p.Colors.Primary,
		Accent:  p.Colors.Accent,
		Soft:    colors.Mix(p.Colors.Primary, "#ffffff", 0.7),
		Deep:    colors.Mix(p.Colors.Primary, "#000000", 0.25),
	}
}

// Handler serves the persona catalog.
type Handler struct {
	personas persona.Store
}

// New creates a persona handler.
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes mounts the persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
	r.Get("/personas/{personaID}", h.handleGetPersona)
	r.Get("/personas/{personaID}/theme", h.handleGetTheme)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}

func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "personaID")
	p, ok := h.personas.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "personaID")
	p, ok := h.personas.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "persona not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, themeFor(p))
}
