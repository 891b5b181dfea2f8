// Package guide exposes the conversation API: start, send a turn, read the
// transcript, reset.
package guide

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	guideService "github.com/streetwise-app/backend/internal/service/guide"
	"github.com/streetwise-app/backend/pkg/utils"
)

// Handler is the HTTP surface over the chat orchestrator.
type Handler struct {
	guideSvc *guideService.Service
}

// New creates a guide handler.
func New(guideSvc *guideService.Service) *Handler {
	return &Handler{guideSvc: guideSvc}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversations", h.handleCreateConversation)
	r.Post("/conversations/{conversationID}/messages", h.handleSendMessage)
	r.Get("/conversations/{conversationID}/messages", h.handleTranscript)
	r.Delete("/conversations/{conversationID}/messages", h.handleReset)
}

func (h *Handler) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	convo, err := h.guideSvc.StartConversation(r.Context(), payload.PersonaID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, convo)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var payload struct {
		Query       string   `json:"query"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		City        string   `json:"city"`
		RadiusMiles float64  `json:"radiusMiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.guideSvc.RunTurn(r.Context(), conversationID, guideService.TurnInput{
		Query:       payload.Query,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		City:        payload.City,
		RadiusMiles: payload.RadiusMiles,
	})
	if err != nil {
		utils.RespondError(w, turnErrorStatus(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	messages, err := h.guideSvc.Transcript(r.Context(), conversationID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	if err := h.guideSvc.Reset(r.Context(), conversationID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func turnErrorStatus(err error) int {
	switch {
	case errors.Is(err, guideService.ErrQueryRequired):
		return http.StatusBadRequest
	case errors.Is(err, guideService.ErrConversationNotFound):
		return http.StatusNotFound
	default:
		// Upstream pipeline failures surface as a bad gateway with the
		// user-visible message.
		return http.StatusBadGateway
	}
}
