package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	guideHandler "github.com/streetwise-app/backend/internal/handler/guide"
	personaHandler "github.com/streetwise-app/backend/internal/handler/persona"
	middlewarePkg "github.com/streetwise-app/backend/internal/middleware"
	personaModel "github.com/streetwise-app/backend/internal/model/persona"
	guideService "github.com/streetwise-app/backend/internal/service/guide"
	"github.com/streetwise-app/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, guideSvc *guideService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		guideHandler.New(guideSvc).RegisterRoutes(api)
	})

	return r
}
