package designs

import (
	"net/http"

	"github.com/TeeCanvas/TC-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, decoder middleware.TokenDecoder) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(decoder))
		r.Post("/generate-design", h.GenerateDesignHandler)
		r.Get("/designs", h.ListDesignsHandler)
	})

	return r
}
