package auth

import (
	"net/http"

	"github.com/TeeCanvas/TC-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(tokens *TokenService) http.Handler {
	r := chi.NewRouter()
	h := &Handler{Tokens: tokens}

	r.Post("/signup", h.SignupHandler)
	r.Post("/login", h.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokens))
		r.Get("/me", h.MeHandler)
	})

	return r
}
