package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/passkey/login", h.passkeyLoginBegin)
		r.Post("/api/auth/passkey/login/verify", h.passkeyLoginFinish)
	})

	// routes behind the bearer token guard
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Post("/api/auth/passkey/register", h.passkeyRegisterBegin)
		r.Post("/api/auth/passkey/register/verify", h.passkeyRegisterFinish)

		r.Route("/api/items", func(r chi.Router) {
			r.Post("/", h.createItem)
			r.Get("/", h.listItems)
			r.Get("/{item_id}", h.getItem)
			r.Put("/{item_id}", h.updateItem)
			r.Delete("/{item_id}", h.deleteItem)
		})
	})

	return router
}
