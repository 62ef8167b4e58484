package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/status", h.getStatus)
		r.Post("/api/admin/login", h.login)
	})

	// operator actions
	router.Group(func(r chi.Router) {
		r.Use(h.withAuth)
		r.Post("/api/admin/save", h.save)
		r.Post("/api/admin/kick/{username}", h.kick)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
