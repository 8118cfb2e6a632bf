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
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/api/version/", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.withAuthRateLimit)
			r.Post("/api/user/register", h.register)
			r.Post("/api/user/login", h.login)
		})
	})

	// routes for authenticated users
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Get("/api/notes", h.listNotes)
			r.Post("/api/notes", h.addNote)
			r.Get("/api/notes/{id}", h.getNote)
			r.Put("/api/notes/{id}", h.updateNote)
			r.Delete("/api/notes/{id}", h.deleteNote)
			r.Get("/api/storage", h.storageUsage)
		})

		// attachments are streamed as is
		r.Get("/api/notes/{id}/file", h.downloadFile)

		// administrator only
		r.Group(func(r chi.Router) {
			r.Use(h.adminOnly)
			r.Use(withGZip)
			r.Get("/api/admin/users", h.listUsers)
			r.Put("/api/admin/users/{username}/password", h.setUserPassword)
			r.Delete("/api/admin/users/{username}", h.deleteUser)
		})
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
