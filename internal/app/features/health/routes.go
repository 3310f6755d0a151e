package health

import "github.com/go-chi/chi/v5"

// Routes mounts the health probe at the subrouter root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	r.Head("/", h.Serve)
	return r
}
