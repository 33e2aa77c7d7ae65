package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerLinks, apiHost) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Get("/api/links", handlers.ListLinks(d))
	r.With(aiRateLimit(d)).Post("/api/links", handlers.AddLink(d))
	r.Get("/api/links/facets", handlers.LinkFacets(d))
	r.Patch("/api/links/{id}", handlers.UpdateLink(d))
	r.Delete("/api/links/{id}", handlers.DeleteLink(d))
}
