package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerTaxonomy, opsOnly) }

func registerTaxonomy(r chi.Router, d deps.Deps) {
	r.Post("/api/taxonomy/reload", handlers.ReloadTaxonomy(d))
}
