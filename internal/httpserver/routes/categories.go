package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerCategories, apiHost) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Get("/api/categories", handlers.Categories())
}
