package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default"`
}

func Categories() http.HandlerFunc {
	body := categoriesResponse{
		Categories: domain.CategoryNames(),
		Default:    string(domain.DefaultCategory),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, body)
	}
}
