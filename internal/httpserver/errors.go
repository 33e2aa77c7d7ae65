package httpserver

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
)

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, "not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
}
