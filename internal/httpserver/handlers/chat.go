package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a question using every saved link as context.
// AI failures still answer 200 with an "Error: ..." assistant message.
func Chat(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respond.Err(w, err)
			return
		}
		question := strings.TrimSpace(req.Message)
		if question == "" {
			respond.Err(w, fmt.Errorf("%w: please enter a message", domain.ErrInvalidInput))
			return
		}

		saved, err := d.Links.List(r.Context(), links.Filter{})
		if err != nil {
			respond.Err(w, err)
			return
		}

		reply := d.Chat.Ask(r.Context(), question, saved)
		d.Logger.Debug("chat answered",
			logger.Int("links", len(saved)),
			logger.Int("sources", len(reply.Sources)))
		respond.JSON(w, http.StatusOK, reply)
	}
}
