package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/utils"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// ReloadTaxonomy asks the taxonomy reloader for an immediate reload.
func ReloadTaxonomy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			respond.Error(w, http.StatusConflict, "no taxonomy file configured")
			return
		}

		ip := utils.ClientIP(r, d.TrustProxy)
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual taxonomy reload triggered via endpoint",
				logger.String("remote_ip", ip))
			respond.JSON(w, http.StatusAccepted, reloadResponse{Status: "reload triggered"})
		default:
			d.Logger.Warn("taxonomy reload already pending",
				logger.String("remote_ip", ip))
			respond.Error(w, http.StatusTooManyRequests, "reload already in progress, please wait")
		}
	}
}
