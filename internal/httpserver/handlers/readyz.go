package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
)

const readyzPingTimeout = 2 * time.Second

type componentStatus struct {
	OK         bool   `json:"ok"`
	Driver     string `json:"driver,omitempty"`
	Tags       *int   `json:"tags,omitempty"`
	Categories *int   `json:"categories,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Error      string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports 200 when the store answers a ping, 503 otherwise.
// The taxonomy never blocks readiness, built-in dictionaries are always available.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeStatus := checkStore(r.Context(), d)

		components := map[string]componentStatus{
			"store":    storeStatus,
			"taxonomy": taxonomyStatus(d),
		}

		status := http.StatusOK
		if !storeStatus.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(w, status, readyzResponse{Ready: storeStatus.OK, Components: components})
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Driver: d.StoreDriver, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, readyzPingTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Driver: d.StoreDriver, Error: domain.Message(err)}
	}
	return componentStatus{OK: true, Driver: d.StoreDriver}
}

func taxonomyStatus(d deps.Deps) componentStatus {
	if d.Taxonomy == nil {
		return componentStatus{OK: false, Error: "registry not initialized"}
	}

	current := d.Taxonomy.Current()
	tags, categories := len(current.Tags), len(current.Categories)

	lastReload := "never"
	if t := d.Taxonomy.LastReload(); !t.IsZero() {
		lastReload = t.Format("2006-01-02 15:04:05")
	}
	return componentStatus{OK: true, Tags: &tags, Categories: &categories, LastReload: lastReload}
}
