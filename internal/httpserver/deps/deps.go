package deps

import (
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/chat"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	StoreDriver  string   // name of the configured store driver, reported by /readyz
	AllowedHosts []string // Host headers allowed to access the API (empty = any)
	AllowedCIDRS []string // IPs allowed to access ops endpoints (empty = any)
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	Links    *links.Service
	Chat     *chat.Service
	Store    store.Repository   // readiness checks only, use cases go through Links
	Taxonomy *taxonomy.Registry // active keyword dictionaries
	Metrics  *metrics.Metrics   // nil disables /metrics

	ReloadTrigger chan struct{} // manual taxonomy reload, nil when no taxonomy file is configured

	CORSOrigins         []string
	RateLimitBurst      int // AI routes
	RateLimitRefillPerM int
}
