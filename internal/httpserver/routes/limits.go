package routes

import (
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
)

// aiRateLimit builds a fresh limiter for a route that calls the AI service.
// Each route keeps its own buckets.
func aiRateLimit(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRefillPerM,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
		Logger:            d.Logger,
	})
}

func apiHost(d deps.Deps) Middleware {
	return mw.EnforceHost(d.AllowedHosts, d.Logger)
}

func opsOnly(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
