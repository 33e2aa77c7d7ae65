package utils

import (
	"io"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// CloseLogged closes c and logs the outcome under name.
// Use on shutdown paths where a close error must not abort the rest.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("component", name), logger.Error(err))
		return
	}
	log.Infof("✅ %s closed cleanly", name)
}
