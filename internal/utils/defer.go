package utils

import "github.com/MrSnakeDoc/instr/internal/logger"

// Try runs a deferred cleanup and logs its error.
func Try(f func() error) {
	if err := f(); err != nil {
		logger.Debug("deferred cleanup failed: %v", err)
	}
}
