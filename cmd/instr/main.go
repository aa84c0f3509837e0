package main

import (
	"os"

	cmd "github.com/MrSnakeDoc/instr/internal"
	"github.com/MrSnakeDoc/instr/internal/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.LogError("%v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
