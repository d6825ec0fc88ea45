package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rtmali/rangefe/internal/config"
	"github.com/rtmali/rangefe/internal/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	cfg := config.Load()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("%v", err)
	}

	start, err := os.Getwd()
	if err != nil {
		start = "."
	}
	logger.Info("Starting rangefe in %s", start)

	p := tea.NewProgram(initialModel(cfg, start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Program exited with error: %v", err)
		fmt.Fprintln(os.Stderr, err)
		logger.Close()
		os.Exit(1)
	}
}
