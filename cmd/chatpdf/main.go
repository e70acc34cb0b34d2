package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/adiwiguna/chatpdf/internal/client"
	"github.com/adiwiguna/chatpdf/internal/config"
	"github.com/adiwiguna/chatpdf/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Client.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := zerolog.New(logFile).With().Timestamp().Logger()

	api := client.New(cfg.Client.ServerURL, cfg.Client.Timeout)
	ctrl := client.NewController(api, cfg.Client.DownloadDir, logger)
	registry := client.NewModelRegistry(api)

	if len(os.Args) > 1 {
		files := make([]client.StagedFile, 0, len(os.Args)-1)
		for _, path := range os.Args[1:] {
			file, err := client.LoadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
				os.Exit(1)
			}
			files = append(files, file)
		}
		if err := ctrl.SelectFiles(files); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	program := tea.NewProgram(tui.NewModel(ctrl, registry), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}
