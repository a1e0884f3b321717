package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"bizchat/internal/config"
	"bizchat/internal/logging"
	"bizchat/internal/tui"
	"bizchat/internal/widget"
)

func main() {
	cfg := config.LoadWidget()

	if _, err := logging.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Log file unavailable: %v\n", err)
	}
	slog.Info("Starting bizchat widget", "relay_url", cfg.RelayURL, "business", cfg.BusinessID)

	client := widget.NewRelayClient(cfg.RelayURL, time.Duration(cfg.RelayTimeoutSeconds)*time.Second)
	session := widget.NewSession()
	slog.Info("✓ Session created", "session_id", session.ID)

	m := tui.New(session, client, cfg.BotName, widget.Options{
		BusinessID: cfg.BusinessID,
		Phone:      cfg.ClinicPhone,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		slog.Error("Widget exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
