package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/dashboard"
	"github.com/papertrade/tradedash/internal/gateway"
	"github.com/papertrade/tradedash/internal/notify"
	"github.com/papertrade/tradedash/internal/poller"
	"github.com/papertrade/tradedash/internal/state"
	"github.com/papertrade/tradedash/internal/submit"
	"github.com/papertrade/tradedash/pkg/config"
	"github.com/papertrade/tradedash/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		apiURL     = flag.String("api-url", "", "backend base URL (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	// The TUI owns the terminal, so logs go to the file only.
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	logrus.WithField("api_url", cfg.APIURL).Info("dashboard starting")

	// The whole synchronization core lives on this stack, owned by the
	// dashboard's lifecycle. No ambient singletons.
	client := gateway.NewClient(cfg.APIURL, cfg.RequestTimeout())
	store := state.NewStore()
	notifier := notify.NewNotifier(cfg.NotificationTTL())
	scheduler := poller.NewScheduler(client, store, cfg.PollInterval())
	controller := submit.NewController(client, notifier, scheduler, cfg.SettleDelay())

	model := dashboard.NewModel(store, notifier, controller, scheduler)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard error: %v\n", err)
		os.Exit(1)
	}

	// The model stops the scheduler on quit; this is the backstop for
	// abnormal program exits. Stop is idempotent.
	scheduler.Stop()
	logrus.Info("dashboard stopped")
}
