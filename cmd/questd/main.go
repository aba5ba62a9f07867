package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/quest"
	"github.com/sandeepkv93/questd/internal/scheduler"
	"github.com/sandeepkv93/questd/internal/storage"
	"github.com/sandeepkv93/questd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "questd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	kv, err := storage.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer kv.Close()

	policy, err := quest.ParseResetPolicy(cfg.ResetPolicy)
	if err != nil {
		return fmt.Errorf("reading QUESTD_RESET_POLICY: %w", err)
	}

	ctx := context.Background()

	repo := quest.NewRepository(kv, logger)
	if err := repo.Load(ctx); err != nil {
		return fmt.Errorf("loading quests: %w", err)
	}

	tracker := quest.NewCompletionTracker(kv, logger, repo)
	if err := tracker.Load(ctx); err != nil {
		return fmt.Errorf("loading completions: %w", err)
	}

	reset := quest.NewResetEngine(repo, tracker, logger, policy)
	if _, err := reset.CheckDailyReset(ctx); err != nil {
		return fmt.Errorf("running startup reset: %w", err)
	}

	slotStore := quest.NewSlotStore(kv, logger)
	slots, err := slotStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading reminder slots: %w", err)
	}

	sched := scheduler.NewEngine(cfg.SchedulerBuffer)
	sched.Start()
	defer sched.Stop()
	sched.RescheduleAll(slots)

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	services := update.Services{
		Repo:      repo,
		Tracker:   tracker,
		Reset:     reset,
		Slots:     slotStore,
		Scheduler: sched,
	}

	program := tea.NewProgram(update.NewModel(services, slots, cfg, notifier))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	logger.Info("questd shut down cleanly")
	return nil
}

// newLogger writes structured logs to the configured file, or discards
// them when no path is set so log output never corrupts the TUI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
