package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"flowdeck/internal/config"
	"flowdeck/internal/database"
	"flowdeck/internal/logging"
	"flowdeck/internal/workflow"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flowdeck:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	store, cleanup, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting",
		zap.Bool("dev_mode", cfg.Env.DevMode),
		zap.Bool("team", cfg.Env.Team),
	)

	p := tea.NewProgram(newModel(cfg, logger, store), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openStore picks the workflow source: an explicit YAML file wins,
// otherwise the sqlite database (created and seeded on first run).
func openStore(cfg config.Config, logger *zap.Logger) (workflow.Store, func(), error) {
	if cfg.Workflow.File != "" {
		store, err := workflow.LoadFile(cfg.Workflow.File)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("workflow loaded from file", zap.String("path", cfg.Workflow.File))
		return store, func() {}, nil
	}

	path := cfg.Workflow.DatabasePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	workflowID, err := database.Seed(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("seed database: %w", err)
	}
	logger.Info("workflow loaded from database",
		zap.String("path", path),
		zap.String("workflow_id", workflowID),
	)
	return database.NewStore(db, workflowID), func() { _ = db.Close() }, nil
}
