package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/dashboard"
	"github.com/queuewatch/qw/internal/errors"
	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/internal/source"
	"github.com/queuewatch/qw/pkg/sshutil"
)

// loadConfig resolves and validates the config for a command run.
func loadConfig(configPath string) (*config.Config, error) {
	path, err := config.Find(configPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'qw init' to create one, or pass --config")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dashboardCommand loads config, builds the source registry, and runs
// the TUI until the operator quits.
func dashboardCommand(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return errors.New(errors.ErrConfig,
			"No sources configured",
			"Add one with 'qw init' or edit your .qw.yaml.")
	}

	pool := source.NewPool(10 * time.Second)
	defer pool.Close()
	defer sshutil.CloseAgent()

	// The alt screen owns the terminal; anything warned to stderr
	// would tear it up, so route warnings through the debug log.
	sshutil.WarningHandler = func(message string) {
		logger.Default().Info("%s", message)
	}

	registry := source.NewRegistry(cfg, pool)

	model := dashboard.New(cfg, registry)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Close is idempotent; a normal quit already disposed the panels.
	model.Close()

	return err
}
