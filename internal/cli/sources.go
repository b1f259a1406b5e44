package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/queuewatch/qw/internal/errors"
	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/internal/source"
	"github.com/queuewatch/qw/internal/util"
	"github.com/queuewatch/qw/pkg/sshutil"
)

var (
	sourceNameStyle = lipgloss.NewStyle().Bold(true)
	sourceKindStyle = lipgloss.NewStyle().Faint(true)
)

// plainOutput reports whether stdout can't render ANSI styling.
func plainOutput() bool {
	return termenv.NewOutput(os.Stdout).Profile == termenv.Ascii
}

func renderMaybe(style lipgloss.Style, s string) string {
	if plainOutput() {
		return s
	}
	return style.Render(s)
}

// sourcesCommand runs one discovery pass and prints every descriptor
// the configured catalogs can see.
func sourcesCommand(configPath string, timeoutSeconds int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		return errors.New(errors.ErrConfig,
			"No sources configured",
			"Run 'qw init' to create a config")
	}

	pool := source.NewPool(10 * time.Second)
	defer pool.Close()
	defer sshutil.CloseAgent()
	sshutil.WarningHandler = func(message string) {
		logger.Default().Info("%s", message)
	}

	registry := source.NewRegistry(cfg, pool)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	descriptors, err := registry.Available(ctx)
	if err != nil {
		return err
	}
	if len(descriptors) == 0 {
		fmt.Println("No sources found.")
		return nil
	}

	for _, desc := range descriptors {
		fmt.Printf("%s  %s\n",
			renderMaybe(sourceNameStyle, desc.Name),
			renderMaybe(sourceKindStyle, desc.Kind))
	}
	fmt.Printf("\n%d %s across %d %s\n",
		len(descriptors), util.Pluralize(len(descriptors), "source", "sources"),
		registry.Size(), util.Pluralize(registry.Size(), "catalog", "catalogs"))
	return nil
}
