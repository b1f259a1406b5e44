package config

import (
	"fmt"
	"strings"

	"github.com/queuewatch/qw/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but qw only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest qw release")
	}

	if cfg.PollIntervalSeconds < MinPollIntervalSeconds {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("poll_interval_seconds must be at least %d (got %d)", MinPollIntervalSeconds, cfg.PollIntervalSeconds),
			"Polling faster than once a second just hammers your sources.")
	}

	if cfg.MaxDataPoints < MinMaxDataPoints {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("max_data_points must be at least %d (got %d)", MinMaxDataPoints, cfg.MaxDataPoints),
			"A chart needs at least two points to draw a line.")
	}

	for name, src := range cfg.Sources {
		if err := validateSource(name, src); err != nil {
			return err
		}
	}

	return nil
}

// validateSource checks a single source spec.
func validateSource(name string, src Source) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrConfig,
			"Source names cannot be empty",
			"Give every entry under 'sources' a name.")
	}

	switch src.Kind {
	case KindRemote:
		if len(src.SSH) == 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source '%s' has no SSH targets", name),
				"Add at least one entry under 'ssh' (hostname, user@host, or an SSH config alias).")
		}
		for _, target := range src.SSH {
			if strings.TrimSpace(target) == "" {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Source '%s' has an empty SSH target", name),
					"Remove the blank 'ssh' entry or fill it in.")
			}
		}
		if strings.TrimSpace(src.List) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source '%s' has no 'list' command", name),
				"Set 'list' to a command that prints one monitorable name per line.")
		}
		if strings.TrimSpace(src.Read) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source '%s' has no 'read' command", name),
				"Set 'read' to a command that prints the current value; ${NAME} expands to the entry name.")
		}
	case KindSynthetic:
		if src.Count < 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source '%s' has a negative count", name),
				"Use a count of zero or more.")
		}
	case "":
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Source '%s' has no kind", name),
			fmt.Sprintf("Set 'kind' to '%s' or '%s'.", KindRemote, KindSynthetic))
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Source '%s' has unknown kind '%s'", name, src.Kind),
			fmt.Sprintf("Supported kinds are '%s' and '%s'.", KindRemote, KindSynthetic))
	}

	return nil
}
