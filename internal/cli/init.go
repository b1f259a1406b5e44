package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/errors"
	"github.com/queuewatch/qw/internal/util"
	"github.com/queuewatch/qw/pkg/sshutil"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Name           string // source name
	Kind           string // "remote" or "synthetic"
	SSH            string // comma-separated SSH hosts (remote)
	List           string // discovery command (remote)
	Read           string // poll command (remote)
	Exists         string // optional reachability probe (remote)
	Count          int    // series count (synthetic)
	Overwrite      bool   // overwrite existing config without asking
	NonInteractive bool   // skip prompts, require flags
}

// Init creates a new .qw.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Piped stdin can't answer prompts, treat it as non-interactive.
	if !opts.NonInteractive && !term.IsTerminal(int(os.Stdin.Fd())) {
		opts.NonInteractive = true
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptForSource(&opts); err != nil {
			return err
		}
	}

	src, err := buildSource(opts)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Sources[opts.Name] = src

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode the config", "")
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't write %s", configPath),
			"Check directory permissions.")
	}

	fmt.Printf("Created %s with source '%s'.\n", configPath, opts.Name)
	if src.Kind == config.KindRemote {
		fmt.Printf("Hosts: %s\n", util.JoinOrDefault(src.SSH, "(none)"))
	}
	fmt.Println("Run 'qw' to open the dashboard.")
	return nil
}

// promptForSource fills opts from interactive prompts.
func promptForSource(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source name").
				Description("A short name for this group of metrics").
				Placeholder("build-queues").
				Value(&opts.Name).
				Validate(requireNonBlank("source name")),
			huh.NewSelect[string]().
				Title("Source kind").
				Options(
					huh.NewOption("remote (read over SSH)", config.KindRemote),
					huh.NewOption("synthetic (demo data)", config.KindSynthetic),
				).
				Value(&opts.Kind),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use flags with --non-interactive")
	}

	if opts.Kind == config.KindSynthetic {
		count := "3"
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Number of demo series").
					Value(&count).
					Validate(func(s string) error {
						n, err := strconv.Atoi(strings.TrimSpace(s))
						if err != nil || n < 1 {
							return fmt.Errorf("enter a positive number")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input", "")
		}
		opts.Count, _ = strconv.Atoi(strings.TrimSpace(count))
		return nil
	}

	return promptForRemote(opts)
}

// promptForRemote collects SSH and command settings, offering hosts
// from ~/.ssh/config when any are defined there.
func promptForRemote(opts *InitOptions) error {
	const manualEntry = "(type a host manually)"

	var hostOptions []huh.Option[string]
	if entries, err := sshutil.ParseSSHConfig(); err == nil {
		for _, entry := range entries {
			label := entry.Alias
			if desc := entry.Description(); desc != entry.Alias {
				label = entry.Alias + "  (" + desc + ")"
			}
			hostOptions = append(hostOptions, huh.NewOption(label, entry.Alias))
		}
	}

	if len(hostOptions) > 0 {
		hostOptions = append(hostOptions, huh.NewOption(manualEntry, manualEntry))
		var picked string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("SSH host").
					Description("From your ~/.ssh/config").
					Options(hostOptions...).
					Value(&picked),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input", "")
		}
		if picked != manualEntry {
			opts.SSH = picked
		}
	}

	groups := []*huh.Group{}
	if opts.SSH == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("SSH host").
				Description("hostname, user@host, or SSH config alias").
				Placeholder("user@192.168.1.100").
				Value(&opts.SSH).
				Validate(requireNonBlank("SSH host")),
		))
	}
	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().
				Title("List command").
				Description("Prints one monitorable name per line").
				Placeholder("rabbitmqctl list_queues -q name").
				Value(&opts.List).
				Validate(requireNonBlank("list command")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Read command").
				Description("Prints the current value; ${NAME} expands to the source name").
				Placeholder("rabbitmqctl list_queues -q messages --queue ${NAME}").
				Value(&opts.Read).
				Validate(requireNonBlank("read command")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Exists command (optional)").
				Description("Exit 0 when the source exists; leave empty to skip").
				Value(&opts.Exists),
		),
	)

	if err := huh.NewForm(groups...).Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input", "")
	}
	return nil
}

// buildSource validates the collected options into a config source.
func buildSource(opts InitOptions) (config.Source, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return config.Source{}, errors.New(errors.ErrConfig,
			"Source name is required",
			"Provide --name or run interactively")
	}

	switch opts.Kind {
	case config.KindSynthetic:
		count := opts.Count
		if count < 1 {
			count = 3
		}
		return config.Source{Kind: config.KindSynthetic, Count: count}, nil

	case config.KindRemote:
		hosts := splitHosts(opts.SSH)
		if len(hosts) == 0 {
			return config.Source{}, errors.New(errors.ErrConfig,
				"SSH host is required for a remote source",
				"Provide --ssh or run interactively")
		}
		if strings.TrimSpace(opts.List) == "" || strings.TrimSpace(opts.Read) == "" {
			return config.Source{}, errors.New(errors.ErrConfig,
				"Remote sources need both a list and a read command",
				"Provide --list and --read or run interactively")
		}
		return config.Source{
			Kind:   config.KindRemote,
			SSH:    hosts,
			List:   strings.TrimSpace(opts.List),
			Read:   strings.TrimSpace(opts.Read),
			Exists: strings.TrimSpace(opts.Exists),
		}, nil

	default:
		return config.Source{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown source kind '%s'", opts.Kind),
			"Use 'remote' or 'synthetic'")
	}
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func requireNonBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
