package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults applied when the config file omits a field.
const (
	DefaultPollIntervalSeconds = 10
	DefaultMaxDataPoints       = 200

	// MinPollIntervalSeconds is the smallest practical polling granularity.
	MinPollIntervalSeconds = 1
	// MinMaxDataPoints is the smallest history window that still renders a line.
	MinMaxDataPoints = 2
)

// Source kinds understood by the dashboard.
const (
	KindRemote    = "remote"
	KindSynthetic = "synthetic"
)

// Config represents the complete .qw.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// PollIntervalSeconds is how often each enabled panel reads its source.
	PollIntervalSeconds int `yaml:"poll_interval_seconds" mapstructure:"poll_interval_seconds"`

	// MaxDataPoints bounds the in-memory sample history per panel.
	MaxDataPoints int `yaml:"max_data_points" mapstructure:"max_data_points"`

	// ShowDebugErrors controls whether discovery and operational failures
	// open a detailed error dialog. Poll failures are always silent.
	ShowDebugErrors bool `yaml:"show_debug_errors" mapstructure:"show_debug_errors"`

	// Sources maps a catalog name to the backend that discovers and reads it.
	Sources map[string]Source `yaml:"sources" mapstructure:"sources"`
}

// Source defines one catalog backend: where monitorable names come from and
// how to read a scalar value for each of them.
type Source struct {
	// Kind selects the backend: "remote" (SSH) or "synthetic" (random walk).
	Kind string `yaml:"kind" mapstructure:"kind"`

	// SSH connection strings, tried in order until one succeeds.
	// Can be: hostname, user@hostname, or an SSH config alias. Remote only.
	SSH []string `yaml:"ssh" mapstructure:"ssh"`

	// List is the discovery command. It must print one monitorable name per
	// line on stdout. Remote only.
	List string `yaml:"list" mapstructure:"list"`

	// Read is the poll command. ${NAME} expands to the monitored name; the
	// command must print a single number on stdout. Remote only.
	Read string `yaml:"read" mapstructure:"read"`

	// Exists is an optional reachability probe run before the first read.
	// ${NAME} expands to the monitored name; exit status 0 means present.
	Exists string `yaml:"exists" mapstructure:"exists"`

	// Count is the number of generated series for a synthetic source.
	Count int `yaml:"count" mapstructure:"count"`

	// Seed fixes the synthetic random walk for reproducible demos (0 = random).
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

// DefaultConfig returns a config with defaults applied and no sources.
func DefaultConfig() *Config {
	return &Config{
		Version:             CurrentConfigVersion,
		PollIntervalSeconds: DefaultPollIntervalSeconds,
		MaxDataPoints:       DefaultMaxDataPoints,
		Sources:             make(map[string]Source),
	}
}

// IsRemote reports whether the source reads over SSH.
func (s Source) IsRemote() bool {
	return s.Kind == KindRemote
}
