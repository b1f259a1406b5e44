package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/queuewatch/qw/internal/config"
)

func TestSplitHosts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single host",
			input: "build-box",
			want:  []string{"build-box"},
		},
		{
			name:  "comma separated",
			input: "primary,backup",
			want:  []string{"primary", "backup"},
		},
		{
			name:  "whitespace trimmed",
			input: " primary , backup ",
			want:  []string{"primary", "backup"},
		},
		{
			name:  "empty segments dropped",
			input: "primary,,backup,",
			want:  []string{"primary", "backup"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitHosts(tt.input))
		})
	}
}

func TestBuildSource(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		src, err := buildSource(InitOptions{
			Name: "queues",
			Kind: config.KindRemote,
			SSH:  "primary,backup",
			List: "queuectl list",
			Read: "queuectl depth ${NAME}",
		})
		require.NoError(t, err)
		assert.Equal(t, config.KindRemote, src.Kind)
		assert.Equal(t, []string{"primary", "backup"}, src.SSH)
		assert.Equal(t, "queuectl list", src.List)
		assert.Equal(t, "queuectl depth ${NAME}", src.Read)
	})

	t.Run("synthetic", func(t *testing.T) {
		src, err := buildSource(InitOptions{
			Name:  "demo",
			Kind:  config.KindSynthetic,
			Count: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, config.KindSynthetic, src.Kind)
		assert.Equal(t, 5, src.Count)
	})

	t.Run("synthetic count defaults", func(t *testing.T) {
		src, err := buildSource(InitOptions{Name: "demo", Kind: config.KindSynthetic})
		require.NoError(t, err)
		assert.Equal(t, 3, src.Count)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := buildSource(InitOptions{Kind: config.KindSynthetic})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("remote without hosts", func(t *testing.T) {
		_, err := buildSource(InitOptions{
			Name: "queues",
			Kind: config.KindRemote,
			List: "queuectl list",
			Read: "queuectl depth ${NAME}",
		})
		require.Error(t, err)
	})

	t.Run("remote without commands", func(t *testing.T) {
		_, err := buildSource(InitOptions{
			Name: "queues",
			Kind: config.KindRemote,
			SSH:  "primary",
		})
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := buildSource(InitOptions{Name: "x", Kind: "postgres"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(origDir)

	err = Init(InitOptions{
		Name:           "demo",
		Kind:           config.KindSynthetic,
		Count:          4,
		NonInteractive: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultPollIntervalSeconds, cfg.PollIntervalSeconds)
	assert.Equal(t, config.DefaultMaxDataPoints, cfg.MaxDataPoints)
	require.Contains(t, cfg.Sources, "demo")
	assert.Equal(t, config.KindSynthetic, cfg.Sources["demo"].Kind)
	assert.Equal(t, 4, cfg.Sources["demo"].Count)
}

func TestInitRefusesOverwriteNonInteractive(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(origDir)

	opts := InitOptions{
		Name:           "demo",
		Kind:           config.KindSynthetic,
		NonInteractive: true,
	}
	require.NoError(t, Init(opts))

	err = Init(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	opts.Overwrite = true
	require.NoError(t, Init(opts))
}
