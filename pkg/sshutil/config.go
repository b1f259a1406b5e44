package sshutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostEntry is a concrete host alias parsed from ~/.ssh/config.
// The init wizard offers these as candidates for remote sources.
type HostEntry struct {
	Alias        string
	Hostname     string
	User         string
	Port         string
	IdentityFile string
}

// Description renders a short human-readable summary for pickers.
func (h HostEntry) Description() string {
	parts := []string{}

	if h.Hostname != "" && h.Hostname != h.Alias {
		parts = append(parts, h.Hostname)
	}
	if h.User != "" {
		parts = append(parts, "user: "+h.User)
	}
	if h.Port != "" && h.Port != "22" {
		parts = append(parts, "port: "+h.Port)
	}

	if len(parts) == 0 {
		return h.Alias
	}
	return strings.Join(parts, ", ")
}

// ParseSSHConfig parses ~/.ssh/config and returns all concrete host
// aliases, skipping wildcard patterns.
func ParseSSHConfig() ([]HostEntry, error) {
	return ParseSSHConfigFile(filepath.Join(homeDir(), ".ssh", "config"))
}

// ParseSSHConfigFile parses the given SSH config file.
func ParseSSHConfigFile(configPath string) ([]HostEntry, error) {
	content, _, err := preprocessSSHConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no SSH config is fine
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var hosts []HostEntry
	seen := make(map[string]bool)

	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()

			if strings.Contains(alias, "*") || strings.Contains(alias, "?") {
				continue
			}
			if seen[alias] {
				continue
			}
			seen[alias] = true

			entry := HostEntry{Alias: alias}

			if hostname, _ := cfg.Get(alias, "HostName"); hostname != "" {
				entry.Hostname = hostname
			}
			if user, _ := cfg.Get(alias, "User"); user != "" {
				entry.User = user
			}
			if port, _ := cfg.Get(alias, "Port"); port != "" {
				entry.Port = port
			}
			if identity, _ := cfg.Get(alias, "IdentityFile"); identity != "" {
				entry.IdentityFile = expandPath(identity)
			}

			hosts = append(hosts, entry)
		}
	}

	sort.Slice(hosts, func(i, j int) bool {
		return hosts[i].Alias < hosts[j].Alias
	})

	return hosts, nil
}
