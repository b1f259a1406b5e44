package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/errors"
	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/internal/util"
)

// namePlaceholder is expanded to the monitored name inside the
// configured read/exists commands.
const namePlaceholder = "${NAME}"

// remoteTarget is the opaque config carried inside a remote Descriptor.
// It is everything Open needs to rebuild a monitor without re-running
// discovery.
type remoteTarget struct {
	Hosts  []string `yaml:"hosts"`
	Queue  string   `yaml:"queue"`
	Read   string   `yaml:"read"`
	Exists string   `yaml:"exists,omitempty"`
}

// RemoteCatalog discovers monitorable names by running the configured
// list command over SSH. The hosts are a fallback chain: discovery and
// reads use the first host that answers.
type RemoteCatalog struct {
	name string
	src  config.Source
	pool *Pool
	log  logger.Logger
}

// NewRemoteCatalog builds a catalog for one remote source entry.
// Panics if the source has no hosts or no list command; config
// validation rejects both before we get here, so hitting this is a
// defect, not a runtime condition.
func NewRemoteCatalog(name string, src config.Source, pool *Pool) *RemoteCatalog {
	if len(src.SSH) == 0 || src.List == "" {
		panic(fmt.Sprintf("remote catalog %q: missing ssh hosts or list command", name))
	}
	if pool == nil {
		panic(fmt.Sprintf("remote catalog %q: nil pool", name))
	}
	return &RemoteCatalog{
		name: name,
		src:  src,
		pool: pool,
		log:  logger.Default(),
	}
}

// Available connects to the first reachable host, runs the list
// command, and returns one descriptor per non-empty output line.
func (c *RemoteCatalog) Available(ctx context.Context) ([]Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, host, err := c.runOnAnyHost(c.src.List)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDiscovery,
			fmt.Sprintf("Couldn't list sources for '%s'", c.name),
			"Check the hosts are reachable and the list command works: ssh <host>")
	}
	c.log.Debug("discovery: %s listed via %s", c.name, host)

	descriptors := []Descriptor{}
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		queue := strings.TrimSpace(line)
		if queue == "" || seen[queue] {
			continue
		}
		seen[queue] = true

		target := remoteTarget{Hosts: c.src.SSH, Queue: queue, Read: c.src.Read, Exists: c.src.Exists}
		encoded, err := yaml.Marshal(target)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrDiscovery,
				fmt.Sprintf("Couldn't encode source config for '%s'", c.name), "")
		}
		descriptors = append(descriptors, Descriptor{
			Name:   c.name + "/" + queue,
			Kind:   KindRemote,
			Config: string(encoded),
		})
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})
	return descriptors, nil
}

// Open rebuilds a monitor from a descriptor this catalog produced.
func (c *RemoteCatalog) Open(desc Descriptor) (Monitor, error) {
	var target remoteTarget
	if err := yaml.Unmarshal([]byte(desc.Config), &target); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			fmt.Sprintf("Bad source config for '%s'", desc.Name),
			"Refresh the source list and try again.")
	}
	if target.Queue == "" || target.Read == "" || len(target.Hosts) == 0 {
		return nil, errors.New(errors.ErrSource,
			fmt.Sprintf("Incomplete source config for '%s'", desc.Name),
			"Refresh the source list and try again.")
	}
	return newRemoteMonitor(c.pool, target), nil
}

// runOnAnyHost tries the command on each host in order and returns the
// first success along with the host that produced it.
func (c *RemoteCatalog) runOnAnyHost(cmd string) (string, string, error) {
	var lastErr error
	for _, host := range c.src.SSH {
		client, err := c.pool.Get(host)
		if err != nil {
			lastErr = err
			continue
		}
		output, err := client.Output(cmd)
		if err != nil {
			lastErr = err
			continue
		}
		return output, host, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no hosts configured")
	}
	return "", "", lastErr
}

// RemoteMonitor reads one queue's depth by running the configured read
// command over a pooled SSH connection. It does not own the connection;
// Close only marks the monitor unusable.
type RemoteMonitor struct {
	pool   *Pool
	hosts  []string
	queue  string
	read   string
	exists string

	mu     sync.Mutex
	closed bool
}

func newRemoteMonitor(pool *Pool, target remoteTarget) *RemoteMonitor {
	return &RemoteMonitor{
		pool:   pool,
		hosts:  target.Hosts,
		queue:  target.Queue,
		read:   expandName(target.Read, target.Queue),
		exists: expandName(target.Exists, target.Queue),
	}
}

// TryBegin probes the configured exists command. With no exists command
// it only checks that some host answers. Fails closed on any error.
func (m *RemoteMonitor) TryBegin() bool {
	if m.isClosed() {
		return false
	}
	for _, host := range m.hosts {
		client, err := m.pool.Get(host)
		if err != nil {
			continue
		}
		if m.exists == "" {
			return true
		}
		_, _, exitCode, err := client.Exec(m.exists)
		if err != nil {
			continue
		}
		return exitCode == 0
	}
	return false
}

// ReadValue runs the read command and parses its output as a number.
func (m *RemoteMonitor) ReadValue() (float64, error) {
	if m.isClosed() {
		return 0, errors.New(errors.ErrSource,
			fmt.Sprintf("Monitor for '%s' is closed", m.queue), "")
	}

	var lastErr error
	for _, host := range m.hosts {
		client, err := m.pool.Get(host)
		if err != nil {
			lastErr = err
			continue
		}
		output, err := client.Output(m.read)
		if err != nil {
			lastErr = err
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
		if err != nil {
			return 0, errors.WrapWithCode(err, errors.ErrSource,
				fmt.Sprintf("Source '%s' printed something that isn't a number: %q", m.queue, output),
				"The read command must print a single number on stdout.")
		}
		return value, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no hosts configured")
	}
	return 0, errors.WrapWithCode(lastErr, errors.ErrSource,
		fmt.Sprintf("Couldn't read '%s' from any host", m.queue), "")
}

// Close marks the monitor closed. The pooled connection stays open for
// other monitors on the same host. Idempotent.
func (m *RemoteMonitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *RemoteMonitor) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// expandName substitutes the monitored name into a command template.
// Names come from remote discovery output, so they are quoted before
// hitting a shell.
func expandName(cmd, name string) string {
	return strings.ReplaceAll(cmd, namePlaceholder, util.ShellQuote(name))
}
