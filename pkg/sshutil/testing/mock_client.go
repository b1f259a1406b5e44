// Package testing provides a scriptable in-memory SSHClient for
// exercising remote sources without a live connection.
package testing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/queuewatch/qw/pkg/sshutil"
)

// CommandResponse is a canned response for a command pattern.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// MockClient simulates an SSH connection. Commands are matched first
// by exact string, then by regex pattern, in registration order for
// exact matches and map order for patterns.
type MockClient struct {
	mu       sync.Mutex
	host     string
	address  string
	closed   bool
	commands map[string]CommandResponse
	calls    []string
}

// NewMockClient creates a mock client with no canned responses.
// Unmatched commands fail with exit code 127.
func NewMockClient(host string) *MockClient {
	return &MockClient{
		host:     host,
		address:  host + ":22",
		commands: make(map[string]CommandResponse),
	}
}

// SetCommandResponse registers a canned response. The pattern is tried
// as an exact match first, then as a regex.
func (m *MockClient) SetCommandResponse(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[pattern] = resp
}

// Calls returns every command executed so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Exec looks up a canned response for the command.
func (m *MockClient) Exec(cmd string) (stdout, stderr []byte, exitCode int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, -1, errors.New("connection closed")
	}
	m.calls = append(m.calls, cmd)

	if resp, ok := m.commands[cmd]; ok {
		return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
	}
	for pattern, resp := range m.commands {
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
		}
	}

	return nil, []byte(fmt.Sprintf("%s: command not found", cmd)), 127, nil
}

// Output mirrors sshutil.Client.Output against the canned responses.
func (m *MockClient) Output(cmd string) (string, error) {
	stdout, stderr, exitCode, err := m.Exec(cmd)
	if err != nil {
		return "", err
	}
	if exitCode != 0 {
		detail := strings.TrimSpace(string(stderr))
		if detail == "" {
			detail = fmt.Sprintf("exit code %d", exitCode)
		}
		return "", fmt.Errorf("command failed on %s: %s", m.host, detail)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// Close marks the connection as closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// GetHost returns the host name.
func (m *MockClient) GetHost() string {
	return m.host
}

// GetAddress returns the host:port address.
func (m *MockClient) GetAddress() string {
	return m.address
}

// NewSession succeeds while the connection is open.
func (m *MockClient) NewSession() (sshutil.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errors.New("connection closed")
	}
	return nopSession{}, nil
}

type nopSession struct{}

func (nopSession) Close() error { return nil }

var _ sshutil.SSHClient = (*MockClient)(nil)
