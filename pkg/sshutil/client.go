package sshutil

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/kevinburke/ssh_config"
	"github.com/queuewatch/qw/internal/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Client wraps an SSH connection with the metadata qw needs to report
// which source host it belongs to.
type Client struct {
	*ssh.Client
	Host    string // original host/alias passed to Dial
	Address string // resolved host:port
}

// matchWarningOnce keeps the Match-directive warning from repeating
// once per poll cycle.
var matchWarningOnce sync.Once

// WarningHandler receives non-fatal warnings. When nil they go to
// log.Printf, which the TUI redirects away from the alt screen.
var WarningHandler func(message string)

func emitWarning(message string) {
	if WarningHandler != nil {
		WarningHandler(message)
	} else {
		log.Printf("Warning: %s", message)
	}
}

// Dial establishes an SSH connection to the specified host. The host
// can be an SSH config alias, a hostname, user@hostname, or
// hostname:port. Settings not given explicitly are resolved from
// ~/.ssh/config when available.
func Dial(host string, timeout time.Duration) (*Client, error) {
	settings := resolveSSHSettings(host)

	config, err := buildSSHConfig(settings)
	if err != nil {
		var qwErr *errors.Error
		if stderrors.As(err, &qwErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", host),
			"Check your keys are loaded: ssh-add -l")
	}

	address := settings.address()
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", host, address),
			suggestionForDialError(err))
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		var hostKeyErr *HostKeyMismatchError
		if stderrors.As(err, &hostKeyErr) {
			return nil, errors.New(errors.ErrSSH,
				hostKeyErr.Error(),
				hostKeyErr.Suggestion())
		}

		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			suggestionForHandshakeError(err, settings.encryptedKeys))
	}

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    host,
		Address: address,
	}, nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// GetHost returns the original host/alias used to connect.
func (c *Client) GetHost() string {
	return c.Host
}

// GetAddress returns the resolved host:port address.
func (c *Client) GetAddress() string {
	return c.Address
}

// NewSession opens a session for liveness checks.
func (c *Client) NewSession() (Session, error) {
	return c.Client.NewSession()
}

// sshSettings holds resolved SSH connection parameters.
type sshSettings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string // keys that exist but need a passphrase
}

func (s *sshSettings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSSHSettings parses user@host:port and fills the gaps from
// ~/.ssh/config.
func resolveSSHSettings(host string) *sshSettings {
	settings := &sshSettings{
		port: "22",
		user: currentUser(),
	}

	explicitUser := false
	if atIdx := strings.Index(host, "@"); atIdx != -1 {
		settings.user = host[:atIdx]
		host = host[atIdx+1:]
		explicitUser = true
	}

	// CI override, only when the host string didn't name a user itself.
	if !explicitUser {
		if testUser := os.Getenv("QW_TEST_SSH_USER"); testUser != "" {
			settings.user = testUser
		}
	}

	if colonIdx := strings.LastIndex(host, ":"); colonIdx != -1 {
		potentialPort := host[colonIdx+1:]
		isPort := len(potentialPort) > 0
		for _, c := range potentialPort {
			if c < '0' || c > '9' {
				isPort = false
				break
			}
		}
		if isPort {
			settings.port = potentialPort
			host = host[:colonIdx]
		}
	}

	settings.hostname = host

	// kevinburke/ssh_config doesn't understand Match blocks, so only
	// the part of the config before the first one is parsed.
	sshConfigPath := filepath.Join(homeDir(), ".ssh", "config")
	content, matchLine, err := preprocessSSHConfig(sshConfigPath)
	if err != nil {
		return settings
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return settings
	}

	hostFound := false

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		settings.hostname = hostname
		hostFound = true
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		settings.port = port
		hostFound = true
	}
	if user, _ := cfg.Get(host, "User"); user != "" {
		settings.user = user
		hostFound = true
	}
	if identity, _ := cfg.Get(host, "IdentityFile"); identity != "" {
		settings.identityFile = expandPath(identity)
		hostFound = true
	}

	if matchLine > 0 && !hostFound {
		matchWarningOnce.Do(func() {
			emitWarning(fmt.Sprintf(
				"Host '%s' not found in SSH config (config has a Match block at line %d that may hide later entries). "+
					"If this host is defined after line %d, move it earlier in ~/.ssh/config.",
				host, matchLine, matchLine))
		})
	}

	return settings
}

// StrictHostKeyChecking controls host key verification. When true
// (default), keys are verified against ~/.ssh/known_hosts. When false,
// verification is skipped, which is only appropriate for CI.
var StrictHostKeyChecking = true

// buildSSHConfig assembles auth methods, preferring the agent, then
// the config's identity file, then the default key files. It records
// encrypted keys on settings so error messages can point at them.
func buildSSHConfig(settings *sshSettings) (*ssh.ClientConfig, error) {
	var authMethods []ssh.AuthMethod

	tryKeyFile := func(keyPath string) {
		keyAuth, err := keyFileAuth(keyPath)
		if err != nil {
			var encErr *EncryptedKeyError
			if stderrors.As(err, &encErr) {
				settings.encryptedKeys = append(settings.encryptedKeys, keyPath)
			}
			return
		}
		authMethods = append(authMethods, keyAuth)
	}

	if agentAuth := sshAgentAuth(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	if testKey := os.Getenv("QW_TEST_SSH_KEY"); testKey != "" {
		tryKeyFile(testKey)
	}

	if settings.identityFile != "" {
		tryKeyFile(settings.identityFile)
	}

	defaultKeys := []string{
		filepath.Join(homeDir(), ".ssh", "id_ed25519"),
		filepath.Join(homeDir(), ".ssh", "id_rsa"),
		filepath.Join(homeDir(), ".ssh", "id_ecdsa"),
	}
	for _, keyPath := range defaultKeys {
		if keyPath == settings.identityFile {
			continue
		}
		tryKeyFile(keyPath)
	}

	if len(authMethods) == 0 {
		msg := "No SSH auth methods available"
		suggestion := "Check your keys are loaded: ssh-add -l"

		if len(settings.encryptedKeys) > 0 {
			msg = fmt.Sprintf("Found SSH key(s) but they're encrypted: %s", strings.Join(settings.encryptedKeys, ", "))
			var sb strings.Builder
			sb.WriteString("Add your key(s) to the agent:\n")
			for _, key := range settings.encryptedKeys {
				if runtime.GOOS == "darwin" {
					sb.WriteString(fmt.Sprintf("  ssh-add --apple-use-keychain %s\n", key))
				} else {
					sb.WriteString(fmt.Sprintf("  ssh-add %s\n", key))
				}
			}
			sb.WriteString("\nNot sure which key? Check with: ssh -v <host>")
			suggestion = sb.String()
		}

		return nil, errors.New(errors.ErrSSH, msg, suggestion)
	}

	var hostKeyCallback ssh.HostKeyCallback
	if StrictHostKeyChecking {
		knownHostsPath := filepath.Join(homeDir(), ".ssh", "known_hosts")
		var err error
		hostKeyCallback, err = createHostKeyCallback(knownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load known_hosts: %w", err)
		}
	} else {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // User explicitly disabled host key checking
	}

	return &ssh.ClientConfig{
		User:            settings.user,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         10 * time.Second,
	}, nil
}

// The agent connection is shared across all dials for the process.
var (
	agentConn     net.Conn
	agentClient   agent.ExtendedAgent
	agentConnOnce sync.Once
)

// sshAgentAuth returns an agent-backed auth method, or nil when there
// is no agent or it holds no keys. An empty agent placed first in the
// auth list makes every handshake fail, hence the signer check.
func sshAgentAuth() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	agentConnOnce.Do(func() {
		conn, err := net.Dial("unix", socket)
		if err != nil {
			return
		}
		agentConn = conn
		agentClient = agent.NewClient(conn)
	})

	if agentClient == nil {
		return nil
	}

	signers, err := agentClient.Signers()
	if err != nil || len(signers) == 0 {
		return nil
	}

	return ssh.PublicKeysCallback(agentClient.Signers)
}

// CloseAgent closes the shared agent connection on shutdown.
func CloseAgent() {
	if agentConn != nil {
		agentConn.Close()
	}
}

// keyFileAuth loads a private key file. Returns EncryptedKeyError if
// the key needs a passphrase.
func keyFileAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		if strings.Contains(err.Error(), "encrypted") ||
			strings.Contains(err.Error(), "passphrase") ||
			isEncryptedPEM(key) {
			return nil, &EncryptedKeyError{Path: keyPath}
		}
		return nil, err
	}

	return ssh.PublicKeys(signer), nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func suggestionForDialError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") {
		return "Is SSH running on that box? Try: ssh <host>"
	}
	if strings.Contains(errStr, "no route to host") || strings.Contains(errStr, "network is unreachable") {
		return "Can't route to the host. Check your network connection."
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout") {
		return "Connection timed out. Host might be offline or blocked by a firewall."
	}
	return "Make sure the host is reachable: ping <host>"
}

func suggestionForHandshakeError(err error, encryptedKeys []string) string {
	errStr := err.Error()
	if strings.Contains(errStr, "unable to authenticate") || strings.Contains(errStr, "no supported methods") {
		if len(encryptedKeys) > 0 {
			var sb strings.Builder
			sb.WriteString("Your key(s) are encrypted. Add them to the agent:\n")
			for _, key := range encryptedKeys {
				if runtime.GOOS == "darwin" {
					sb.WriteString(fmt.Sprintf("  ssh-add --apple-use-keychain %s\n", key))
				} else {
					sb.WriteString(fmt.Sprintf("  ssh-add %s\n", key))
				}
			}
			sb.WriteString("\nNot sure which key? Check with: ssh -v <host>")
			return sb.String()
		}
		return "Auth failed. Check your keys are loaded: ssh-add -l"
	}
	if strings.Contains(errStr, "host key") {
		return "Host key issue. Try connecting manually first: ssh <host>"
	}
	return "Something went wrong during SSH setup. Try: ssh <host>"
}

// EncryptedKeyError is returned when an SSH key requires a passphrase.
type EncryptedKeyError struct {
	Path string
}

func (e *EncryptedKeyError) Error() string {
	return fmt.Sprintf("SSH key at %s is encrypted (passphrase protected)", e.Path)
}

// HostKeyMismatchError carries enough context to tell the user how to
// fix a known_hosts conflict.
type HostKeyMismatchError struct {
	Hostname     string
	ReceivedType string
	KnownHosts   string
	Want         []knownhosts.KnownKey
}

func (e *HostKeyMismatchError) Error() string {
	return fmt.Sprintf("host key mismatch for %s: server sent %s key", e.Hostname, e.ReceivedType)
}

// Suggestion returns actionable steps to fix the host key mismatch.
func (e *HostKeyMismatchError) Suggestion() string {
	host := e.Hostname
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	var wantTypes []string
	for _, k := range e.Want {
		wantTypes = append(wantTypes, k.Key.Type())
	}
	wantStr := "unknown"
	if len(wantTypes) > 0 {
		wantStr = strings.Join(wantTypes, ", ")
	}

	return fmt.Sprintf(
		"The server's host key doesn't match what's in known_hosts.\n"+
			"  Known types: %s\n"+
			"  Server sent: %s\n\n"+
			"  To update known_hosts with all key types:\n"+
			"    ssh-keyscan -t rsa,ecdsa,ed25519 %s >> %s\n\n"+
			"  Or remove the old entry:\n"+
			"    ssh-keygen -R %s",
		wantStr, e.ReceivedType, host, e.KnownHosts, host)
}

// preprocessSSHConfig returns the config content up to the first Match
// directive, plus the 1-indexed line where Match was found (0 if none).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}

func isEncryptedPEM(data []byte) bool {
	return bytes.Contains(data, []byte("ENCRYPTED")) ||
		bytes.Contains(data, []byte("Proc-Type: 4,ENCRYPTED"))
}

// createHostKeyCallback wraps the knownhosts callback so mismatches
// surface as HostKeyMismatchError with a usable suggestion.
func createHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		dir := filepath.Dir(knownHostsPath)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create .ssh directory: %w", err)
		}
		if err := os.WriteFile(knownHostsPath, []byte{}, 0600); err != nil {
			return nil, fmt.Errorf("failed to create known_hosts: %w", err)
		}
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := callback(hostname, remote, key)
		if err != nil {
			var keyErr *knownhosts.KeyError
			if stderrors.As(err, &keyErr) && len(keyErr.Want) > 0 {
				return &HostKeyMismatchError{
					Hostname:     hostname,
					ReceivedType: key.Type(),
					KnownHosts:   knownHostsPath,
					Want:         keyErr.Want,
				}
			}
		}
		return err
	}, nil
}
