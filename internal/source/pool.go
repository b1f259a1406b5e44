package source

import (
	"sync"
	"time"

	"github.com/queuewatch/qw/internal/logger"
	"github.com/queuewatch/qw/pkg/sshutil"
)

// DialFunc opens an SSH connection to a host. Swapped out in tests for
// a mock-backed dialer.
type DialFunc func(host string, timeout time.Duration) (sshutil.SSHClient, error)

// Pool keeps one SSH connection per host alive across poll cycles, so
// every monitor pointed at the same host shares a single connection
// instead of redialing each tick. Connections are shared; monitors are
// not.
type Pool struct {
	mu          sync.Mutex
	connections map[string]*poolEntry
	timeout     time.Duration
	dial        DialFunc
	log         logger.Logger
}

type poolEntry struct {
	client   sshutil.SSHClient
	lastUsed time.Time
}

// NewPool creates a connection pool. A zero timeout defaults to 10s.
func NewPool(timeout time.Duration) *Pool {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Pool{
		connections: make(map[string]*poolEntry),
		timeout:     timeout,
		dial: func(host string, timeout time.Duration) (sshutil.SSHClient, error) {
			return sshutil.Dial(host, timeout)
		},
		log: logger.Default(),
	}
}

// SetDialer replaces the dial function, for tests.
func (p *Pool) SetDialer(dial DialFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dial = dial
}

// Get returns a live connection for the host, dialing if there is no
// cached one or the cached one no longer answers.
func (p *Pool) Get(host string) (sshutil.SSHClient, error) {
	p.mu.Lock()
	entry, exists := p.connections[host]
	dial := p.dial
	p.mu.Unlock()

	if exists && entry.client != nil {
		if isAlive(entry.client) {
			p.mu.Lock()
			entry.lastUsed = time.Now()
			p.mu.Unlock()
			return entry.client, nil
		}
		p.log.Debug("pool: connection to %s went stale, redialing", host)
		p.remove(host)
	}

	client, err := dial(host, p.timeout)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.connections[host] = &poolEntry{
		client:   client,
		lastUsed: time.Now(),
	}
	p.mu.Unlock()

	return client, nil
}

// CloseOne closes and forgets the connection for one host.
func (p *Pool) CloseOne(host string) {
	p.remove(host)
}

// Close closes every connection and empties the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for host, entry := range p.connections {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, host)
	}
}

// Size returns the number of pooled connections.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.connections)
}

func (p *Pool) remove(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.connections[host]; ok {
		if entry.client != nil {
			_ = entry.client.Close()
		}
		delete(p.connections, host)
	}
}

// isAlive opens and closes a session as a cheap liveness probe.
func isAlive(client sshutil.SSHClient) bool {
	if client == nil {
		return false
	}
	session, err := client.NewSession()
	if err != nil {
		return false
	}
	_ = session.Close()
	return true
}
