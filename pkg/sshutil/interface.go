package sshutil

import "io"

// SSHClient is the minimal surface the polling layer needs from an SSH
// connection. The real Client and the test mock both satisfy it, so
// source code that shells out to remote hosts can be exercised without
// a live connection.
type SSHClient interface {
	// Exec runs a command and returns stdout, stderr, and exit code.
	// Exit code is -1 if the command couldn't be started at all.
	// A non-zero exit code with nil error means the command ran but failed.
	Exec(cmd string) (stdout, stderr []byte, exitCode int, err error)

	// Output runs a command and returns trimmed stdout.
	// A non-zero exit code is reported as an error.
	Output(cmd string) (string, error)

	// Close closes the SSH connection.
	Close() error

	// GetHost returns the original host/alias used to connect.
	GetHost() string

	// GetAddress returns the resolved host:port address.
	GetAddress() string

	// NewSession opens a session, used as a cheap liveness probe by the
	// connection pool. The returned session must be closed after use.
	NewSession() (Session, error)
}

// Session is a minimal view of ssh.Session for liveness checks.
type Session interface {
	io.Closer
}
