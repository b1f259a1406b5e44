package sshutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/queuewatch/qw/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Exec runs a command on the remote host and returns the output.
// Exit code is -1 if the command couldn't be executed at all.
func (c *Client) Exec(cmd string) (stdout, stderr []byte, exitCode int, err error) {
	session, err := c.newSSHSession()
	if err != nil {
		return nil, nil, -1, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	exitCode = 0
	err = session.Run(cmd)
	if err != nil {
		if exitErr, ok := err.(*ssh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
			err = nil // command ran, just had non-zero exit
		} else {
			return nil, nil, -1, errors.WrapWithCode(err, errors.ErrSource,
				fmt.Sprintf("Failed to execute command: %s", cmd),
				"Check if the command exists on the remote host.")
		}
	}

	return stdoutBuf.Bytes(), stderrBuf.Bytes(), exitCode, nil
}

// Output runs a command and returns its trimmed stdout. A non-zero
// exit code is turned into an error carrying the command's stderr.
func (c *Client) Output(cmd string) (string, error) {
	stdout, stderr, exitCode, err := c.Exec(cmd)
	if err != nil {
		return "", err
	}
	if exitCode != 0 {
		detail := strings.TrimSpace(string(stderr))
		if detail == "" {
			detail = fmt.Sprintf("exit code %d", exitCode)
		}
		return "", errors.New(errors.ErrSource,
			fmt.Sprintf("Command failed on %s: %s", c.Host, detail),
			fmt.Sprintf("Run it by hand to see what's wrong: ssh %s '%s'", c.Host, cmd))
	}
	return strings.TrimSpace(string(stdout)), nil
}

// newSSHSession returns the concrete *ssh.Session for exec use.
func (c *Client) newSSHSession() (*ssh.Session, error) {
	return c.Client.NewSession()
}
