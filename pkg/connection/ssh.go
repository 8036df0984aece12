// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package connection

import (
	"bytes"
	"context"
	stderrors "errors"
	"net"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
)

// SSHDialer opens SSH sessions to network devices.
type SSHDialer struct {
	// Timeout bounds TCP connect plus handshake. Zero means defaults.SSHDialTimeout.
	Timeout time.Duration

	// HostKeyCallback verifies the device host key. Nil accepts any key.
	HostKeyCallback ssh.HostKeyCallback

	// LegacyAlgorithms enables the insecure key exchanges, ciphers and MACs
	// that older device firmware still requires.
	LegacyAlgorithms bool
}

// SSHOption configures an SSHDialer.
type SSHOption func(*SSHDialer) error

// WithTimeout sets the dial and handshake timeout.
func WithTimeout(d time.Duration) SSHOption {
	return func(s *SSHDialer) error {
		s.Timeout = d
		return nil
	}
}

// WithKnownHosts verifies host keys against an OpenSSH known_hosts file.
// An empty path leaves host key checking disabled.
func WithKnownHosts(path string) SSHOption {
	return func(s *SSHDialer) error {
		if path == "" {
			return nil
		}
		cb, err := knownhosts.New(path)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeNotFound,
				"failed to load known_hosts file", err, map[string]any{"path": path})
		}
		s.HostKeyCallback = cb
		return nil
	}
}

// WithLegacyAlgorithms toggles the legacy algorithm set.
func WithLegacyAlgorithms(enabled bool) SSHOption {
	return func(s *SSHDialer) error {
		s.LegacyAlgorithms = enabled
		return nil
	}
}

// NewSSHDialer creates a dialer with the given options applied.
func NewSSHDialer(opts ...SSHOption) (*SSHDialer, error) {
	d := &SSHDialer{Timeout: defaults.SSHDialTimeout}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *SSHDialer) clientConfig(p Params) *ssh.ClientConfig {
	hostKeyCallback := d.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in verification via known_hosts
	}

	password := p.Password
	cfg := &ssh.ClientConfig{
		User: p.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// many devices only offer keyboard-interactive
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         d.timeout(),
	}

	if d.LegacyAlgorithms {
		supported := ssh.SupportedAlgorithms()
		insecure := ssh.InsecureAlgorithms()
		cfg.KeyExchanges = slices.Concat(supported.KeyExchanges, insecure.KeyExchanges)
		cfg.Ciphers = slices.Concat(supported.Ciphers, insecure.Ciphers)
		cfg.MACs = slices.Concat(supported.MACs, insecure.MACs)
		cfg.HostKeyAlgorithms = slices.Concat(supported.HostKeys, insecure.HostKeys)
	}

	return cfg
}

func (d *SSHDialer) timeout() time.Duration {
	if d.Timeout <= 0 {
		return defaults.SSHDialTimeout
	}
	return d.Timeout
}

// Dial connects and authenticates. The handshake is bounded by the dialer
// timeout and by ctx.
func (d *SSHDialer) Dial(ctx context.Context, p Params) (Session, error) {
	errCtx := map[string]any{"address": p.Address, "user": p.Username}

	nd := net.Dialer{Timeout: d.timeout()}
	conn, err := nd.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return nil, errors.WrapWithContext(classify(ctx, err), "failed to connect", err, errCtx)
	}

	// NewClientConn has no context; bound the handshake with a deadline.
	deadline := time.Now().Add(d.timeout())
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to set handshake deadline", err, errCtx)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, p.Address, d.clientConfig(p))
	if err != nil {
		conn.Close()
		return nil, errors.WrapWithContext(classify(ctx, err), "ssh handshake failed", err, errCtx)
	}

	if err := conn.SetDeadline(time.Time{}); err != nil {
		c.Close()
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to clear handshake deadline", err, errCtx)
	}

	return &sshSession{client: ssh.NewClient(c, chans, reqs), address: p.Address}, nil
}

type sshSession struct {
	client  *ssh.Client
	address string

	closeOnce sync.Once
	closeErr  error
}

// Run opens an exec channel for the command and returns combined output.
func (s *sshSession) Run(ctx context.Context, command string) (string, error) {
	errCtx := map[string]any{"address": s.address, "command": command}

	sess, err := s.client.NewSession()
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to open session", err, errCtx)
	}
	defer sess.Close()

	var out bytes.Buffer
	sess.Stdout = &out
	sess.Stderr = &out

	done := make(chan error, 1)
	go func() {
		done <- sess.Run(command)
	}()

	select {
	case <-ctx.Done():
		sess.Close()
		return "", errors.WrapWithContext(errors.ErrCodeTimeout, "command interrupted", ctx.Err(), errCtx)
	case err := <-done:
		if err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to run command", err, errCtx)
		}
	}

	return out.String(), nil
}

func (s *sshSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}

// classify maps dial and handshake failures onto error codes.
func classify(ctx context.Context, err error) errors.ErrorCode {
	if ctx.Err() != nil {
		return errors.ErrCodeTimeout
	}
	var ne net.Error
	if stderrors.As(err, &ne) && ne.Timeout() {
		return errors.ErrCodeTimeout
	}
	if strings.Contains(err.Error(), "unable to authenticate") {
		return errors.ErrCodeUnauthorized
	}
	return errors.ErrCodeUnavailable
}
