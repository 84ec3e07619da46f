// Copyright 2025 The sftpdock Authors
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
//
// SPDX-License-Identifier: Apache-2.0

// Package docker drives the docker CLI for containers of the recognized
// SFTP image. The CLI is treated as an opaque external process: commands
// go out as argument vectors, results come back as text. Every mutating
// operation is preceded by an image-ownership check so the adapter never
// touches a container it does not manage.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/sftpdock/sftpdock/internal/errdefs"
)

// Image is the single recognized container image. Containers running
// anything else are refused by the mutating operations.
const Image = "atmoz/sftp"

const defaultBinary = "docker"

// DefaultLogLines is the log tail length used when the caller passes a
// non-positive count.
const DefaultLogLines = 50

// Container states reported by Status.
const (
	StateRunning    = "running"
	StateExited     = "exited"
	StateNotCreated = "not created"
)

// hostPortPattern extracts the published port from docker's port-mapping
// text. Only the all-interfaces form is matched; containers bound to a
// specific address report no port through this path.
var hostPortPattern = regexp.MustCompile(`0\.0\.0\.0:(\d+)->22`)

// Commander executes the runtime binary. On non-zero exit it returns an
// error wrapping errdefs.ErrCommandFailed that carries the raw stderr text.
type Commander func(ctx context.Context, bin string, args ...string) (string, error)

func execCommander(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", errdefs.ErrCommandFailed, msg)
	}
	return stdout.String(), nil
}

type Client struct {
	ctx    context.Context
	logger *slog.Logger
	bin    string
	run    Commander
}

type Options struct {
	// Binary overrides the runtime binary name ("docker" by default).
	Binary string
	// Run overrides command execution; used by tests.
	Run Commander
}

func NewClient(ctx context.Context, logger *slog.Logger, opts Options) *Client {
	bin := opts.Binary
	if bin == "" {
		bin = defaultBinary
	}
	run := opts.Run
	if run == nil {
		run = execCommander
	}
	return &Client{ctx: ctx, logger: logger, bin: bin, run: run}
}

// Available reports whether the runtime CLI answers a version query.
func (c *Client) Available() bool {
	_, err := c.run(c.ctx, c.bin, "--version")
	return err == nil
}

// IsManaged reports whether the named container runs the recognized image,
// with or without a tag suffix. A failed inspect reads as unmanaged.
func (c *Client) IsManaged(name string) bool {
	out, err := c.run(c.ctx, c.bin, "inspect", "--format", "{{.Config.Image}}", name)
	if err != nil {
		return false
	}
	image := strings.TrimSpace(out)
	return image == Image || strings.HasPrefix(image, Image+":")
}

func (c *Client) guard(name string) error {
	if !c.IsManaged(name) {
		return fmt.Errorf("%w: %q", errdefs.ErrNotManagedContainer, name)
	}
	return nil
}

// CreateSpec describes a container to run.
type CreateSpec struct {
	Name          string
	Port          int
	BindIP        string // empty or 0.0.0.0 means every interface
	HostPath      string
	ContainerPath string
	Username      string
	Password      string
	UID           int
}

func (s CreateSpec) portMapping() string {
	if s.BindIP == "" || s.BindIP == "0.0.0.0" {
		return fmt.Sprintf("%d:22", s.Port)
	}
	return fmt.Sprintf("%s:%d:22", s.BindIP, s.Port)
}

// Create runs a detached container from the spec and returns the container
// id the runtime printed. The host path's separators are normalized to the
// runtime's expected forward-slash form.
func (c *Client) Create(spec CreateSpec) (string, error) {
	hostPath := strings.ReplaceAll(spec.HostPath, `\`, "/")
	args := []string{
		"run", "-d",
		"--name", spec.Name,
		"-p", spec.portMapping(),
		"-v", fmt.Sprintf("%s:%s", hostPath, spec.ContainerPath),
		"--restart", "unless-stopped",
		Image,
		fmt.Sprintf("%s:%s:%d", spec.Username, spec.Password, spec.UID),
	}
	c.logger.DebugContext(c.ctx, "creating container", "name", spec.Name, "port", spec.portMapping())
	out, err := c.run(c.ctx, c.bin, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Start starts the named container after the ownership check.
func (c *Client) Start(name string) error {
	if err := c.guard(name); err != nil {
		return err
	}
	_, err := c.run(c.ctx, c.bin, "start", name)
	return err
}

// Stop stops the named container after the ownership check.
func (c *Client) Stop(name string) error {
	if err := c.guard(name); err != nil {
		return err
	}
	_, err := c.run(c.ctx, c.bin, "stop", name)
	return err
}

// Remove deletes the named container after the ownership check.
func (c *Client) Remove(name string, force bool) error {
	if err := c.guard(name); err != nil {
		return err
	}
	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, name)
	_, err := c.run(c.ctx, c.bin, args...)
	return err
}

// Status returns the container state. A failed inspect means the container
// does not exist, which is a normal state here, not an error.
func (c *Client) Status(name string) string {
	out, err := c.run(c.ctx, c.bin, "inspect", "--format", "{{.State.Status}}", name)
	if err != nil {
		return StateNotCreated
	}
	status := strings.TrimSpace(out)
	if status == "" {
		return StateNotCreated
	}
	return status
}

// ManagedContainer is one row of the runtime's view of our containers.
type ManagedContainer struct {
	Name   string
	Status string
	Port   int // 0 when the published port could not be parsed
}

// ListManaged enumerates every container whose ancestor image is the
// recognized one, whether or not a config record exists for it.
func (c *Client) ListManaged() ([]ManagedContainer, error) {
	out, err := c.run(c.ctx, c.bin,
		"ps", "-a",
		"--filter", "ancestor="+Image,
		"--format", "{{.Names}}|{{.Status}}|{{.Ports}}",
	)
	if err != nil {
		return nil, err
	}

	var list []ManagedContainer
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			continue
		}
		status := StateExited
		if strings.Contains(parts[1], "Up") {
			status = StateRunning
		}
		list = append(list, ManagedContainer{
			Name:   parts[0],
			Status: status,
			Port:   extractHostPort(parts[2]),
		})
	}
	return list, nil
}

func extractHostPort(ports string) int {
	m := hostPortPattern.FindStringSubmatch(ports)
	if m == nil {
		return 0
	}
	port, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return port
}

// Logs returns the tail of the container's output. Failures come back as
// the log content itself; callers render a single string either way.
func (c *Client) Logs(name string, lines int) string {
	if !c.IsManaged(name) {
		return errdefs.ErrNotManagedContainer.Error()
	}
	if lines <= 0 {
		lines = DefaultLogLines
	}
	out, err := c.run(c.ctx, c.bin, "logs", "--tail", strconv.Itoa(lines), name)
	if err != nil {
		return err.Error()
	}
	return out
}
