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

// Package controller composes the configuration store, the docker adapter
// and the network resolver into server lifecycle operations. It is the
// sole writer of config records; container state is never stored, always
// queried live.
package controller

import (
	"context"
	"log/slog"

	"github.com/sftpdock/sftpdock/internal/docker"
	"github.com/sftpdock/sftpdock/internal/netinfo"
	"github.com/sftpdock/sftpdock/internal/store"
)

// Runtime is the container-control surface the controller drives. The
// docker adapter implements it; tests substitute fakes.
type Runtime interface {
	Available() bool
	IsManaged(name string) bool
	Create(spec docker.CreateSpec) (string, error)
	Start(name string) error
	Stop(name string) error
	Remove(name string, force bool) error
	Status(name string) string
	ListManaged() ([]docker.ManagedContainer, error)
	Logs(name string, lines int) string
	ListDir(name, root, rel string) ([]docker.DirEntry, error)
}

// InterfaceLister enumerates local interfaces; netinfo.List in production.
type InterfaceLister func() ([]netinfo.Interface, error)

type Exec struct {
	ctx        context.Context
	logger     *slog.Logger
	store      *store.Store
	runtime    Runtime
	interfaces InterfaceLister
}

type Options struct {
	// ConfigPath locates the JSON document; empty means the per-user
	// default.
	ConfigPath string
	// DockerBinary overrides the runtime binary name.
	DockerBinary string
	// Runtime substitutes the container adapter (tests).
	Runtime Runtime
	// Interfaces substitutes interface enumeration (tests).
	Interfaces InterfaceLister
}

func NewControllerExec(ctx context.Context, logger *slog.Logger, opts Options) (*Exec, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	runtime := opts.Runtime
	if runtime == nil {
		runtime = docker.NewClient(ctx, logger, docker.Options{Binary: opts.DockerBinary})
	}

	interfaces := opts.Interfaces
	if interfaces == nil {
		interfaces = netinfo.List
	}

	return &Exec{
		ctx:        ctx,
		logger:     logger,
		store:      store.New(ctx, logger, path),
		runtime:    runtime,
		interfaces: interfaces,
	}, nil
}

// Store exposes the underlying configuration store.
func (e *Exec) Store() *store.Store {
	return e.store
}

// ServerInfo is a config record overlaid with live runtime state.
type ServerInfo struct {
	store.ServerRecord
	Status string `json:"status"`
	// Unreachable marks a record bound to an address no current interface
	// carries (e.g. a disconnected VPN).
	Unreachable bool `json:"unreachable,omitempty"`
}

// BulkReport summarizes a bulk operation. Partial completion is expected
// and reported, never escalated.
type BulkReport struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed"`
}
