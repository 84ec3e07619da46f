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

package controller

import (
	"fmt"

	"github.com/sftpdock/sftpdock/internal/docker"
	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/netinfo"
)

// ListServers returns every persisted record overlaid with the container's
// live status. The record never carries status text of its own.
func (e *Exec) ListServers() ([]ServerInfo, error) {
	records := e.store.Load().Servers
	ifaces, err := e.interfaces()
	if err != nil {
		e.logger.WarnContext(e.ctx, "interface enumeration failed", "error", err)
		ifaces = nil
	}

	infos := make([]ServerInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, ServerInfo{
			ServerRecord: rec,
			Status:       e.runtime.Status(rec.Name),
			Unreachable:  netinfo.IsUnreachable(rec.BindIP, ifaces),
		})
	}
	return infos, nil
}

// GetServer returns one record with live status.
func (e *Exec) GetServer(name string) (ServerInfo, error) {
	rec, err := e.store.GetServer(name)
	if err != nil {
		return ServerInfo{}, err
	}
	ifaces, ifErr := e.interfaces()
	if ifErr != nil {
		ifaces = nil
	}
	return ServerInfo{
		ServerRecord: rec,
		Status:       e.runtime.Status(rec.Name),
		Unreachable:  netinfo.IsUnreachable(rec.BindIP, ifaces),
	}, nil
}

// StartServer starts the named server's container. Pure pass-through; no
// config mutation.
func (e *Exec) StartServer(name string) error {
	return e.runtime.Start(name)
}

// StopServer stops the named server's container.
func (e *Exec) StopServer(name string) error {
	return e.runtime.Stop(name)
}

// RemoveServer removes the container and the record independently and
// succeeds when either side succeeds. A record pointing at an already
// deleted container can be cleaned up this way, and a container whose
// record was lost can still be removed. Without force a running server is
// refused.
func (e *Exec) RemoveServer(name string, force bool) error {
	if !force && e.runtime.Status(name) == docker.StateRunning {
		return fmt.Errorf("%w: %q (use --force)", errdefs.ErrServerRunning, name)
	}

	containerErr := e.runtime.Remove(name, true)
	storeErr := e.store.RemoveServer(name)

	if containerErr != nil && storeErr != nil {
		return fmt.Errorf("remove %q: %w; %w", name, containerErr, storeErr)
	}
	if containerErr != nil {
		e.logger.WarnContext(e.ctx, "container removal failed, record removed", "name", name, "error", containerErr)
	}
	if storeErr != nil {
		e.logger.WarnContext(e.ctx, "record removal failed, container removed", "name", name, "error", storeErr)
	}
	return nil
}

// StartAllServers starts every recorded server sequentially, collecting
// failures instead of aborting.
func (e *Exec) StartAllServers() BulkReport {
	return e.bulk(e.StartServer)
}

// StopAllServers stops every recorded server sequentially.
func (e *Exec) StopAllServers() BulkReport {
	return e.bulk(e.StopServer)
}

func (e *Exec) bulk(op func(name string) error) BulkReport {
	records := e.store.Load().Servers
	report := BulkReport{Total: len(records)}
	for _, rec := range records {
		if err := op(rec.Name); err != nil {
			e.logger.WarnContext(e.ctx, "bulk operation failed for server", "name", rec.Name, "error", err)
			report.Failed = append(report.Failed, rec.Name)
			continue
		}
		report.Succeeded++
	}
	return report
}
