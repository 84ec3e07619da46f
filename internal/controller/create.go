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
	"github.com/sftpdock/sftpdock/internal/store"
)

// DefaultUsername is used when a create request leaves the username blank.
const DefaultUsername = "sftpuser"

// CreateServerRequest carries the user-supplied fields of a create
// operation. Zero values are filled with defaults: port from the first
// free slot, password generated, username sftpuser, container path derived
// from the username, uid 1001.
type CreateServerRequest struct {
	Name          string
	Port          int
	HostPath      string
	ContainerPath string
	Username      string
	Password      string
	UID           int
}

// CreateServerResult reports a completed create.
type CreateServerResult struct {
	Server      ServerInfo
	ContainerID string
	// PasswordGenerated is set when the password was not supplied by the
	// caller.
	PasswordGenerated bool
}

// CreateServer validates, starts the container, then persists the record.
// The record is only written after the container is running; if persistence
// fails the just-created container is removed again so no orphan survives
// the failure.
func (e *Exec) CreateServer(req CreateServerRequest) (CreateServerResult, error) {
	var result CreateServerResult

	if !e.runtime.Available() {
		return result, errdefs.ErrDockerUnavailable
	}
	if req.HostPath == "" {
		return result, errdefs.ErrHostPathRequired
	}

	if req.Username == "" {
		req.Username = DefaultUsername
	}
	if req.ContainerPath == "" {
		req.ContainerPath = "/home/" + req.Username + "/upload"
	}
	if req.UID == 0 {
		req.UID = store.DefaultUID
	}
	if req.Port == 0 {
		port, err := e.store.FindAvailablePort(store.DefaultPortScanStart)
		if err != nil {
			return result, err
		}
		req.Port = port
	}
	if req.Password == "" {
		password, err := store.GeneratePassword(store.DefaultPasswordLength)
		if err != nil {
			return result, err
		}
		req.Password = password
		result.PasswordGenerated = true
	}

	// Uniqueness is checked before any runtime command goes out.
	if err := e.store.ValidateNew(req.Name, req.Port); err != nil {
		return result, err
	}

	bindIP := e.resolveBindIP()

	containerID, err := e.runtime.Create(docker.CreateSpec{
		Name:          req.Name,
		Port:          req.Port,
		BindIP:        bindIP,
		HostPath:      req.HostPath,
		ContainerPath: req.ContainerPath,
		Username:      req.Username,
		Password:      req.Password,
		UID:           req.UID,
	})
	if err != nil {
		return result, err
	}

	rec, err := e.store.AddServer(store.ServerRecord{
		Name:          req.Name,
		Port:          req.Port,
		HostPath:      req.HostPath,
		ContainerPath: req.ContainerPath,
		Username:      req.Username,
		Password:      req.Password,
		UID:           req.UID,
		BindIP:        bindIP,
	})
	if err != nil {
		// A live container without a record is a state the UI cannot
		// explain; roll the container back and surface the store error.
		e.logger.WarnContext(e.ctx, "rolling back container after store failure",
			"name", req.Name, "error", err)
		if rmErr := e.runtime.Remove(req.Name, true); rmErr != nil {
			e.logger.ErrorContext(e.ctx, "rollback failed, container orphaned",
				"name", req.Name, "error", rmErr)
		}
		return result, fmt.Errorf("%w: %w", errdefs.ErrPersistence, err)
	}

	e.logger.InfoContext(e.ctx, "server created", "name", rec.Name, "port", rec.Port)
	result.Server = ServerInfo{ServerRecord: rec, Status: docker.StateRunning}
	result.ContainerID = containerID
	return result, nil
}

// resolveBindIP maps the stored network preference onto a bind address.
// No preference, or a preference resolving to the wildcard, binds every
// interface.
func (e *Exec) resolveBindIP() string {
	pref := e.store.Preference()
	if pref.PreferredInterface == "" && pref.PreferredIP == "" {
		return ""
	}
	ifaces, err := e.interfaces()
	if err != nil {
		e.logger.WarnContext(e.ctx, "interface enumeration failed, binding all interfaces", "error", err)
		return ""
	}
	ip := netinfo.ResolveIP(ifaces, pref.PreferredInterface, pref.PreferredIP)
	if ip == netinfo.AllInterfacesAddress {
		return ""
	}
	return ip
}
