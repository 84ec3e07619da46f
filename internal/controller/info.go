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

// InfoFormat selects a rendering of connection info.
type InfoFormat string

const (
	FormatFull     InfoFormat = "full"
	FormatCommand  InfoFormat = "command"
	FormatURL      InfoFormat = "url"
	FormatPassword InfoFormat = "password"
)

// ParseInfoFormat validates a format name; empty means full.
func ParseInfoFormat(s string) (InfoFormat, error) {
	switch InfoFormat(s) {
	case "":
		return FormatFull, nil
	case FormatFull, FormatCommand, FormatURL, FormatPassword:
		return InfoFormat(s), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: full, command, url, password)", errdefs.ErrInvalidFormat, s)
	}
}

// ConnectionInfo is what a client needs to reach a server.
type ConnectionInfo struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ConnectionInfo resolves the reachable host for the named server. Servers
// bound to a specific address report that address; wildcard binds report
// the effective display IP under the current network preference.
func (e *Exec) ConnectionInfo(name string) (ConnectionInfo, error) {
	rec, err := e.store.GetServer(name)
	if err != nil {
		return ConnectionInfo{}, err
	}

	host := rec.BindIP
	if host == "" || host == netinfo.AllInterfacesAddress {
		host = e.displayIP()
	}
	return ConnectionInfo{
		Host:     host,
		Port:     rec.Port,
		Username: rec.Username,
		Password: rec.Password,
	}, nil
}

// Format renders the connection info in the requested format.
func (ci ConnectionInfo) Format(format InfoFormat) (string, error) {
	switch format {
	case FormatFull, "":
		return fmt.Sprintf("Host: %s\nPort: %d\nUser: %s\nPass: %s",
			ci.Host, ci.Port, ci.Username, ci.Password), nil
	case FormatCommand:
		return fmt.Sprintf("sftp -P %d %s@%s", ci.Port, ci.Username, ci.Host), nil
	case FormatURL:
		return fmt.Sprintf("sftp://%s:%s@%s:%d", ci.Username, ci.Password, ci.Host, ci.Port), nil
	case FormatPassword:
		return ci.Password, nil
	default:
		return "", fmt.Errorf("%w: %q", errdefs.ErrInvalidFormat, string(format))
	}
}

func (e *Exec) displayIP() string {
	ifaces, err := e.interfaces()
	if err != nil {
		e.logger.WarnContext(e.ctx, "interface enumeration failed", "error", err)
		return netinfo.LoopbackAddress
	}
	pref := e.store.Preference()
	return netinfo.ResolveIP(ifaces, pref.PreferredInterface, pref.PreferredIP)
}

// SystemStatus is a point-in-time summary of the tool's environment.
type SystemStatus struct {
	DockerAvailable bool   `json:"dockerAvailable"`
	ConfigPath      string `json:"configPath"`
	Servers         int    `json:"servers"`
	Running         int    `json:"running"`
	DisplayIP       string `json:"displayIP"`
}

func (e *Exec) GetSystemStatus() SystemStatus {
	status := SystemStatus{
		DockerAvailable: e.runtime.Available(),
		ConfigPath:      e.store.Path(),
		DisplayIP:       e.displayIP(),
	}
	for _, rec := range e.store.Load().Servers {
		status.Servers++
		if e.runtime.Status(rec.Name) == docker.StateRunning {
			status.Running++
		}
	}
	return status
}

// ServerLogs returns the tail of a server's container output. Failure text
// is returned as the log body (see the adapter contract).
func (e *Exec) ServerLogs(name string, lines int) string {
	return e.runtime.Logs(name, lines)
}

// ListServerDir lists a path inside a server's container, confined to the
// server's container root.
func (e *Exec) ListServerDir(name, rel string) ([]docker.DirEntry, error) {
	rec, err := e.store.GetServer(name)
	if err != nil {
		return nil, err
	}
	return e.runtime.ListDir(name, rec.ContainerPath, rel)
}
