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
	"github.com/sftpdock/sftpdock/internal/manifest"
)

// ApplyServerSet creates every server of a parsed manifest through the
// standard create path (same validation, defaulting and rollback).
// Per-entry failures are collected, not escalated.
func (e *Exec) ApplyServerSet(set manifest.ServerSet) BulkReport {
	report := BulkReport{Total: len(set.Servers)}
	for _, entry := range set.Servers {
		_, err := e.CreateServer(CreateServerRequest{
			Name:          entry.Name,
			Port:          entry.Port,
			HostPath:      entry.HostPath,
			ContainerPath: entry.ContainerPath,
			Username:      entry.Username,
			Password:      entry.Password,
			UID:           entry.UID,
		})
		if err != nil {
			e.logger.WarnContext(e.ctx, "apply: create failed", "name", entry.Name, "error", err)
			report.Failed = append(report.Failed, entry.Name)
			continue
		}
		report.Succeeded++
	}
	return report
}
