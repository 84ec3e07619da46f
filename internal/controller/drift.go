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
	"github.com/sftpdock/sftpdock/internal/docker"
)

// DriftReport captures divergence between the config store and the
// runtime: containers of the recognized image with no record, and records
// whose container is gone.
type DriftReport struct {
	// Unrecorded are managed containers absent from the store.
	Unrecorded []docker.ManagedContainer `json:"unrecorded,omitempty"`
	// Orphaned are record names whose container no longer exists.
	Orphaned []string `json:"orphaned,omitempty"`
}

// GetDriftReport compares the store against the runtime's container list.
func (e *Exec) GetDriftReport() (DriftReport, error) {
	var report DriftReport

	managed, err := e.runtime.ListManaged()
	if err != nil {
		return report, err
	}

	recorded := make(map[string]struct{})
	for _, rec := range e.store.Load().Servers {
		recorded[rec.Name] = struct{}{}
		if e.runtime.Status(rec.Name) == docker.StateNotCreated {
			report.Orphaned = append(report.Orphaned, rec.Name)
		}
	}
	for _, mc := range managed {
		if _, ok := recorded[mc.Name]; !ok {
			report.Unrecorded = append(report.Unrecorded, mc)
		}
	}
	return report, nil
}
