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

// Package manifest parses YAML server-set manifests for the apply command.
package manifest

import (
	"fmt"
	"io"

	"github.com/sftpdock/sftpdock/internal/errdefs"
	yaml "gopkg.in/yaml.v3"
)

// KindServerSet is the only manifest kind recognized today.
const KindServerSet = "ServerSet"

// ServerEntry is one declared server. Omitted fields take the same
// defaults as an interactive create.
type ServerEntry struct {
	Name          string `yaml:"name"`
	Port          int    `yaml:"port"`
	HostPath      string `yaml:"hostPath"`
	ContainerPath string `yaml:"containerPath"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	UID           int    `yaml:"uid"`
}

// ServerSet is a declarative list of servers to create.
type ServerSet struct {
	Kind    string        `yaml:"kind"`
	Servers []ServerEntry `yaml:"servers"`
}

// Parse reads a ServerSet manifest. Unknown kinds and empty server lists
// are refused before anything is created.
func Parse(r io.Reader) (ServerSet, error) {
	var set ServerSet

	data, err := io.ReadAll(r)
	if err != nil {
		return set, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("parse manifest: %w", err)
	}

	if set.Kind != KindServerSet {
		return set, fmt.Errorf("%w: %q (expected %q)", errdefs.ErrUnknownKind, set.Kind, KindServerSet)
	}
	if len(set.Servers) == 0 {
		return set, errdefs.ErrManifestServersMissing
	}
	for i, entry := range set.Servers {
		if entry.Name == "" {
			return set, fmt.Errorf("server %d: %w", i, errdefs.ErrNameRequired)
		}
		if entry.HostPath == "" {
			return set, fmt.Errorf("server %d (%s): %w", i, entry.Name, errdefs.ErrHostPathRequired)
		}
	}
	return set, nil
}
