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

	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/netinfo"
	"github.com/sftpdock/sftpdock/internal/store"
)

// ListNetworks enumerates the host's interfaces including the synthetic
// all-interfaces entry.
func (e *Exec) ListNetworks() ([]netinfo.Interface, error) {
	return e.interfaces()
}

// GetVPNNetworks returns only the VPN-classified interfaces.
func (e *Exec) GetVPNNetworks() ([]netinfo.Interface, error) {
	ifaces, err := e.interfaces()
	if err != nil {
		return nil, err
	}
	var vpns []netinfo.Interface
	for _, in := range ifaces {
		if in.IsVPN {
			vpns = append(vpns, in)
		}
	}
	return vpns, nil
}

// SetNetwork pins the preference to target, which may be an enumerated
// address or an interface name. An address match sets the IP preference;
// a name match sets the interface preference; anything else is refused.
func (e *Exec) SetNetwork(target string) error {
	ifaces, err := e.interfaces()
	if err != nil {
		return err
	}
	for _, in := range ifaces {
		if in.Address == target {
			return e.store.SetPreferredIP(target)
		}
	}
	for _, in := range ifaces {
		if in.Name == target {
			return e.store.SetPreferredInterface(target)
		}
	}
	return fmt.Errorf("%w: %q", errdefs.ErrNetworkTargetNotFound, target)
}

// ClearNetwork resets network selection to auto-detect.
func (e *Exec) ClearNetwork() error {
	return e.store.ClearPreference()
}

// NetworkConfig reports the stored preference and the address it currently
// resolves to.
type NetworkConfig struct {
	Preference  store.NetworkPreference `json:"preference"`
	EffectiveIP string                  `json:"effectiveIP"`
}

func (e *Exec) GetCurrentNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Preference:  e.store.Preference(),
		EffectiveIP: e.displayIP(),
	}
}
