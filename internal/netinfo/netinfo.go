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

// Package netinfo enumerates local IPv4 interfaces, classifies VPN-like
// adapters by name, and resolves the effective bind/display address for a
// network preference. Classification is a heuristic over a pattern list;
// unlisted VPN products are reported as regular interfaces.
package netinfo

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

const (
	// AllInterfacesName is the synthetic entry representing a bind to every
	// local interface. It is always the first element returned by List.
	AllInterfacesName = "All Interfaces"

	// AllInterfacesAddress is the wildcard bind address.
	AllInterfacesAddress = "0.0.0.0"

	// LoopbackAddress is the resolution result of last resort.
	LoopbackAddress = "127.0.0.1"
)

// Interface describes one local IPv4 interface. Derived at enumeration
// time, never persisted.
type Interface struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Netmask string `json:"netmask,omitempty"`
	MAC     string `json:"mac,omitempty"`
	CIDR    string `json:"cidr,omitempty"`
	IsVPN   bool   `json:"isVPN"`
}

// Synthetic reports whether the entry is the all-interfaces placeholder.
func (i Interface) Synthetic() bool {
	return i.Address == AllInterfacesAddress
}

// vpnNamePatterns is matched case-insensitively as a substring. Extend it
// to recognize additional VPN products.
var vpnNamePatterns = []string{
	"zerotier",
	"tailscale",
	"wireguard",
	"vpn",
	"hamachi",
	"radmin",
}

// vpnDevicePattern covers bare kernel device names (wg0, tun0, tap3).
var vpnDevicePattern = regexp.MustCompile(`^(wg|tun|tap)\d+$`)

// IsVPNName classifies an interface name as VPN-like.
func IsVPNName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range vpnNamePatterns {
		if strings.Contains(n, p) {
			return true
		}
	}
	return vpnDevicePattern.MatchString(n)
}

func allInterfaces() Interface {
	return Interface{
		Name:    AllInterfacesName,
		Address: AllInterfacesAddress,
	}
}

// List enumerates the non-loopback IPv4 interfaces of the host, prepending
// the synthetic all-interfaces entry. An enumeration failure still returns
// the synthetic entry so callers always have a bind target.
func List() ([]Interface, error) {
	out := []Interface{allInterfaces()}

	ifaces, err := net.Interfaces()
	if err != nil {
		return out, fmt.Errorf("enumerate interfaces: %w", err)
	}

	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, addrErr := ifc.Addrs()
		if addrErr != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipNet.IP.To4()
			if ip4 == nil {
				continue
			}
			ones, _ := ipNet.Mask.Size()
			out = append(out, Interface{
				Name:    ifc.Name,
				Address: ip4.String(),
				Netmask: net.IP(ipNet.Mask).String(),
				MAC:     ifc.HardwareAddr.String(),
				CIDR:    fmt.Sprintf("%s/%d", ip4, ones),
				IsVPN:   IsVPNName(ifc.Name),
			})
		}
	}
	return out, nil
}

// ResolveIP picks the effective address from an enumerated list. Order:
// exact preferred-IP match, exact preferred-interface match, first non-VPN
// interface, first interface of any kind, loopback. Preferences that no
// longer match any live interface fall through silently; the synthetic
// all-interfaces entry never wins a fallback step.
func ResolveIP(ifaces []Interface, preferredInterface, preferredIP string) string {
	if preferredIP != "" {
		for _, in := range ifaces {
			if in.Address == preferredIP {
				return in.Address
			}
		}
	}
	if preferredInterface != "" {
		for _, in := range ifaces {
			if in.Name == preferredInterface {
				return in.Address
			}
		}
	}
	for _, in := range ifaces {
		if !in.Synthetic() && !in.IsVPN {
			return in.Address
		}
	}
	for _, in := range ifaces {
		if !in.Synthetic() {
			return in.Address
		}
	}
	return LoopbackAddress
}

// IsUnreachable reports whether boundIP points at an address that no
// current interface carries, e.g. a VPN adapter that has since gone away.
// The wildcard bind is always reachable.
func IsUnreachable(boundIP string, ifaces []Interface) bool {
	if boundIP == "" || boundIP == AllInterfacesAddress {
		return false
	}
	for _, in := range ifaces {
		if in.Address == boundIP {
			return false
		}
	}
	return true
}
