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

package netinfo_test

import (
	"testing"

	"github.com/sftpdock/sftpdock/internal/netinfo"
)

func TestIsVPNName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "Tailscale", want: true},
		{name: "tailscale0", want: true},
		{name: "wg0", want: true},
		{name: "WG7", want: true},
		{name: "tun0", want: true},
		{name: "tap3", want: true},
		{name: "ZeroTier One [abcdef]", want: true},
		{name: "WireGuard Tunnel", want: true},
		{name: "Radmin VPN", want: true},
		{name: "Hamachi", want: true},
		{name: "Ethernet", want: false},
		{name: "Wi-Fi", want: false},
		{name: "eth0", want: false},
		{name: "wlan0", want: false},
		{name: "wg", want: false},
		{name: "tunnel-broker", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := netinfo.IsVPNName(tt.name); got != tt.want {
				t.Errorf("IsVPNName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func fixtureInterfaces() []netinfo.Interface {
	return []netinfo.Interface{
		{Name: netinfo.AllInterfacesName, Address: netinfo.AllInterfacesAddress},
		{Name: "tailscale0", Address: "100.64.0.7", IsVPN: true},
		{Name: "eth0", Address: "192.168.1.20"},
		{Name: "wlan0", Address: "192.168.1.35"},
	}
}

func TestResolveIP(t *testing.T) {
	tests := []struct {
		name      string
		ifaces    []netinfo.Interface
		prefIface string
		prefIP    string
		want      string
	}{
		{
			name:   "preferred IP wins when present",
			ifaces: fixtureInterfaces(),
			prefIP: "100.64.0.7",
			want:   "100.64.0.7",
		},
		{
			name:   "stale preferred IP falls back to first non-VPN",
			ifaces: fixtureInterfaces(),
			prefIP: "10.0.0.5",
			want:   "192.168.1.20",
		},
		{
			name:      "preferred interface wins over fallback",
			ifaces:    fixtureInterfaces(),
			prefIface: "wlan0",
			want:      "192.168.1.35",
		},
		{
			name:      "stale preferred interface falls back",
			ifaces:    fixtureInterfaces(),
			prefIface: "ppp0",
			want:      "192.168.1.20",
		},
		{
			name:   "preferred IP beats preferred interface",
			ifaces: fixtureInterfaces(),
			prefIP: "192.168.1.35", prefIface: "eth0",
			want: "192.168.1.35",
		},
		{
			name: "only VPN interfaces present",
			ifaces: []netinfo.Interface{
				{Name: netinfo.AllInterfacesName, Address: netinfo.AllInterfacesAddress},
				{Name: "wg0", Address: "10.8.0.2", IsVPN: true},
			},
			want: "10.8.0.2",
		},
		{
			name: "no interfaces at all",
			ifaces: []netinfo.Interface{
				{Name: netinfo.AllInterfacesName, Address: netinfo.AllInterfacesAddress},
			},
			want: netinfo.LoopbackAddress,
		},
		{
			name:   "wildcard preference resolves to wildcard",
			ifaces: fixtureInterfaces(),
			prefIP: netinfo.AllInterfacesAddress,
			want:   netinfo.AllInterfacesAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := netinfo.ResolveIP(tt.ifaces, tt.prefIface, tt.prefIP)
			if got != tt.want {
				t.Errorf("ResolveIP(%q, %q) = %q, want %q", tt.prefIface, tt.prefIP, got, tt.want)
			}
		})
	}
}

func TestIsUnreachable(t *testing.T) {
	ifaces := fixtureInterfaces()

	tests := []struct {
		name    string
		boundIP string
		want    bool
	}{
		{name: "wildcard is always reachable", boundIP: "0.0.0.0", want: false},
		{name: "empty bind is reachable", boundIP: "", want: false},
		{name: "live address", boundIP: "192.168.1.20", want: false},
		{name: "vanished VPN address", boundIP: "10.8.0.2", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := netinfo.IsUnreachable(tt.boundIP, ifaces); got != tt.want {
				t.Errorf("IsUnreachable(%q) = %v, want %v", tt.boundIP, got, tt.want)
			}
		})
	}
}
