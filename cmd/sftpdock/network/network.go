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

package network

import (
	"strings"

	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/netinfo"
	"github.com/spf13/cobra"
)

type networkController interface {
	ListNetworks() ([]netinfo.Interface, error)
	GetVPNNetworks() ([]netinfo.Interface, error)
	SetNetwork(target string) error
	ClearNetwork() error
	GetCurrentNetworkConfig() controller.NetworkConfig
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func controllerFrom(cmd *cobra.Command) (networkController, error) {
	return shared.GetControllerWithMock[networkController](
		cmd,
		MockControllerKey{},
		func(cmd *cobra.Command) (networkController, error) {
			return shared.ControllerFromCmd(cmd)
		},
	)
}

func NewNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "network",
		Short:         "Inspect and choose the address servers bind and advertise",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controllerFrom(cmd)
			if err != nil {
				return err
			}

			ifaces, err := ctrl.ListNetworks()
			if err != nil {
				return err
			}

			cfg := ctrl.GetCurrentNetworkConfig()
			printInterfaces(cmd, ifaces, cfg)
			return nil
		},
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newVPNCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "set <name-or-ip>",
		Short:         "Pin servers to an interface name or address",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(args[0])

			ctrl, err := controllerFrom(cmd)
			if err != nil {
				return err
			}

			if err := ctrl.SetNetwork(target); err != nil {
				return err
			}

			cfg := ctrl.GetCurrentNetworkConfig()
			cmd.Printf("Network preference set to %q (resolves to %s)\n", target, cfg.EffectiveIP)
			return nil
		},
	}
}

func newVPNCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "vpn",
		Short:         "List detected VPN interfaces",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controllerFrom(cmd)
			if err != nil {
				return err
			}

			vpns, err := ctrl.GetVPNNetworks()
			if err != nil {
				return err
			}
			if len(vpns) == 0 {
				cmd.Println("No VPN interfaces detected.")
				return nil
			}
			for _, in := range vpns {
				cmd.Printf("%s  %s\n", in.Name, in.Address)
			}
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Reset the network preference to all interfaces",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := controllerFrom(cmd)
			if err != nil {
				return err
			}

			if err := ctrl.ClearNetwork(); err != nil {
				return err
			}
			cmd.Println("Network preference cleared")
			return nil
		},
	}
}

func printInterfaces(cmd *cobra.Command, ifaces []netinfo.Interface, cfg controller.NetworkConfig) {
	headers := []string{"", "NAME", "ADDRESS", "VPN"}
	rows := make([][]string, 0, len(ifaces))
	for _, in := range ifaces {
		marker := ""
		if !in.Synthetic() && in.Address == cfg.EffectiveIP {
			marker = "*"
		}
		vpn := ""
		if in.IsVPN {
			vpn = "yes"
		}
		rows = append(rows, []string{marker, in.Name, in.Address, vpn})
	}
	shared.PrintTable(cmd, headers, rows)
	cmd.Printf("\nEffective address: %s\n", cfg.EffectiveIP)
}
