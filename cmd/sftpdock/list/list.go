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

package list

import (
	"strconv"

	"github.com/sftpdock/sftpdock/cmd/config"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type listController interface {
	ListServers() ([]controller.ServerInfo, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ps"},
		Short:         "List configured SFTP servers with their container state",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := shared.ParseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ctrl, err := shared.GetControllerWithMock[listController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (listController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			servers, err := ctrl.ListServers()
			if err != nil {
				return err
			}

			return printServers(cmd, servers, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output format (yaml, json, table)")
	_ = viper.BindPFlag(config.SFTPDOCK_LIST_OUTPUT.ViperKey, cmd.Flags().Lookup("output"))
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json", "table"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func printServers(cmd *cobra.Command, servers []controller.ServerInfo, format shared.OutputFormat) error {
	switch format {
	case shared.OutputFormatYAML:
		return shared.PrintYAML(cmd, servers)
	case shared.OutputFormatJSON:
		return shared.PrintJSON(cmd, servers)
	default:
		headers := []string{"NAME", "PORT", "STATUS", "USER", "HOST PATH", "BIND"}
		rows := make([][]string, 0, len(servers))
		for _, s := range servers {
			bind := s.BindIP
			if bind == "" {
				bind = "all"
			} else if s.Unreachable {
				bind += " (unreachable)"
			}
			rows = append(rows, []string{
				s.Name,
				strconv.Itoa(s.Port),
				s.Status,
				s.Username,
				s.HostPath,
				bind,
			})
		}
		shared.PrintTable(cmd, headers, rows)
		return nil
	}
}
