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

package logs

import (
	"strings"

	"github.com/sftpdock/sftpdock/cmd/config"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type logsController interface {
	ServerLogs(name string, lines int) string
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "logs <name>",
		Short:         "Print the tail of a server's container log",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			lines := viper.GetInt(config.SFTPDOCK_LOGS_LINES.ViperKey)

			ctrl, err := shared.GetControllerWithMock[logsController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (logsController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			cmd.Println(ctrl.ServerLogs(name, lines))
			return nil
		},
	}

	cmd.Flags().Int("lines", 50, "Number of trailing log lines to show")
	_ = viper.BindPFlag(config.SFTPDOCK_LOGS_LINES.ViperKey, cmd.Flags().Lookup("lines"))

	return cmd
}
