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

package info

import (
	"strings"

	"github.com/sftpdock/sftpdock/cmd/config"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completeInfoFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"full", "command", "url", "password"}, cobra.ShellCompDirectiveNoFileComp
}

type infoController interface {
	ConnectionInfo(name string) (controller.ConnectionInfo, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info <name>",
		Short:         "Print a server's connection details",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			format, err := controller.ParseInfoFormat(viper.GetString(config.SFTPDOCK_INFO_FORMAT.ViperKey))
			if err != nil {
				return err
			}

			ctrl, err := shared.GetControllerWithMock[infoController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (infoController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			info, err := ctrl.ConnectionInfo(name)
			if err != nil {
				return err
			}

			rendered, err := info.Format(format)
			if err != nil {
				return err
			}
			cmd.Println(rendered)
			return nil
		},
	}

	cmd.Flags().String("format", "", "Output format (full, command, url, password)")
	_ = viper.BindPFlag(config.SFTPDOCK_INFO_FORMAT.ViperKey, cmd.Flags().Lookup("format"))
	_ = cmd.RegisterFlagCompletionFunc("format", completeInfoFormats)

	return cmd
}
