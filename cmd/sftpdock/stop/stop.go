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

package stop

import (
	"strings"

	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/spf13/cobra"
)

type stopController interface {
	StopServer(name string) error
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "stop <name>",
		Short:         "Stop a running SFTP server container",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			ctrl, err := shared.GetControllerWithMock[stopController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (stopController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			if err := ctrl.StopServer(name); err != nil {
				return err
			}
			cmd.Printf("Server %q stopped\n", name)
			return nil
		},
	}
}
