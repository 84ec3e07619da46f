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

package remove

import (
	"strings"

	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/spf13/cobra"
)

type removeController interface {
	RemoveServer(name string, force bool) error
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remove <name>",
		Aliases:       []string{"rm"},
		Short:         "Remove a server's container and its stored record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			ctrl, err := shared.GetControllerWithMock[removeController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (removeController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			if err := ctrl.RemoveServer(name, force); err != nil {
				return err
			}
			cmd.Printf("Server %q removed\n", name)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Remove even if the container is running")

	return cmd
}
