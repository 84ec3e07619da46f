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

package tui

import (
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/tui"
	"github.com/spf13/cobra"
)

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tui",
		Short:         "Interactive terminal menu",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := shared.GetControllerWithMock[tui.Controller](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (tui.Controller, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			return tui.NewApp(ctrl, cmd.OutOrStdout()).Run()
		},
	}
}
