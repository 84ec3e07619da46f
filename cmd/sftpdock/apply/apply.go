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

package apply

import (
	"errors"

	"github.com/sftpdock/sftpdock/cmd/config"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type applyController interface {
	ApplyServerSet(set manifest.ServerSet) controller.BulkReport
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apply -f <file>",
		Short:         "Create servers from a YAML manifest",
		Long:          "Create servers from a ServerSet YAML manifest. Entries that already exist fail individually without aborting the rest.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file := viper.GetString(config.SFTPDOCK_APPLY_FILE.ViperKey)
			if file == "" {
				return errors.New("file flag is required (use -f <file> or -f - for stdin)")
			}

			reader, cleanup, err := shared.ReadFileOrStdin(file)
			if err != nil {
				return err
			}
			defer func() {
				_ = cleanup()
			}()

			set, err := manifest.Parse(reader)
			if err != nil {
				return err
			}

			ctrl, err := shared.GetControllerWithMock[applyController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (applyController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			report := ctrl.ApplyServerSet(set)
			shared.PrintBulkReport(cmd, "created", report)
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Manifest file to read (use - for stdin)")
	_ = viper.BindPFlag(config.SFTPDOCK_APPLY_FILE.ViperKey, cmd.Flags().Lookup("file"))
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
