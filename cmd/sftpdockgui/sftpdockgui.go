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

package sftpdockgui

import (
	"fmt"

	"fyne.io/fyne/v2/app"

	sftpdockcmd "github.com/sftpdock/sftpdock/cmd/sftpdock"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/gui"
	"github.com/spf13/cobra"
)

// NewSftpdockGuiCmd wraps the fyne window in a cobra command so the GUI
// entry point shares the config and flag handling of the CLI tree.
func NewSftpdockGuiCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "sftpdock-gui",
		Short:         "Desktop window for managing SFTP server containers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := sftpdockcmd.LoadConfig(); err != nil {
				return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := shared.ControllerFromCmd(cmd)
			if err != nil {
				return err
			}

			fyneApp := app.New()
			gui.MainWindow(fyneApp, ctrl).ShowAndRun()
			return nil
		},
	}

	if err := sftpdockcmd.SetPersistentFlags(cmd); err != nil {
		return nil, err
	}

	return cmd, nil
}
