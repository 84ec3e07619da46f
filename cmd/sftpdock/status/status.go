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

package status

import (
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/spf13/cobra"
)

type statusController interface {
	GetSystemStatus() controller.SystemStatus
	GetDriftReport() (controller.DriftReport, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show docker availability, server counts, and store drift",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := shared.GetControllerWithMock[statusController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (statusController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			status := ctrl.GetSystemStatus()
			if status.DockerAvailable {
				cmd.Println("Docker:  available")
			} else {
				cmd.Println("Docker:  NOT available")
			}
			cmd.Printf("Config:  %s\n", status.ConfigPath)
			cmd.Printf("Servers: %d configured, %d running\n", status.Servers, status.Running)
			cmd.Printf("Address: %s\n", status.DisplayIP)

			if !status.DockerAvailable {
				return nil
			}

			drift, err := ctrl.GetDriftReport()
			if err != nil {
				return err
			}
			for _, mc := range drift.Unrecorded {
				cmd.Printf("Untracked container: %s (%s, port %d)\n", mc.Name, mc.Status, mc.Port)
			}
			for _, name := range drift.Orphaned {
				cmd.Printf("Missing container: %s (record exists, container gone)\n", name)
			}
			return nil
		},
	}
}
