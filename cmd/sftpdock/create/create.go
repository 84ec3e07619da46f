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

package create

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sftpdock/sftpdock/cmd/config"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/controller"
	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type createController interface {
	CreateServer(req controller.CreateServerRequest) (controller.CreateServerResult, error)
	ConnectionInfo(name string) (controller.ConnectionInfo, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

// ClipboardWriter abstracts the system clipboard for tests.
type ClipboardWriter func(text string) error

// MockClipboardKey is used to inject a clipboard writer in tests via context.
type MockClipboardKey struct{}

func NewCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "create -n <name> -m <host-path>",
		Short:         "Create and start a new SFTP server container",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := strings.TrimSpace(viper.GetString(config.SFTPDOCK_CREATE_NAME.ViperKey))
			if name == "" {
				name = config.SFTPDOCK_CREATE_NAME.ValueOrDefault()
			}
			if name == "" {
				return fmt.Errorf("%w (-n)", errdefs.ErrNameRequired)
			}

			hostPath := strings.TrimSpace(viper.GetString(config.SFTPDOCK_CREATE_HOST_PATH.ViperKey))
			if hostPath == "" {
				hostPath = config.SFTPDOCK_CREATE_HOST_PATH.ValueOrDefault()
			}
			if hostPath == "" {
				return fmt.Errorf("%w (-m)", errdefs.ErrHostPathRequired)
			}

			port := viper.GetInt(config.SFTPDOCK_CREATE_PORT.ViperKey)
			if port < 0 || port > 65535 {
				return fmt.Errorf("%w: %d", errdefs.ErrInvalidPort, port)
			}

			uid, err := cmd.Flags().GetInt("uid")
			if err != nil {
				return err
			}

			containerPath, err := cmd.Flags().GetString("container-path")
			if err != nil {
				return err
			}

			copyCommand, err := cmd.Flags().GetBool("copy")
			if err != nil {
				return err
			}

			ctrl, err := shared.GetControllerWithMock[createController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (createController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			result, err := ctrl.CreateServer(controller.CreateServerRequest{
				Name:          name,
				Port:          port,
				HostPath:      hostPath,
				ContainerPath: containerPath,
				Username:      viper.GetString(config.SFTPDOCK_CREATE_USERNAME.ViperKey),
				Password:      viper.GetString(config.SFTPDOCK_CREATE_PASSWORD.ViperKey),
				UID:           uid,
			})
			if err != nil {
				return err
			}

			printCreateResult(cmd, result)

			if copyCommand {
				if clipErr := copyConnectionCommand(cmd, ctrl, result.Server.Name); clipErr != nil {
					cmd.Printf("Warning: could not copy command to clipboard: %v\n", clipErr)
				} else {
					cmd.Println("Connection command copied to clipboard.")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("name", "n", "", "Server name (also the container name)")
	_ = viper.BindPFlag(config.SFTPDOCK_CREATE_NAME.ViperKey, cmd.Flags().Lookup("name"))

	cmd.Flags().IntP("port", "p", 0, "Host port to publish (first free port from 2222 if omitted)")
	_ = viper.BindPFlag(config.SFTPDOCK_CREATE_PORT.ViperKey, cmd.Flags().Lookup("port"))

	cmd.Flags().StringP("mount", "m", "", "Host directory to share over SFTP")
	_ = viper.BindPFlag(config.SFTPDOCK_CREATE_HOST_PATH.ViperKey, cmd.Flags().Lookup("mount"))

	cmd.Flags().StringP("user", "u", "", "SFTP username (default sftpuser)")
	_ = viper.BindPFlag(config.SFTPDOCK_CREATE_USERNAME.ViperKey, cmd.Flags().Lookup("user"))

	cmd.Flags().StringP("password", "P", "", "SFTP password (generated if omitted)")
	_ = viper.BindPFlag(config.SFTPDOCK_CREATE_PASSWORD.ViperKey, cmd.Flags().Lookup("password"))

	cmd.Flags().IntP("uid", "w", 0, "Numeric uid inside the container (default 1001)")
	cmd.Flags().String("container-path", "", "Mount point inside the container (default /home/<user>/upload)")
	cmd.Flags().Bool("copy", false, "Copy the sftp command to the clipboard after creation")

	return cmd
}

// copyConnectionCommand puts the same sftp command on the clipboard that
// the info and copy subcommands render, resolved host included.
func copyConnectionCommand(cmd *cobra.Command, ctrl createController, name string) error {
	info, err := ctrl.ConnectionInfo(name)
	if err != nil {
		return err
	}
	command, err := info.Format(controller.FormatCommand)
	if err != nil {
		return err
	}

	write := clipboard.WriteAll
	if mockWrite, ok := cmd.Context().Value(MockClipboardKey{}).(ClipboardWriter); ok {
		write = mockWrite
	}
	return write(command)
}

func printCreateResult(cmd *cobra.Command, result controller.CreateServerResult) {
	cmd.Printf("Server %q created on port %d (container %s)\n",
		result.Server.Name, result.Server.Port, shortID(result.ContainerID))
	cmd.Printf("  User: %s\n", result.Server.Username)
	if result.PasswordGenerated {
		cmd.Printf("  Pass: %s (generated)\n", result.Server.Password)
	}
	cmd.Printf("  Path: %s -> %s\n", result.Server.HostPath, result.Server.ContainerPath)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
