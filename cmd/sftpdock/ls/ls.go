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

package ls

import (
	"strconv"
	"strings"

	"github.com/sftpdock/sftpdock/cmd/sftpdock/shared"
	"github.com/sftpdock/sftpdock/internal/docker"
	"github.com/spf13/cobra"
)

type lsController interface {
	ListServerDir(name, rel string) ([]docker.DirEntry, error)
}

// MockControllerKey is used to inject mock controllers in tests via context.
type MockControllerKey struct{}

func NewLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "ls <name> [path]",
		Short:         "List a server's shared directory through its container",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			rel := ""
			if len(args) > 1 {
				rel = strings.TrimSpace(args[1])
			}

			ctrl, err := shared.GetControllerWithMock[lsController](
				cmd,
				MockControllerKey{},
				func(cmd *cobra.Command) (lsController, error) {
					return shared.ControllerFromCmd(cmd)
				},
			)
			if err != nil {
				return err
			}

			entries, err := ctrl.ListServerDir(name, rel)
			if err != nil {
				return err
			}

			headers := []string{"NAME", "TYPE", "SIZE"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				kind := "file"
				size := strconv.FormatInt(entry.Size, 10)
				if entry.IsDir {
					kind = "dir"
					size = "-"
				}
				rows = append(rows, []string{entry.Name, kind, size})
			}
			shared.PrintTable(cmd, headers, rows)
			return nil
		},
	}
}
