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

package sftpdock

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sftpdock/sftpdock/cmd/config"
	applycmd "github.com/sftpdock/sftpdock/cmd/sftpdock/apply"
	copycmd "github.com/sftpdock/sftpdock/cmd/sftpdock/copy"
	createcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/create"
	infocmd "github.com/sftpdock/sftpdock/cmd/sftpdock/info"
	listcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/list"
	logscmd "github.com/sftpdock/sftpdock/cmd/sftpdock/logs"
	lscmd "github.com/sftpdock/sftpdock/cmd/sftpdock/ls"
	networkcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/network"
	removecmd "github.com/sftpdock/sftpdock/cmd/sftpdock/remove"
	startcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/start"
	startallcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/startall"
	statuscmd "github.com/sftpdock/sftpdock/cmd/sftpdock/status"
	stopcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/stop"
	stopallcmd "github.com/sftpdock/sftpdock/cmd/sftpdock/stopall"
	tuicmd "github.com/sftpdock/sftpdock/cmd/sftpdock/tui"
	"github.com/sftpdock/sftpdock/cmd/sftpdock/version"
	"github.com/sftpdock/sftpdock/cmd/types"
	"github.com/sftpdock/sftpdock/internal/errdefs"
	"github.com/sftpdock/sftpdock/internal/logging"
	"github.com/sftpdock/sftpdock/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ConfigLoader interface {
	LoadConfig() error
}

// MockConfigLoaderKey is used to inject mock config loaders in tests via context.
type MockConfigLoaderKey struct{}

func NewSftpdockCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "sftpdock",
		Short: "Manage atmoz/sftp containers from one place",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var logger *slog.Logger
			if viper.GetBool(config.SFTPDOCK_ROOT_VERBOSE.ViperKey) {
				logLevel := viper.GetString(config.SFTPDOCK_ROOT_LOG_LEVEL.ViperKey)
				if logLevel == "" {
					logLevel = "info"
				}

				levelVar := new(slog.LevelVar)
				levelVar.Set(logging.ParseLevel(logLevel))

				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))

				ctx := cmd.Context()
				ctx = context.WithValue(ctx, types.CtxLogger, logger)
				ctx = context.WithValue(ctx, types.CtxLevelVar, levelVar)
				cmd.SetContext(ctx)
				logger.DebugContext(cmd.Context(), "enabling verbose", "log-level", logLevel)
			}

			// Check for mock config loader in context (for testing)
			var loader ConfigLoader
			if mockLoader, ok := cmd.Context().Value(MockConfigLoaderKey{}).(ConfigLoader); ok {
				loader = mockLoader
			} else {
				loader = &realConfigLoader{}
			}

			if err := loader.LoadConfig(); err != nil {
				if logger != nil {
					logger.DebugContext(cmd.Context(), "config error", "error", err)
				}
				return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	if err := SetupSftpdockCmd(cmd); err != nil {
		return nil, fmt.Errorf("failed to setup sftpdock command: %w", err)
	}

	return cmd, nil
}

func SetupSftpdockCmd(rootCmd *cobra.Command) error {
	rootCmd.AddCommand(createcmd.NewCreateCmd())
	rootCmd.AddCommand(listcmd.NewListCmd())
	rootCmd.AddCommand(startcmd.NewStartCmd())
	rootCmd.AddCommand(stopcmd.NewStopCmd())
	rootCmd.AddCommand(removecmd.NewRemoveCmd())
	rootCmd.AddCommand(copycmd.NewCopyCmd())
	rootCmd.AddCommand(infocmd.NewInfoCmd())
	rootCmd.AddCommand(startallcmd.NewStartAllCmd())
	rootCmd.AddCommand(stopallcmd.NewStopAllCmd())
	rootCmd.AddCommand(logscmd.NewLogsCmd())
	rootCmd.AddCommand(statuscmd.NewStatusCmd())
	rootCmd.AddCommand(networkcmd.NewNetworkCmd())
	rootCmd.AddCommand(applycmd.NewApplyCmd())
	rootCmd.AddCommand(lscmd.NewLsCmd())
	rootCmd.AddCommand(tuicmd.NewTuiCmd())
	rootCmd.AddCommand(version.NewVersionCmd())

	return SetPersistentFlags(rootCmd)
}

func SetPersistentFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().String("config", "", "server config file (default is the user config dir)")
	if err := viper.BindPFlag(config.SFTPDOCK_ROOT_CONFIG_PATH.ViperKey, rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String("docker-bin", "docker", "docker client binary")
	if err := viper.BindPFlag(config.SFTPDOCK_ROOT_DOCKER_BIN.ViperKey, rootCmd.PersistentFlags().Lookup("docker-bin")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	if err := viper.BindPFlag(config.SFTPDOCK_ROOT_VERBOSE.ViperKey, rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	if err := viper.BindPFlag(config.SFTPDOCK_ROOT_LOG_LEVEL.ViperKey, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	return nil
}

type realConfigLoader struct{}

func (r *realConfigLoader) LoadConfig() error {
	return loadConfig()
}

func loadConfig() error {
	_ = config.SFTPDOCK_ROOT_CONFIG_PATH.BindEnv()
	if viper.GetString(config.SFTPDOCK_ROOT_CONFIG_PATH.ViperKey) == "" {
		path, err := store.DefaultPath()
		if err != nil {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
		viper.Set(config.SFTPDOCK_ROOT_CONFIG_PATH.ViperKey, path)
	}

	_ = config.SFTPDOCK_ROOT_DOCKER_BIN.BindEnv()
	if viper.GetString(config.SFTPDOCK_ROOT_DOCKER_BIN.ViperKey) == "" {
		viper.Set(config.SFTPDOCK_ROOT_DOCKER_BIN.ViperKey, config.SFTPDOCK_ROOT_DOCKER_BIN.ValueOrDefault())
	}

	_ = config.SFTPDOCK_ROOT_VERBOSE.BindEnv()

	_ = config.SFTPDOCK_ROOT_LOG_LEVEL.BindEnv()
	if viper.GetString(config.SFTPDOCK_ROOT_LOG_LEVEL.ViperKey) == "" {
		viper.Set(config.SFTPDOCK_ROOT_LOG_LEVEL.ViperKey, "info")
	}

	return nil
}

// LoadConfig is a public wrapper used by the GUI entry point.
func LoadConfig() error {
	return loadConfig()
}
