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

package config

import (
	"os"

	"github.com/spf13/viper"
)

type Var struct {
	Key        string // e.g. "SFTPDOCK_CONFIG_PATH"
	ViperKey   string // optional, e.g. "sftpdock/configPath"
	CobraKey   string // optional, e.g. "config"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func Define(envName string, defaultVal ...string) Var {
	return DefineKV(envName, "", defaultVal...)
}

func (v *Var) EnvKey() string               { return v.Key }
func (v *Var) DefaultValue() (string, bool) { return v.Default, v.HasDefault }

// ValueOrDefault defines precedence: viper (if ViperKey set and value present) → OS env → default → "".
func (v *Var) ValueOrDefault() string {
	if v.ViperKey != "" && viper.IsSet(v.ViperKey) {
		return viper.GetString(v.ViperKey)
	}
	if val, ok := os.LookupEnv(v.Key); ok {
		return val
	}
	if v.HasDefault {
		return v.Default
	}
	return ""
}

// BindEnv is safe if ViperKey is empty: does nothing.
func (v *Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

func (v *Var) Set(value string) error {
	return os.Setenv(v.Key, value)
}

func (v *Var) SetDefault(val string) {
	v.Default = val
	v.HasDefault = true
	if v.ViperKey != "" {
		viper.SetDefault(v.ViperKey, val)
	}
}

func KV(v Var, value string) string { return v.Key + "=" + value }

// ---- Declare statically (Viper key optional per var) ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_ROOT_VERBOSE = DefineKV("SFTPDOCK_VERBOSE", "sftpdock/verbose")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_ROOT_LOG_LEVEL = DefineKV("SFTPDOCK_LOG_LEVEL", "sftpdock/logLevel", "info")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_ROOT_CONFIG_PATH = DefineKV("SFTPDOCK_CONFIG_PATH", "sftpdock/configPath")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_ROOT_DOCKER_BIN = DefineKV("SFTPDOCK_DOCKER_BIN", "sftpdock/dockerBin", "docker")

	// Create command variables
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_NAME = DefineKV("SFTPDOCK_CREATE_NAME", "sftpdock/create/name")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_PORT = DefineKV("SFTPDOCK_CREATE_PORT", "sftpdock/create/port")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_HOST_PATH = DefineKV("SFTPDOCK_CREATE_HOST_PATH", "sftpdock/create/hostPath")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_CONTAINER_PATH = DefineKV("SFTPDOCK_CREATE_CONTAINER_PATH", "sftpdock/create/containerPath")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_USERNAME = DefineKV("SFTPDOCK_CREATE_USERNAME", "sftpdock/create/username")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_PASSWORD = DefineKV("SFTPDOCK_CREATE_PASSWORD", "sftpdock/create/password")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_CREATE_UID = DefineKV("SFTPDOCK_CREATE_UID", "sftpdock/create/uid")

	// Output and tail variables
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_LIST_OUTPUT = DefineKV("SFTPDOCK_LIST_OUTPUT", "sftpdock/list/output")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_INFO_FORMAT = DefineKV("SFTPDOCK_INFO_FORMAT", "sftpdock/info/format")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_COPY_FORMAT = DefineKV("SFTPDOCK_COPY_FORMAT", "sftpdock/copy/format")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_LOGS_LINES = DefineKV("SFTPDOCK_LOGS_LINES", "sftpdock/logs/lines", "50")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_APPLY_FILE = DefineKV("SFTPDOCK_APPLY_FILE", "sftpdock/apply/file")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	SFTPDOCK_NETWORK_TARGET = DefineKV("SFTPDOCK_NETWORK_TARGET", "sftpdock/network/target")
)
